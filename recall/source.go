// Package recall 提供候选电影的召回源：训练好的模型、冷启动榜单、并发 Fanout。
package recall

import (
	"context"

	"github.com/rushteam/moviekit/core"
)

// Source 是召回源接口：为一次请求生成候选电影列表。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
