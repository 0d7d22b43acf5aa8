package pipeline

import (
	"context"

	"github.com/rushteam/moviekit/core"
)

// Kind 用于标记 Node 类型，方便观测/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：由模型生成候选电影
	KindFilter Kind = "filter" // 过滤阶段：剔除不符合约束的候选（已看过、规则不通过）
	KindReRank Kind = "rerank" // 重排阶段：截断 / 多样性调整
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，方便 Recall 生成、Filter 剔除、ReRank 重排。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}
