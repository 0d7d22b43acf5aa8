package recall

import (
	"context"
	"sort"
	"strconv"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
	"github.com/rushteam/moviekit/pipeline"
	"github.com/rushteam/moviekit/pkg/utils"
)

// Hot 是冷启动榜单召回源：从 Store 的有序集合读取平均分榜单。
// 批式流水线把 model.ColdStart 的结果写入 zset（member 电影 ID，score 平均分），
// serving 侧只读取。Store 不可用或 key 为空时使用内存 Fallback。
// 与用户无关：对任何请求返回同一份榜单。
type Hot struct {
	Store core.KeyValueStore
	Key   string // 例如 model.KeyColdStartTop

	// Catalog 用于补全标题（可选）
	Catalog *dataset.Table

	// TopN 榜单条数，<= 0 时默认 10
	TopN int

	// Fallback 内存榜单，Store 读不到时使用
	Fallback []*core.Item
}

func (r *Hot) Name() string        { return "recall.hot" }
func (r *Hot) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall。
func (r *Hot) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口。
func (r *Hot) Recall(
	ctx context.Context,
	_ *core.RecommendContext,
) ([]*core.Item, error) {
	topN := r.TopN
	if topN <= 0 {
		topN = 10
	}

	var items []*core.Item
	if r.Store != nil && r.Key != "" {
		members, err := r.Store.ZRangeWithScores(ctx, r.Key, 0, int64(topN)-1)
		if err == nil && len(members) > 0 {
			items = make([]*core.Item, 0, len(members))
			for _, m := range members {
				id, err := strconv.ParseInt(m.Member, 10, 64)
				if err != nil {
					continue
				}
				it := core.NewItem(id)
				it.Score = m.Score
				if r.Catalog != nil {
					it.Title = r.Catalog.Title(id)
				}
				items = append(items, it)
			}
		}
	}

	if len(items) == 0 {
		items = append([]*core.Item(nil), r.Fallback...)
	}

	// zset 对同分成员按 member 字符串排序（"10" < "2"），且各后端方向不一，
	// 这里统一重排为分数降序、同分 movie_id 升序
	sort.Slice(items, func(i, j int) bool { return core.Less(items[i], items[j]) })
	if len(items) > topN {
		items = items[:topN]
	}

	for _, it := range items {
		it.PutLabel("recall_source", utils.Label{Value: "hot", Source: "recall"})
	}
	return items, nil
}
