package filter

import (
	"context"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
)

// RatedFilter 过滤掉请求用户已经评分过的电影。
// 这是推荐列表的硬性约束：任何用户的列表里不得出现其已评分的电影
// （冷启动榜单与用户无关，不经过此过滤器）。
// 模型的 TopN 自身已做排除，这里作为 Pipeline 末端的兜底。
type RatedFilter struct {
	Table *dataset.Table
}

func (f *RatedFilter) Name() string {
	return "filter.rated"
}

func (f *RatedFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.Table == nil || rctx == nil {
		return false, nil
	}
	_, rated := f.Table.UserRatings(rctx.UserID)[item.ID]
	return rated, nil
}
