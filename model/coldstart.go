package model

import (
	"sort"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
)

// ColdStart 是冷启动榜单：全目录按经验平均分排序，与用户无关。
// 用于没有任何评分历史的用户，或作为全目录基线。
//
// 默认不设最低评分数门槛：一部只被评过一次 5.0 的电影会排在
// 被评一千次 4.9 的电影前面。这是基线语义，已知的质量缺陷，不做静默修正；
// MinRatings > 0 时才过滤支持度不足的电影。
type ColdStart struct {
	// MinRatings 入榜所需的最低评分条数；0 保持基线行为（不过滤）。
	MinRatings int
}

func (c *ColdStart) Name() string { return "cold_start" }

// Rank 返回前 n 部平均分最高的电影（无人评分的电影不入榜）。
// 排序：平均分降序，同分 movie_id 升序。纯表函数，对谁请求都一样。
func (c *ColdStart) Rank(t *dataset.Table, n int) []*core.Item {
	items := make([]*core.Item, 0, len(t.MovieIDs()))
	for _, movieID := range t.MovieIDs() {
		raters := t.MovieRaters(movieID)
		if len(raters) == 0 || len(raters) < c.MinRatings {
			continue
		}
		mean, _ := t.MovieMean(movieID)
		it := core.NewItem(movieID)
		it.Title = t.Title(movieID)
		it.Score = mean
		items = append(items, it)
	}

	sort.Slice(items, func(i, j int) bool { return core.Less(items[i], items[j]) })
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items
}
