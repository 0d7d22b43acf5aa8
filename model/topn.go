package model

import (
	"math"
	"sort"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
)

// rankUnrated 是所有 TopN 输出共享的排序选择逻辑：
// 对目录中用户未评分的每部电影打分，按分数降序、同分 movie_id 升序排序，截断前 n。
// 用户已评分的电影永远不会出现在结果里。
func rankUnrated(t *dataset.Table, userID int64, n int, score func(movieID int64) float64) []*core.Item {
	rated := t.UserRatings(userID)

	items := make([]*core.Item, 0, len(t.MovieIDs()))
	for _, movieID := range t.MovieIDs() {
		if _, ok := rated[movieID]; ok {
			continue
		}
		it := core.NewItem(movieID)
		it.Title = t.Title(movieID)
		it.Score = finite(score(movieID))
		items = append(items, it)
	}

	sort.Slice(items, func(i, j int) bool { return core.Less(items[i], items[j]) })
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

// finite 将非有限值（归一化除零等退化情形）收敛为 0，绝不向外传播 NaN。
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
