package model

import (
	"math"
	"sort"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
)

// ErrNoProfile 表示用户没有任何评分，无法构建内容画像。
// 内容模型对零历史用户显式失败，而不是返回空列表；调用方需保证至少一条评分。
var ErrNoProfile = core.NewDomainError(core.ModuleModel, core.ErrorCodeNoProfile,
	"model: user has no rated movies, cannot build content profile")

// Content 是基于内容的相似度模型。
//
// 向量化：每部电影的类型集合视为一篇文档，词权重为 idf 缩放的词频
// （平滑 idf = ln((1+N)/(1+df)) + 1，稀有类型权重更高），
// 每个向量做 l2 归一化，因此自相似度为 1.0，相似度取值落在 [0,1]。
//
// 相似度：全目录电影两两余弦，构建时一次算成稠密矩阵，之后只读。
// 无类型电影得到零向量，与任何电影的相似度按退化情形记 0。
type Content struct {
	table      *dataset.Table
	movieIDs   []int64
	movieIndex map[int64]int
	sim        [][]float64
}

// BuildContent 在给定目录上构建 TF-IDF 向量与电影相似度矩阵。
func BuildContent(t *dataset.Table) *Content {
	c := &Content{
		table:    t,
		movieIDs: t.MovieIDs(),
	}
	c.movieIndex = make(map[int64]int, len(c.movieIDs))
	for i, id := range c.movieIDs {
		c.movieIndex[id] = i
	}

	// 词表：目录中出现过的类型标签，字典序保证确定性
	df := make(map[string]int)
	for _, id := range c.movieIDs {
		m, _ := t.Movie(id)
		for _, g := range m.Genres {
			df[g]++
		}
	}
	terms := make([]string, 0, len(df))
	for g := range df {
		terms = append(terms, g)
	}
	sort.Strings(terms)
	termIndex := make(map[string]int, len(terms))
	for i, g := range terms {
		termIndex[g] = i
	}

	n := float64(len(c.movieIDs))
	idf := make([]float64, len(terms))
	for i, g := range terms {
		idf[i] = math.Log((1+n)/(1+float64(df[g]))) + 1
	}

	// TF-IDF 向量（tf=1，l2 归一化）
	vectors := make([][]float64, len(c.movieIDs))
	for i, id := range c.movieIDs {
		m, _ := t.Movie(id)
		vec := make([]float64, len(terms))
		for _, g := range m.Genres {
			vec[termIndex[g]] = idf[termIndex[g]]
		}
		var norm float64
		for _, v := range vec {
			norm += v * v
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range vec {
				vec[j] /= norm
			}
		}
		vectors[i] = vec
	}

	// 稠密相似度矩阵：归一化后余弦即点积
	c.sim = make([][]float64, len(vectors))
	for i := range vectors {
		c.sim[i] = make([]float64, len(vectors))
	}
	for i := range vectors {
		for j := i; j < len(vectors); j++ {
			var dot float64
			for f := range vectors[i] {
				dot += vectors[i][f] * vectors[j][f]
			}
			dot = finite(dot)
			c.sim[i][j] = dot
			c.sim[j][i] = dot
		}
	}

	return c
}

func (c *Content) Name() string { return "content" }

// Similarity 返回两部电影的内容相似度；不在目录中的 ID 记 0。
func (c *Content) Similarity(a, b int64) float64 {
	i, iok := c.movieIndex[a]
	j, jok := c.movieIndex[b]
	if !iok || !jok {
		return 0
	}
	return c.sim[i][j]
}

// Score 计算用户对一组候选电影的内容分数：
// 用户每部已评分电影与候选的相似度取平均。
// 用户没有任何评分时返回 ErrNoProfile。
func (c *Content) Score(userID int64, candidates []int64) ([]*core.Item, error) {
	rated := c.table.UserRatings(userID)
	if len(rated) == 0 {
		return nil, ErrNoProfile
	}

	// 已评分电影按 ID 升序累加，保证浮点求和顺序稳定
	ratedIDs := make([]int64, 0, len(rated))
	for id := range rated {
		ratedIDs = append(ratedIDs, id)
	}
	sort.Slice(ratedIDs, func(i, j int) bool { return ratedIDs[i] < ratedIDs[j] })

	out := make([]*core.Item, 0, len(candidates))
	for _, candID := range candidates {
		var sum float64
		for _, ratedID := range ratedIDs {
			sum += c.Similarity(ratedID, candID)
		}
		it := core.NewItem(candID)
		it.Title = c.table.Title(candID)
		it.Score = finite(sum / float64(len(ratedIDs)))
		out = append(out, it)
	}
	return out, nil
}

// TopN 排除已评分电影后按内容分数返回前 n 条推荐。
// 零历史用户返回 ErrNoProfile。
func (c *Content) TopN(userID int64, n int) ([]*core.Item, error) {
	rated := c.table.UserRatings(userID)
	if len(rated) == 0 {
		return nil, ErrNoProfile
	}

	candidates := make([]int64, 0, len(c.movieIDs))
	for _, id := range c.movieIDs {
		if _, ok := rated[id]; ok {
			continue
		}
		candidates = append(candidates, id)
	}

	items, err := c.Score(userID, candidates)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return core.Less(items[i], items[j]) })
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items, nil
}
