package model

import (
	"math"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
)

// UserCF 是基于用户的邻域协同过滤模型。
//
// 核心思想："兴趣相似的用户，喜欢相似的电影"
//
// 相似度：两个用户在共同评分过的电影上的评分向量余弦相似度。
// 缺失项视为不存在，而不是 0；没有任何共同评分的两人之间相似度不存在。
// 相似度矩阵对称、对角不含自身，构建一次之后不可变。
//
// 预测 (u,i)：其他评分过 i 的用户评分按与 u 的相似度加权平均；
// 没有任何可用邻居时回退到 i 的目录平均分，i 无人评分时回退到全局均值。
// 任何合法 (user, movie) 对都返回有限值，从不报错。
type UserCF struct {
	table *dataset.Table
	sim   map[int64]map[int64]float64 // user -> user -> similarity
}

// TrainUserCF 在给定评分表上构建用户-用户相似度矩阵。
func TrainUserCF(t *dataset.Table) *UserCF {
	m := &UserCF{
		table: t,
		sim:   make(map[int64]map[int64]float64),
	}

	users := t.UserIDs()
	for i := 0; i < len(users); i++ {
		for j := i + 1; j < len(users); j++ {
			s := cosineOverCommon(t.UserRatings(users[i]), t.UserRatings(users[j]))
			if s == 0 {
				continue
			}
			m.putSim(users[i], users[j], s)
			m.putSim(users[j], users[i], s)
		}
	}
	return m
}

func (m *UserCF) putSim(a, b int64, s float64) {
	if m.sim[a] == nil {
		m.sim[a] = make(map[int64]float64)
	}
	m.sim[a][b] = s
}

// cosineOverCommon 在两个用户共同评分过的电影上计算余弦相似度。
// 少于一部共同电影，或任一侧范数为 0（退化），返回 0。
func cosineOverCommon(a, b map[int64]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot, normA, normB float64
	n := 0
	for movieID, ra := range a {
		rb, ok := b[movieID]
		if !ok {
			continue
		}
		n++
		dot += ra * rb
		normA += ra * ra
		normB += rb * rb
	}
	if n == 0 || normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func (m *UserCF) Name() string { return "user_based_cf" }

// Similarity 返回两个用户的相似度；不存在（无共同评分）时 ok 为 false。
func (m *UserCF) Similarity(a, b int64) (float64, bool) {
	s, ok := m.sim[a][b]
	return s, ok
}

// Predict 估计用户对电影的评分（邻居加权平均 + 两级回退）。
func (m *UserCF) Predict(userID, movieID int64) float64 {
	var num, den float64
	for raterID, rating := range m.table.MovieRaters(movieID) {
		if raterID == userID {
			continue
		}
		s, ok := m.sim[userID][raterID]
		if !ok {
			continue
		}
		num += s * rating
		den += s
	}
	if den > 0 {
		return finite(num / den)
	}
	if mean, ok := m.table.MovieMean(movieID); ok {
		return mean
	}
	return m.table.GlobalMean()
}

// TopN 对目录中用户未评分的每部电影预测评分，返回前 n 条推荐。
func (m *UserCF) TopN(userID int64, n int) []*core.Item {
	return rankUnrated(m.table, userID, n, func(movieID int64) float64 {
		return m.Predict(userID, movieID)
	})
}
