// Package eval 实现评估指标与离线评估流程（RMSE / Precision@K / NDCG@K）。
package eval

import (
	"math"
	"sort"
)

// Prediction 是一条测试集预测记录。
type Prediction struct {
	UserID    int64
	MovieID   int64
	Actual    float64 // 真实评分
	Estimated float64 // 模型预测
}

// RMSE 计算均方根误差。空输入返回 0。
func RMSE(preds []Prediction) float64 {
	if len(preds) == 0 {
		return 0
	}
	var sum float64
	for _, p := range preds {
		d := p.Actual - p.Estimated
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(preds)))
}

// PrecisionAtK 计算 Precision@K（相关阈值 threshold）。
// 每个用户：其测试集条目按预测分降序排列，取前 K（不足 K 取全部），
// precision = 前 K 中真实评分 ≥ threshold 的条数 / K —— 分母固定为 K，
// 不是可用条目数。最终指标为至少有一条测试记录的用户的平均。
func PrecisionAtK(preds []Prediction, k int, threshold float64) float64 {
	byUser := groupByUser(preds)
	if len(byUser.users) == 0 {
		return 0
	}

	var total float64
	for _, userID := range byUser.users {
		topK := byUser.ranked[userID]
		if len(topK) > k {
			topK = topK[:k]
		}
		relevant := 0
		for _, p := range topK {
			if p.Actual >= threshold {
				relevant++
			}
		}
		total += float64(relevant) / float64(k)
	}
	return total / float64(len(byUser.users))
}

// NDCGAtK 计算 NDCG@K。
// 每个用户：DCG = 前 K 个按预测分排列的位置 p（0 起）中真实相关条目的
// Σ 1/log2(p+2)；IDCG 为理想排列（相关条目全部排前，截断到 K）下的同式；
// NDCG = DCG/IDCG（IDCG 为 0 记 0）。最终指标为用户平均。
func NDCGAtK(preds []Prediction, k int, threshold float64) float64 {
	byUser := groupByUser(preds)
	if len(byUser.users) == 0 {
		return 0
	}

	var total float64
	for _, userID := range byUser.users {
		ranked := byUser.ranked[userID]
		topK := ranked
		if len(topK) > k {
			topK = topK[:k]
		}

		var dcg float64
		for pos, p := range topK {
			if p.Actual >= threshold {
				dcg += 1 / math.Log2(float64(pos)+2)
			}
		}

		relevant := 0
		for _, p := range ranked {
			if p.Actual >= threshold {
				relevant++
			}
		}
		if relevant > k {
			relevant = k
		}
		var idcg float64
		for pos := 0; pos < relevant; pos++ {
			idcg += 1 / math.Log2(float64(pos)+2)
		}

		if idcg > 0 {
			total += dcg / idcg
		}
	}
	return total / float64(len(byUser.users))
}

type userGroups struct {
	users  []int64                // 升序，保证浮点累加顺序稳定
	ranked map[int64][]Prediction // 每用户按预测分降序、同分 movie_id 升序
}

func groupByUser(preds []Prediction) userGroups {
	ranked := make(map[int64][]Prediction)
	for _, p := range preds {
		ranked[p.UserID] = append(ranked[p.UserID], p)
	}

	users := make([]int64, 0, len(ranked))
	for userID, ps := range ranked {
		users = append(users, userID)
		sort.Slice(ps, func(i, j int) bool {
			if ps[i].Estimated != ps[j].Estimated {
				return ps[i].Estimated > ps[j].Estimated
			}
			return ps[i].MovieID < ps[j].MovieID
		})
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })

	return userGroups{users: users, ranked: ranked}
}
