// Package model 实现四种互补的推荐策略：
//
//   - SVD: 带偏置的矩阵分解，SGD 训练（隐因子模型）
//   - UserCF: 基于用户的邻域协同过滤（余弦相似度）
//   - Content: 类型标签 TF-IDF + 电影两两余弦相似度（内容模型）
//   - ColdStart: 全目录平均分榜单（无用户参数）
//
// 所有模型只读同一份 dataset.Table，训练为批式单线程；
// 训练完成后模型不可变，可被多个请求并发只读。
package model

import "github.com/rushteam/moviekit/core"

// Predictor 是逐点评分预测模型的统一契约（SVD / UserCF 实现）。
// Predict 对任何合法 (user, movie) 对都返回有限值：
// 未见过的用户/物品回退到全局均值加可用偏置，从不报错。
type Predictor interface {
	Name() string
	Predict(userID, movieID int64) float64
	TopN(userID int64, n int) []*core.Item
}
