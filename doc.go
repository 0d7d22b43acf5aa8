// Package moviekit 是一个电影推荐引擎（Movie Recommender Kit）。
//
// 设计要点：
// - Table-first: 所有模型只读同一份评分表（dataset.Table），批式训练/评估，无增量更新
// - Pipeline-first: 在线推荐逻辑通过 Node 串联（Recall → Filter → ReRank）
// - 可复现: 因子初始化、打乱顺序、训练/测试切分全部由显式 seed 驱动
package moviekit

import "github.com/rushteam/moviekit/pipeline"

// 轻量 facade：便于用户直接 import "moviekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)
