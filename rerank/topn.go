// Package rerank 提供排序结果上的重排 Node：截断、多样性。
package rerank

import (
	"context"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/pipeline"
)

// TopNNode 是 Top-N 截断节点，在召回/过滤之后截取前 N 个候选。
// 候选在进入本节点前应已按“分数降序、同分 ID 升序”排好。
type TopNNode struct {
	// N 要保留的候选数量
	// 如果 N <= 0 或 N > len(items)，则返回所有候选（不截断）
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
