package rerank

import (
	"context"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
	"github.com/rushteam/moviekit/pipeline"
)

// Diversity 是一个简单的多样性 ReRank：按电影主类型去重（保留首个出现的类型）。
// 主类型取目录中该电影的第一个类型标签；无类型电影不参与去重，直接保留。
// 避免榜单被单一类型（例如全是 Drama）占满。
type Diversity struct {
	Catalog *dataset.Table
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 || n.Catalog == nil {
		return items, nil
	}

	seen := make(map[string]bool, 32)
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}

		genre := ""
		if m, ok := n.Catalog.Movie(it.ID); ok && len(m.Genres) > 0 {
			genre = m.Genres[0]
		}

		if genre == "" {
			out = append(out, it)
			continue
		}
		if seen[genre] {
			continue
		}
		seen[genre] = true
		out = append(out, it)
	}

	return out, nil
}
