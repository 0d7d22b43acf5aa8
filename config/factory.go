package config

import (
	"fmt"
	"time"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
	"github.com/rushteam/moviekit/filter"
	"github.com/rushteam/moviekit/model"
	"github.com/rushteam/moviekit/pipeline"
	"github.com/rushteam/moviekit/pkg/conv"
	"github.com/rushteam/moviekit/recall"
	"github.com/rushteam/moviekit/rerank"
)

// Deps 是构建 Node 时需要的运行时依赖。
// 纯配置无法表达已训练的模型和数据表，由调用方（service.App）注入。
type Deps struct {
	Table  *dataset.Table
	Store  core.KeyValueStore
	Models map[string]recall.Ranker // 按模型名索引，如 "svd"、"user_based_cf"
}

// DefaultFactory 返回一个包含所有内置 Node 的默认工厂。
func DefaultFactory(deps Deps) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	// 注册 Recall Nodes
	factory.Register("recall.fanout", buildFanoutNode(deps))
	factory.Register("recall.hot", buildHotNode(deps))
	factory.Register("recall.model", buildModelNode(deps))

	// 注册 Filter Nodes
	factory.Register("filter", buildFilterNode(deps))

	// 注册 ReRank Nodes
	factory.Register("rerank.topn", buildTopNNode)
	factory.Register("rerank.diversity", buildDiversityNode(deps))

	return factory
}

func buildFanoutNode(deps Deps) func(map[string]any) (pipeline.Node, error) {
	return func(cfg map[string]any) (pipeline.Node, error) {
		sourcesConfig, ok := cfg["sources"].([]any)
		if !ok {
			return nil, fmt.Errorf("sources not found or invalid")
		}

		sources := make([]recall.Source, 0, len(sourcesConfig))
		for _, sc := range sourcesConfig {
			sourceMap, ok := sc.(map[string]any)
			if !ok {
				continue
			}
			sourceType := conv.ConfigGet[string](sourceMap, "type", "")
			switch sourceType {
			case "hot":
				sources = append(sources, &recall.Hot{
					Store:   deps.Store,
					Key:     conv.ConfigGet[string](sourceMap, "key", model.KeyColdStartTop),
					Catalog: deps.Table,
					TopN:    conv.ConfigGetInt(sourceMap, "top_n", 0),
				})
			case "model":
				name := conv.ConfigGet[string](sourceMap, "model", "")
				m, ok := deps.Models[name]
				if !ok {
					return nil, fmt.Errorf("unknown model: %s", name)
				}
				sources = append(sources, &recall.ModelSource{
					Model: m,
					TopN:  conv.ConfigGetInt(sourceMap, "top_n", 0),
				})
			default:
				return nil, fmt.Errorf("unknown source type: %s", sourceType)
			}
		}

		fanout := &recall.Fanout{
			Sources:       sources,
			Dedup:         conv.ConfigGet[bool](cfg, "dedup", true),
			MergeStrategy: conv.ConfigGet[string](cfg, "merge_strategy", ""),
		}
		if sec := conv.ConfigGetInt(cfg, "timeout", 0); sec > 0 {
			fanout.Timeout = time.Duration(sec) * time.Second
		}
		if n := conv.ConfigGetInt(cfg, "max_concurrent", 0); n > 0 {
			fanout.MaxConcurrent = n
		}
		return fanout, nil
	}
}

func buildHotNode(deps Deps) func(map[string]any) (pipeline.Node, error) {
	return func(cfg map[string]any) (pipeline.Node, error) {
		return &recall.Hot{
			Store:   deps.Store,
			Key:     conv.ConfigGet[string](cfg, "key", model.KeyColdStartTop),
			Catalog: deps.Table,
			TopN:    conv.ConfigGetInt(cfg, "top_n", 0),
		}, nil
	}
}

func buildModelNode(deps Deps) func(map[string]any) (pipeline.Node, error) {
	return func(cfg map[string]any) (pipeline.Node, error) {
		name := conv.ConfigGet[string](cfg, "model", "")
		m, ok := deps.Models[name]
		if !ok {
			return nil, fmt.Errorf("unknown model: %s", name)
		}
		return &recall.ModelSource{
			Model: m,
			TopN:  conv.ConfigGetInt(cfg, "top_n", 0),
		}, nil
	}
}

func buildFilterNode(deps Deps) func(map[string]any) (pipeline.Node, error) {
	return func(cfg map[string]any) (pipeline.Node, error) {
		node := &filter.FilterNode{}

		if conv.ConfigGet[bool](cfg, "rated", true) {
			node.Filters = append(node.Filters, &filter.RatedFilter{Table: deps.Table})
		}
		if expr := conv.ConfigGet[string](cfg, "rule", ""); expr != "" {
			rf, err := filter.NewRuleFilter(expr)
			if err != nil {
				return nil, fmt.Errorf("compile rule: %w", err)
			}
			node.Filters = append(node.Filters, rf)
		}
		return node, nil
	}
}

func buildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 10)}, nil
}

func buildDiversityNode(deps Deps) func(map[string]any) (pipeline.Node, error) {
	return func(_ map[string]any) (pipeline.Node, error) {
		return &rerank.Diversity{Catalog: deps.Table}, nil
	}
}
