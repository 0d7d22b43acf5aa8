package recall

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/pipeline"
)

// Fanout 是一个 Recall Node：并发执行多个召回源，并合并结果。
// 支持超时、限流、优先级合并。并发只发生在召回源之间，
// 每个召回源内部（模型 TopN / 榜单读取）仍是确定性的只读计算，
// 合并按 Sources 顺序决定优先级，因此结果与执行时序无关。
type Fanout struct {
	Sources       []Source
	Dedup         bool
	Timeout       time.Duration // 每个召回源的超时时间
	MaxConcurrent int           // 最大并发数（0 表示无限制）
	MergeStrategy string        // 合并策略：first / union / priority（优先级按 Sources 顺序）
}

func (n *Fanout) Name() string        { return "recall.fanout" }
func (n *Fanout) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Fanout) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	if len(n.Sources) == 0 {
		return nil, nil
	}

	// 每个召回源的结果按源索引存放，合并时顺序与 Sources 一致
	results := make([][]*core.Item, len(n.Sources))

	var mu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	if n.MaxConcurrent > 0 {
		eg.SetLimit(n.MaxConcurrent)
	}

	for i, src := range n.Sources {
		i, s := i, src
		eg.Go(func() error {
			recallCtx := egCtx
			if n.Timeout > 0 {
				var cancel context.CancelFunc
				recallCtx, cancel = context.WithTimeout(egCtx, n.Timeout)
				defer cancel()
			}

			items, err := s.Recall(recallCtx, rctx)
			if err != nil {
				// 单个召回源失败/超时不阻断整体
				return nil
			}

			mu.Lock()
			results[i] = items
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	switch n.MergeStrategy {
	case "union":
		return n.mergeUnion(results), nil
	case "priority", "first", "":
		fallthrough
	default:
		return n.mergeByPriority(results), nil
	}
}

// mergeUnion 按源顺序拼接所有结果，不去重。
func (n *Fanout) mergeUnion(results [][]*core.Item) []*core.Item {
	var all []*core.Item
	for _, items := range results {
		all = append(all, items...)
	}
	return all
}

// mergeByPriority 按源顺序合并：相同电影保留更高优先级源（索引更小）的条目，
// 低优先级的 Labels 合并进去以便追踪。Dedup 为 false 时退化为 union。
func (n *Fanout) mergeByPriority(results [][]*core.Item) []*core.Item {
	if !n.Dedup {
		return n.mergeUnion(results)
	}

	seen := make(map[int64]*core.Item)
	out := make([]*core.Item, 0)
	for _, items := range results {
		for _, it := range items {
			if it == nil {
				continue
			}
			if old, ok := seen[it.ID]; ok {
				for k, v := range it.Labels {
					old.PutLabel(k, v)
				}
				continue
			}
			seen[it.ID] = it
			out = append(out, it)
		}
	}

	// 合并后的整体排序仍遵循统一约定：分数降序，同分 ID 升序
	sort.Slice(out, func(i, j int) bool { return core.Less(out[i], out[j]) })
	return out
}
