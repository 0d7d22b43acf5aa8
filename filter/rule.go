package filter

import (
	"context"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/pkg/dsl"
)

// RuleFilter 是规则过滤器：候选不满足 CEL 表达式时被过滤。
// 表达式编译一次，逐候选求值。
//
// 例如 `item.score >= 3.5` 只保留预测评分达到相关阈值的候选。
type RuleFilter struct {
	rule *dsl.Rule
}

// NewRuleFilter 编译规则表达式并创建过滤器。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	rule, err := dsl.New(expr)
	if err != nil {
		return nil, err
	}
	return &RuleFilter{rule: rule}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	keep, err := f.rule.Match(item, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
