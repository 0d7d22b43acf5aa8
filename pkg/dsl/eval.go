// Package dsl 是候选规则 DSL，使用 CEL (Common Expression Language) 实现。
// 用于以配置表达式驱动过滤策略，而不必新写 Filter 代码。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/moviekit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Rule 是一条编译好的规则表达式，可被多次、并发地求值。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.score >= 3.5
//   - 标签：label.recall_source == "svd"
//   - 逻辑：label.recall_source != "hot" && item.score > 4.0
//   - 存在性：label.recall_source != null
//
// 示例：
//   - `item.score >= 3.5` → 只保留预测评分过阈值的候选
//   - `label.recall_source == "hot"` → 只保留冷启动榜单来源
type Rule struct {
	expr string
	prg  cel.Program
}

// New 编译一条规则表达式。表达式为空串时规则恒为 true。
func New(expr string) (*Rule, error) {
	r := &Rule{expr: expr}
	if expr == "" {
		return r, nil
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	r.prg = prg
	return r, nil
}

// Match 对一个候选求值，返回规则是否成立。
// 表达式结果必须是布尔值。
func (r *Rule) Match(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if r.prg == nil {
		return true, nil
	}

	out, _, err := r.prg.Eval(buildInput(item, rctx))
	if err != nil {
		// 访问不存在的 key 时 CEL 会报错；应使用 label.key != null 检查存在性
		return false, fmt.Errorf("eval error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据。
// label.xxx 直接取 Label.Value，便于书写；完整结构可从 item.labels 访问。
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := make(map[string]any)
	labelAccessor := make(map[string]any)
	if item != nil {
		for k, v := range item.Labels {
			labels[k] = map[string]any{"value": v.Value, "source": v.Source}
			labelAccessor[k] = v.Value
		}
	}

	itemInput := map[string]any{}
	if item != nil {
		itemInput = map[string]any{
			"id":     item.ID,
			"title":  item.Title,
			"score":  item.Score,
			"labels": labels,
		}
	}

	rctxInput := map[string]any{}
	if rctx != nil {
		rctxInput = map[string]any{
			"user_id": rctx.UserID,
			"scene":   rctx.Scene,
			"params":  rctx.Params,
		}
	}

	return map[string]any{
		"item":  itemInput,
		"label": labelAccessor,
		"rctx":  rctxInput,
	}
}
