package dsl

import (
	"testing"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/pkg/utils"
)

func TestRule_Match(t *testing.T) {
	item := core.NewItem(10)
	item.Title = "Toy Story"
	item.Score = 4.2
	item.PutLabel("recall_source", utils.Label{Value: "svd", Source: "recall"})

	rctx := &core.RecommendContext{UserID: 7, Scene: "default"}

	tests := []struct {
		name string
		expr string
		want bool
	}{
		{"empty expression is always true", "", true},
		{"score comparison true", `item.score >= 3.5`, true},
		{"score comparison false", `item.score > 5.0`, false},
		{"label value access", `label.recall_source == "svd"`, true},
		{"label mismatch", `label.recall_source == "hot"`, false},
		{"item id", `item.id == 10`, true},
		{"context user id", `rctx.user_id == 7`, true},
		{"combined", `item.score > 4.0 && label.recall_source != "hot"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := New(tt.expr)
			if err != nil {
				t.Fatalf("New(%q) error = %v", tt.expr, err)
			}
			got, err := rule.Match(item, rctx)
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestNew_CompileError(t *testing.T) {
	if _, err := New(`item.score >`); err == nil {
		t.Fatal("New() error = nil, want compile error")
	}
}

func TestRule_Match_NonBooleanResult(t *testing.T) {
	rule, err := New(`item.score + 1.0`)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := rule.Match(core.NewItem(1), nil); err == nil {
		t.Fatal("Match() error = nil, want non-boolean error")
	}
}
