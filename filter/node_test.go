package filter

import (
	"context"
	"testing"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
)

func filterTestTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.New(
		[]dataset.Interaction{
			{UserID: 1, MovieID: 10, Rating: 5},
			{UserID: 1, MovieID: 20, Rating: 3},
			{UserID: 2, MovieID: 30, Rating: 4},
		},
		[]dataset.Movie{
			{ID: 10, Title: "Toy Story"},
			{ID: 20, Title: "Heat"},
			{ID: 30, Title: "Clerks"},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func items(ids ...int64) []*core.Item {
	out := make([]*core.Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, core.NewItem(id))
	}
	return out
}

func TestRatedFilter(t *testing.T) {
	node := &FilterNode{Filters: []Filter{
		&RatedFilter{Table: filterTestTable(t)},
	}}
	rctx := &core.RecommendContext{UserID: 1}

	got, err := node.Process(context.Background(), rctx, items(10, 20, 30))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	// User 1 rated 10 and 20; only 30 survives.
	if len(got) != 1 || got[0].ID != 30 {
		t.Fatalf("Process() = %v, want only movie 30", got)
	}
}

func TestRatedFilter_UnknownUserKeepsAll(t *testing.T) {
	node := &FilterNode{Filters: []Filter{
		&RatedFilter{Table: filterTestTable(t)},
	}}
	rctx := &core.RecommendContext{UserID: 999}

	got, err := node.Process(context.Background(), rctx, items(10, 20, 30))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Process() kept %d items, want 3", len(got))
	}
}

func TestRuleFilter(t *testing.T) {
	rf, err := NewRuleFilter(`item.score >= 3.5`)
	if err != nil {
		t.Fatalf("NewRuleFilter() error = %v", err)
	}
	node := &FilterNode{Filters: []Filter{rf}}

	low := core.NewItem(10)
	low.Score = 2.0
	high := core.NewItem(20)
	high.Score = 4.2

	got, err := node.Process(context.Background(), &core.RecommendContext{UserID: 1}, []*core.Item{low, high})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 20 {
		t.Fatalf("Process() = %v, want only movie 20", got)
	}

	// The removed item carries the filter reason label.
	if label, ok := low.Labels["filtered"]; !ok || label.Value != "true" {
		t.Errorf("filtered item missing reason label: %v", low.Labels)
	}
}

func TestNewRuleFilter_CompileError(t *testing.T) {
	if _, err := NewRuleFilter(`item.score >=`); err == nil {
		t.Fatal("NewRuleFilter() error = nil, want compile error")
	}
}
