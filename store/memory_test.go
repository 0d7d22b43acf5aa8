package store

import (
	"context"
	"testing"

	"github.com/rushteam/moviekit/core"
)

func TestMemoryStore_SetGet(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := m.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}

	_, err = m.Get(ctx, "missing")
	if !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing) error = %v, want not found", err)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	if err := m.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get(ctx, "k"); !core.IsStoreNotFound(err) {
		t.Errorf("Get() after Delete error = %v, want not found", err)
	}
}

func TestMemoryStore_Batch(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	kvs := map[string][]byte{"a": []byte("1"), "b": []byte("2")}
	if err := m.BatchSet(ctx, kvs); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}

	got, err := m.BatchGet(ctx, []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	if len(got) != 2 || string(got["a"]) != "1" || string(got["b"]) != "2" {
		t.Errorf("BatchGet() = %v", got)
	}
}

func TestMemoryStore_ZSet(t *testing.T) {
	m := NewMemoryStore()
	defer m.Close()
	ctx := context.Background()

	// Two members tie at 4.0; order must be score desc, member asc.
	adds := []struct {
		member string
		score  float64
	}{
		{"20", 3.0},
		{"10", 5.0},
		{"40", 4.0},
		{"30", 4.0},
	}
	for _, a := range adds {
		if err := m.ZAdd(ctx, "top", a.score, a.member); err != nil {
			t.Fatalf("ZAdd() error = %v", err)
		}
	}

	members, err := m.ZRangeWithScores(ctx, "top", 0, -1)
	if err != nil {
		t.Fatalf("ZRangeWithScores() error = %v", err)
	}
	want := []string{"10", "30", "40", "20"}
	if len(members) != len(want) {
		t.Fatalf("ZRangeWithScores() returned %d members, want %d", len(members), len(want))
	}
	for i, w := range want {
		if members[i].Member != w {
			t.Errorf("ZRangeWithScores()[%d] = %q, want %q", i, members[i].Member, w)
		}
	}

	// Range window.
	top2, err := m.ZRangeWithScores(ctx, "top", 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(top2) != 2 || top2[0].Member != "10" || top2[1].Member != "30" {
		t.Errorf("ZRangeWithScores(0, 1) = %v", top2)
	}

	score, err := m.ZScore(ctx, "top", "10")
	if err != nil || score != 5.0 {
		t.Errorf("ZScore() = %v, %v, want 5.0, nil", score, err)
	}
	if _, err := m.ZScore(ctx, "top", "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("ZScore(missing) error = %v, want not found", err)
	}
}
