package model

import (
	"errors"
	"math"
	"testing"

	"github.com/rushteam/moviekit/core"
	"github.com/rushteam/moviekit/dataset"
)

func contentTestTable(t *testing.T) *dataset.Table {
	t.Helper()
	return newTestTable(t, []dataset.Interaction{
		{UserID: 1, MovieID: 10, Rating: 5},
		{UserID: 1, MovieID: 30, Rating: 4},
		{UserID: 2, MovieID: 20, Rating: 3},
	})
}

func TestContent_Similarity(t *testing.T) {
	c := BuildContent(contentTestTable(t))

	// Vectors are l2-normalized, so self-similarity is exactly 1.
	if got := c.Similarity(10, 10); math.Abs(got-1) > 1e-12 {
		t.Errorf("Similarity(10, 10) = %v, want 1", got)
	}

	// Animation|Comedy vs Comedy share one of two terms: strictly between 0 and 1.
	got := c.Similarity(10, 30)
	if got <= 0 || got >= 1 {
		t.Errorf("Similarity(10, 30) = %v, want in (0, 1)", got)
	}

	// Symmetric.
	if rev := c.Similarity(30, 10); rev != got {
		t.Errorf("Similarity(30, 10) = %v, want %v", rev, got)
	}

	// Disjoint genre sets are orthogonal.
	if got := c.Similarity(10, 40); got != 0 {
		t.Errorf("Similarity(10, 40) = %v, want 0", got)
	}

	// Unknown id contributes nothing.
	if got := c.Similarity(10, 999); got != 0 {
		t.Errorf("Similarity(10, 999) = %v, want 0", got)
	}
}

func TestContent_Score(t *testing.T) {
	c := BuildContent(contentTestTable(t))

	// User 1 rated movies 10 and 30; the content score of a candidate is the
	// mean similarity against those two.
	items, err := c.Score(1, []int64{20})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Score() returned %d items, want 1", len(items))
	}
	want := (c.Similarity(10, 20) + c.Similarity(30, 20)) / 2
	if math.Abs(items[0].Score-want) > 1e-12 {
		t.Errorf("Score() = %v, want %v", items[0].Score, want)
	}
	if items[0].Title != "Heat" {
		t.Errorf("Score() title = %q, want %q", items[0].Title, "Heat")
	}
}

func TestContent_NoProfile(t *testing.T) {
	c := BuildContent(contentTestTable(t))

	if _, err := c.Score(999, []int64{10}); !errors.Is(err, ErrNoProfile) {
		t.Errorf("Score() error = %v, want ErrNoProfile", err)
	}
	_, err := c.TopN(999, 10)
	if !errors.Is(err, ErrNoProfile) {
		t.Errorf("TopN() error = %v, want ErrNoProfile", err)
	}
	if !core.IsNoProfile(err) {
		t.Errorf("IsNoProfile(%v) = false", err)
	}
}

func TestContent_TopN(t *testing.T) {
	table := contentTestTable(t)
	c := BuildContent(table)

	items, err := c.TopN(1, 10)
	if err != nil {
		t.Fatalf("TopN() error = %v", err)
	}
	// User 1 rated 10 and 30; candidates are 20, 40, 50.
	if len(items) != 3 {
		t.Fatalf("TopN() returned %d items, want 3", len(items))
	}
	rated := table.UserRatings(1)
	for _, it := range items {
		if _, ok := rated[it.ID]; ok {
			t.Errorf("TopN() contains already rated movie %d", it.ID)
		}
	}
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		if prev.Score < cur.Score {
			t.Errorf("TopN() not sorted by score desc at %d", i)
		}
		if prev.Score == cur.Score && prev.ID > cur.ID {
			t.Errorf("TopN() ties not broken by ascending id at %d", i)
		}
	}
}
