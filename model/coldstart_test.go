package model

import (
	"testing"

	"github.com/rushteam/moviekit/dataset"
)

func coldStartTestTable(t *testing.T) *dataset.Table {
	t.Helper()
	return newTestTable(t, []dataset.Interaction{
		{UserID: 1, MovieID: 10, Rating: 5},
		{UserID: 2, MovieID: 10, Rating: 5},
		{UserID: 1, MovieID: 20, Rating: 3},
		{UserID: 2, MovieID: 20, Rating: 3},
		{UserID: 3, MovieID: 30, Rating: 4},
		{UserID: 3, MovieID: 40, Rating: 4},
	})
}

func TestColdStart_Rank(t *testing.T) {
	cs := &ColdStart{}
	items := cs.Rank(coldStartTestTable(t), 0)

	// Movie 50 has no ratings and must not appear.
	// Expected order: 10 (5.0), then the 4.0 tie broken by ascending id
	// (30 before 40), then 20 (3.0).
	wantIDs := []int64{10, 30, 40, 20}
	if len(items) != len(wantIDs) {
		t.Fatalf("Rank() returned %d items, want %d", len(items), len(wantIDs))
	}
	for i, want := range wantIDs {
		if items[i].ID != want {
			t.Errorf("Rank()[%d].ID = %d, want %d", i, items[i].ID, want)
		}
	}
	if items[0].Score != 5.0 || items[3].Score != 3.0 {
		t.Errorf("Rank() scores = %v / %v, want 5.0 / 3.0", items[0].Score, items[3].Score)
	}
	if items[0].Title != "Toy Story" {
		t.Errorf("Rank()[0].Title = %q, want %q", items[0].Title, "Toy Story")
	}
}

func TestColdStart_RankTruncates(t *testing.T) {
	cs := &ColdStart{}
	items := cs.Rank(coldStartTestTable(t), 2)
	if len(items) != 2 {
		t.Fatalf("Rank(2) returned %d items, want 2", len(items))
	}
	if items[0].ID != 10 || items[1].ID != 30 {
		t.Errorf("Rank(2) = [%d %d], want [10 30]", items[0].ID, items[1].ID)
	}
}

func TestColdStart_MinRatings(t *testing.T) {
	cs := &ColdStart{MinRatings: 2}
	items := cs.Rank(coldStartTestTable(t), 0)

	// Only movies 10 and 20 have two ratings.
	if len(items) != 2 {
		t.Fatalf("Rank() returned %d items, want 2", len(items))
	}
	if items[0].ID != 10 || items[1].ID != 20 {
		t.Errorf("Rank() = [%d %d], want [10 20]", items[0].ID, items[1].ID)
	}
}
