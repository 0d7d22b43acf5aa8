package model

import (
	"math"
	"testing"

	"github.com/rushteam/moviekit/dataset"
)

func userCFTestTable(t *testing.T) *dataset.Table {
	t.Helper()
	return newTestTable(t, []dataset.Interaction{
		{UserID: 1, MovieID: 10, Rating: 5},
		{UserID: 1, MovieID: 20, Rating: 3},
		{UserID: 2, MovieID: 10, Rating: 4},
		{UserID: 2, MovieID: 20, Rating: 2},
		{UserID: 2, MovieID: 30, Rating: 5},
		{UserID: 3, MovieID: 40, Rating: 4},
	})
}

func TestUserCF_Similarity(t *testing.T) {
	m := TrainUserCF(userCFTestTable(t))

	// Users 1 and 2 co-rated movies 10 and 20:
	// cos = (5*4 + 3*2) / (sqrt(25+9) * sqrt(16+4))
	want := 26.0 / (math.Sqrt(34) * math.Sqrt(20))
	got, ok := m.Similarity(1, 2)
	if !ok {
		t.Fatal("Similarity(1, 2) missing")
	}
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Similarity(1, 2) = %v, want %v", got, want)
	}

	// Symmetric.
	if rev, ok := m.Similarity(2, 1); !ok || rev != got {
		t.Errorf("Similarity(2, 1) = %v, %v, want %v, true", rev, ok, got)
	}

	// Users 1 and 3 have no movie in common: similarity does not exist.
	if _, ok := m.Similarity(1, 3); ok {
		t.Error("Similarity(1, 3) = ok, want missing")
	}
}

func TestUserCF_Predict(t *testing.T) {
	table := userCFTestTable(t)
	m := TrainUserCF(table)

	// Movie 30 is rated only by user 2; for user 1 the single weighted
	// neighbour contribution is exactly user 2's rating.
	if got := m.Predict(1, 30); got != 5 {
		t.Errorf("Predict(1, 30) = %v, want 5", got)
	}

	// User 3 shares nothing with the raters of movie 10:
	// falls back to the movie's mean rating (5+4)/2.
	if got := m.Predict(3, 10); got != 4.5 {
		t.Errorf("Predict(3, 10) = %v, want 4.5", got)
	}

	// Movie 50 has no ratings at all: falls back to the global mean.
	if got := m.Predict(1, 50); got != table.GlobalMean() {
		t.Errorf("Predict(1, 50) = %v, want global mean %v", got, table.GlobalMean())
	}
}

func TestUserCF_TopN(t *testing.T) {
	table := userCFTestTable(t)
	m := TrainUserCF(table)

	items := m.TopN(1, 10)
	// User 1 rated 10 and 20; candidates are 30, 40, 50.
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
		if items[i-1].Score < items[i].Score {
			t.Errorf("TopN() not sorted by score desc at %d", i)
		}
	}
}
