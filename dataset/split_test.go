package dataset

import (
	"testing"

	"github.com/rushteam/moviekit/core"
)

func splitTestTable(t *testing.T, n int) *Table {
	t.Helper()
	interactions := make([]Interaction, 0, n)
	movies := make([]Movie, 0, n)
	for i := 0; i < n; i++ {
		id := int64(i + 1)
		interactions = append(interactions, Interaction{UserID: 1, MovieID: id, Rating: 3})
		movies = append(movies, Movie{ID: id})
	}
	table, err := New(interactions, movies)
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestSplit(t *testing.T) {
	table := splitTestTable(t, 10)

	train, test, err := Split(table, 0.2, 42)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(test) != 2 || len(train) != 8 {
		t.Fatalf("Split() sizes = %d/%d, want 8/2", len(train), len(test))
	}

	// Train and test must partition the original interactions.
	seen := make(map[int64]int)
	for _, in := range train {
		seen[in.MovieID]++
	}
	for _, in := range test {
		seen[in.MovieID]++
	}
	if len(seen) != 10 {
		t.Errorf("partition covers %d interactions, want 10", len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("interaction %d appears %d times", id, count)
		}
	}
}

func TestSplit_Deterministic(t *testing.T) {
	table := splitTestTable(t, 50)

	train1, test1, err := Split(table, 0.2, 42)
	if err != nil {
		t.Fatal(err)
	}
	train2, test2, err := Split(table, 0.2, 42)
	if err != nil {
		t.Fatal(err)
	}

	for i := range test1 {
		if test1[i] != test2[i] {
			t.Fatalf("test[%d] differs across runs with same seed", i)
		}
	}
	for i := range train1 {
		if train1[i] != train2[i] {
			t.Fatalf("train[%d] differs across runs with same seed", i)
		}
	}
}

func TestSplit_DoesNotMutateTable(t *testing.T) {
	table := splitTestTable(t, 10)
	before := make([]Interaction, len(table.Interactions()))
	copy(before, table.Interactions())

	if _, _, err := Split(table, 0.3, 7); err != nil {
		t.Fatal(err)
	}

	for i, in := range table.Interactions() {
		if in != before[i] {
			t.Fatalf("Split() mutated table interactions at %d", i)
		}
	}
}

func TestSplit_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		ratio float64
	}{
		{"ratio zero", 10, 0},
		{"ratio one", 10, 1},
		{"ratio negative", 10, -0.2},
		{"too few for test side", 2, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := splitTestTable(t, tt.n)
			_, _, err := Split(table, tt.ratio, 42)
			if err == nil || !core.IsInvalidInput(err) {
				t.Errorf("Split() error = %v, want invalid input", err)
			}
		})
	}
}
