package model

import (
	"testing"

	"github.com/rushteam/moviekit/dataset"
)

// newTestTable builds a small rating table shared by the model tests:
//
//	movie 10 "Toy Story" Animation|Comedy
//	movie 20 "Heat"      Action|Crime
//	movie 30 "Clerks"    Comedy
//	movie 40 "Alien"     Horror|Sci-Fi
//	movie 50 "Persona"   Drama (no ratings, catalog only)
func newTestTable(t *testing.T, interactions []dataset.Interaction) *dataset.Table {
	t.Helper()
	table, err := dataset.New(interactions, []dataset.Movie{
		{ID: 10, Title: "Toy Story", Genres: []string{"Animation", "Comedy"}},
		{ID: 20, Title: "Heat", Genres: []string{"Action", "Crime"}},
		{ID: 30, Title: "Clerks", Genres: []string{"Comedy"}},
		{ID: 40, Title: "Alien", Genres: []string{"Horror", "Sci-Fi"}},
		{ID: 50, Title: "Persona", Genres: []string{"Drama"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	return table
}
