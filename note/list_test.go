package note

import (
	"testing"
	"time"
)

func TestListFilterMatches(t *testing.T) {
	n := Note{Title: "Groceries", Content: "Buy MILK", IsFavorite: false}

	cases := []struct {
		name   string
		filter ListFilter
		want   bool
	}{
		{name: "empty query", filter: ListFilter{}, want: true},
		{name: "blank query", filter: ListFilter{Query: "   "}, want: true},
		{name: "title match", filter: ListFilter{Query: "grocer"}, want: true},
		{name: "content match ignores case", filter: ListFilter{Query: "milk"}, want: true},
		{name: "surrounding space", filter: ListFilter{Query: "  milk "}, want: true},
		{name: "no match", filter: ListFilter{Query: "eggs"}, want: false},
		{name: "favorites only", filter: ListFilter{FavoritesOnly: true}, want: false},
		{name: "favorites only with query", filter: ListFilter{Query: "milk", FavoritesOnly: true}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(n); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestForDisplayOrdersFavoritesThenRecency(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	notes := []Note{
		{ID: 1, Title: "old", UpdatedAt: base},
		{ID: 2, Title: "fav old", IsFavorite: true, UpdatedAt: base.Add(time.Minute)},
		{ID: 3, Title: "new", UpdatedAt: base.Add(time.Hour)},
		{ID: 4, Title: "fav new", IsFavorite: true, UpdatedAt: base.Add(2 * time.Hour)},
	}

	got := ForDisplay(notes, ListFilter{})

	want := []int{4, 2, 3, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d notes, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("expected note %d at position %d, got %d", id, i, got[i].ID)
		}
	}
	if notes[0].ID != 1 {
		t.Fatalf("expected input order untouched, got first id %d", notes[0].ID)
	}
}

func TestForDisplayAppliesBothFilters(t *testing.T) {
	notes := []Note{
		{ID: 1, Title: "Work plan", IsFavorite: true},
		{ID: 2, Title: "Work log"},
		{ID: 3, Title: "Holiday", IsFavorite: true},
	}

	got := ForDisplay(notes, ListFilter{Query: "work", FavoritesOnly: true})

	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only note 1, got %+v", got)
	}
}
