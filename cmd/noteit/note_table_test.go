package main

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/amonks/noteit/note"
)

func TestFormatNoteTable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	notes := []note.Note{
		{ID: 3, Title: "Groceries", IsFavorite: true, UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: 12, Title: "Work", UpdatedAt: now.Add(-90 * time.Second)},
	}

	got := formatNoteTable(notes, strconv.Itoa, now)
	want := strings.Join([]string{
		"ID  FAV  AGE     TITLE",
		"3   *    2h ago  Groceries",
		"12  -    1m ago  Work",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("unexpected table:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatNoteTableTruncatesLongTitles(t *testing.T) {
	now := time.Now()
	title := strings.Repeat("x", 80)
	got := formatNoteTable([]note.Note{{ID: 1, Title: title, UpdatedAt: now}}, strconv.Itoa, now)
	if strings.Contains(got, title) {
		t.Fatalf("expected title to be truncated")
	}
	if !strings.Contains(got, "...") {
		t.Fatalf("expected ellipsis in %q", got)
	}
}

func TestNoteEmptyListMessage(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		filter note.ListFilter
		want   string
	}{
		{name: "empty", want: "No notes found."},
		{name: "query", total: 2, filter: note.ListFilter{Query: " milk "}, want: `No notes match "milk".`},
		{name: "favorites", total: 2, filter: note.ListFilter{FavoritesOnly: true}, want: "No favorite notes found. Use favorite <id> to star one."},
		{name: "both", total: 2, filter: note.ListFilter{Query: "x", FavoritesOnly: true}, want: `No favorite notes match "x".`},
		{name: "empty outright wins", filter: note.ListFilter{Query: "x"}, want: "No notes found."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := noteEmptyListMessage(tc.total, tc.filter); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatNoteDetail(t *testing.T) {
	n := note.NoteWithTodos{
		Note: note.Note{ID: 4, Title: "Trip", Content: "pack bags", IsFavorite: true},
		Todos: []note.Todo{
			{ID: 1, Title: "Passport", Completed: true},
			{ID: 2, Title: "Charger"},
		},
	}

	got := formatNoteDetail(n, strconv.Itoa)
	for _, want := range []string{
		"ID:       4\n",
		"Title:    Trip\n",
		"Favorite: yes\n",
		"Updated:  -\n",
		"Todos:    1/2 done\n",
		"pack bags",
		"  [x] 1 Passport\n",
		"  [ ] 2 Charger\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in detail:\n%s", want, got)
		}
	}
}

func TestFormatNoteDetailBlankContent(t *testing.T) {
	got := formatNoteDetail(note.NoteWithTodos{Note: note.Note{ID: 1, Title: "t"}}, strconv.Itoa)
	if !strings.Contains(got, "Content:\n-\n") {
		t.Fatalf("expected dash for blank content:\n%s", got)
	}
	if strings.Contains(got, "\nTodos:\n") {
		t.Fatalf("expected no todo section:\n%s", got)
	}
}
