package note

import (
	"sort"
	"strings"

	internalstrings "github.com/amonks/noteit/internal/strings"
)

// ListFilter selects which notes a list view shows.
type ListFilter struct {
	// Query matches case-insensitively against title and content.
	// A blank query matches every note.
	Query string

	// FavoritesOnly hides notes that are not favorites.
	FavoritesOnly bool
}

// Active reports whether the filter hides anything.
func (f ListFilter) Active() bool {
	return f.FavoritesOnly || !internalstrings.IsBlank(f.Query)
}

// Matches reports whether n passes both the favorites and search filters.
func (f ListFilter) Matches(n Note) bool {
	if f.FavoritesOnly && !n.IsFavorite {
		return false
	}
	query := internalstrings.NormalizeLowerTrimSpace(f.Query)
	if query == "" {
		return true
	}
	return strings.Contains(internalstrings.NormalizeLower(n.Title), query) ||
		strings.Contains(internalstrings.NormalizeLower(n.Content), query)
}

// Filter returns the notes that match f, preserving order.
func Filter(notes []Note, f ListFilter) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if f.Matches(n) {
			out = append(out, n)
		}
	}
	return out
}

// SortForDisplay orders notes favorites first, then most recently updated.
// Ties keep their existing relative order.
func SortForDisplay(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].IsFavorite != notes[j].IsFavorite {
			return notes[i].IsFavorite
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}

// ForDisplay filters and sorts a copy of notes for presentation.
func ForDisplay(notes []Note, f ListFilter) []Note {
	out := Filter(notes, f)
	SortForDisplay(out)
	return out
}
