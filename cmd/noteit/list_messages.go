package main

import (
	"fmt"
	"strings"

	"github.com/amonks/noteit/note"
)

func noteEmptyListMessage(total int, filter note.ListFilter) string {
	if total == 0 {
		return "No notes found."
	}

	query := strings.TrimSpace(filter.Query)
	switch {
	case query != "" && filter.FavoritesOnly:
		return fmt.Sprintf("No favorite notes match %q.", query)
	case query != "":
		return fmt.Sprintf("No notes match %q.", query)
	case filter.FavoritesOnly:
		return "No favorite notes found. Use favorite <id> to star one."
	}

	return "No notes found."
}
