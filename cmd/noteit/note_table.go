package main

import (
	"strconv"
	"time"

	"github.com/amonks/noteit/internal/ui"
	"github.com/amonks/noteit/note"
)

func formatNoteTable(notes []note.Note, highlight func(int) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "FAV", "AGE", "TITLE"}, len(notes))

	for _, n := range notes {
		id := strconv.Itoa(n.ID)
		if highlight != nil {
			id = highlight(n.ID)
		}
		favorite := ui.FavoriteMarker(n.IsFavorite)
		if favorite == "" {
			favorite = "-"
		}
		builder.AddRow(
			id,
			favorite,
			ui.FormatTimeAgo(n.UpdatedAt, now),
			ui.TruncateTableCell(n.Title),
		)
	}

	return builder.String()
}
