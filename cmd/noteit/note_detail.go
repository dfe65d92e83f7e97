package main

import (
	"fmt"
	"strings"

	"github.com/amonks/noteit/internal/markdown"
	"github.com/amonks/noteit/internal/ui"
	"github.com/amonks/noteit/note"
)

const noteDetailLineWidth = 80

// printNoteDetail prints a note with its content and todo checklist.
func printNoteDetail(n note.NoteWithTodos, highlight func(int) string) {
	fmt.Print(formatNoteDetail(n, highlight))
}

func formatNoteDetail(n note.NoteWithTodos, highlight func(int) string) string {
	var b strings.Builder
	favorite := "no"
	if n.IsFavorite {
		favorite = "yes"
	}
	fmt.Fprintf(&b, "ID:       %s\n", highlight(n.ID))
	fmt.Fprintf(&b, "Title:    %s\n", n.Title)
	fmt.Fprintf(&b, "Favorite: %s\n", favorite)
	fmt.Fprintf(&b, "Updated:  %s\n", ui.FormatTimestamp(n.UpdatedAt))
	fmt.Fprintf(&b, "Todos:    %d/%d done\n", note.CompletedCount(n.Todos), len(n.Todos))

	fmt.Fprintf(&b, "\nContent:\n%s\n", renderMarkdownOrDash(n.Content, noteDetailLineWidth))

	if len(n.Todos) > 0 {
		b.WriteString("\nTodos:\n")
		for _, todo := range n.Todos {
			fmt.Fprintf(&b, "  %s %s %s\n", ui.Checkbox(todo.Completed), highlight(todo.ID), todo.Title)
		}
	}
	return b.String()
}

func renderMarkdownOrDash(value string, width int) string {
	if width < 1 {
		width = 1
	}
	formatted := string(markdown.SafeRender(width, 2, []byte(value)))
	if strings.TrimSpace(formatted) == "" {
		return "-"
	}
	return formatted
}
