package notetui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	internalstrings "github.com/amonks/noteit/internal/strings"
	"github.com/amonks/noteit/internal/ui"
	"github.com/amonks/noteit/note"
)

type noteItem struct {
	note note.Note
	now  time.Time
}

func (item noteItem) FilterValue() string {
	return item.note.Title
}

type noteItemDelegate struct {
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
}

func newNoteItemDelegate() noteItemDelegate {
	return noteItemDelegate{
		normalStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")),
	}
}

func (d noteItemDelegate) Height() int                             { return 1 }
func (d noteItemDelegate) Spacing() int                            { return 0 }
func (d noteItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d noteItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(noteItem)
	if !ok {
		return
	}

	line := formatNoteItem(item, m.Width())
	style := d.normalStyle
	if index == m.Index() {
		style = d.selectedStyle
	}
	fmt.Fprint(w, style.Render(line))
}

func formatNoteItem(item noteItem, width int) string {
	marker := " "
	if item.note.IsFavorite {
		marker = "*"
	}
	title := internalstrings.FirstLine(item.note.Title)
	if title == "" {
		title = "(untitled)"
	}
	age := ui.FormatTimeAgo(item.note.UpdatedAt, item.now)
	line := fmt.Sprintf("%s %s  %s", marker, title, age)
	return truncateText(line, width)
}

func buildNoteItems(notes []note.Note, filter note.ListFilter, now time.Time) []list.Item {
	visible := note.ForDisplay(notes, filter)
	items := make([]list.Item, 0, len(visible))
	for _, n := range visible {
		items = append(items, noteItem{note: n, now: now})
	}
	return items
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}
