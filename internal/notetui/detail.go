package notetui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/noteit/internal/markdown"
	"github.com/amonks/noteit/internal/ui"
	"github.com/amonks/noteit/note"
)

type noteDetailModel struct {
	note     *note.NoteWithTodos
	viewport viewport.Model
}

func newNoteDetailModel() noteDetailModel {
	return noteDetailModel{viewport: viewport.New(0, 0)}
}

// SetNote replaces the shown note. The scroll position is kept while the
// same note stays focused.
func (model *noteDetailModel) SetNote(current *note.NoteWithTodos) {
	reset := current == nil || model.note == nil || model.note.ID != current.ID
	model.note = current
	model.refreshViewport(reset)
}

func (model *noteDetailModel) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	model.viewport.Width = width
	model.viewport.Height = height
	model.refreshViewport(false)
}

func (model noteDetailModel) Update(msg tea.Msg) (noteDetailModel, tea.Cmd) {
	var cmd tea.Cmd
	model.viewport, cmd = model.viewport.Update(msg)
	return model, cmd
}

func (model noteDetailModel) View() string {
	return model.viewport.View()
}

func (model *noteDetailModel) refreshViewport(reset bool) {
	model.viewport.SetContent(model.renderContent())
	if reset {
		model.viewport.GotoTop()
	}
}

func (model noteDetailModel) renderContent() string {
	if model.note == nil {
		return valueMuted.Render("No note selected")
	}
	current := model.note

	title := labelStyle.Render(current.Title)
	if current.IsFavorite {
		title = favoriteStyle.Render("*") + " " + title
	}

	lines := []string{
		title,
		valueMuted.Render(fmt.Sprintf("#%d  updated %s", current.ID, ui.FormatTimestamp(current.UpdatedAt))),
		"",
	}

	width := model.viewport.Width
	if width <= 0 {
		width = 80
	}
	rendered := markdown.SafeRender(width, 0, []byte(current.Content))
	if len(rendered) == 0 {
		lines = append(lines, valueMuted.Render("-"))
	} else {
		lines = append(lines, string(rendered))
	}

	lines = append(lines, "")
	if len(current.Todos) == 0 {
		lines = append(lines, labelStyle.Render("Todos")+" "+valueMuted.Render("none"))
	} else {
		done := note.CompletedCount(current.Todos)
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render("Todos"), valueMuted.Render(fmt.Sprintf("%d/%d", done, len(current.Todos)))))
		for _, todo := range current.Todos {
			line := fmt.Sprintf("%s %s", ui.Checkbox(todo.Completed), todo.Title)
			if todo.Completed {
				line = valueMuted.Render(line)
			}
			lines = append(lines, line)
		}
	}

	content := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(width).Render(content)
}
