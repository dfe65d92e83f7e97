package notetui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	internalstrings "github.com/amonks/noteit/internal/strings"
	"github.com/amonks/noteit/internal/ui"
	"github.com/amonks/noteit/note"
)

type formField int

const (
	fieldTitle formField = iota
	fieldContent
	fieldTodos
	fieldCount
)

type formAction int

const (
	formNone formAction = iota
	formSave
	formCancel
)

// noteFormModel edits a draft of a note. Todo changes stay local to the
// draft until it is saved.
type noteFormModel struct {
	original   note.NoteWithTodos
	isNew      bool
	title      textinput.Model
	content    textarea.Model
	newTodo    textinput.Model
	todos      []note.Todo
	field      formField
	todoCursor int
	err        string
	saving     bool
	width      int
}

func newNoteFormModel(original note.NoteWithTodos, isNew bool) noteFormModel {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Title"
	title.SetValue(original.Title)

	content := textarea.New()
	content.ShowLineNumbers = false
	content.Prompt = ""
	content.Placeholder = "Content"
	content.SetValue(original.Content)

	newTodo := textinput.New()
	newTodo.Prompt = "+ "
	newTodo.Placeholder = "New todo"

	form := noteFormModel{
		original: original.Clone(),
		isNew:    isNew,
		title:    title,
		content:  content,
		newTodo:  newTodo,
		todos:    note.CloneTodos(original.Todos),
		field:    fieldTitle,
	}
	form.title.Focus()
	return form
}

func (form *noteFormModel) SetSize(width, height int) {
	inputWidth := width - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	contentHeight := height - 8 - len(form.todos)
	if contentHeight < 3 {
		contentHeight = 3
	}
	if contentHeight > 12 {
		contentHeight = 12
	}
	form.width = width
	form.title.Width = inputWidth
	form.newTodo.Width = inputWidth - 2
	form.content.SetWidth(inputWidth)
	form.content.SetHeight(contentHeight)
}

// Input returns the draft as a full update payload.
func (form noteFormModel) Input() note.Input {
	return note.Input{
		Title:      form.title.Value(),
		Content:    form.content.Value(),
		IsFavorite: form.original.IsFavorite,
		Todos:      note.CloneTodos(form.todos),
	}
}

// Validate reports the first problem that would stop the draft from saving.
func (form noteFormModel) Validate() error {
	in := form.Input()
	return in.Validate()
}

func (form noteFormModel) IsDirty() bool {
	if form.title.Value() != form.original.Title || form.content.Value() != form.original.Content {
		return true
	}
	if len(form.todos) != len(form.original.Todos) {
		return true
	}
	for i, todo := range form.todos {
		if todo != form.original.Todos[i] {
			return true
		}
	}
	return !internalstrings.IsBlank(form.newTodo.Value())
}

func (form noteFormModel) Update(msg tea.Msg) (noteFormModel, tea.Cmd, formAction) {
	if form.saving {
		return form, nil, formNone
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return form.updateField(msg)
	}

	switch key.String() {
	case "ctrl+s":
		return form, nil, formSave
	case "esc":
		return form, nil, formCancel
	case "tab":
		return form.advanceField(1), nil, formNone
	case "shift+tab", "backtab":
		return form.advanceField(-1), nil, formNone
	}

	if form.field == fieldTodos {
		if updated, handled := form.handleTodoKey(key); handled {
			return updated, nil, formNone
		}
	}
	return form.updateField(msg)
}

func (form noteFormModel) updateField(msg tea.Msg) (noteFormModel, tea.Cmd, formAction) {
	var cmd tea.Cmd
	switch form.field {
	case fieldTitle:
		form.title, cmd = form.title.Update(msg)
	case fieldContent:
		form.content, cmd = form.content.Update(msg)
	case fieldTodos:
		if form.onNewTodoRow() {
			form.newTodo, cmd = form.newTodo.Update(msg)
		}
	}
	return form, cmd, formNone
}

func (form noteFormModel) handleTodoKey(key tea.KeyMsg) (noteFormModel, bool) {
	switch key.String() {
	case "up":
		if form.todoCursor > 0 {
			form.todoCursor--
		}
		form.syncTodoFocus()
		return form, true
	case "down":
		if form.todoCursor < len(form.todos) {
			form.todoCursor++
		}
		form.syncTodoFocus()
		return form, true
	}

	if form.onNewTodoRow() {
		if key.String() != "enter" {
			return form, false
		}
		title := strings.TrimSpace(form.newTodo.Value())
		if title == "" {
			return form, true
		}
		form.todos = note.AddTodo(form.todos, title)
		form.newTodo.SetValue("")
		form.todoCursor = len(form.todos)
		return form, true
	}

	id := form.todos[form.todoCursor].ID
	switch key.String() {
	case " ", "space", "enter", "x":
		if todos, err := note.ToggleTodo(form.todos, id); err == nil {
			form.todos = todos
		}
		return form, true
	case "backspace", "delete":
		if todos, err := note.RemoveTodo(form.todos, id); err == nil {
			form.todos = todos
		}
		if form.todoCursor > len(form.todos) {
			form.todoCursor = len(form.todos)
		}
		form.syncTodoFocus()
		return form, true
	}
	return form, true
}

func (form noteFormModel) onNewTodoRow() bool {
	return form.todoCursor >= len(form.todos)
}

func (form *noteFormModel) syncTodoFocus() {
	if form.field == fieldTodos && form.onNewTodoRow() {
		form.newTodo.Focus()
		return
	}
	form.newTodo.Blur()
}

func (form noteFormModel) advanceField(delta int) noteFormModel {
	form.title.Blur()
	form.content.Blur()
	form.newTodo.Blur()
	form.field = (form.field + formField(delta) + fieldCount) % fieldCount
	switch form.field {
	case fieldTitle:
		form.title.Focus()
	case fieldContent:
		form.content.Focus()
	case fieldTodos:
		form.todoCursor = len(form.todos)
		form.syncTodoFocus()
	}
	return form
}

func (form noteFormModel) View() string {
	heading := "Edit note"
	if form.isNew {
		heading = "New note"
	}
	lines := []string{labelStyle.Render(heading), ""}

	lines = append(lines, form.label("Title", fieldTitle))
	lines = append(lines, form.title.View())
	lines = append(lines, form.label("Content", fieldContent))
	lines = append(lines, form.content.View())
	lines = append(lines, form.label("Todos", fieldTodos))
	for i, todo := range form.todos {
		line := fmt.Sprintf("%s %s", ui.Checkbox(todo.Completed), todo.Title)
		if form.field == fieldTodos && i == form.todoCursor {
			line = selectedBorder.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	lines = append(lines, form.newTodo.View())

	if form.err != "" {
		lines = append(lines, "", statusErrorStyle.Render(form.err))
	} else if form.saving {
		lines = append(lines, "", valueMuted.Render("Saving..."))
	}

	content := strings.Join(lines, "\n")
	if form.width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Width(form.width).Render(content)
}

func (form noteFormModel) label(text string, field formField) string {
	if form.field == field {
		return selectedBorder.Render(labelStyle.Render(text))
	}
	return labelStyle.Render(text)
}
