// Package notetui is the interactive terminal view over a notes store.
package notetui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amonks/noteit/api"
	internalstrings "github.com/amonks/noteit/internal/strings"
	"github.com/amonks/noteit/note"
	"github.com/amonks/noteit/store"
)

type focusPane int

const (
	focusList focusPane = iota
	focusDetail
	focusForm
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalDelete
	modalDiscardEdits
)

type model struct {
	ctx         context.Context
	store       *store.Store
	changes     <-chan struct{}
	now         func() time.Time
	width       int
	height      int
	focus       focusPane
	list        list.Model
	detail      noteDetailModel
	form        noteFormModel
	formOpen    bool
	search      textinput.Model
	searching   bool
	filter      note.ListFilter
	snapshot    store.Snapshot
	modal       confirmModal
	status      string
	statusLevel statusLevel
	selectedID  int
	deleteID    int
}

type confirmModal struct {
	kind        modalKind
	message     string
	confirmText string
	cancelText  string
	selected    int
}

// Run shows the notes UI until the user quits or ctx is cancelled.
func Run(ctx context.Context, st *store.Store) error {
	if st == nil {
		return fmt.Errorf("notes store is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	changes, unsubscribe := st.Subscribe()
	defer unsubscribe()

	program := tea.NewProgram(newModel(ctx, st, changes), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, st *store.Store, changes <-chan struct{}) model {
	noteList := list.New(nil, newNoteItemDelegate(), 0, 0)
	noteList.Title = "Notes"
	noteList.SetShowStatusBar(false)
	noteList.SetFilteringEnabled(false)
	noteList.SetShowHelp(false)
	noteList.SetShowPagination(false)

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search"

	m := model{
		ctx:     ctx,
		store:   st,
		changes: changes,
		now:     time.Now,
		focus:   focusList,
		list:    noteList,
		detail:  newNoteDetailModel(),
		search:  search,
		modal:   confirmModal{kind: modalNone},
	}
	if st != nil {
		m.syncFromStore()
	}
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.waitForChangeCmd(), m.refreshCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.modal.kind != modalNone {
		return m.updateModal(key)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		updated, cmd, handled := m.handleKey(msg)
		if handled {
			return updated, cmd
		}
		m = updated
	case storeChangedMsg:
		m.syncFromStore()
		return m, m.waitForChangeCmd()
	case refreshedMsg:
		m.syncFromStore()
		if msg.err == nil {
			m.setStatus(fmt.Sprintf("Loaded %d notes", len(m.snapshot.Notes)), statusInfo)
		} else {
			m.setStatus("", statusNone)
		}
		return m, nil
	case focusedMsg:
		return m.handleFocused(msg)
	case savedMsg:
		return m.handleSaved(msg)
	case deletedMsg:
		return m.handleDeleted(msg)
	case favoritedMsg:
		return m.handleFavorited(msg)
	}

	return m.updatePanes(msg)
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading notes..."
	}
	contentHeight := m.contentHeight()
	leftWidth, rightWidth := splitWidths(m.width)

	rightContent := m.detail.View()
	if m.formOpen {
		rightContent = m.form.View()
	}

	listPane := m.renderPane(m.list.View(), leftWidth, contentHeight, m.focus == focusList)
	detailPane := m.renderPane(rightContent, rightWidth, contentHeight, m.focus != focusList)
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	view := strings.Join([]string{m.renderHeader(), m.renderHelpLine(), content, m.renderStatusLine()}, "\n")
	if m.modal.kind != modalNone {
		view = m.renderModalOverlay(view)
	}
	return view
}

func (m model) updatePanes(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.formOpen && m.focus == focusForm:
		m.form, cmd, _ = m.form.Update(msg)
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	case m.focus == focusDetail:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit, true
	}
	if m.focus == focusForm {
		return m.updateForm(msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}

	switch key {
	case "q":
		return m, tea.Quit, true
	case "?":
		return m.openHelp(), nil, true
	case "/":
		m.searching = true
		m.search.SetValue(m.filter.Query)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd, true
	case "f":
		m.filter.FavoritesOnly = !m.filter.FavoritesOnly
		m.rebuildList()
		if m.filter.FavoritesOnly {
			m.setStatus("Showing favorites", statusInfo)
		} else {
			m.setStatus("Showing all notes", statusInfo)
		}
		return m, nil, true
	case "r":
		return m, m.refreshCmd(), true
	case "n":
		return m.openForm(note.NoteWithTodos{}, true), nil, true
	case "e":
		target, ok := m.targetNote()
		if !ok {
			return m, nil, true
		}
		return m, m.focusCmd(target.ID, true), true
	case "s":
		target, ok := m.targetNote()
		if !ok {
			return m, nil, true
		}
		return m, m.favoriteCmd(target.ID, !target.IsFavorite), true
	case "d":
		target, ok := m.targetNote()
		if !ok {
			return m, nil, true
		}
		m.deleteID = target.ID
		m.modal = confirmModal{
			kind:        modalDelete,
			message:     fmt.Sprintf("Delete %q?", target.Title),
			confirmText: "Delete",
			cancelText:  "Cancel",
		}
		return m, nil, true
	case "enter":
		if m.focus != focusList {
			return m, nil, true
		}
		target, ok := m.targetNote()
		if !ok {
			return m, nil, true
		}
		m.focus = focusDetail
		return m, m.focusCmd(target.ID, false), true
	case "esc":
		return m.back(), nil, true
	}

	if m.focus == focusList {
		return m.handleListNavigation(key)
	}
	return m, nil, false
}

// back steps out of the detail pane, then dismisses the error, then clears
// the filter.
func (m model) back() model {
	switch {
	case m.focus == focusDetail:
		m.focus = focusList
		m.store.ClearFocus()
	case m.snapshot.Error != "":
		m.store.ClearError()
	case m.filter.Active():
		m.filter = note.ListFilter{}
		m.search.SetValue("")
		m.setStatus("Filter cleared", statusInfo)
	}
	m.syncFromStore()
	return m
}

func (m model) updateSearch(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil, true
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.filter.Query = ""
		m.rebuildList()
		return m, nil, true
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter.Query = m.search.Value()
	m.rebuildList()
	return m, cmd, true
}

func (m model) updateForm(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	form, cmd, action := m.form.Update(msg)
	m.form = form
	switch action {
	case formSave:
		if err := m.form.Validate(); err != nil {
			m.form.err = err.Error()
			return m, nil, true
		}
		m.form.err = ""
		m.form.saving = true
		return m, m.saveCmd(m.form), true
	case formCancel:
		if m.form.IsDirty() {
			m.modal = confirmModal{
				kind:        modalDiscardEdits,
				message:     "Discard unsaved changes?",
				confirmText: "Discard",
				cancelText:  "Keep editing",
			}
			return m, nil, true
		}
		return m.closeForm(), nil, true
	}
	return m, cmd, true
}

func (m model) openForm(n note.NoteWithTodos, isNew bool) model {
	m.form = newNoteFormModel(n, isNew)
	m.formOpen = true
	m.focus = focusForm
	m.resize()
	return m
}

func (m model) closeForm() model {
	m.formOpen = false
	m.form = noteFormModel{}
	if m.snapshot.CurrentNote != nil {
		m.focus = focusDetail
	} else {
		m.focus = focusList
	}
	return m
}

func (m model) handleFocused(msg focusedMsg) (tea.Model, tea.Cmd) {
	m.syncFromStore()
	if msg.err != nil {
		m.setStatus("", statusNone)
		if m.snapshot.CurrentNote == nil && m.focus == focusDetail {
			m.focus = focusList
		}
		return m, nil
	}
	if msg.edit && !m.formOpen {
		if current := m.snapshot.CurrentNote; current != nil && current.ID == msg.id {
			return m.openForm(*current, false), nil
		}
	}
	return m, nil
}

func (m model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.syncFromStore()
	if !m.formOpen {
		return m, nil
	}
	if msg.err != nil {
		m.form.saving = false
		m.form.err = api.Message(msg.err, "Failed to save note")
		return m, nil
	}

	m.selectedID = msg.note.ID
	m.rebuildList()
	m = m.closeForm()
	if msg.isNew {
		m.setStatus("Note created", statusInfo)
		m.focus = focusDetail
		return m, m.focusCmd(msg.note.ID, false)
	}
	m.setStatus("Note saved", statusInfo)
	return m, nil
}

func (m model) handleDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	m.syncFromStore()
	if msg.err != nil {
		m.setStatus("", statusNone)
		return m, nil
	}
	if m.focus == focusDetail && m.snapshot.CurrentNote == nil {
		m.focus = focusList
	}
	m.setStatus("Note deleted", statusInfo)
	return m, nil
}

func (m model) handleFavorited(msg favoritedMsg) (tea.Model, tea.Cmd) {
	m.syncFromStore()
	if msg.err != nil {
		m.setStatus("", statusNone)
		return m, nil
	}
	if msg.note.IsFavorite {
		m.setStatus("Added to favorites", statusInfo)
	} else {
		m.setStatus("Removed from favorites", statusInfo)
	}
	return m, nil
}

func (m model) updateModal(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal.kind == modalHelp {
		switch key.String() {
		case "?", "esc":
			m.modal = confirmModal{kind: modalNone}
			return m, nil
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		return m, nil
	}
	selection := m.modal.selected
	switch key.String() {
	case "left", "right", "tab", "shift+tab", "backtab":
		if selection == 0 {
			selection = 1
		} else {
			selection = 0
		}
		m.modal.selected = selection
		return m, nil
	case "enter":
		confirm := selection == 0
		return m.resolveModal(confirm)
	case "esc":
		return m.resolveModal(false)
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	kind := m.modal.kind
	m.modal = confirmModal{kind: modalNone}
	if !confirm {
		return m, nil
	}
	switch kind {
	case modalDelete:
		return m, m.deleteCmd(m.deleteID)
	case modalDiscardEdits:
		m = m.closeForm()
		m.setStatus("Edits discarded", statusInfo)
		return m, nil
	default:
		return m, nil
	}
}

// targetNote is the note an action applies to: the focused note in the
// detail pane, otherwise the list selection.
func (m model) targetNote() (note.Note, bool) {
	if m.focus == focusDetail && m.snapshot.CurrentNote != nil {
		return m.snapshot.CurrentNote.Note, true
	}
	item := m.list.SelectedItem()
	if item == nil {
		return note.Note{}, false
	}
	current, ok := item.(noteItem)
	if !ok {
		return note.Note{}, false
	}
	return current.note, true
}

func (m *model) syncFromStore() {
	m.snapshot = m.store.Snapshot()
	m.detail.SetNote(m.snapshot.CurrentNote)
	m.rebuildList()
}

func (m *model) rebuildList() {
	items := buildNoteItems(m.snapshot.Notes, m.filter, m.now())
	m.list.SetItems(items)
	if len(items) == 0 {
		m.selectedID = 0
		return
	}
	for i, item := range items {
		if item.(noteItem).note.ID == m.selectedID {
			m.list.Select(i)
			return
		}
	}
	index := m.list.Index()
	if index < 0 {
		index = 0
	}
	if index >= len(items) {
		index = len(items) - 1
	}
	m.list.Select(index)
	m.selectedID = items[index].(noteItem).note.ID
}

func (m model) handleListNavigation(key string) (model, tea.Cmd, bool) {
	switch key {
	case "up", "k":
		return m.moveListSelection(-1)
	case "down", "j":
		return m.moveListSelection(1)
	case "pgup":
		return m.moveListSelection(-m.contentHeight())
	case "pgdown":
		return m.moveListSelection(m.contentHeight())
	case "home", "g":
		return m.moveListSelection(-len(m.list.Items()))
	case "end", "G":
		return m.moveListSelection(len(m.list.Items()))
	}
	return m, nil, true
}

func (m model) moveListSelection(delta int) (model, tea.Cmd, bool) {
	items := m.list.Items()
	if len(items) == 0 {
		return m, nil, true
	}
	current := m.list.Index()
	if current < 0 {
		current = 0
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	if next >= len(items) {
		next = len(items) - 1
	}
	m.list.Select(next)
	if item, ok := items[next].(noteItem); ok {
		m.selectedID = item.note.ID
	}
	return m, nil, true
}

func (m model) contentHeight() int {
	height := m.height - 5
	if height < 1 {
		height = 1
	}
	return height
}

func (m *model) resize() {
	contentHeight := m.contentHeight()
	leftWidth, rightWidth := splitWidths(m.width)
	listWidth := leftWidth - 4
	if listWidth < 1 {
		listWidth = 1
	}
	innerDetailWidth := rightWidth - 4
	if innerDetailWidth < 1 {
		innerDetailWidth = 1
	}
	m.list.SetSize(listWidth, contentHeight)
	m.detail.SetSize(innerDetailWidth, contentHeight)
	if m.formOpen {
		m.form.SetSize(innerDetailWidth, contentHeight)
	}
	m.search.Width = listWidth
}

func splitWidths(width int) (int, int) {
	left := width / 3
	if left < 30 {
		left = 30
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}

func (m model) renderHeader() string {
	parts := []string{titleActiveStyle.Render("NoteIt")}
	if m.searching {
		parts = append(parts, filterActiveStyle.Render(m.search.View()))
	} else if !internalstrings.IsBlank(m.filter.Query) {
		parts = append(parts, filterActiveStyle.Render("search: "+strings.TrimSpace(m.filter.Query)))
	}
	if m.filter.FavoritesOnly {
		parts = append(parts, filterActiveStyle.Render("favorites"))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	count := valueMuted.Render(fmt.Sprintf("%d of %d notes", len(m.list.Items()), len(m.snapshot.Notes)))
	spacerWidth := m.width - lipgloss.Width(content) - lipgloss.Width(count)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	return titleBarStyle.Width(m.width).Render(content + strings.Repeat(" ", spacerWidth) + count)
}

func (m model) renderPane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	width -= 2
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return style.Width(width).Height(height).MaxHeight(height + 2).Render(content)
}

func (m model) renderStatusLine() string {
	if m.snapshot.Error != "" {
		return statusErrorStyle.Render(truncateText(m.snapshot.Error, m.width))
	}
	if m.snapshot.Loading {
		return valueMuted.Render("Loading...")
	}
	text := m.status
	if internalstrings.IsBlank(text) {
		return ""
	}
	style := valueMuted
	if m.statusLevel == statusError {
		style = statusErrorStyle
	} else if m.statusLevel == statusInfo {
		style = statusSuccessStyle
	}
	return style.Render(truncateText(text, m.width))
}

func (m model) renderHelpLine() string {
	text := strings.TrimSpace(m.helpSummary())
	if text == "" {
		return ""
	}
	return helpBarStyle.Width(m.width).Render(truncateText(text, m.width))
}

func (m model) helpSummary() string {
	switch {
	case m.focus == focusForm:
		return "Keys: tab next field | shift+tab prev | ctrl+s save | esc cancel"
	case m.searching:
		return "Keys: type to search | enter keep | esc clear"
	case m.focus == focusDetail:
		return "Keys: e edit | s star | d delete | pgup/pgdown scroll | esc back | ? help"
	}
	return "Keys: up/down move | enter open | n new | / search | f favorites | s star | d delete | ? help | q quit"
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) renderModalOverlay(content string) string {
	if m.modal.kind == modalNone {
		return content
	}
	modal := m.modalView()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m model) modalView() string {
	if m.modal.kind == modalHelp {
		modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
		return modalStyle.Render(m.helpContent())
	}
	options := []string{m.modal.confirmText, m.modal.cancelText}
	buttons := make([]string, 0, 2)
	for i, option := range options {
		style := valueMuted
		if i == m.modal.selected {
			style = selectedBorder
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	content := strings.Join([]string{m.modal.message, "", strings.Join(buttons, " ")}, "\n")
	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	return modalStyle.Render(content)
}

func (m model) openHelp() model {
	m.modal = confirmModal{kind: modalHelp}
	return m
}

func (m model) helpContent() string {
	sections := []string{
		labelStyle.Render("Global"),
		"q or ctrl+c: quit",
		"?: toggle help",
		"r: refresh notes",
		"",
		labelStyle.Render("Notes"),
		"up/down or j/k: move selection",
		"enter: open note",
		"esc: back, dismiss error, clear filter",
		"n: new note",
		"e: edit note",
		"s: toggle favorite",
		"d: delete note",
		"",
		labelStyle.Render("Filter"),
		"/: search title and content",
		"f: favorites only",
		"",
		labelStyle.Render("Editing"),
		"tab/shift+tab: next/previous field",
		"enter: add todo or toggle selected todo",
		"backspace: remove selected todo",
		"ctrl+s: save",
		"esc: cancel",
		"",
		labelStyle.Render("Help"),
		"press ? or esc to close",
	}
	return strings.Join(sections, "\n")
}

func (m model) waitForChangeCmd() tea.Cmd {
	changes := m.changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshedMsg{err: m.store.Refresh(m.ctx)}
	}
}

func (m model) focusCmd(id int, edit bool) tea.Cmd {
	return func() tea.Msg {
		return focusedMsg{id: id, edit: edit, err: m.store.Focus(m.ctx, id)}
	}
}

func (m model) saveCmd(form noteFormModel) tea.Cmd {
	in := form.Input()
	id := form.original.ID
	isNew := form.isNew
	return func() tea.Msg {
		if isNew {
			created, err := m.store.Create(m.ctx, in.Title, in.Content, in.Todos)
			return savedMsg{note: created, isNew: true, err: err}
		}
		updated, err := m.store.Update(m.ctx, id, in)
		return savedMsg{note: updated, err: err}
	}
}

func (m model) deleteCmd(id int) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: m.store.Delete(m.ctx, id)}
	}
}

func (m model) favoriteCmd(id int, favorite bool) tea.Cmd {
	return func() tea.Msg {
		updated, err := m.store.SetFavorite(m.ctx, id, favorite)
		return favoritedMsg{note: updated, err: err}
	}
}

type storeChangedMsg struct{}

type refreshedMsg struct {
	err error
}

type focusedMsg struct {
	id   int
	edit bool
	err  error
}

type savedMsg struct {
	note  note.NoteWithTodos
	isNew bool
	err   error
}

type deletedMsg struct {
	id  int
	err error
}

type favoritedMsg struct {
	note note.Note
	err  error
}
