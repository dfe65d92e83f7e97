package notetui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/amonks/noteit/api"
	"github.com/amonks/noteit/device"
	"github.com/amonks/noteit/internal/fakeapi"
	"github.com/amonks/noteit/note"
	"github.com/amonks/noteit/store"
)

type harness struct {
	server *fakeapi.Server
	store  *store.Store
	device string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	useASCIIRenderer(t)

	server := fakeapi.New(fakeapi.Options{})
	httpServer := httptest.NewServer(server)
	t.Cleanup(httpServer.Close)

	provider := device.New(device.NewMemoryStorage())
	client := api.NewClient(api.Options{BaseURL: httpServer.URL, Device: provider})
	return &harness{server: server, store: store.New(client), device: provider.ID()}
}

func (h *harness) model(t *testing.T) model {
	t.Helper()
	m := newModel(context.Background(), h.store, nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return run(t, m, m.refreshCmd())
}

func useASCIIRenderer(t *testing.T) {
	originalProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(originalProfile)
	})
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := step(t, m, msg)
	return next
}

func step(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(model)
	if !ok {
		t.Fatalf("expected model, got %T", next)
	}
	return updated, cmd
}

// run executes cmd and feeds back store results until the chain ends.
// Cursor blinks and other bubble-internal messages stop the chain.
func run(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case refreshedMsg, focusedMsg, savedMsg, deletedMsg, favoritedMsg:
		default:
			return m
		}
		m, cmd = step(t, m, msg)
	}
	return m
}

func press(t *testing.T, m model, key string) (model, tea.Cmd) {
	t.Helper()
	return step(t, m, keyMsg(key))
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func listTitles(m model) []string {
	items := m.list.Items()
	titles := make([]string, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.(noteItem).note.Title)
	}
	return titles
}

func assertTitles(t *testing.T, m model, want ...string) {
	t.Helper()
	got := listTitles(m)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected titles %v, got %v", want, got)
	}
}

func TestRefreshListsFavoritesFirst(t *testing.T) {
	h := newHarness(t)
	h.server.Seed(h.device, note.Input{Title: "Older favorite", Content: "a", IsFavorite: true})
	h.server.Seed(h.device, note.Input{Title: "Newest", Content: "b"})

	m := h.model(t)

	assertTitles(t, m, "Older favorite", "Newest")
	if !strings.Contains(m.View(), "Loaded 2 notes") {
		t.Fatalf("expected load status in view")
	}
}

func TestSearchAndFavoritesFilter(t *testing.T) {
	h := newHarness(t)
	h.server.Seed(h.device, note.Input{Title: "Groceries", Content: "Buy MILK", IsFavorite: true})
	h.server.Seed(h.device, note.Input{Title: "Work", Content: "standup"})
	h.server.Seed(h.device, note.Input{Title: "Milkshake recipe", Content: "blend"})
	m := h.model(t)

	m, _ = press(t, m, "/")
	if !m.searching {
		t.Fatalf("expected search mode")
	}
	m = typeText(t, m, "milk")
	assertTitles(t, m, "Groceries", "Milkshake recipe")

	m, _ = press(t, m, "enter")
	if m.searching {
		t.Fatalf("expected search mode to end")
	}

	m, _ = press(t, m, "f")
	assertTitles(t, m, "Groceries")

	m, _ = press(t, m, "esc")
	assertTitles(t, m, "Groceries", "Milkshake recipe", "Work")
	if m.filter.Active() {
		t.Fatalf("expected filter cleared, got %+v", m.filter)
	}
}

func TestStarTogglesFavorite(t *testing.T) {
	h := newHarness(t)
	seeded := h.server.Seed(h.device, note.Input{Title: "Plain", Content: "x"})
	m := h.model(t)

	m, cmd := press(t, m, "s")
	m = run(t, m, cmd)

	stored, ok := h.server.Note(seeded.ID)
	if !ok || !stored.IsFavorite {
		t.Fatalf("expected server note to be favorite")
	}
	if !m.snapshot.Notes[0].IsFavorite {
		t.Fatalf("expected store note to be favorite")
	}
	if m.status != "Added to favorites" {
		t.Fatalf("expected favorite status, got %q", m.status)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	h := newHarness(t)
	seeded := h.server.Seed(h.device, note.Input{Title: "Doomed", Content: "x"})
	m := h.model(t)
	requests := h.server.Requests()

	m, _ = press(t, m, "d")
	if m.modal.kind != modalDelete {
		t.Fatalf("expected delete modal, got %v", m.modal.kind)
	}
	m, cmd := press(t, m, "esc")
	if cmd != nil || m.modal.kind != modalNone {
		t.Fatalf("expected cancel to close modal without a command")
	}
	if h.server.Requests() != requests {
		t.Fatalf("expected no request on cancel")
	}

	m, _ = press(t, m, "d")
	m, cmd = press(t, m, "enter")
	m = run(t, m, cmd)

	if _, ok := h.server.Note(seeded.ID); ok {
		t.Fatalf("expected note to be deleted on server")
	}
	assertTitles(t, m)
	if m.status != "Note deleted" {
		t.Fatalf("expected delete status, got %q", m.status)
	}
}

func TestDeleteModalCancelButton(t *testing.T) {
	h := newHarness(t)
	seeded := h.server.Seed(h.device, note.Input{Title: "Kept", Content: "x"})
	m := h.model(t)

	m, _ = press(t, m, "d")
	m, _ = press(t, m, "right")
	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	if _, ok := h.server.Note(seeded.ID); !ok {
		t.Fatalf("expected note to survive")
	}
	assertTitles(t, m, "Kept")
}

func TestCreateFormValidatesBeforeRequest(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)
	requests := h.server.Requests()

	m, _ = press(t, m, "n")
	if !m.formOpen || m.focus != focusForm {
		t.Fatalf("expected form to open")
	}
	m, cmd := press(t, m, "ctrl+s")
	if cmd != nil {
		t.Fatalf("expected no save command for invalid input")
	}
	if m.form.err != "title and content are required" {
		t.Fatalf("expected inline validation error, got %q", m.form.err)
	}
	if h.server.Requests() != requests {
		t.Fatalf("expected no request for invalid input")
	}
	if m.snapshot.Error != "" {
		t.Fatalf("expected shared error untouched, got %q", m.snapshot.Error)
	}
}

func TestCreateFormSavesNoteWithTodos(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	m, _ = press(t, m, "n")
	m = typeText(t, m, "Groceries")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "weekly shop")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "Milk")
	m, _ = press(t, m, "enter")
	m = typeText(t, m, "Eggs")
	m, _ = press(t, m, "enter")

	if len(m.form.todos) != 2 || m.form.todos[1].ID != 2 {
		t.Fatalf("expected two local todos, got %+v", m.form.todos)
	}
	if h.server.Requests() != 1 {
		t.Fatalf("expected todo edits to stay local, got %d requests", h.server.Requests())
	}

	m, cmd := press(t, m, "ctrl+s")
	m = run(t, m, cmd)

	if m.formOpen {
		t.Fatalf("expected form to close, err=%q", m.form.err)
	}
	assertTitles(t, m, "Groceries")
	if m.snapshot.CurrentNote == nil || len(m.snapshot.CurrentNote.Todos) != 2 {
		t.Fatalf("expected created note to be focused with todos, got %+v", m.snapshot.CurrentNote)
	}
	if m.snapshot.CurrentNote.IsFavorite {
		t.Fatalf("expected new note not to be a favorite")
	}
	view := m.View()
	if !strings.Contains(view, "[ ] Milk") || !strings.Contains(view, "[ ] Eggs") {
		t.Fatalf("expected todos in detail view:\n%s", view)
	}
}

func TestEditFormTogglesTodoAndSaves(t *testing.T) {
	h := newHarness(t)
	seeded := h.server.Seed(h.device, note.Input{
		Title:   "Trip",
		Content: "pack",
		Todos:   []note.Todo{{ID: 1, Title: "Passport"}},
	})
	m := h.model(t)

	m, cmd := press(t, m, "e")
	m = run(t, m, cmd)
	if !m.formOpen || m.form.isNew {
		t.Fatalf("expected edit form to open")
	}
	if m.form.title.Value() != "Trip" {
		t.Fatalf("expected title to prefill, got %q", m.form.title.Value())
	}

	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "up")
	m, _ = press(t, m, "space")
	if !m.form.todos[0].Completed {
		t.Fatalf("expected local todo to toggle")
	}
	stored, _ := h.server.Note(seeded.ID)
	if stored.Todos[0].Completed {
		t.Fatalf("expected server todo untouched before save")
	}

	m, cmd = press(t, m, "ctrl+s")
	m = run(t, m, cmd)

	if m.formOpen {
		t.Fatalf("expected form to close, err=%q", m.form.err)
	}
	stored, _ = h.server.Note(seeded.ID)
	if len(stored.Todos) != 1 || !stored.Todos[0].Completed {
		t.Fatalf("expected server todo completed, got %+v", stored.Todos)
	}
	if m.status != "Note saved" {
		t.Fatalf("expected saved status, got %q", m.status)
	}
}

func TestSaveFailureKeepsDraft(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	m, _ = press(t, m, "n")
	m = typeText(t, m, "Draft")
	m, _ = press(t, m, "tab")
	m = typeText(t, m, "body")

	h.server.FailNext(http.StatusInternalServerError, "database unavailable")
	m, cmd := press(t, m, "ctrl+s")
	m = run(t, m, cmd)

	if !m.formOpen {
		t.Fatalf("expected form to stay open")
	}
	if m.form.title.Value() != "Draft" || m.form.content.Value() != "body" {
		t.Fatalf("expected draft to be kept")
	}
	if !strings.Contains(m.form.err, "database unavailable") {
		t.Fatalf("expected inline error, got %q", m.form.err)
	}
	if !strings.Contains(m.snapshot.Error, "database unavailable") {
		t.Fatalf("expected shared error, got %q", m.snapshot.Error)
	}
	assertTitles(t, m)
}

func TestCancelDirtyFormAsksToDiscard(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	m, _ = press(t, m, "n")
	m = typeText(t, m, "x")
	m, _ = press(t, m, "esc")
	if m.modal.kind != modalDiscardEdits {
		t.Fatalf("expected discard modal")
	}
	m, _ = press(t, m, "enter")
	if m.formOpen || m.focus != focusList {
		t.Fatalf("expected form closed and list focused")
	}
}

func TestRefreshFailureShowsBannerUntilDismissed(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	h.server.FailNext(http.StatusBadGateway, "")
	m, cmd := press(t, m, "r")
	m = run(t, m, cmd)

	if !strings.Contains(m.View(), "failed to fetch notes: Bad Gateway") {
		t.Fatalf("expected error banner in view:\n%s", m.View())
	}

	m, _ = press(t, m, "esc")
	if m.snapshot.Error != "" {
		t.Fatalf("expected error dismissed, got %q", m.snapshot.Error)
	}
}

func TestEnterFocusesAndEscClearsFocus(t *testing.T) {
	h := newHarness(t)
	h.server.Seed(h.device, note.Input{Title: "First", Content: "one"})
	h.server.Seed(h.device, note.Input{Title: "Second", Content: "two"})
	m := h.model(t)

	assertTitles(t, m, "Second", "First")
	m, _ = press(t, m, "down")
	m, cmd := press(t, m, "enter")
	m = run(t, m, cmd)

	if m.focus != focusDetail {
		t.Fatalf("expected detail focus")
	}
	if m.snapshot.CurrentNote == nil || m.snapshot.CurrentNote.Title != "First" {
		t.Fatalf("expected First to be focused, got %+v", m.snapshot.CurrentNote)
	}

	m, _ = press(t, m, "esc")
	if m.focus != focusList || m.snapshot.CurrentNote != nil {
		t.Fatalf("expected focus cleared")
	}
}

func TestStoreChangeRearmsSubscription(t *testing.T) {
	h := newHarness(t)
	changes, cancel := h.store.Subscribe()
	t.Cleanup(cancel)
	m := newModel(context.Background(), h.store, changes)

	h.store.SetError("boom")
	cmd := m.waitForChangeCmd()
	msg := cmd()
	if _, ok := msg.(storeChangedMsg); !ok {
		t.Fatalf("expected store change message, got %T", msg)
	}
	m, next := step(t, m, msg)
	if m.snapshot.Error != "boom" {
		t.Fatalf("expected snapshot to refresh, got %q", m.snapshot.Error)
	}
	if next == nil {
		t.Fatalf("expected subscription to be re-armed")
	}

	cancel()
	if msg := next(); msg != nil {
		t.Fatalf("expected nil message after unsubscribe, got %T", msg)
	}
}

func TestHelpModal(t *testing.T) {
	h := newHarness(t)
	m := h.model(t)

	m, _ = press(t, m, "?")
	if !strings.Contains(m.View(), "favorites only") {
		t.Fatalf("expected help content in view")
	}
	m, _ = press(t, m, "?")
	if m.modal.kind != modalNone {
		t.Fatalf("expected help to close")
	}
}
