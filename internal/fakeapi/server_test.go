package fakeapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amonks/noteit/note"
)

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestListRequiresDeviceID(t *testing.T) {
	s := New(Options{})

	rec := do(t, s, http.MethodGet, "/notes/", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"deviceId is required"}`, rec.Body.String())
}

func TestListScopesByDeviceAndOrdersByRecency(t *testing.T) {
	s := New(Options{})
	first := s.Seed("device_a", note.Input{Title: "first", Content: "x"})
	s.Seed("device_b", note.Input{Title: "other", Content: "x"})
	second := s.Seed("device_a", note.Input{Title: "second", Content: "x"})

	rec := do(t, s, http.MethodGet, "/notes/?deviceId=device_a", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var notes []note.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)
}

func TestCreateAssignsIDsAndTodos(t *testing.T) {
	s := New(Options{})

	rec := do(t, s, http.MethodPost, "/notes/create/", map[string]any{
		"deviceId": "device_a",
		"title":    "Trip",
		"content":  "packing",
		"todos":    []map[string]any{{"id": 99, "title": "socks", "completed": true}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created note.NoteWithTodos
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "device_a", created.DeviceID)
	assert.False(t, created.UpdatedAt.IsZero())
	require.Len(t, created.Todos, 1)
	assert.Equal(t, note.Todo{ID: 1, NoteID: 1, Title: "socks", Completed: true}, created.Todos[0])
}

func TestCreateRejectsBlankFields(t *testing.T) {
	s := New(Options{})

	rec := do(t, s, http.MethodPost, "/notes/create/", map[string]any{
		"deviceId": "device_a",
		"title":    " ",
		"content":  "x",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "title")
}

func TestUpdateReplacesTodosWholesale(t *testing.T) {
	s := New(Options{})
	seeded := s.Seed("device_a", note.Input{
		Title:   "Trip",
		Content: "packing",
		Todos:   []note.Todo{{Title: "socks"}, {Title: "shirts"}},
	})

	rec := do(t, s, http.MethodPut, "/notes/1/update/", map[string]any{
		"title":      "Trip!",
		"content":    "packing",
		"isFavorite": true,
		"todos":      []map[string]any{{"title": "passport"}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated note.NoteWithTodos
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Trip!", updated.Title)
	assert.True(t, updated.IsFavorite)
	assert.True(t, updated.UpdatedAt.After(seeded.UpdatedAt))
	require.Len(t, updated.Todos, 1)
	assert.Equal(t, "passport", updated.Todos[0].Title)
}

func TestUpdateWithoutTodosKeepsThem(t *testing.T) {
	s := New(Options{})
	s.Seed("device_a", note.Input{Title: "Trip", Content: "x", Todos: []note.Todo{{Title: "socks"}}})

	rec := do(t, s, http.MethodPut, "/notes/1/update/", map[string]any{"title": "Renamed"})
	require.Equal(t, http.StatusOK, rec.Code)

	stored, ok := s.Note(1)
	require.True(t, ok)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Len(t, stored.Todos, 1)
}

func TestMissingNoteIs404(t *testing.T) {
	s := New(Options{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/notes/7/"},
		{http.MethodPut, "/notes/7/update/"},
		{http.MethodDelete, "/notes/7/delete/"},
		{http.MethodPatch, "/notes/7/favorite/"},
	} {
		rec := do(t, s, tc.method, tc.path, map[string]any{"isFavorite": true})
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"error":"Note not found"}`, rec.Body.String())
	}
}

func TestDeleteReturnsNoContent(t *testing.T) {
	s := New(Options{})
	s.Seed("device_a", note.Input{Title: "a", Content: "b"})

	rec := do(t, s, http.MethodDelete, "/notes/1/delete/", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	_, ok := s.Note(1)
	assert.False(t, ok)
}

func TestFavoriteRequiresField(t *testing.T) {
	s := New(Options{})
	s.Seed("device_a", note.Input{Title: "a", Content: "b"})

	rec := do(t, s, http.MethodPatch, "/notes/1/favorite/", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"isFavorite field is required"}`, rec.Body.String())

	rec = do(t, s, http.MethodPatch, "/notes/1/favorite/", map[string]any{"isFavorite": true})
	require.Equal(t, http.StatusOK, rec.Code)
	var n note.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &n))
	assert.True(t, n.IsFavorite)
}

func TestFailNext(t *testing.T) {
	s := New(Options{})
	s.FailNext(http.StatusInternalServerError, "boom")

	rec := do(t, s, http.MethodGet, "/notes/?deviceId=device_a", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"boom"}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/notes/?deviceId=device_a", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, s.Requests())
}
