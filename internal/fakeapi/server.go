// Package fakeapi is an in-memory implementation of the NoteIt REST API.
//
// It follows the production contract closely enough to drive the client
// end to end: device-scoped listing ordered by most recent update, 404s for
// missing notes, wholesale todo replacement on update, 204 on delete, and the
// same {"error": "..."} bodies. Tests can queue failures with FailNext.
package fakeapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/amonks/noteit/note"
)

// Options configures a Server.
type Options struct {
	// Logger receives one debug record per request. Nil discards.
	Logger *slog.Logger

	// Now supplies timestamps. Defaults to time.Now.
	Now func() time.Time
}

type record struct {
	note  note.Note
	todos []note.Todo
}

type failure struct {
	status  int
	message string
}

// Server holds notes in memory and serves them over HTTP.
type Server struct {
	mu         sync.Mutex
	records    map[int]*record
	nextNoteID int
	nextTodoID int
	lastStamp  time.Time
	failures   []failure
	requests   int

	now    func() time.Time
	logger *slog.Logger
	router *mux.Router
}

// New creates an empty server.
func New(opts Options) *Server {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		records:    make(map[int]*record),
		nextNoteID: 1,
		nextTodoID: 1,
		now:        now,
		logger:     logger,
	}

	router := mux.NewRouter()
	router.Use(s.logging, s.injectFailures)
	router.HandleFunc("/notes/", s.handleList).Methods(http.MethodGet)
	router.HandleFunc("/notes/create/", s.handleCreate).Methods(http.MethodPost)
	router.HandleFunc("/notes/{id:[0-9]+}/", s.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/notes/{id:[0-9]+}/update/", s.handleUpdate).Methods(http.MethodPut)
	router.HandleFunc("/notes/{id:[0-9]+}/delete/", s.handleDelete).Methods(http.MethodDelete)
	router.HandleFunc("/notes/{id:[0-9]+}/favorite/", s.handleFavorite).Methods(http.MethodPatch)
	s.router = router

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// FailNext makes the next request fail with status and an {"error": message}
// body. Calls queue up in order.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{status: status, message: message})
}

// Requests returns how many requests reached the server.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// Seed stores a note directly, bypassing HTTP.
func (s *Server) Seed(deviceID string, in note.Input) note.NoteWithTodos {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(deviceID, in.Title, in.Content, in.IsFavorite, todoInputs(in.Todos))
}

// Note returns a stored note by ID.
func (s *Server) Note(id int) (note.NoteWithTodos, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return note.NoteWithTodos{}, false
	}
	return rec.withTodos(), true
}

func (rec *record) withTodos() note.NoteWithTodos {
	todos := note.CloneTodos(rec.todos)
	if todos == nil {
		todos = []note.Todo{}
	}
	return note.NoteWithTodos{Note: rec.note, Todos: todos}
}

// stamp returns a strictly increasing timestamp at microsecond precision.
func (s *Server) stamp() time.Time {
	t := s.now().UTC().Truncate(time.Microsecond)
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Microsecond)
	}
	s.lastStamp = t
	return t
}

type todoInput struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func todoInputs(todos []note.Todo) []todoInput {
	out := make([]todoInput, 0, len(todos))
	for _, todo := range todos {
		out = append(out, todoInput{Title: todo.Title, Completed: todo.Completed})
	}
	return out
}

func (s *Server) insert(deviceID, title, content string, favorite bool, todos []todoInput) note.NoteWithTodos {
	id := s.nextNoteID
	s.nextNoteID++
	rec := &record{note: note.Note{
		ID:         id,
		DeviceID:   deviceID,
		Title:      title,
		Content:    content,
		IsFavorite: favorite,
		UpdatedAt:  s.stamp(),
	}}
	rec.todos = s.buildTodos(id, todos)
	s.records[id] = rec
	return rec.withTodos()
}

func (s *Server) buildTodos(noteID int, inputs []todoInput) []note.Todo {
	todos := make([]note.Todo, 0, len(inputs))
	for _, in := range inputs {
		todos = append(todos, note.Todo{
			ID:        s.nextTodoID,
			NoteID:    noteID,
			Title:     in.Title,
			Completed: in.Completed,
		})
		s.nextTodoID++
	}
	return todos
}

type noteResponse struct {
	note.Note
	Todos []note.Todo `json:"todos"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("deviceId")
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "deviceId is required")
		return
	}

	s.mu.Lock()
	notes := make([]note.Note, 0, len(s.records))
	for _, rec := range s.records {
		if rec.note.DeviceID == deviceID {
			notes = append(notes, rec.note)
		}
	}
	s.mu.Unlock()

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rec, ok := s.lookup(r)
	var n note.NoteWithTodos
	if ok {
		n = rec.withTodos()
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Note not found")
		return
	}
	writeJSON(w, http.StatusOK, noteResponse{Note: n.Note, Todos: n.Todos})
}

type createPayload struct {
	DeviceID   string      `json:"deviceId"`
	Title      string      `json:"title"`
	Content    string      `json:"content"`
	IsFavorite bool        `json:"isFavorite"`
	Todos      []todoInput `json:"todos"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	fieldErrors := map[string][]string{}
	requireField(fieldErrors, "deviceId", payload.DeviceID)
	requireField(fieldErrors, "title", payload.Title)
	requireField(fieldErrors, "content", payload.Content)
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrors)
		return
	}

	s.mu.Lock()
	n := s.insert(payload.DeviceID, payload.Title, payload.Content, payload.IsFavorite, payload.Todos)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, noteResponse{Note: n.Note, Todos: n.Todos})
}

type updatePayload struct {
	Title      *string      `json:"title"`
	Content    *string      `json:"content"`
	IsFavorite *bool        `json:"isFavorite"`
	Todos      *[]todoInput `json:"todos"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	fieldErrors := map[string][]string{}
	if payload.Title != nil {
		requireField(fieldErrors, "title", *payload.Title)
	}
	if payload.Content != nil {
		requireField(fieldErrors, "content", *payload.Content)
	}

	s.mu.Lock()
	rec, ok := s.lookup(r)
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Note not found")
		return
	}
	if len(fieldErrors) > 0 {
		s.mu.Unlock()
		writeJSON(w, http.StatusBadRequest, fieldErrors)
		return
	}
	if payload.Title != nil {
		rec.note.Title = *payload.Title
	}
	if payload.Content != nil {
		rec.note.Content = *payload.Content
	}
	if payload.IsFavorite != nil {
		rec.note.IsFavorite = *payload.IsFavorite
	}
	if payload.Todos != nil {
		rec.todos = s.buildTodos(rec.note.ID, *payload.Todos)
	}
	rec.note.UpdatedAt = s.stamp()
	n := rec.withTodos()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, noteResponse{Note: n.Note, Todos: n.Todos})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rec, ok := s.lookup(r)
	if ok {
		delete(s.records, rec.note.ID)
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Note not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type favoritePayload struct {
	IsFavorite *bool `json:"isFavorite"`
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request) {
	var payload favoritePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	rec, ok := s.lookup(r)
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Note not found")
		return
	}
	if payload.IsFavorite == nil {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "isFavorite field is required")
		return
	}
	rec.note.IsFavorite = *payload.IsFavorite
	rec.note.UpdatedAt = s.stamp()
	n := rec.note
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, n)
}

// lookup must be called with s.mu held.
func (s *Server) lookup(r *http.Request) (*record, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return nil, false
	}
	rec, ok := s.records[id]
	return rec, ok
}

func requireField(errs map[string][]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		errs[name] = []string{"This field may not be blank."}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
