// Package store holds the client's view of the notes collection.
//
// A Store owns the note list, the focused note, a loading flag and the
// latest error message. Views read copies through Snapshot and change state
// only through the command methods. Each command waits for the server before
// touching state; nothing is applied optimistically.
//
// Commands may run concurrently. The lock is held only while state is read
// or written, never across a request, so when two commands overlap the one
// that finishes last wins.
package store

import (
	"context"
	"sync"

	"github.com/amonks/noteit/api"
	"github.com/amonks/noteit/note"
)

// API is the subset of *api.Client the store drives.
type API interface {
	ListNotes(ctx context.Context) ([]note.Note, error)
	GetNote(ctx context.Context, id int) (note.NoteWithTodos, error)
	CreateNote(ctx context.Context, in note.Input) (note.NoteWithTodos, error)
	UpdateNote(ctx context.Context, id int, in note.Input) (note.NoteWithTodos, error)
	DeleteNote(ctx context.Context, id int) error
	SetFavorite(ctx context.Context, id int, favorite bool) (note.Note, error)
}

const (
	msgRefresh  = "Failed to fetch notes"
	msgFocus    = "Failed to fetch note"
	msgCreate   = "Failed to create note"
	msgUpdate   = "Failed to update note"
	msgDelete   = "Failed to delete note"
	msgFavorite = "Failed to update favorite"
)

// Snapshot is a point-in-time copy of the store's state.
type Snapshot struct {
	Notes       []note.Note
	CurrentNote *note.NoteWithTodos
	Loading     bool
	Error       string
}

// Store is the shared notes state container.
type Store struct {
	api API

	mu       sync.Mutex
	notes    []note.Note
	current  *note.NoteWithTodos
	inFlight int
	errMsg   string

	subMu       sync.Mutex
	subscribers map[chan struct{}]struct{}
}

// New returns an empty store driving api.
func New(api API) *Store {
	return &Store{
		api:         api,
		notes:       []note.Note{},
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Notes:   cloneNotes(s.notes),
		Loading: s.inFlight > 0,
		Error:   s.errMsg,
	}
	if s.current != nil {
		current := s.current.Clone()
		snap.CurrentNote = &current
	}
	return snap
}

// Notes returns a copy of the note list.
func (s *Store) Notes() []note.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneNotes(s.notes)
}

// CurrentNote returns the focused note, if any.
func (s *Store) CurrentNote() (note.NoteWithTodos, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return note.NoteWithTodos{}, false
	}
	return s.current.Clone(), true
}

// Loading reports whether a loading command is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// Error returns the most recent failure message, or "".
func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// SetError replaces the shared error message.
func (s *Store) SetError(msg string) {
	s.mutate(func() { s.errMsg = msg })
}

// ClearError dismisses the shared error message.
func (s *Store) ClearError() {
	s.SetError("")
}

// Refresh replaces the note list with the server's.
func (s *Store) Refresh(ctx context.Context) error {
	s.begin()
	notes, err := s.api.ListNotes(ctx)
	s.end(func() {
		if err != nil {
			s.errMsg = api.Message(err, msgRefresh)
			return
		}
		s.notes = cloneNotes(notes)
	})
	return err
}

// Focus fetches a note with its todos and makes it the current note.
func (s *Store) Focus(ctx context.Context, id int) error {
	s.begin()
	n, err := s.api.GetNote(ctx, id)
	s.end(func() {
		if err != nil {
			s.errMsg = api.Message(err, msgFocus)
			return
		}
		focused := n.Clone()
		s.current = &focused
	})
	return err
}

// ClearFocus drops the current note without a request.
func (s *Store) ClearFocus() {
	s.mutate(func() { s.current = nil })
}

// Create creates a non-favorite note and appends it to the list. Invalid
// input is rejected before any request and leaves state untouched.
func (s *Store) Create(ctx context.Context, title, content string, todos []note.Todo) (note.NoteWithTodos, error) {
	in := note.Input{Title: title, Content: content, Todos: note.CloneTodos(todos)}
	if err := in.Validate(); err != nil {
		return note.NoteWithTodos{}, err
	}

	s.begin()
	created, err := s.api.CreateNote(ctx, in)
	s.end(func() {
		if err != nil {
			s.errMsg = api.Message(err, msgCreate)
			return
		}
		s.notes = append(s.notes, created.Note)
	})
	if err != nil {
		return note.NoteWithTodos{}, err
	}
	return created.Clone(), nil
}

// Update replaces a note's fields and todos, then reconciles the list entry
// and, when it is focused, the current note.
func (s *Store) Update(ctx context.Context, id int, in note.Input) (note.NoteWithTodos, error) {
	in.Todos = note.CloneTodos(in.Todos)
	if err := in.Validate(); err != nil {
		return note.NoteWithTodos{}, err
	}

	s.begin()
	updated, err := s.api.UpdateNote(ctx, id, in)
	s.end(func() {
		if err != nil {
			s.errMsg = api.Message(err, msgUpdate)
			return
		}
		s.replaceNote(id, updated.Note)
		if s.current != nil && s.current.ID == id {
			merged := mergeNote(*s.current, updated)
			s.current = &merged
		}
	})
	if err != nil {
		return note.NoteWithTodos{}, err
	}
	return updated.Clone(), nil
}

// Delete removes a note, clearing the focus if it was the current note.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.begin()
	err := s.api.DeleteNote(ctx, id)
	s.end(func() {
		if err != nil {
			s.errMsg = api.Message(err, msgDelete)
			return
		}
		kept := s.notes[:0:0]
		for _, n := range s.notes {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		s.notes = kept
		if s.current != nil && s.current.ID == id {
			s.current = nil
		}
	})
	return err
}

// SetFavorite sets a note's favorite flag. It clears the previous error but
// does not affect Loading.
func (s *Store) SetFavorite(ctx context.Context, id int, favorite bool) (note.Note, error) {
	s.mutate(func() { s.errMsg = "" })
	updated, err := s.api.SetFavorite(ctx, id, favorite)
	s.mutate(func() {
		if err != nil {
			s.errMsg = api.Message(err, msgFavorite)
			return
		}
		s.replaceNote(id, updated)
		if s.current != nil && s.current.ID == id {
			merged := mergeNote(*s.current, note.NoteWithTodos{Note: updated})
			s.current = &merged
		}
	})
	if err != nil {
		return note.Note{}, err
	}
	return updated, nil
}

// begin marks a loading command in flight and clears the previous error.
func (s *Store) begin() {
	s.mutate(func() {
		s.inFlight++
		s.errMsg = ""
	})
}

// end applies fn and marks the command finished.
func (s *Store) end(fn func()) {
	s.mutate(func() {
		fn()
		s.inFlight--
	})
}

func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	s.notify()
}

// replaceNote must be called with s.mu held.
func (s *Store) replaceNote(id int, updated note.Note) {
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i] = updated
		}
	}
}

// mergeNote overlays updated onto current. Todos are only replaced when the
// response carried them.
func mergeNote(current, updated note.NoteWithTodos) note.NoteWithTodos {
	merged := current.Clone()
	merged.Note = updated.Note
	if updated.Todos != nil {
		merged.Todos = note.CloneTodos(updated.Todos)
	}
	return merged
}

func cloneNotes(notes []note.Note) []note.Note {
	out := make([]note.Note, len(notes))
	copy(out, notes)
	return out
}
