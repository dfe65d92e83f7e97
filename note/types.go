// Package note defines the NoteIt data model.
//
// A note belongs to the device that created it and may carry an ordered
// checklist of todos. The package also holds the client-side rules the other
// packages share: input validation, local todo editing, and the filter and
// sort order used when presenting a list of notes.
package note

import "time"

// Note is a note as returned by the list and favorite endpoints.
type Note struct {
	// ID is assigned by the server and never changes.
	ID int `json:"id"`

	// DeviceID identifies the device that created the note.
	DeviceID string `json:"deviceId"`

	Title      string `json:"title"`
	Content    string `json:"content"`
	IsFavorite bool   `json:"isFavorite"`

	// UpdatedAt is assigned by the server on every mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Todo is a checklist item within a note.
type Todo struct {
	// ID is unique within the owning note.
	ID int `json:"id"`

	// NoteID refers back to the owning note.
	NoteID int `json:"noteId"`

	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NoteWithTodos is a note together with its todo list.
type NoteWithTodos struct {
	Note
	Todos []Todo `json:"todos,omitempty"`
}

// Input holds the user-controlled fields of a note submission.
type Input struct {
	Title      string
	Content    string
	IsFavorite bool
	Todos      []Todo
}

// InputFrom returns the editable fields of n.
func InputFrom(n NoteWithTodos) Input {
	return Input{
		Title:      n.Title,
		Content:    n.Content,
		IsFavorite: n.IsFavorite,
		Todos:      CloneTodos(n.Todos),
	}
}

// Clone returns a deep copy of n.
func (n NoteWithTodos) Clone() NoteWithTodos {
	n.Todos = CloneTodos(n.Todos)
	return n
}

// CloneTodos copies a todo slice. A nil slice stays nil.
func CloneTodos(todos []Todo) []Todo {
	if todos == nil {
		return nil
	}
	out := make([]Todo, len(todos))
	copy(out, todos)
	return out
}

// CompletedCount reports how many todos are completed.
func CompletedCount(todos []Todo) int {
	count := 0
	for _, todo := range todos {
		if todo.Completed {
			count++
		}
	}
	return count
}
