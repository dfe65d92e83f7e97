package note

import (
	"encoding/json"
	"strings"
	"time"
)

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp reads a server timestamp. Zoned and naive ISO 8601 forms are
// accepted; anything else yields the zero time and false.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// UnmarshalJSON decodes a note, reading updatedAt with ParseTimestamp.
func (n *Note) UnmarshalJSON(data []byte) error {
	type plain Note
	var raw struct {
		plain
		UpdatedAt *string `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*n = Note(raw.plain)
	n.UpdatedAt = time.Time{}
	if raw.UpdatedAt != nil {
		n.UpdatedAt, _ = ParseTimestamp(*raw.UpdatedAt)
	}
	return nil
}

// UnmarshalJSON decodes a note and its todos. Note's decoder would otherwise
// be promoted and drop the todos.
func (n *NoteWithTodos) UnmarshalJSON(data []byte) error {
	var base Note
	if err := json.Unmarshal(data, &base); err != nil {
		return err
	}
	var rest struct {
		Todos []Todo `json:"todos"`
	}
	if err := json.Unmarshal(data, &rest); err != nil {
		return err
	}
	n.Note = base
	n.Todos = rest.Todos
	return nil
}
