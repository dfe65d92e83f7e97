package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/amonks/noteit/note"
	internalstrings "github.com/amonks/noteit/internal/strings"
)

// NoteData is the data used to render the editor template.
type NoteData struct {
	// IsUpdate is true when editing an existing note.
	IsUpdate bool
	// ID is the note ID (only for updates).
	ID         int
	Title      string
	IsFavorite bool
	Todos      []note.Todo
	Content    string
}

// DefaultCreateData returns NoteData for a new note. Title and content may
// be prefilled from flags.
func DefaultCreateData(title, content string) NoteData {
	return NoteData{Title: title, Content: content}
}

// DataFromNote creates NoteData from an existing note for editing.
func DataFromNote(n note.NoteWithTodos) NoteData {
	return NoteData{
		IsUpdate:   true,
		ID:         n.ID,
		Title:      n.Title,
		IsFavorite: n.IsFavorite,
		Todos:      note.CloneTodos(n.Todos),
		Content:    n.Content,
	}
}

var noteTemplate = template.Must(template.New("note").Parse(`{{- if .IsUpdate }}# note {{ .ID }}
{{ end -}}
title = {{ printf "%q" .Title }}
{{- if .IsUpdate }}
favorite = {{ .IsFavorite }}
{{- end }}
{{ range .Todos }}
[[todos]]
id = {{ .ID }}
title = {{ printf "%q" .Title }}
completed = {{ .Completed }}
{{ else }}
# Add todos as:
# [[todos]]
# title = "Buy milk"
# completed = false
{{ end -}}
---
{{ .Content }}
`))

// RenderNoteTOML renders the note as TOML frontmatter followed by its content.
func RenderNoteTOML(data NoteData) (string, error) {
	var buf bytes.Buffer
	if err := noteTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

type parsedTodo struct {
	ID        int    `toml:"id"`
	Title     string `toml:"title"`
	Completed bool   `toml:"completed"`
}

// ParsedNote is the result of parsing editor output.
type ParsedNote struct {
	Title string `toml:"title"`

	// Favorite is nil when the field was left out.
	Favorite *bool        `toml:"favorite"`
	RawTodos []parsedTodo `toml:"todos"`

	Todos   []note.Todo `toml:"-"`
	Content string      `toml:"-"`
}

// Input converts the parsed note into a submission. Favorite falls back to
// the given value when the field was omitted.
func (p *ParsedNote) Input(favorite bool) note.Input {
	if p.Favorite != nil {
		favorite = *p.Favorite
	}
	return note.Input{
		Title:      p.Title,
		Content:    p.Content,
		IsFavorite: favorite,
		Todos:      note.CloneTodos(p.Todos),
	}
}

// ParseNoteTOML parses editor output and validates it.
func ParseNoteTOML(content string) (*ParsedNote, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var parsed ParsedNote
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Title = strings.TrimSpace(parsed.Title)
	parsed.Content = internalstrings.TrimTrailingNewlines(strings.TrimLeft(body, "\n"))

	parsed.Todos = assignTodoIDs(parsed.RawTodos)

	if err := note.ValidateInput(parsed.Title, parsed.Content); err != nil {
		return nil, err
	}
	if err := note.ValidateTodos(parsed.Todos); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// assignTodoIDs keeps written IDs and numbers the rest after the largest
// one, in the order they appear.
func assignTodoIDs(raw []parsedTodo) []note.Todo {
	explicit := make([]note.Todo, 0, len(raw))
	for _, r := range raw {
		if r.ID > 0 {
			explicit = append(explicit, note.Todo{ID: r.ID})
		}
	}
	next := note.NextTodoID(explicit)

	todos := make([]note.Todo, 0, len(raw))
	for _, r := range raw {
		id := r.ID
		if id <= 0 {
			id = next
			next++
		}
		todos = append(todos, note.Todo{ID: id, Title: r.Title, Completed: r.Completed})
	}
	return todos
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

// EditNote opens the editor with pre-populated data and returns the parsed result.
func EditNote(data NoteData) (*ParsedNote, error) {
	content, err := RenderNoteTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "noteit-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseNoteTOML(string(edited))
}
