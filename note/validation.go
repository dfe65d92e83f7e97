package note

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput is matched by every validation failure.
	ErrInvalidInput = errors.New("invalid note input")

	// ErrDuplicateTodoID is returned when two todos in one note share an ID.
	ErrDuplicateTodoID = errors.New("duplicate todo id")

	// ErrTodoNotFound is returned when a todo ID is not present in a note.
	ErrTodoNotFound = errors.New("todo not found")
)

// ValidationError reports which required fields were blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	switch len(e.Fields) {
	case 0:
		return ErrInvalidInput.Error()
	case 1:
		return e.Fields[0] + " is required"
	default:
		return strings.Join(e.Fields, " and ") + " are required"
	}
}

// Is makes errors.Is(err, ErrInvalidInput) hold for validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidateInput checks that title and content are non-empty after trimming.
func ValidateInput(title, content string) error {
	var fields []string
	if strings.TrimSpace(title) == "" {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(content) == "" {
		fields = append(fields, "content")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate checks the fields of a submission, including todo ID uniqueness.
func (in Input) Validate() error {
	if err := ValidateInput(in.Title, in.Content); err != nil {
		return err
	}
	return ValidateTodos(in.Todos)
}

// ValidateTodos rejects todo lists whose IDs are not unique.
func ValidateTodos(todos []Todo) error {
	seen := make(map[int]struct{}, len(todos))
	for _, todo := range todos {
		if _, ok := seen[todo.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateTodoID, todo.ID)
		}
		seen[todo.ID] = struct{}{}
	}
	return nil
}
