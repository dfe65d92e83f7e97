package note

import "fmt"

// NextTodoID returns the ID for a new local todo: one more than the largest
// existing ID, or 1 for an empty list. Deleting todos never causes an ID to
// be reused while a larger one remains.
func NextTodoID(todos []Todo) int {
	highest := 0
	for _, todo := range todos {
		if todo.ID > highest {
			highest = todo.ID
		}
	}
	return highest + 1
}

// AddTodo appends an incomplete todo with a fresh ID.
func AddTodo(todos []Todo, title string) []Todo {
	out := make([]Todo, 0, len(todos)+1)
	out = append(out, todos...)
	return append(out, Todo{ID: NextTodoID(todos), Title: title})
}

// FindTodo returns the index of the todo with the given ID, or -1.
func FindTodo(todos []Todo, id int) int {
	for i, todo := range todos {
		if todo.ID == id {
			return i
		}
	}
	return -1
}

// RemoveTodo returns todos without the todo with the given ID.
func RemoveTodo(todos []Todo, id int) ([]Todo, error) {
	index := FindTodo(todos, id)
	if index < 0 {
		return nil, fmt.Errorf("%w: %d", ErrTodoNotFound, id)
	}
	out := make([]Todo, 0, len(todos)-1)
	out = append(out, todos[:index]...)
	return append(out, todos[index+1:]...), nil
}

// SetTodoCompleted returns todos with the given todo's completion set.
func SetTodoCompleted(todos []Todo, id int, completed bool) ([]Todo, error) {
	return editTodo(todos, id, func(todo *Todo) { todo.Completed = completed })
}

// ToggleTodo returns todos with the given todo's completion flipped.
func ToggleTodo(todos []Todo, id int) ([]Todo, error) {
	return editTodo(todos, id, func(todo *Todo) { todo.Completed = !todo.Completed })
}

// RenameTodo returns todos with the given todo retitled.
func RenameTodo(todos []Todo, id int, title string) ([]Todo, error) {
	return editTodo(todos, id, func(todo *Todo) { todo.Title = title })
}

func editTodo(todos []Todo, id int, edit func(*Todo)) ([]Todo, error) {
	index := FindTodo(todos, id)
	if index < 0 {
		return nil, fmt.Errorf("%w: %d", ErrTodoNotFound, id)
	}
	out := CloneTodos(todos)
	edit(&out[index])
	return out, nil
}
