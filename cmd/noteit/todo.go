package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	internalstrings "github.com/amonks/noteit/internal/strings"
	"github.com/amonks/noteit/internal/ui"
	"github.com/amonks/noteit/note"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage the todo checklist of a note",
}

// todo add
var todoAddCmd = &cobra.Command{
	Use:   "add <note-id> <title>",
	Short: "Add a todo to a note",
	Args:  cobra.ExactArgs(2),
	RunE:  runTodoAdd,
}

// todo check
var todoCheckCmd = &cobra.Command{
	Use:     "check <note-id> <todo-id>",
	Aliases: []string{"done"},
	Short:   "Mark a todo as completed",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTodoSetCompleted(cmd, args, true)
	},
}

// todo uncheck
var todoUncheckCmd = &cobra.Command{
	Use:   "uncheck <note-id> <todo-id>",
	Short: "Mark a todo as not completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTodoSetCompleted(cmd, args, false)
	},
}

// todo rename
var todoRenameCmd = &cobra.Command{
	Use:   "rename <note-id> <todo-id> <title>",
	Short: "Change a todo's title",
	Args:  cobra.ExactArgs(3),
	RunE:  runTodoRename,
}

// todo remove
var todoRemoveCmd = &cobra.Command{
	Use:     "remove <note-id> <todo-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a todo from a note",
	Args:    cobra.ExactArgs(2),
	RunE:    runTodoRemove,
}

var errTodoTitleRequired = errors.New("todo title is required")

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoAddCmd, todoCheckCmd, todoUncheckCmd, todoRenameCmd, todoRemoveCmd)
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	noteID, err := parseID("note", args[0])
	if err != nil {
		return err
	}
	title := args[1]
	if internalstrings.IsBlank(title) {
		return errTodoTitleRequired
	}

	updated, err := editTodos(cmd, noteID, func(todos []note.Todo) ([]note.Todo, error) {
		return note.AddTodo(todos, title), nil
	})
	if err != nil {
		return err
	}
	if len(updated.Todos) == 0 {
		return fmt.Errorf("note %d: server dropped the new todo", noteID)
	}

	// The server assigns its own todo IDs, so report the stored one.
	added := updated.Todos[len(updated.Todos)-1]
	fmt.Printf("Added todo %s to note %s: %s\n", ui.HighlightID(added.ID), ui.HighlightID(noteID), added.Title)
	return nil
}

func runTodoSetCompleted(cmd *cobra.Command, args []string, completed bool) error {
	noteID, todoID, err := parseTodoArgs(args)
	if err != nil {
		return err
	}

	index := -1
	updated, err := editTodos(cmd, noteID, func(todos []note.Todo) ([]note.Todo, error) {
		index = note.FindTodo(todos, todoID)
		return note.SetTodoCompleted(todos, todoID, completed)
	})
	if err != nil {
		return err
	}

	printTodoAt(updated, index)
	return nil
}

func runTodoRename(cmd *cobra.Command, args []string) error {
	noteID, todoID, err := parseTodoArgs(args[:2])
	if err != nil {
		return err
	}
	title := args[2]
	if internalstrings.IsBlank(title) {
		return errTodoTitleRequired
	}

	index := -1
	updated, err := editTodos(cmd, noteID, func(todos []note.Todo) ([]note.Todo, error) {
		index = note.FindTodo(todos, todoID)
		return note.RenameTodo(todos, todoID, title)
	})
	if err != nil {
		return err
	}

	printTodoAt(updated, index)
	return nil
}

func runTodoRemove(cmd *cobra.Command, args []string) error {
	noteID, todoID, err := parseTodoArgs(args)
	if err != nil {
		return err
	}

	if _, err := editTodos(cmd, noteID, func(todos []note.Todo) ([]note.Todo, error) {
		return note.RemoveTodo(todos, todoID)
	}); err != nil {
		return err
	}

	fmt.Printf("Removed todo %s from note %s\n", ui.HighlightID(todoID), ui.HighlightID(noteID))
	return nil
}

// editTodos loads a note, applies edit to a copy of its todos, and submits
// the whole note back.
func editTodos(cmd *cobra.Command, noteID int, edit func([]note.Todo) ([]note.Todo, error)) (note.NoteWithTodos, error) {
	a, err := openApp(appOptions{})
	if err != nil {
		return note.NoteWithTodos{}, err
	}

	current, err := focusNote(cmd, a, noteID)
	if err != nil {
		return note.NoteWithTodos{}, err
	}

	in := note.InputFrom(current)
	todos, err := edit(note.CloneTodos(current.Todos))
	if err != nil {
		return note.NoteWithTodos{}, fmt.Errorf("note %d: %w", noteID, err)
	}
	in.Todos = todos

	return a.store.Update(cmd.Context(), noteID, in)
}

func parseTodoArgs(args []string) (int, int, error) {
	noteID, err := parseID("note", args[0])
	if err != nil {
		return 0, 0, err
	}
	todoID, err := parseID("todo", args[1])
	if err != nil {
		return 0, 0, err
	}
	return noteID, todoID, nil
}

// printTodoAt prints the todo at index. Positions survive an update even
// when the server renumbers todo IDs.
func printTodoAt(n note.NoteWithTodos, index int) {
	if index < 0 || index >= len(n.Todos) {
		fmt.Printf("Updated note %s\n", ui.HighlightID(n.ID))
		return
	}
	todo := n.Todos[index]
	fmt.Printf("%s %s %s\n", ui.Checkbox(todo.Completed), ui.HighlightID(todo.ID), todo.Title)
}
