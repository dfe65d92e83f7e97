package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/noteit/internal/editor"
	"github.com/amonks/noteit/internal/listflags"
	"github.com/amonks/noteit/internal/ui"
	"github.com/amonks/noteit/note"
)

// list
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes, favorites first",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listFilter note.ListFilter
	listJSON   bool
)

// show
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a note with its todos",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var showJSON bool

// create
var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new note",
	Long: `Create a new note.

By default, opens $EDITOR to edit a TOML representation of the note
when running interactively and no title or flags are given. Use --no-edit
to skip the editor, or --edit to force opening it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

var (
	createContent string
	createTodos   []string
	createEdit    bool
	createNoEdit  bool
)

// edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a note's title, content and todos",
	Long: `Update a note.

By default, opens $EDITOR with the current note when running interactively
and no update flags are provided. Use --no-edit to skip the editor, or --edit
to force opening it.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle   string
	editContent string
	editEdit    bool
	editNoEdit  bool
)

// delete
var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete one or more notes",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

// favorite
var favoriteCmd = &cobra.Command{
	Use:     "favorite <id>...",
	Aliases: []string{"star"},
	Short:   "Mark one or more notes as favorites",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetFavorite(cmd, args, true)
	},
}

// unfavorite
var unfavoriteCmd = &cobra.Command{
	Use:     "unfavorite <id>...",
	Aliases: []string{"unstar"},
	Short:   "Remove one or more notes from favorites",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetFavorite(cmd, args, false)
	},
}

func init() {
	rootCmd.AddCommand(listCmd, showCmd, createCmd, editCmd, deleteCmd, favoriteCmd, unfavoriteCmd)

	listflags.AddFilterFlags(listCmd, &listFilter)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	createCmd.Flags().StringVarP(&createContent, "content", "c", "", "Content (use '-' to read from stdin)")
	createCmd.Flags().StringArrayVar(&createTodos, "todo", nil, "Add a todo with this title (repeatable)")
	createCmd.Flags().BoolVarP(&createEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	createCmd.Flags().BoolVar(&createNoEdit, "no-edit", false, "Do not open $EDITOR")

	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content (use '-' to read from stdin)")
	editCmd.Flags().BoolVarP(&editEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	editCmd.Flags().BoolVar(&editNoEdit, "no-edit", false, "Do not open $EDITOR")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}

	if err := a.store.Refresh(cmd.Context()); err != nil {
		return err
	}

	all := a.store.Notes()
	notes := note.ForDisplay(all, listFilter)
	if listJSON {
		return encodeJSONToStdout(notes)
	}

	if len(notes) == 0 {
		fmt.Println(noteEmptyListMessage(len(all), listFilter))
		return nil
	}
	fmt.Print(formatNoteTable(notes, ui.HighlightID, time.Now()))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID("note", args[0])
	if err != nil {
		return err
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}

	current, err := focusNote(cmd, a, id)
	if err != nil {
		return err
	}

	if showJSON {
		return encodeJSONToStdout(current)
	}
	printNoteDetail(current, ui.HighlightID)
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("content") {
		content, err := resolveContentFromStdin(createContent, os.Stdin)
		if err != nil {
			return err
		}
		createContent = content
	}

	var title string
	if len(args) > 0 {
		title = args[0]
	}
	content := createContent
	var todos []note.Todo
	for _, todoTitle := range createTodos {
		todos = note.AddTodo(todos, todoTitle)
	}

	hasFlags := len(args) > 0 || hasChangedFlags(cmd, "content", "todo")
	if shouldUseEditor(hasFlags, createEdit, createNoEdit, editor.IsInteractive()) {
		data := editor.DefaultCreateData(title, content)
		data.Todos = todos
		parsed, err := editor.EditNote(data)
		if err != nil {
			return err
		}
		in := parsed.Input(false)
		title, content, todos = in.Title, in.Content, in.Todos
	}

	// Validate before touching the network.
	in := note.Input{Title: title, Content: content, Todos: todos}
	if err := in.Validate(); err != nil {
		return err
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}

	created, err := a.store.Create(cmd.Context(), title, content, todos)
	if err != nil {
		return err
	}

	fmt.Printf("Created note %s: %s\n", ui.HighlightID(created.ID), created.Title)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID("note", args[0])
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("content") {
		content, err := resolveContentFromStdin(editContent, os.Stdin)
		if err != nil {
			return err
		}
		editContent = content
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}

	current, err := focusNote(cmd, a, id)
	if err != nil {
		return err
	}

	in := note.InputFrom(current)
	if cmd.Flags().Changed("title") {
		in.Title = editTitle
	}
	if cmd.Flags().Changed("content") {
		in.Content = editContent
	}

	hasFlags := hasChangedFlags(cmd, "title", "content")
	if shouldUseEditor(hasFlags, editEdit, editNoEdit, editor.IsInteractive()) {
		data := editor.DataFromNote(current)
		data.Title = in.Title
		data.Content = in.Content
		parsed, err := editor.EditNote(data)
		if err != nil {
			return err
		}
		in = parsed.Input(current.IsFavorite)
	}

	updated, err := a.store.Update(cmd.Context(), id, in)
	if err != nil {
		return err
	}

	fmt.Printf("Updated note %s: %s\n", ui.HighlightID(updated.ID), updated.Title)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseNoteIDs(args)
	if err != nil {
		return err
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := a.store.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted note %s\n", ui.HighlightID(id))
	}
	return nil
}

func runSetFavorite(cmd *cobra.Command, args []string, favorite bool) error {
	ids, err := parseNoteIDs(args)
	if err != nil {
		return err
	}

	a, err := openApp(appOptions{})
	if err != nil {
		return err
	}

	verb := "Favorited"
	if !favorite {
		verb = "Unfavorited"
	}
	for _, id := range ids {
		updated, err := a.store.SetFavorite(cmd.Context(), id, favorite)
		if err != nil {
			return err
		}
		fmt.Printf("%s note %s: %s\n", verb, ui.HighlightID(updated.ID), updated.Title)
	}
	return nil
}

// focusNote loads a note with its todos through the store.
func focusNote(cmd *cobra.Command, a *app, id int) (note.NoteWithTodos, error) {
	if err := a.store.Focus(cmd.Context(), id); err != nil {
		return note.NoteWithTodos{}, err
	}
	current, ok := a.store.CurrentNote()
	if !ok {
		return note.NoteWithTodos{}, fmt.Errorf("note %d not loaded", id)
	}
	return current, nil
}
