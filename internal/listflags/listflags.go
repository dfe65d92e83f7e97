package listflags

import (
	"github.com/spf13/cobra"

	"github.com/amonks/noteit/note"
)

// AddFilterFlags adds the shared --search and --favorites flags to a list
// command, binding them to target.
func AddFilterFlags(cmd *cobra.Command, target *note.ListFilter) {
	AddSearchFlag(cmd, &target.Query)
	AddFavoritesFlag(cmd, &target.FavoritesOnly)
}

// AddSearchFlag adds a --search flag matched against title and content.
func AddSearchFlag(cmd *cobra.Command, target *string) {
	if target == nil {
		cmd.Flags().StringP("search", "s", "", "Only show notes whose title or content contains this text")
		return
	}

	cmd.Flags().StringVarP(target, "search", "s", "", "Only show notes whose title or content contains this text")
}

// AddFavoritesFlag adds a --favorites flag limiting output to starred notes.
func AddFavoritesFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("favorites", false, "Only show favorite notes")
		return
	}

	cmd.Flags().BoolVar(target, "favorites", false, "Only show favorite notes")
}
