package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// hasChangedFlags reports whether any of the named flags was set on the
// command line.
func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	wanted := make(map[string]bool, len(flags))
	for _, flag := range flags {
		wanted[flag] = true
	}

	changed := false
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if wanted[f.Name] {
			changed = true
		}
	})
	return changed
}

// resolveContentFromStdin reads stdin when content is "-".
func resolveContentFromStdin(content string, reader io.Reader) (string, error) {
	if content != "-" {
		return content, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read content from stdin: %w", err)
	}

	value := strings.TrimRight(string(input), "\r\n")
	return value, nil
}

func parseID(kind, value string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", kind, value)
	}
	return id, nil
}

func parseNoteIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID("note", arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
