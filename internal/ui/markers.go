package ui

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	ansiBold   = "\x1b[1m"
	ansiCyan   = "\x1b[36m"
	ansiYellow = "\x1b[33m"
	ansiFaint  = "\x1b[2m"
	ansiReset  = "\x1b[0m"
)

// HighlightID renders a note or todo ID, bold when stdout supports color.
func HighlightID(id int) string {
	text := strconv.Itoa(id)
	if !ansiEnabled() {
		return text
	}
	return ansiBold + ansiCyan + text + ansiReset
}

// FavoriteMarker returns a star for favorites and "" otherwise.
func FavoriteMarker(favorite bool) string {
	if !favorite {
		return ""
	}
	if !ansiEnabled() {
		return "*"
	}
	return ansiYellow + "★" + ansiReset
}

// Checkbox renders a todo's completion state.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// Faint dims text when stdout supports color.
func Faint(text string) string {
	if text == "" || !ansiEnabled() {
		return text
	}
	return ansiFaint + text + ansiReset
}

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
