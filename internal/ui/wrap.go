package ui

import (
	"strings"

	internalstrings "github.com/amonks/noteit/internal/strings"
	"github.com/muesli/reflow/wordwrap"
)

// ReflowParagraphs wraps each blank-line separated paragraph to width.
func ReflowParagraphs(value string, width int) string {
	value = strings.TrimSpace(internalstrings.NormalizeNewlines(value))
	if value == "" {
		return ""
	}
	if width < 1 {
		width = 1
	}
	paragraphs := splitParagraphs(value)
	wrapped := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		normalized := internalstrings.NormalizeWhitespace(paragraph)
		if normalized == "" {
			continue
		}
		wrapped = append(wrapped, wordwrap.String(normalized, width))
	}
	return strings.Join(wrapped, "\n\n")
}

// IndentLines prefixes every non-empty line with spaces.
func IndentLines(value string, spaces int) string {
	if value == "" || spaces <= 0 {
		return value
	}
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func splitParagraphs(value string) []string {
	lines := strings.Split(value, "\n")
	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		paragraphs = append(paragraphs, strings.Join(current, " "))
		current = nil
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}
