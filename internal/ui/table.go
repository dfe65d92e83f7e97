package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultCellWidth bounds free-text columns such as titles and previews.
const DefaultCellWidth = 50

const tableCellEllipsis = "..."

// TableBuilder collects rows and renders a formatted table.
type TableBuilder struct {
	headers []string
	rows    [][]string
}

// NewTableBuilder returns a builder with preallocated rows.
func NewTableBuilder(headers []string, capacity int) *TableBuilder {
	return &TableBuilder{headers: headers, rows: make([][]string, 0, capacity)}
}

// AddRow appends a row to the table.
func (builder *TableBuilder) AddRow(row ...string) {
	builder.rows = append(builder.rows, row)
}

// Len returns the number of rows added so far.
func (builder *TableBuilder) Len() int {
	return len(builder.rows)
}

// String renders the table output.
func (builder *TableBuilder) String() string {
	return FormatTable(builder.headers, builder.rows)
}

// FormatTable renders headers and rows as columns separated by two spaces.
// The last column is never padded.
func FormatTable(headers []string, rows [][]string) string {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, normalizeRow(headers))
	for _, row := range rows {
		all = append(all, normalizeRow(row))
	}

	widths := make([]int, len(headers))
	for _, row := range all {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var builder strings.Builder
	for _, row := range all {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			if i < len(widths) {
				builder.WriteString(strings.Repeat(" ", widths[i]-displayWidth(cell)+2))
			}
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// TruncateCell flattens line breaks and shortens value to at most max
// display columns, ending in an ellipsis when cut.
func TruncateCell(value string, max int) string {
	value = normalizeTableCell(value)
	if displayWidth(value) <= max {
		return value
	}

	limit := max - runewidth.StringWidth(tableCellEllipsis)
	if limit <= 0 {
		return tableCellEllipsis
	}
	return truncateVisible(value, limit) + tableCellEllipsis
}

// TruncateTableCell is TruncateCell at DefaultCellWidth.
func TruncateTableCell(value string) string {
	return TruncateCell(value, DefaultCellWidth)
}

func normalizeRow(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = normalizeTableCell(cell)
	}
	return out
}

func displayWidth(value string) int {
	return runewidth.StringWidth(stripANSICodes(value))
}

func normalizeTableCell(value string) string {
	value = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
	return strings.TrimRight(value, " ")
}

// truncateVisible keeps escape sequences intact and stops once max display
// columns have been written.
func truncateVisible(value string, max int) string {
	var builder strings.Builder
	visible := 0
	for i := 0; i < len(value); {
		if value[i] == '\x1b' && i+1 < len(value) && value[i+1] == '[' {
			end := i + 2
			for end < len(value) && value[end] != 'm' {
				end++
			}
			if end < len(value) {
				end++
			}
			builder.WriteString(value[i:end])
			i = end
			continue
		}
		r, size := utf8.DecodeRuneInString(value[i:])
		w := runewidth.RuneWidth(r)
		if visible+w > max {
			break
		}
		builder.WriteString(value[i : i+size])
		visible += w
		i += size
	}
	return builder.String()
}

func stripANSICodes(input string) string {
	var builder strings.Builder
	inEscape := false
	for i := 0; i < len(input); i++ {
		char := input[i]
		if inEscape {
			if char == 'm' {
				inEscape = false
			}
			continue
		}
		if char == '\x1b' {
			inEscape = true
			continue
		}
		builder.WriteByte(char)
	}
	return builder.String()
}
