package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// indent is prepended to every rendered line.
const indent = "  "

// Table is a borderless column table with a rule under the header and an
// optional highlighted row.
type Table struct {
	headers []string
	rows    [][]string
	// highlightRow is the 0-based row index to highlight (the next prayer). -1 = none.
	highlightRow int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:      headers,
		highlightRow: -1,
	}
}

// AddRow appends a row of values. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(values []string) {
	row := make([]string, len(t.headers))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// SetHighlightRow sets which row index (0-based) should be highlighted.
func (t *Table) SetHighlightRow(idx int) {
	t.highlightRow = idx
}

// Render produces the table with every line indented and newline-terminated.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	last := len(t.headers) - 1
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderRow(false).
		BorderHeader(true).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = boldStyle
			case row == t.highlightRow:
				s = accentStyle
			default:
				s = renderer.NewStyle()
			}
			if col < last {
				s = s.PaddingRight(2)
			}
			return s
		})

	var sb strings.Builder
	for _, line := range strings.Split(tbl.Render(), "\n") {
		sb.WriteString(indent + strings.TrimRight(line, " ") + "\n")
	}
	return sb.String()
}
