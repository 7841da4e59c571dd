// Package formatter renders gallery item lists for non-interactive output:
// a column table, a tree grouped by location, and YAML/JSON documents.
package formatter

import (
	"fmt"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

// Column names accepted by TableOptions.Columns.
const (
	ColIndex       = "#"
	ColTitle       = "TITLE"
	ColExt         = "EXT"
	ColURI         = "URI"
	ColDescription = "DESCRIPTION"
)

// DefaultColumns is the column order used when TableOptions.Columns is empty.
var DefaultColumns = []string{ColIndex, ColTitle, ColExt, ColURI}

var knownColumns = []string{ColIndex, ColTitle, ColExt, ColURI, ColDescription}

const (
	sepWidth    = 2
	minColWidth = 3
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TableOptions configures RenderItemTable.
type TableOptions struct {
	// Width caps the table width; 0 renders at natural width.
	Width   int
	NoColor bool
	Columns []string
}

// Ext returns the lower-cased extension of the item's URI without the dot.
func Ext(item gallery.Item) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(item.Source.URI)), ".")
}

// ParseColumns splits a comma separated column list and rejects unknown
// names. Names are matched case-insensitively.
func ParseColumns(list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	var cols []string
	for _, raw := range strings.Split(list, ",") {
		c := strings.ToUpper(strings.TrimSpace(raw))
		if c == "" {
			continue
		}
		found := false
		for _, k := range knownColumns {
			if c == k {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown column %q (use %s)", raw, strings.Join(knownColumns, ","))
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// ItemRows turns items into table cells for columns. The index column is
// the 1-based gallery position.
func ItemRows(items []gallery.Item, columns []string) [][]string {
	rows := make([][]string, len(items))
	for i, item := range items {
		row := make([]string, len(columns))
		for j, col := range columns {
			switch col {
			case ColIndex:
				row[j] = fmt.Sprintf("%d", i+1)
			case ColTitle:
				row[j] = item.Title
			case ColExt:
				row[j] = Ext(item)
			case ColURI:
				row[j] = item.Source.URI
			case ColDescription:
				row[j] = strings.Join(strings.Fields(item.Description), " ")
			}
		}
		rows[i] = row
	}
	return rows
}

// RenderItemTable renders items as a table with a header and a separator
// line. When the table is wider than opts.Width the widest column is
// narrowed first and overflowing cells end in an ellipsis.
func RenderItemTable(items []gallery.Item, opts TableOptions) string {
	if len(items) == 0 {
		return ""
	}
	columns := opts.Columns
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	rows := ItemRows(items, columns)
	widths := naturalWidths(columns, rows)
	if opts.Width > 0 {
		shrinkToFit(widths, opts.Width-sepWidth*(len(widths)-1))
	}

	var b strings.Builder
	header := renderCells(columns, widths)
	sep := strings.Repeat("─", totalWidth(widths))
	if !opts.NoColor {
		header = headerStyle.Render(header)
		sep = separatorStyle.Render(sep)
	}
	b.WriteString(header + "\n")
	b.WriteString(sep + "\n")
	for _, row := range rows {
		b.WriteString(renderCells(row, widths) + "\n")
	}
	return b.String()
}

func naturalWidths(columns []string, rows [][]string) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range rows {
		for i, val := range row {
			if w := runewidth.StringWidth(val); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// shrinkToFit narrows the widest column one cell at a time until the
// columns fit in avail or the widest is already at minColWidth.
func shrinkToFit(widths []int, avail int) {
	for sum(widths) > avail {
		widest := 0
		for i, w := range widths {
			if w > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColWidth {
			return
		}
		widths[widest]--
	}
}

func renderCells(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		cell = runewidth.Truncate(cell, widths[i], "…")
		if i < len(cells)-1 {
			cell = runewidth.FillRight(cell, widths[i])
		}
		parts[i] = cell
	}
	return strings.Join(parts, strings.Repeat(" ", sepWidth))
}

func totalWidth(widths []int) int {
	if len(widths) == 0 {
		return 0
	}
	return sum(widths) + sepWidth*(len(widths)-1)
}

func sum(ws []int) int {
	n := 0
	for _, w := range ws {
		n += w
	}
	return n
}
