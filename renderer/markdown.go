package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/allocation/table"
)

// Sort indicators and expand/collapse affordances. An ascending column
// points down, toward the larger values.
const (
	AscendingIcon  = "▼"
	DescendingIcon = "▲"
	CollapsedIcon  = "▸"
	ExpandedIcon   = "▾"
)

// Markdown renders t as a GitHub flavored markdown table.
//
// Markdown tables cannot nest, so a nested table is flattened directly
// beneath its parent row, shifted right by one column, with its header and
// footer in bold. Rows are padded to the widest row of the tree.
func Markdown(t *table.Table) string {
	var b strings.Builder
	m := &markdownTable{w: &b, width: width(t, 0)}

	header := make([]string, 0, m.width)
	aligns := make([]table.Align, 0, m.width)
	if t.Expandable {
		header = append(header, "")
		aligns = append(aligns, table.Center)
	}
	for _, c := range t.Header {
		header = append(header, HeaderText(c))
		aligns = append(aligns, c.Align)
	}
	m.row(header)
	m.separator(aligns)
	m.body(t, 0)
	if t.Footer != nil {
		m.row(m.footer(t, 0))
	}
	return b.String()
}

// HeaderText returns the text of a header cell with its sort indicator.
func HeaderText(c table.Cell) string {
	switch c.Sort {
	case table.Ascending:
		return c.Text + " " + AscendingIcon
	case table.Descending:
		return c.Text + " " + DescendingIcon
	default:
		return c.Text
	}
}

// width returns the number of columns needed to render t, shifted by offset
// columns, and its nested tables.
func width(t *table.Table, offset int) int {
	w := offset + len(t.Header)
	if t.Expandable {
		w++
	}
	for _, r := range t.Body {
		if r.Nested != nil {
			w = max(w, width(r.Nested, offset+1))
		}
	}
	return w
}

type markdownTable struct {
	w     io.Writer
	width int
}

// row prints cells padded to the table width.
func (m *markdownTable) row(cells []string) {
	fmt.Fprint(m.w, "|")
	for i := 0; i < m.width; i++ {
		text := ""
		if i < len(cells) {
			text = escape(cells[i])
		}
		fmt.Fprintf(m.w, " %s |", text)
	}
	fmt.Fprintln(m.w)
}

func (m *markdownTable) separator(aligns []table.Align) {
	fmt.Fprint(m.w, "|")
	for i := 0; i < m.width; i++ {
		a := table.Left
		if i < len(aligns) {
			a = aligns[i]
		}
		switch a {
		case table.Right:
			fmt.Fprint(m.w, "---:|")
		case table.Center:
			fmt.Fprint(m.w, ":---:|")
		default:
			fmt.Fprint(m.w, ":---|")
		}
	}
	fmt.Fprintln(m.w)
}

// body prints the rows of t and, beneath each expanded row, its nested table.
func (m *markdownTable) body(t *table.Table, offset int) {
	for _, r := range t.Body {
		cells := make([]string, offset, m.width)
		if t.Expandable {
			cells = append(cells, affordance(r))
		}
		for _, c := range r.Cells {
			cells = append(cells, c.Text)
		}
		m.row(cells)
		if r.Nested != nil {
			m.nested(r.Nested, offset+1)
		}
	}
}

func (m *markdownTable) nested(t *table.Table, offset int) {
	header := make([]string, offset, m.width)
	if t.Expandable {
		header = append(header, "")
	}
	for _, c := range t.Header {
		header = append(header, bold(HeaderText(c)))
	}
	m.row(header)
	m.body(t, offset)
	if t.Footer != nil {
		m.row(m.footer(t, offset))
	}
}

func (m *markdownTable) footer(t *table.Table, offset int) []string {
	cells := make([]string, offset, m.width)
	if t.Expandable {
		cells = append(cells, "")
	}
	for _, c := range t.Footer {
		cells = append(cells, bold(c.Text))
	}
	return cells
}

func affordance(r table.Row) string {
	switch {
	case !r.Expandable:
		return ""
	case r.Expanded:
		return ExpandedIcon
	default:
		return CollapsedIcon
	}
}

func bold(s string) string {
	if s == "" {
		return s
	}
	return "**" + s + "**"
}

// escape makes s safe for a markdown table cell.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
