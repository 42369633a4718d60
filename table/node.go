// Package table is a headless engine to render tabular data with sortable
// columns and expandable rows.
//
// Columns describe how to compare, display and aggregate rows. Controllers
// (Sortable and Collapsible) own the transient interaction state (which
// column is sorted, which rows are expanded) and derive a render tree (Table)
// that presentation layers turn into markdown, HTML or anything else.
//
// The engine never mutates the rows it is given, never fails, and renders
// the same tree for the same rows, columns and state.
package table

// Direction is the sort direction of a column.
type Direction int

const (
	None       Direction = 0
	Ascending  Direction = 1
	Descending Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "none"
	}
}

// Align is the horizontal alignment of a column.
type Align int

const (
	Left Align = iota
	Center
	Right
)

// Cell is a rendered table cell.
type Cell struct {
	Text  string
	Align Align
	// Sort is the sort indicator of a header cell.
	Sort Direction
	// Index is the column index of a header cell, the target of a sort toggle.
	Index int
}

// Row is a rendered body row.
type Row struct {
	Key   string
	Cells []Cell
	// Expandable is true when the row shows an expand/collapse affordance.
	Expandable bool
	Expanded   bool
	// Nested is the table rendered directly beneath the row, nil if none.
	Nested *Table
}

// Table is the render tree of a table.
type Table struct {
	// Key identifies the table: "" for a top level table, the parent row key
	// for a nested one.
	Key    string
	Header []Cell
	Body   []Row
	// Footer is nil when the table has no footer.
	Footer []Cell
	// Expandable is true when rows carry an expand/collapse affordance.
	Expandable bool
}
