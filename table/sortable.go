package table

// Keyed is implemented by rows. Key must be unique within a row sequence and
// stable across renders.
type Keyed interface {
	Key() string
}

// Sortable is a table controller whose columns can be sorted by the user.
//
// It owns its SortState and nothing else: rows and columns belong to the
// caller. A Sortable is not safe for concurrent use.
type Sortable[R Keyed] struct {
	rows  []R
	cols  []*Column[R]
	state SortState
}

// NewSortable returns an unsorted table of rows.
// The column order is fixed for the lifetime of the table.
func NewSortable[R Keyed](rows []R, cols ...*Column[R]) *Sortable[R] {
	return &Sortable[R]{rows: rows, cols: cols, state: Unsorted}
}

// SetRows replaces the rows, keeping the sort state.
func (t *Sortable[R]) SetRows(rows []R) { t.rows = rows }

// Columns returns the columns of the table.
func (t *Sortable[R]) Columns() []*Column[R] { return t.cols }

// State returns the current sort state.
func (t *Sortable[R]) State() SortState { return t.state }

// SetState restores a sort state. A state pointing outside of the columns
// is reset to Unsorted.
func (t *Sortable[R]) SetState(s SortState) {
	if s.Column < NoColumn || s.Column >= len(t.cols) || s.Direction == None {
		s = Unsorted
	}
	t.state = s
}

// ToggleSort handles a click on the header of column i.
// It reports false, and changes nothing, if i is not a column of the table.
func (t *Sortable[R]) ToggleSort(i int) bool {
	if i < 0 || i >= len(t.cols) {
		return false
	}
	t.state = t.state.Toggle(i)
	return true
}

// Rows returns the rows in display order.
func (t *Sortable[R]) Rows() []R { return Sorted(t.state, t.rows, t.cols) }

// Render returns the render tree of the table.
func (t *Sortable[R]) Render() *Table {
	tbl := &Table{Header: t.header()}
	for _, r := range t.Rows() {
		tbl.Body = append(tbl.Body, Row{Key: r.Key(), Cells: cells(r, t.cols)})
	}
	return tbl
}

func (t *Sortable[R]) header() []Cell {
	header := make([]Cell, len(t.cols))
	for i, c := range t.cols {
		header[i] = c.RenderHeader(t.state.Of(i))
		header[i].Index = i
	}
	return header
}

func (t *Sortable[R]) footer() []Cell {
	footer := make([]Cell, len(t.cols))
	for i, c := range t.cols {
		footer[i] = c.RenderFooter(t.rows)
	}
	return footer
}

// cells is the default row renderer: one cell per column.
func cells[R any](r R, cols []*Column[R]) []Cell {
	row := make([]Cell, len(cols))
	for i, c := range cols {
		row[i] = c.RenderCell(r)
	}
	return row
}
