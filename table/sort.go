package table

import "slices"

// NoColumn is the column index of a table that is not sorted.
const NoColumn = -1

// SortState is the (direction, column) pair controlling the display order of
// a table.
type SortState struct {
	Direction Direction
	Column    int
}

// Unsorted is the initial sort state: rows in their original order.
var Unsorted = SortState{Direction: Ascending, Column: NoColumn}

// IsSorted reports whether a column has been chosen.
func (s SortState) IsSorted() bool { return s.Column != NoColumn }

// Toggle returns the state following a click on column i.
//
// A new column is sorted ascending, the same column flips direction. Once a
// column is chosen, the table never goes back to the original order.
func (s SortState) Toggle(i int) SortState {
	if s.Column != i {
		return SortState{Direction: Ascending, Column: i}
	}
	if s.Direction == Ascending {
		return SortState{Direction: Descending, Column: i}
	}
	return SortState{Direction: Ascending, Column: i}
}

// Of returns the sort indicator of column i.
func (s SortState) Of(i int) Direction {
	if !s.IsSorted() || s.Column != i {
		return None
	}
	return s.Direction
}

// Sorted returns a copy of rows in the display order defined by s.
//
// The sort is stable: ties keep their original relative order, exactly as
// the column comparator defines them. rows is never modified.
func Sorted[R any](s SortState, rows []R, cols []*Column[R]) []R {
	view := slices.Clone(rows)
	if s.Column < 0 || s.Column >= len(cols) {
		return view
	}
	col, dir := cols[s.Column], int(s.Direction)
	slices.SortStableFunc(view, func(a, b R) int {
		return dir * col.Sort(a, b)
	})
	return view
}
