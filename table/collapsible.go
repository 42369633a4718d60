package table

// Nested is a component rendered beneath an expanded row of a Collapsible
// table whose rows are of type R.
type Nested[R any] interface {
	// Render renders the nested table of parent, or nil to render nothing.
	Render(parent R) *Table
	ToggleSort(i int) bool
	State() SortState
	SetState(s SortState)
}

// Nest returns a factory of nested sortable tables listing the rows returned
// by rows(parent). Each instance owns its own sort state.
// Nothing is rendered for a parent with no nested rows.
func Nest[R any, N Keyed](rows func(parent R) []N, cols ...*Column[N]) func() Nested[R] {
	return func() Nested[R] {
		return &nestedTable[R, N]{rows: rows, table: NewSortable[N](nil, cols...)}
	}
}

type nestedTable[R any, N Keyed] struct {
	rows  func(R) []N
	table *Sortable[N]
}

func (n *nestedTable[R, N]) Render(parent R) *Table {
	rows := n.rows(parent)
	if len(rows) == 0 {
		return nil
	}
	n.table.SetRows(rows)
	return n.table.Render()
}

func (n *nestedTable[R, N]) ToggleSort(i int) bool { return n.table.ToggleSort(i) }
func (n *nestedTable[R, N]) State() SortState      { return n.table.State() }
func (n *nestedTable[R, N]) SetState(s SortState)  { n.table.SetState(s) }

// Collapsible is a sortable table whose rows can be expanded to show a nested
// component, with an optional footer row.
//
// The expansion state is keyed by row key, so it follows a row wherever the
// current sort places it. Each expanded row gets its own Nested instance,
// created on expansion and dropped on collapse.
type Collapsible[R Keyed] struct {
	*Sortable[R]
	expanded  ExpansionState
	fragment  func(r R, cols []*Column[R]) []Cell
	newNested func() Nested[R]
	children  map[string]Nested[R]
	footer    bool
}

// NewCollapsible returns a collapsible table of rows with every row collapsed.
func NewCollapsible[R Keyed](rows []R, cols ...*Column[R]) *Collapsible[R] {
	return &Collapsible[R]{
		Sortable: NewSortable(rows, cols...),
		expanded: make(ExpansionState),
		fragment: cells[R],
		children: make(map[string]Nested[R]),
	}
}

// WithFragment replaces the renderer of the data cells of a row.
func (t *Collapsible[R]) WithFragment(fragment func(r R, cols []*Column[R]) []Cell) *Collapsible[R] {
	t.fragment = fragment
	return t
}

// WithNested sets the factory of the component rendered beneath expanded
// rows. Without it, rows cannot be expanded.
func (t *Collapsible[R]) WithNested(newNested func() Nested[R]) *Collapsible[R] {
	t.newNested = newNested
	clear(t.children)
	return t
}

// WithFooter enables the footer row.
func (t *Collapsible[R]) WithFooter() *Collapsible[R] {
	t.footer = true
	return t
}

// ToggleExpand handles a click on the affordance of row key, and returns
// whether the row is now expanded. Other rows are not affected.
func (t *Collapsible[R]) ToggleExpand(key string) bool {
	t.expanded.Toggle(key)
	if !t.expanded.IsExpanded(key) {
		delete(t.children, key)
	}
	return t.expanded.IsExpanded(key)
}

// IsExpanded reports whether row key is expanded.
func (t *Collapsible[R]) IsExpanded(key string) bool { return t.expanded.IsExpanded(key) }

// Expansion returns a copy of the expansion state.
func (t *Collapsible[R]) Expansion() ExpansionState { return t.expanded.Clone() }

// SetExpansion restores an expansion state.
func (t *Collapsible[R]) SetExpansion(e ExpansionState) {
	t.expanded = e.Clone()
	for key := range t.children {
		if !t.expanded.IsExpanded(key) {
			delete(t.children, key)
		}
	}
}

// ToggleNestedSort handles a click on the header of column i of the table
// nested beneath row key. It reports false if the row is not expanded.
func (t *Collapsible[R]) ToggleNestedSort(key string, i int) bool {
	n := t.child(key)
	if n == nil {
		return false
	}
	return n.ToggleSort(i)
}

// NestedState returns the sort state of the table nested beneath row key.
func (t *Collapsible[R]) NestedState(key string) (SortState, bool) {
	n := t.child(key)
	if n == nil {
		return Unsorted, false
	}
	return n.State(), true
}

// SetNestedState restores the sort state of the table nested beneath row
// key. It reports false if the row is not expanded.
func (t *Collapsible[R]) SetNestedState(key string, s SortState) bool {
	n := t.child(key)
	if n == nil {
		return false
	}
	n.SetState(s)
	return true
}

// child returns the nested component of an expanded row, nil otherwise.
func (t *Collapsible[R]) child(key string) Nested[R] {
	if t.newNested == nil || !t.expanded.IsExpanded(key) {
		return nil
	}
	n, ok := t.children[key]
	if !ok {
		n = t.newNested()
		t.children[key] = n
	}
	return n
}

// Render returns the render tree of the table.
func (t *Collapsible[R]) Render() *Table {
	expandable := t.newNested != nil
	tbl := &Table{Header: t.header(), Expandable: expandable}
	for _, r := range t.Rows() {
		key := r.Key()
		row := Row{Key: key, Cells: t.fragment(r, t.cols), Expandable: expandable}
		if n := t.child(key); n != nil {
			row.Expanded = true
			if nested := n.Render(r); nested != nil {
				nested.Key = key
				row.Nested = nested
			}
		}
		tbl.Body = append(tbl.Body, row)
	}
	if t.footer {
		tbl.Footer = t.Sortable.footer()
	}
	return tbl
}
