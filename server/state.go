// Package server serves the positions table over HTTP.
//
// The server keeps no session: the whole view state (sort, expansion, and
// the sort of every nested table) lives in the query string, and every link
// of the page carries the state that follows its event.
package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/etnz/allocation/table"
	"github.com/google/safehtml"
)

// Query parameters.
const (
	paramSort   = "sort"
	paramDir    = "dir"
	paramOpen   = "open"
	paramNested = "nsort"
)

// State is the view state of a collapsible table.
type State struct {
	Sort     table.SortState
	Expanded table.ExpansionState
	// Nested holds the sort state of the tables nested beneath expanded rows.
	Nested map[string]table.SortState
}

// NewState returns the initial state: unsorted, every row collapsed.
func NewState() State {
	return State{
		Sort:     table.Unsorted,
		Expanded: make(table.ExpansionState),
		Nested:   make(map[string]table.SortState),
	}
}

// ParseState reads the state from query values. Malformed values are
// ignored.
func ParseState(v url.Values) State {
	s := NewState()
	if col, err := strconv.Atoi(v.Get(paramSort)); err == nil && col >= 0 {
		s.Sort = table.SortState{Direction: parseDirection(v.Get(paramDir)), Column: col}
	}
	for _, key := range v[paramOpen] {
		s.Expanded[key] = true
	}
	for _, n := range v[paramNested] {
		// key:col:dir, the key may itself contain colons.
		parts := strings.Split(n, ":")
		if len(parts) < 3 {
			continue
		}
		key := strings.Join(parts[:len(parts)-2], ":")
		col, err := strconv.Atoi(parts[len(parts)-2])
		if err != nil || col < 0 {
			continue
		}
		s.Nested[key] = table.SortState{Direction: parseDirection(parts[len(parts)-1]), Column: col}
	}
	return s
}

func parseDirection(s string) table.Direction {
	if s == "-1" {
		return table.Descending
	}
	return table.Ascending
}

// Values encodes the state as query values. Nested states of collapsed rows
// are dropped.
func (s State) Values() url.Values {
	v := make(url.Values)
	if s.Sort.IsSorted() {
		v.Set(paramSort, strconv.Itoa(s.Sort.Column))
		v.Set(paramDir, strconv.Itoa(int(s.Sort.Direction)))
	}
	for _, key := range s.Expanded.Keys() {
		v.Add(paramOpen, key)
		if n, ok := s.Nested[key]; ok && n.IsSorted() {
			v.Add(paramNested, fmt.Sprintf("%s:%d:%d", key, n.Column, n.Direction))
		}
	}
	return v
}

// URL returns the URL of the page showing the state.
func (s State) URL() safehtml.URL {
	q := s.Values().Encode()
	if q == "" {
		return safehtml.URLSanitized("?")
	}
	return safehtml.URLSanitized("?" + q)
}

// clone returns a deep copy of s.
func (s State) clone() State {
	c := State{Sort: s.Sort, Expanded: s.Expanded.Clone(), Nested: make(map[string]table.SortState, len(s.Nested))}
	for k, v := range s.Nested {
		c.Nested[k] = v
	}
	return c
}

// WithSortToggled returns the state following a click on column col.
func (s State) WithSortToggled(col int) State {
	c := s.clone()
	c.Sort = c.Sort.Toggle(col)
	return c
}

// WithExpandToggled returns the state following a click on the affordance of
// row key. Collapsing a row forgets the sort of its nested table.
func (s State) WithExpandToggled(key string) State {
	c := s.clone()
	c.Expanded.Toggle(key)
	if !c.Expanded.IsExpanded(key) {
		delete(c.Nested, key)
	}
	return c
}

// WithNestedSortToggled returns the state following a click on column col
// of the table nested beneath row key.
func (s State) WithNestedSortToggled(key string, col int) State {
	c := s.clone()
	n, ok := c.Nested[key]
	if !ok {
		n = table.Unsorted
	}
	c.Nested[key] = n.Toggle(col)
	return c
}

// Apply restores the state into t.
func (s State) Apply(t Table) {
	t.SetState(s.Sort)
	t.SetExpansion(s.Expanded)
	for _, key := range s.Expanded.Keys() {
		if n, ok := s.Nested[key]; ok {
			t.SetNestedState(key, n)
		}
	}
}

// Capture returns the state of t.
func Capture(t Table) State {
	s := NewState()
	s.Sort = t.State()
	s.Expanded = t.Expansion()
	for _, key := range s.Expanded.Keys() {
		if n, ok := t.NestedState(key); ok && n.IsSorted() {
			s.Nested[key] = n
		}
	}
	return s
}

// Table is the state surface of a table.Collapsible.
type Table interface {
	State() table.SortState
	SetState(table.SortState)
	Expansion() table.ExpansionState
	SetExpansion(table.ExpansionState)
	NestedState(key string) (table.SortState, bool)
	SetNestedState(key string, s table.SortState) bool
	Render() *table.Table
}

// links builds the links of a page from its state.
type links struct{ state State }

func (l links) Sort(key string, col int) safehtml.URL {
	if key == "" {
		return l.state.WithSortToggled(col).URL()
	}
	return l.state.WithNestedSortToggled(key, col).URL()
}

func (l links) Expand(key string) safehtml.URL {
	return l.state.WithExpandToggled(key).URL()
}
