package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/allocation"
	"github.com/etnz/allocation/table"
)

type eventKind int

const (
	sortEvent eventKind = iota
	expandEvent
	nestedSortEvent
)

// event is a click on the table, given on the command line.
type event struct {
	kind   eventKind
	key    string // row key, for expand and nested sort
	column string // column label or index, for sorts
}

func (e event) String() string {
	switch e.kind {
	case sortEvent:
		return "sort " + e.column
	case expandEvent:
		return "expand " + e.key
	default:
		return "sort " + e.key + ":" + e.column
	}
}

// eventFlag is a repeatable flag appending events to a shared list, so that
// events are replayed in command line order whatever their kind.
type eventFlag struct {
	kind   eventKind
	events *[]event
}

func (f eventFlag) String() string { return "" }

func (f eventFlag) Set(v string) error {
	if v == "" {
		return fmt.Errorf("empty value")
	}
	e := event{kind: f.kind}
	switch f.kind {
	case sortEvent:
		e.column = v
	case expandEvent:
		e.key = v
	case nestedSortEvent:
		i := strings.LastIndex(v, ":")
		if i <= 0 || i == len(v)-1 {
			return fmt.Errorf("%q is not in the <key>:<column> form", v)
		}
		e.key, e.column = v[:i], v[i+1:]
	}
	*f.events = append(*f.events, e)
	return nil
}

// positionTable is the positions table with what is needed to resolve events
// given by name.
type positionTable struct {
	*table.Collapsible[allocation.TargetState]
	nested []string
}

func newPositionTable(states []allocation.TargetState, total allocation.Money) *positionTable {
	var nested []string
	for _, c := range allocation.PositionColumns(total.Currency()) {
		nested = append(nested, c.Label())
	}
	return &positionTable{
		Collapsible: allocation.NewPositionTable(states, total),
		nested:      nested,
	}
}

// keys returns the keys of the rows in display order.
func (t *positionTable) keys() []string {
	var keys []string
	for _, r := range t.Rows() {
		keys = append(keys, r.Key())
	}
	return keys
}

// expandAll expands every row.
func (t *positionTable) expandAll() {
	for _, key := range t.keys() {
		if !t.IsExpanded(key) {
			t.ToggleExpand(key)
		}
	}
}

// apply replays e on the table.
func (t *positionTable) apply(e event) error {
	switch e.kind {
	case sortEvent:
		var labels []string
		for _, c := range t.Columns() {
			labels = append(labels, c.Label())
		}
		i, err := columnIndex(labels, e.column)
		if err != nil {
			return err
		}
		t.ToggleSort(i)
	case expandEvent:
		if !slices.Contains(t.keys(), e.key) {
			return fmt.Errorf("unknown row %q, want one of %s", e.key, strings.Join(t.keys(), ", "))
		}
		t.ToggleExpand(e.key)
	case nestedSortEvent:
		i, err := columnIndex(t.nested, e.column)
		if err != nil {
			return err
		}
		if !t.ToggleNestedSort(e.key, i) {
			return fmt.Errorf("row %q is not expanded", e.key)
		}
	}
	return nil
}

// columnIndex resolves a column given by label (case insensitive) or by
// index.
func columnIndex(labels []string, column string) (int, error) {
	if i, err := strconv.Atoi(column); err == nil {
		if i < 0 || i >= len(labels) {
			return 0, fmt.Errorf("column index %d is out of range [0,%d)", i, len(labels))
		}
		return i, nil
	}
	for i, l := range labels {
		if strings.EqualFold(l, column) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown column %q, want one of %s", column, strings.Join(labels, ", "))
}
