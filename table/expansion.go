package table

import (
	"maps"
	"slices"
)

// ExpansionState tracks which rows are expanded, by row key.
// Absent keys are collapsed, and the zero value has every row collapsed. Keys of rows that no longer exist are harmless:
// they are never displayed and never pruned.
type ExpansionState map[string]bool

// IsExpanded reports whether the row key is expanded.
func (e ExpansionState) IsExpanded(key string) bool { return e[key] }

// Toggle flips the row key in place.
func (e *ExpansionState) Toggle(key string) {
	if *e == nil {
		*e = make(ExpansionState)
	}
	(*e)[key] = !(*e)[key]
}

// Toggled returns a copy of e with the row key flipped.
func (e ExpansionState) Toggled(key string) ExpansionState {
	c := e.Clone()
	c.Toggle(key)
	return c
}

// Clone returns a copy of e.
func (e ExpansionState) Clone() ExpansionState {
	c := make(ExpansionState, len(e)+1)
	maps.Copy(c, e)
	return c
}

// Keys returns the expanded keys, sorted.
func (e ExpansionState) Keys() []string {
	keys := make([]string, 0, len(e))
	for k, v := range e {
		if v {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
