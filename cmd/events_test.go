package cmd

import (
	"flag"
	"testing"

	"github.com/etnz/allocation/table"
	"github.com/google/go-cmp/cmp"
)

func TestEventFlag(t *testing.T) {
	var events []event
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Var(eventFlag{kind: sortEvent, events: &events}, "sort", "")
	f.Var(eventFlag{kind: expandEvent, events: &events}, "expand", "")
	f.Var(eventFlag{kind: nestedSortEvent, events: &events}, "nsort", "")

	err := f.Parse([]string{"-sort", "Value", "-expand", "a:b", "-sort", "1", "-nsort", "a:b:Symbol"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []event{
		{kind: sortEvent, column: "Value"},
		{kind: expandEvent, key: "a:b"},
		{kind: sortEvent, column: "1"},
		{kind: nestedSortEvent, key: "a:b", column: "Symbol"},
	}
	if diff := cmp.Diff(want, events, cmp.AllowUnexported(event{})); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestEventFlag_Invalid(t *testing.T) {
	for _, v := range []string{"", "bonds", ":1", "bonds:"} {
		var events []event
		if err := (eventFlag{kind: nestedSortEvent, events: &events}).Set(v); err == nil {
			t.Errorf("Set(%q) succeeded, want an error", v)
		}
	}
}

func TestColumnIndex(t *testing.T) {
	labels := []string{"Name", "Value", "Net"}
	tests := []struct {
		column  string
		want    int
		wantErr bool
	}{
		{"Value", 1, false},
		{"net", 2, false},
		{"0", 0, false},
		{"3", 0, true},
		{"-1", 0, true},
		{"Price", 0, true},
	}
	for _, tt := range tests {
		got, err := columnIndex(labels, tt.column)
		if (err != nil) != tt.wantErr {
			t.Errorf("columnIndex(%q) error = %v, wantErr %v", tt.column, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("columnIndex(%q) = %d, want %d", tt.column, got, tt.want)
		}
	}
}

func bodyKeys(t *table.Table) []string {
	var keys []string
	for _, r := range t.Body {
		keys = append(keys, r.Key)
	}
	return keys
}

func TestPositionTable_Apply(t *testing.T) {
	withFiles(t, testTargets, testPositions)
	tbl, err := LoadPositionTable()
	if err != nil {
		t.Fatalf("LoadPositionTable() error = %v", err)
	}

	events := []event{
		{kind: sortEvent, column: "Value"},
		{kind: expandEvent, key: "equities"},
		{kind: nestedSortEvent, key: "equities", column: "Symbol"},
		{kind: nestedSortEvent, key: "equities", column: "Symbol"},
	}
	for _, e := range events {
		if err := tbl.apply(e); err != nil {
			t.Fatalf("apply(%v) error = %v", e, err)
		}
	}

	r := tbl.Render()
	if diff := cmp.Diff([]string{"unallocated", "bonds", "equities"}, bodyKeys(r)); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	nested := r.Body[2].Nested
	if nested == nil {
		t.Fatalf("equities has no nested table")
	}
	if diff := cmp.Diff([]string{"VXUS", "VT"}, bodyKeys(nested)); diff != "" {
		t.Errorf("nested rows (-want +got):\n%s", diff)
	}
}

func TestPositionTable_ExpandAll(t *testing.T) {
	withFiles(t, testTargets, testPositions)
	tbl, err := LoadPositionTable()
	if err != nil {
		t.Fatalf("LoadPositionTable() error = %v", err)
	}
	tbl.expandAll()
	for _, r := range tbl.Render().Body {
		if !r.Expanded {
			t.Errorf("row %q is not expanded", r.Key)
		}
	}
}
