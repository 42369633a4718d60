package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/etnz/allocation/table"
	"github.com/google/go-cmp/cmp"
)

type item struct {
	key   string
	value int
}

func (i item) Key() string { return i.key }

type group struct {
	key   string
	items []item
}

func (g group) Key() string { return g.key }

func (g group) total() (n int) {
	for _, i := range g.items {
		n += i.value
	}
	return n
}

func newTable() *table.Collapsible[group] {
	rows := []group{
		{"beta", []item{{"b1", 1}, {"b2", 5}}},
		{"alpha", []item{{"a1", 3}, {"a2", 2}}},
	}
	nested := table.Nest(func(g group) []item { return g.items },
		table.Text("Item", item.Key),
		table.Numeric("Value", func(i item) int { return i.value }, nil),
	)
	return table.NewCollapsible(rows,
		table.Text("Group", group.Key),
		table.Numeric("Total", group.total, nil),
	).WithNested(nested).WithFooter()
}

func TestParseState(t *testing.T) {
	v, err := url.ParseQuery("sort=1&dir=-1&open=alpha&open=beta&nsort=alpha:1:1&nsort=a:b:1:-1")
	if err != nil {
		t.Fatal(err)
	}
	got := ParseState(v)
	want := State{
		Sort:     table.SortState{Direction: table.Descending, Column: 1},
		Expanded: table.ExpansionState{"alpha": true, "beta": true},
		Nested: map[string]table.SortState{
			"alpha": {Direction: table.Ascending, Column: 1},
			"a:b":   {Direction: table.Descending, Column: 1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseState() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseState_Malformed(t *testing.T) {
	v, err := url.ParseQuery("sort=x&dir=up&nsort=alpha&nsort=alpha:x:1&nsort=beta:-2:1")
	if err != nil {
		t.Fatal(err)
	}
	got := ParseState(v)
	if got.Sort != table.Unsorted {
		t.Errorf("Sort = %v, want unsorted", got.Sort)
	}
	if len(got.Nested) != 0 {
		t.Errorf("Nested = %v, want empty", got.Nested)
	}
}

func TestState_Values(t *testing.T) {
	s := NewState()
	s.Sort = table.SortState{Direction: table.Descending, Column: 0}
	s.Expanded["alpha"] = true
	s.Expanded["beta"] = false
	s.Nested["alpha"] = table.SortState{Direction: table.Ascending, Column: 1}
	s.Nested["beta"] = table.SortState{Direction: table.Ascending, Column: 0}

	got := s.Values().Encode()
	want := "dir=-1&nsort=alpha%3A1%3A1&open=alpha&sort=0"
	if got != want {
		t.Errorf("Values() = %q, want %q", got, want)
	}
	if diff := cmp.Diff(s.Sort, ParseState(s.Values()).Sort); diff != "" {
		t.Errorf("sort does not survive the URL (-want +got):\n%s", diff)
	}
}

func TestState_URL(t *testing.T) {
	if got := NewState().URL().String(); got != "?" {
		t.Errorf("URL() = %q, want %q", got, "?")
	}
	if got := NewState().WithSortToggled(1).URL().String(); got != "?dir=1&sort=1" {
		t.Errorf("URL() = %q, want %q", got, "?dir=1&sort=1")
	}
}

func TestState_Toggles(t *testing.T) {
	s := NewState()

	s = s.WithSortToggled(1).WithSortToggled(1)
	if want := (table.SortState{Direction: table.Descending, Column: 1}); s.Sort != want {
		t.Errorf("Sort = %v, want %v", s.Sort, want)
	}

	s = s.WithExpandToggled("alpha").WithNestedSortToggled("alpha", 0)
	if !s.Expanded.IsExpanded("alpha") {
		t.Errorf("alpha is not expanded")
	}
	if want := (table.SortState{Direction: table.Ascending, Column: 0}); s.Nested["alpha"] != want {
		t.Errorf("Nested[alpha] = %v, want %v", s.Nested["alpha"], want)
	}

	collapsed := s.WithExpandToggled("alpha")
	if collapsed.Expanded.IsExpanded("alpha") {
		t.Errorf("alpha is still expanded")
	}
	if _, ok := collapsed.Nested["alpha"]; ok {
		t.Errorf("collapsing alpha kept its nested sort")
	}
	// Toggles never mutate the receiver.
	if !s.Expanded.IsExpanded("alpha") {
		t.Errorf("toggling a copy collapsed the original")
	}
}

func TestApplyCapture(t *testing.T) {
	s := NewState()
	s.Sort = table.SortState{Direction: table.Descending, Column: 1}
	s.Expanded["alpha"] = true
	s.Nested["alpha"] = table.SortState{Direction: table.Descending, Column: 1}
	// beta is collapsed: its nested sort cannot be restored.
	s.Nested["beta"] = table.SortState{Direction: table.Ascending, Column: 1}

	tbl := newTable()
	s.Apply(tbl)
	got := Capture(tbl)

	want := NewState()
	want.Sort = s.Sort
	want.Expanded["alpha"] = true
	want.Nested["alpha"] = s.Nested["alpha"]
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Capture() mismatch (-want +got):\n%s", diff)
	}

	r := tbl.Render()
	if got, want := r.Body[0].Key, "beta"; got != want {
		t.Errorf("first row = %q, want %q", got, want)
	}
	nested := r.Body[1].Nested
	if nested == nil {
		t.Fatalf("alpha has no nested table")
	}
	if got, want := nested.Body[0].Key, "a1"; got != want {
		t.Errorf("first nested row = %q, want %q", got, want)
	}
}

func TestLinks(t *testing.T) {
	s := NewState().WithExpandToggled("alpha")
	l := links{state: s}

	if got, want := l.Sort("", 0).String(), "?dir=1&open=alpha&sort=0"; got != want {
		t.Errorf("Sort(\"\", 0) = %q, want %q", got, want)
	}
	if got, want := l.Sort("alpha", 1).String(), "?nsort=alpha%3A1%3A1&open=alpha"; got != want {
		t.Errorf("Sort(alpha, 1) = %q, want %q", got, want)
	}
	if got, want := l.Expand("alpha").String(), "?"; got != want {
		t.Errorf("Expand(alpha) = %q, want %q", got, want)
	}
}

func TestHandler(t *testing.T) {
	h, err := NewHandler("Groups", func(context.Context) (Table, error) { return newTable(), nil })
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/?sort=1&dir=1&open=beta", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", got)
	}
	body := rec.Body.String()
	for _, want := range []string{"<title>Groups</title>", "b1</td>", "b2</td>", "Total ▼"} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}
	if strings.Contains(body, "a1</td>") {
		t.Errorf("body shows rows of the collapsed group alpha")
	}
	// alpha (5) sorts before beta (6).
	if strings.Index(body, "alpha</td>") > strings.Index(body, "beta</td>") {
		t.Errorf("alpha is not sorted before beta")
	}
}

func TestHandler_LoadError(t *testing.T) {
	h, err := NewHandler("Groups", func(context.Context) (Table, error) { return nil, errors.New("boom") })
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestHandler_Method(t *testing.T) {
	h, err := NewHandler("Groups", func(context.Context) (Table, error) { return newTable(), nil })
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
