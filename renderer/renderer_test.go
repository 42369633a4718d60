package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/etnz/allocation/table"
	"github.com/google/go-cmp/cmp"
	"github.com/google/safehtml"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// sampleTable is a collapsible table with its first row expanded, the
// nested table sorted ascending on value, the outer one descending.
func sampleTable() *table.Table {
	return &table.Table{
		Expandable: true,
		Header: []table.Cell{
			{Text: "Name", Index: 0},
			{Text: "Value", Align: table.Right, Sort: table.Descending, Index: 1},
		},
		Body: []table.Row{
			{
				Key: "eq", Expandable: true, Expanded: true,
				Cells: []table.Cell{{Text: "Equities"}, {Text: "$8,000.00", Align: table.Right}},
				Nested: &table.Table{
					Key: "eq",
					Header: []table.Cell{
						{Text: "Symbol", Index: 0},
						{Text: "Value", Align: table.Right, Sort: table.Ascending, Index: 1},
					},
					Body: []table.Row{
						{Key: "VXUS", Cells: []table.Cell{{Text: "VXUS"}, {Text: "$2,000.00", Align: table.Right}}},
						{Key: "VT", Cells: []table.Cell{{Text: "VT"}, {Text: "$6,000.00", Align: table.Right}}},
					},
				},
			},
			{
				Key: "bd", Expandable: true,
				Cells: []table.Cell{{Text: "Bonds|Cash"}, {Text: "$3,000.00", Align: table.Right}},
			},
		},
		Footer: []table.Cell{{Text: "Total"}, {Text: "$11,000.00", Align: table.Right}},
	}
}

func TestMarkdown(t *testing.T) {
	want := `|  | Name | Value ▲ |
|:---:|:---|---:|
| ▾ | Equities | $8,000.00 |
|  | **Symbol** | **Value ▼** |
|  | VXUS | $2,000.00 |
|  | VT | $6,000.00 |
| ▸ | Bonds\|Cash | $3,000.00 |
|  | **Total** | **$11,000.00** |
`
	if diff := cmp.Diff(want, Markdown(sampleTable())); diff != "" {
		t.Errorf("Markdown() (-want +got):\n%s", diff)
	}
}

func TestMarkdown_Plain(t *testing.T) {
	tbl := &table.Table{
		Header: []table.Cell{{Text: "Ticker"}, {Text: "Weight", Align: table.Right, Index: 1}},
		Body: []table.Row{
			{Key: "a", Cells: []table.Cell{{Text: "VT"}, {Text: "60.00%", Align: table.Right}}},
		},
	}
	want := `| Ticker | Weight |
|:---|---:|
| VT | 60.00% |
`
	if diff := cmp.Diff(want, Markdown(tbl)); diff != "" {
		t.Errorf("Markdown() (-want +got):\n%s", diff)
	}
}

func TestMarkdown_Empty(t *testing.T) {
	tbl := &table.Table{
		Header: []table.Cell{{Text: "Name"}, {Text: "Value", Align: table.Right, Index: 1}},
		Footer: []table.Cell{{Text: "--"}, {Text: "0", Align: table.Right}},
	}
	want := `| Name | Value |
|:---|---:|
| **--** | **0** |
`
	if diff := cmp.Diff(want, Markdown(tbl)); diff != "" {
		t.Errorf("Markdown() (-want +got):\n%s", diff)
	}
}

// parseTable parses markdown and returns the number of header cells and
// the number of body rows of its first table.
func parseTable(t *testing.T, md string) (headerCells, rows int) {
	t.Helper()
	parser := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
	doc := parser.Parse(text.NewReader([]byte(md)))
	found := false
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case east.KindTable:
			if found {
				return ast.WalkSkipChildren, nil
			}
			found = true
		case east.KindTableHeader:
			headerCells = n.ChildCount()
		case east.KindTableRow:
			rows++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("ast.Walk() error = %v", err)
	}
	if !found {
		t.Fatalf("no table found in:\n%s", md)
	}
	return headerCells, rows
}

func TestMarkdown_ParsesAsTable(t *testing.T) {
	tests := []struct {
		name        string
		tbl         *table.Table
		wantColumns int
		wantRows    int
	}{
		{"collapsible", sampleTable(), 3, 6},
		{
			"wide nested",
			&table.Table{
				Expandable: true,
				Header:     []table.Cell{{Text: "Name"}},
				Body: []table.Row{{
					Key: "a", Expandable: true, Expanded: true,
					Cells: []table.Cell{{Text: "A"}},
					Nested: &table.Table{
						Key:    "a",
						Header: []table.Cell{{Text: "X"}, {Text: "Y", Index: 1}, {Text: "Z", Index: 2}},
						Body:   []table.Row{{Key: "x", Cells: []table.Cell{{Text: "1"}, {Text: "2"}, {Text: "3"}}}},
					},
				}},
			},
			4, 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			columns, rows := parseTable(t, Markdown(tt.tbl))
			if columns != tt.wantColumns {
				t.Errorf("columns = %d, want %d", columns, tt.wantColumns)
			}
			if rows != tt.wantRows {
				t.Errorf("rows = %d, want %d", rows, tt.wantRows)
			}
		})
	}
}

type fakeLinks struct{}

func (fakeLinks) Sort(key string, col int) safehtml.URL {
	if key == "" {
		key = "root"
	}
	return safehtml.URLSanitized(fmt.Sprintf("/sort/%s/%d", key, col))
}

func (fakeLinks) Expand(key string) safehtml.URL {
	return safehtml.URLSanitized("/expand/" + key)
}

func TestHTML(t *testing.T) {
	r, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("NewHTMLRenderer() error = %v", err)
	}
	var b strings.Builder
	if err := r.Render(&b, "Positions", sampleTable(), fakeLinks{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := b.String()
	for _, want := range []string{
		"<title>Positions</title>",
		`<a href="/sort/root/1">Value ▲</a>`,
		`<a href="/sort/eq/1">Value ▼</a>`,
		`<a href="/expand/eq">▾</a>`,
		`<a href="/expand/bd">▸</a>`,
		`<td colspan="2">`,
		`<td class="right">$6,000.00</td>`,
		"Bonds|Cash",
		"<tfoot>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() output does not contain %q:\n%s", want, got)
		}
	}
	if n := strings.Count(got, "<table>"); n != 2 {
		t.Errorf("Render() has %d tables, want 2", n)
	}
	if n := strings.Count(got, "<tfoot>"); n != 1 {
		t.Errorf("Render() has %d footers, want 1", n)
	}
}

func TestHTML_NoLinks(t *testing.T) {
	r, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("NewHTMLRenderer() error = %v", err)
	}
	var b strings.Builder
	if err := r.RenderTable(&b, sampleTable(), nil); err != nil {
		t.Fatalf("RenderTable() error = %v", err)
	}
	got := b.String()
	if strings.Contains(got, "<a ") {
		t.Errorf("RenderTable() without links contains anchors:\n%s", got)
	}
	if strings.Contains(got, "<html>") {
		t.Errorf("RenderTable() rendered a full page")
	}
	if !strings.Contains(got, "<th class=\"right\">Value ▲</th>") {
		t.Errorf("RenderTable() header missing:\n%s", got)
	}
}
