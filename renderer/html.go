package renderer

import (
	"embed"
	"io"

	"github.com/etnz/allocation/table"
	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
)

//go:embed templates/*
var templateFS embed.FS

// Links returns the URLs raising the table events.
type Links interface {
	// Sort returns the URL toggling the sort of column col of the table
	// identified by key ("" for the top level table).
	Sort(key string, col int) safehtml.URL
	// Expand returns the URL toggling the expansion of row key.
	Expand(key string) safehtml.URL
}

// HTMLRenderer renders tables to HTML.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer parses the embedded templates.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)
	tmpl, err := template.New("table.html").ParseFS(trustedFS, "templates/table.html")
	if err != nil {
		return nil, err
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render writes a full HTML page showing t. links may be nil, headers and
// affordances are then rendered without links.
func (r *HTMLRenderer) Render(w io.Writer, title string, t *table.Table, links Links) error {
	return r.tmpl.ExecuteTemplate(w, "page", htmlPage{Title: title, Table: newHTMLTable(t, links)})
}

// RenderTable writes the HTML table alone.
func (r *HTMLRenderer) RenderTable(w io.Writer, t *table.Table, links Links) error {
	return r.tmpl.ExecuteTemplate(w, "table", newHTMLTable(t, links))
}

type htmlPage struct {
	Title string
	Table *htmlTable
}

// htmlTable is the table formatted for template consumption.
type htmlTable struct {
	Header     []htmlLink
	Body       []htmlRow
	Footer     []htmlCell
	Expandable bool
}

type htmlCell struct {
	Text  string
	Class string
}

// htmlLink is a header cell, or an affordance.
type htmlLink struct {
	Text    string
	Class   string
	Icon    string
	HasLink bool
	URL     safehtml.URL
}

type htmlRow struct {
	htmlLink
	Cells      []htmlCell
	Expandable bool
	Nested     *htmlTable
	Span       int
}

func newHTMLTable(t *table.Table, links Links) *htmlTable {
	h := &htmlTable{Expandable: t.Expandable}
	for _, c := range t.Header {
		l := htmlLink{Text: HeaderText(c), Class: class(c.Align)}
		if links != nil {
			l.HasLink, l.URL = true, links.Sort(t.Key, c.Index)
		}
		h.Header = append(h.Header, l)
	}
	for _, r := range t.Body {
		row := htmlRow{Expandable: r.Expandable, Span: len(t.Header)}
		row.Icon = affordance(r)
		if links != nil && r.Expandable {
			row.HasLink, row.URL = true, links.Expand(r.Key)
		}
		for _, c := range r.Cells {
			row.Cells = append(row.Cells, htmlCell{Text: c.Text, Class: class(c.Align)})
		}
		if r.Nested != nil {
			row.Nested = newHTMLTable(r.Nested, links)
		}
		h.Body = append(h.Body, row)
	}
	for _, c := range t.Footer {
		h.Footer = append(h.Footer, htmlCell{Text: c.Text, Class: class(c.Align)})
	}
	return h
}

func class(a table.Align) string {
	switch a {
	case table.Right:
		return "right"
	case table.Center:
		return "center"
	default:
		return "left"
	}
}
