package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/etnz/allocation/renderer"
)

// Loader builds a fresh table for every request.
type Loader func(ctx context.Context) (Table, error)

// Handler serves a single collapsible table as an HTML page.
type Handler struct {
	title    string
	load     Loader
	renderer *renderer.HTMLRenderer
}

// NewHandler returns a Handler rendering the tables returned by load.
func NewHandler(title string, load Loader) (*Handler, error) {
	r, err := renderer.NewHTMLRenderer()
	if err != nil {
		return nil, fmt.Errorf("could not create HTML renderer: %w", err)
	}
	return &Handler{title: title, load: load, renderer: r}, nil
}

// ServeHTTP restores the state found in the query, renders the table and
// links every header and affordance to the state that follows its event.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	t, err := h.load(r.Context())
	if err != nil {
		log.Printf("loading table: %v", err)
		http.Error(w, fmt.Sprintf("could not load table: %v", err), http.StatusInternalServerError)
		return
	}

	ParseState(r.URL.Query()).Apply(t)
	// The table resets out of range columns, links start from what it kept.
	state := Capture(t)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, h.title, t.Render(), links{state: state}); err != nil {
		// The response may already be partially written.
		log.Printf("rendering table: %v", err)
	}
}
