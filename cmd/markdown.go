package cmd

import (
	"io"
	"log"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md for the terminal into w, it falls back to the raw
// markdown if it cannot.
func printMarkdown(w io.Writer, md string) error {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Printf("could not render markdown: %v", err)
		out = md
	}
	_, err = io.WriteString(w, out)
	return err
}
