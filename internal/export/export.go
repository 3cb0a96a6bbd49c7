// Package export serializes the finished document into a downloadable
// deck artifact. The built-in exporter produces a self-contained HTML
// slideshow; binary formats live behind the same interface.
package export

import (
	"fmt"

	"github.com/kingrea/deckforge/internal/deck"
	"github.com/kingrea/deckforge/internal/theme"
)

// ExportError reports a failed serialization. It never corrupts the
// in-memory document; the deck stays editable after a failed export.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return "Failed to export the presentation."
}

func (e *ExportError) Unwrap() error { return e.Err }

// Request carries everything an exporter needs.
type Request struct {
	Document   *deck.Document
	Theme      theme.Theme
	Transition deck.Transition
}

// Exporter serializes a document into a downloadable artifact.
type Exporter interface {
	// Export returns the artifact bytes and a suggested file
	// extension (without the dot).
	Export(req Request) ([]byte, string, error)
}

// Validate rejects requests no exporter can serve.
func (r Request) Validate() error {
	if r.Document == nil {
		return fmt.Errorf("export: no document")
	}
	if len(r.Document.Slides) == 0 {
		return fmt.Errorf("export: document has no slides")
	}
	return nil
}
