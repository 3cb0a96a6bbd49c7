// Package extract turns uploaded documents into plain text used as
// additional generation context. The pipeline treats the output as
// opaque; nothing downstream depends on the source format.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MaxChars caps the extracted text handed to the pipeline. Longer
// extractions are truncated, and callers should tell the user so.
const MaxChars = 5000

// ExtractionError reports an unsupported or corrupt input document.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s", filepath.Base(e.Filename))
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor pulls plain text out of a document.
type Extractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// PlainText extracts from plain-text formats (.txt, .md). Binary
// formats are collaborators' business; they satisfy the same
// interface.
type PlainText struct{}

func (PlainText) Extract(_ context.Context, filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", ".markdown", "":
	default:
		return "", &ExtractionError{
			Filename: filename,
			Err:      fmt.Errorf("unsupported format %q", filepath.Ext(filename)),
		}
	}
	if !utf8.Valid(data) {
		return "", &ExtractionError{
			Filename: filename,
			Err:      fmt.Errorf("not valid UTF-8 text"),
		}
	}
	return strings.TrimSpace(string(data)), nil
}

// Truncate enforces the character cap, reporting whether anything was
// cut off.
func Truncate(text string) (string, bool) {
	runes := []rune(text)
	if len(runes) <= MaxChars {
		return text, false
	}
	return string(runes[:MaxChars]), true
}
