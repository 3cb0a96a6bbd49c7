package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/kingrea/deckforge/internal/export"
	"github.com/kingrea/deckforge/internal/markup"
)

// writeExport renders the deck and writes it under the project's
// exports directory, returning the written path.
func writeExport(exporter export.Exporter, req export.Request, dir string) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	data, ext, err := exporter.Export(req)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s%s", exportSlug(req.Document.Title), time.Now().Format("20060102-150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &export.ExportError{Err: err}
	}
	return path, nil
}

// exportSlug derives a filesystem-safe name from the deck title.
func exportSlug(title string) string {
	text := strings.ToLower(markup.PlainText(title))
	var b strings.Builder
	lastDash := true
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "presentation"
	}
	if runes := []rune(slug); len(runes) > 48 {
		slug = string(runes[:48])
	}
	return slug
}
