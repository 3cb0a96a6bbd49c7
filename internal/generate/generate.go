// Package generate defines the contracts for the external generative
// services and their Gemini implementations. The pipeline only sees
// the ContentGenerator and ImageGenerator interfaces, so tests and
// offline runs swap in the mock implementations.
package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/kingrea/deckforge/internal/deck"
)

// Request carries the inputs of one content generation call.
type Request struct {
	Topic      string
	Context    string // extracted/typed description, already truncated upstream
	SlideCount int
	StyleName  string // theme name, so the copy matches the visual tone
}

// OutlineSlide is one slide of the structured generator output, before
// identities are assigned.
type OutlineSlide struct {
	Layout       string   `json:"type"`
	Title        string   `json:"title"`
	Content      []string `json:"content"`
	SpeakerNotes string   `json:"speakerNotes"`
	ImagePrompt  string   `json:"imagePrompt"`
}

// Outline is the full structured output of a content generation call.
type Outline struct {
	Title    string         `json:"presentationTitle"`
	Subtitle string         `json:"presentationSubtitle"`
	Slides   []OutlineSlide `json:"slides"`
}

// Validate checks that the outline is complete enough to commit.
func (o *Outline) Validate() error {
	if o == nil {
		return fmt.Errorf("outline is empty")
	}
	if len(o.Slides) == 0 {
		return fmt.Errorf("outline has no slides")
	}
	for i := range o.Slides {
		s := &o.Slides[i]
		s.Layout = strings.ToLower(strings.TrimSpace(s.Layout))
		if !deck.ValidLayout(s.Layout) {
			return fmt.Errorf("slide %d: unknown layout %q", i, s.Layout)
		}
		if strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("slide %d: missing title", i)
		}
		if s.Content == nil {
			s.Content = []string{}
		}
	}
	return nil
}

// Image is a generated image payload.
type Image struct {
	MIMEType string
	Data     []byte
}

// ContentGenerator produces the structured text of a presentation.
type ContentGenerator interface {
	Generate(ctx context.Context, req Request) (*Outline, error)
}

// ImageGenerator produces at most one image for a prompt. A nil image
// with a nil error means the service declined to produce one.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (*Image, error)
}
