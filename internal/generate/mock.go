package generate

import (
	"context"
	"fmt"
	"strings"
)

// MockContentGenerator produces a deterministic outline without
// calling any external service. Used for offline runs (no API key
// configured) and in tests.
type MockContentGenerator struct{}

func (MockContentGenerator) Generate(_ context.Context, req Request) (*Outline, error) {
	count := req.SlideCount
	if count < 2 {
		count = 2
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = "Your Topic"
	}
	outline := &Outline{
		Title:    topic,
		Subtitle: "An offline preview deck",
	}
	for i := 0; i < count; i++ {
		layout := "content"
		switch i {
		case 0:
			layout = "title"
		case count - 1:
			layout = "conclusion"
		}
		outline.Slides = append(outline.Slides, OutlineSlide{
			Layout:       layout,
			Title:        fmt.Sprintf("%s — part %d", topic, i+1),
			Content:      []string{"First point", "Second point", "Third point"},
			SpeakerNotes: "Placeholder notes generated offline.",
			ImagePrompt:  "", // no imagery in offline mode
		})
	}
	return outline, nil
}

// MockImageGenerator never produces an image.
type MockImageGenerator struct{}

func (MockImageGenerator) Generate(context.Context, string) (*Image, error) {
	return nil, nil
}
