package generate

import (
	"fmt"
	"strings"
)

// buildContentPrompt renders the designer briefing for one generation.
// The structural requirements mirror the response schema; the model is
// asked for exactly req.SlideCount slides opening with a title slide
// and closing with a conclusion.
func buildContentPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString("You are a professional presentation designer.\n")
	fmt.Fprintf(&sb, "Create a slide deck about: %q.\n", req.Topic)
	if strings.TrimSpace(req.Context) != "" {
		fmt.Fprintf(&sb, "Context and details: %q.\n", req.Context)
	}
	fmt.Fprintf(&sb, "\nThe presentation must have exactly %d slides.\n", req.SlideCount)
	if strings.TrimSpace(req.StyleName) != "" {
		fmt.Fprintf(&sb, "The visual theme is %q; write content that fits its tone.\n", req.StyleName)
	}
	sb.WriteString(`
Structure:
1. Title slide (intro)
2. Introduction or agenda
3. Main content slides, broken down logically
4. Conclusion or summary

For each slide provide:
- type: one of 'title', 'content', 'section', 'conclusion'
- title: the headline of the slide
- content: 4-6 short bullet points
- speakerNotes: a short paragraph for the presenter
- imagePrompt: a detailed visual description for generating a professional
  image relevant to the slide. Describe the scene, objects, lighting and
  style directly, without instructions like "create an image of".

Return strict JSON matching the response schema.
`)
	return sb.String()
}
