package generate

import (
	"context"
	"strings"
	"testing"
)

func TestDecodeOutlineCleanJSON(t *testing.T) {
	raw := `{"presentationTitle":"T","slides":[{"type":"title","title":"Open"}]}`
	outline, err := decodeOutline(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if outline.Title != "T" || len(outline.Slides) != 1 {
		t.Fatalf("outline = %+v", outline)
	}
}

func TestDecodeOutlineStripsProse(t *testing.T) {
	raw := "Here is your deck:\n```json\n{\"presentationTitle\":\"T\",\"slides\":[]}\n```\nEnjoy!"
	outline, err := decodeOutline(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if outline.Title != "T" {
		t.Fatalf("outline = %+v", outline)
	}
}

func TestDecodeOutlineRepairsSyntax(t *testing.T) {
	// Trailing comma, a classic model slip.
	raw := `{"presentationTitle":"T","slides":[{"type":"title","title":"Open"},]}`
	outline, err := decodeOutline(raw)
	if err != nil {
		t.Fatalf("repairable payload failed: %v", err)
	}
	if len(outline.Slides) != 1 || outline.Slides[0].Title != "Open" {
		t.Fatalf("outline = %+v", outline)
	}
}

func TestDecodeOutlineUnfixable(t *testing.T) {
	if _, err := decodeOutline("no json here at all"); err == nil {
		t.Fatalf("expected decode failure")
	}
}

func TestOutlineValidate(t *testing.T) {
	good := &Outline{Slides: []OutlineSlide{{Layout: " Title ", Title: "x"}}}
	if err := good.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if good.Slides[0].Layout != "title" {
		t.Fatalf("layout not normalized: %q", good.Slides[0].Layout)
	}
	if good.Slides[0].Content == nil {
		t.Fatalf("nil content should be normalized to an empty slice")
	}

	cases := []*Outline{
		nil,
		{},
		{Slides: []OutlineSlide{{Layout: "hero", Title: "x"}}},
		{Slides: []OutlineSlide{{Layout: "content", Title: "  "}}},
	}
	for i, o := range cases {
		if err := o.Validate(); err == nil {
			t.Errorf("case %d: expected validation failure", i)
		}
	}
}

func TestBuildContentPrompt(t *testing.T) {
	prompt := buildContentPrompt(Request{
		Topic:      "solar power",
		Context:    "focus on rooftop installs",
		SlideCount: 8,
		StyleName:  "Minimal Dark",
	})
	for _, want := range []string{
		`"solar power"`,
		`"focus on rooftop installs"`,
		"exactly 8 slides",
		`"Minimal Dark"`,
		"imagePrompt",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	bare := buildContentPrompt(Request{Topic: "x", SlideCount: 5})
	if strings.Contains(bare, "Context and details") || strings.Contains(bare, "visual theme") {
		t.Fatalf("optional sections rendered without input")
	}
}

func TestMockContentGenerator(t *testing.T) {
	outline, err := MockContentGenerator{}.Generate(context.Background(), Request{Topic: "Go", SlideCount: 5})
	if err != nil {
		t.Fatalf("mock generate: %v", err)
	}
	if err := outline.Validate(); err != nil {
		t.Fatalf("mock outline should validate: %v", err)
	}
	if len(outline.Slides) != 5 {
		t.Fatalf("slides = %d, want 5", len(outline.Slides))
	}
	if outline.Slides[0].Layout != "title" || outline.Slides[4].Layout != "conclusion" {
		t.Fatalf("layouts = %s … %s", outline.Slides[0].Layout, outline.Slides[4].Layout)
	}
}

func TestMockImageGeneratorDeclines(t *testing.T) {
	img, err := MockImageGenerator{}.Generate(context.Background(), "anything")
	if img != nil || err != nil {
		t.Fatalf("mock image = %v, %v", img, err)
	}
}
