package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/kingrea/deckforge/internal/deck"
	"github.com/kingrea/deckforge/internal/theme"
)

func sampleRequest() Request {
	return Request{
		Document: &deck.Document{
			Title: "Qu<arterly> Review",
			Slides: []deck.Slide{
				{
					ID: "a", Layout: deck.LayoutTitle, Title: "Q3 <Results>",
					Content:      []string{"<b>revenue</b> up", "costs flat"},
					SpeakerNotes: "Lead with the *good* news.",
					ImageData:    "data:image/png;base64,AAAA",
				},
				{
					ID: "b", Layout: deck.LayoutConclusion, Title: "Next",
					Transition: deck.TransitionWipe,
				},
			},
		},
		Theme:      theme.Default(),
		Transition: deck.TransitionPush,
	}
}

func TestHTMLExport(t *testing.T) {
	data, ext, err := NewHTML().Export(sampleRequest())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if ext != "html" {
		t.Fatalf("extension = %q", ext)
	}
	out := string(data)

	for _, want := range []string{
		"<title>Qu&lt;arterly&gt; Review</title>",
		"<h2>Q3 &lt;Results&gt;</h2>",
		"<li><b>revenue</b> up</li>",             // sanitized markup passes through
		"animation: push",                        // deck default transition
		"animation-name: wipe",                   // per-slide override
		"src=\"data:image/png;base64,AAAA\"",     // attached visual
		"<em>good</em>",                          // notes rendered from markdown
		"class=\"slide active\"",                 // first slide visible
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Count(out, "<section") != 2 {
		t.Fatalf("section count = %d", strings.Count(out, "<section"))
	}
}

func TestHTMLExportEmptyTransitionDefaultsToFade(t *testing.T) {
	req := sampleRequest()
	req.Transition = ""
	data, _, err := NewHTML().Export(req)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(data), "animation: fade") {
		t.Fatalf("missing fade fallback")
	}
}

func TestExportValidation(t *testing.T) {
	_, _, err := NewHTML().Export(Request{})
	var xerr *ExportError
	if !errors.As(err, &xerr) {
		t.Fatalf("want ExportError, got %v", err)
	}
	if xerr.Error() != "Failed to export the presentation." {
		t.Fatalf("user message = %q", xerr.Error())
	}
	if (Request{Document: &deck.Document{}}).Validate() == nil {
		t.Fatalf("empty deck should not validate")
	}
}
