package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/kingrea/deckforge/internal/deck"
)

// HTML renders the deck as a single self-contained HTML slideshow:
// one section per slide, themed colors inlined, arrow-key navigation,
// speaker notes rendered from markdown.
type HTML struct {
	md goldmark.Markdown
}

// NewHTML builds the HTML exporter.
func NewHTML() *HTML {
	return &HTML{md: goldmark.New()}
}

func (h *HTML) Export(req Request) ([]byte, string, error) {
	if err := req.Validate(); err != nil {
		return nil, "", &ExportError{Err: err}
	}
	var sb strings.Builder
	doc, th := req.Document, req.Theme
	transition := req.Transition
	if transition == "" {
		transition = deck.TransitionFade
	}

	fmt.Fprintf(&sb, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n", html.EscapeString(doc.Title))
	fmt.Fprintf(&sb, `<style>
body { margin: 0; background: #111; font-family: %q, sans-serif; }
.slide {
  display: none; box-sizing: border-box; width: 100vw; height: 100vh;
  padding: 6vh 8vw; background: %s; color: %s;
}
.slide.active { display: flex; flex-direction: column; animation: %s 0.6s ease-in-out; }
.slide h2 { color: %s; font-family: %q, sans-serif; font-size: 3em; margin: 0 0 0.6em; }
.slide ul { font-size: 1.5em; line-height: 1.6; }
.slide li::marker { color: %s; }
.slide img { max-width: 34vw; max-height: 50vh; object-fit: contain; border-radius: 8px; }
.slide .body { display: flex; gap: 4vw; align-items: center; }
.slide .num { position: absolute; bottom: 3vh; right: 4vw; opacity: 0.5; }
.slide .bar { position: absolute; bottom: 0; left: 0; height: 8px; width: 100%%; background: %s; }
.notes { display: none; }
@keyframes fade { from { opacity: 0; } to { opacity: 1; } }
@keyframes push { from { transform: translateX(100%%); } to { transform: translateX(0); } }
@keyframes wipe { from { clip-path: inset(0 100%% 0 0); } to { clip-path: inset(0 0 0 0); } }
@keyframes cover { from { transform: translateY(100%%); } to { transform: translateY(0); } }
@keyframes uncover { from { transform: scale(0.9); opacity: 0; } to { transform: scale(1); opacity: 1; } }
@keyframes none { }
</style>
</head>
<body>
`,
		th.Fonts.Body, th.Colors.Background, th.Colors.Text, string(transition),
		th.Colors.Primary, th.Fonts.Heading, th.Colors.Secondary, th.Colors.Primary)

	for i, slide := range doc.Slides {
		active := ""
		if i == 0 {
			active = " active"
		}
		// A per-slide transition overrides the deck default.
		override := ""
		if slide.Transition != "" && slide.Transition != transition {
			override = fmt.Sprintf(" style=\"animation-name: %s\"", string(slide.Transition))
		}
		fmt.Fprintf(&sb, "<section class=\"slide%s\" data-layout=%q%s>\n", active, string(slide.Layout), override)
		fmt.Fprintf(&sb, "<h2>%s</h2>\n<div class=\"body\">\n<ul>\n", html.EscapeString(slide.Title))
		for _, fragment := range slide.Content {
			// Fragments are already sanitized to the b/i/u dialect.
			fmt.Fprintf(&sb, "<li>%s</li>\n", fragment)
		}
		sb.WriteString("</ul>\n")
		if slide.ImageData != "" {
			fmt.Fprintf(&sb, "<img src=%q alt=\"\">\n", slide.ImageData)
		}
		sb.WriteString("</div>\n")
		if notes := strings.TrimSpace(slide.SpeakerNotes); notes != "" {
			rendered, err := h.renderNotes(notes)
			if err != nil {
				return nil, "", &ExportError{Err: err}
			}
			fmt.Fprintf(&sb, "<aside class=\"notes\">%s</aside>\n", rendered)
		}
		fmt.Fprintf(&sb, "<div class=\"num\">%d / %d</div>\n<div class=\"bar\"></div>\n</section>\n", i+1, len(doc.Slides))
	}

	sb.WriteString(`<script>
(function () {
  var slides = document.querySelectorAll('.slide');
  var idx = 0;
  function show(n) {
    if (n < 0 || n >= slides.length) return;
    slides[idx].classList.remove('active');
    idx = n;
    slides[idx].classList.add('active');
  }
  document.addEventListener('keydown', function (e) {
    if (e.key === 'ArrowRight' || e.key === ' ') show(idx + 1);
    else if (e.key === 'ArrowLeft') show(idx - 1);
  });
})();
</script>
</body>
</html>
`)
	return []byte(sb.String()), "html", nil
}

func (h *HTML) renderNotes(notes string) (string, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(notes), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
