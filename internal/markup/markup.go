// Package markup implements the sanitized inline-markup dialect used
// by slide bullet fragments: plain text with nested <b>, <i> and <u>
// spans. Formatting state is never stored; it is derived on demand as
// a pure function of (fragment, selection), so surfaces can query and
// toggle formats without a live editable region.
package markup

import "strings"

// Format identifies one inline format.
type Format int

const (
	Bold Format = iota
	Italic
	Underline
)

// Formats is the derived toggle state for a selection.
type Formats struct {
	Bold      bool
	Italic    bool
	Underline bool
}

func (f Formats) has(format Format) bool {
	switch format {
	case Bold:
		return f.Bold
	case Italic:
		return f.Italic
	case Underline:
		return f.Underline
	}
	return false
}

func (f *Formats) set(format Format, on bool) {
	switch format {
	case Bold:
		f.Bold = on
	case Italic:
		f.Italic = on
	case Underline:
		f.Underline = on
	}
}

// Selection is a half-open rune range [Start, End) over the plain text
// of a fragment. Start == End is a caret.
type Selection struct {
	Start int
	End   int
}

// run is a maximal stretch of text sharing one format set.
type run struct {
	text    []rune
	formats Formats
}

// parse tokenizes a fragment into runs, tolerating unknown tags (they
// are dropped, their inner text kept) and unbalanced closers.
func parse(fragment string) []run {
	var (
		runs  []run
		buf   []rune
		cur   Formats
		depth = map[Format]int{}
	)
	flush := func() {
		if len(buf) > 0 {
			runs = append(runs, run{text: buf, formats: cur})
			buf = nil
		}
	}
	recompute := func() {
		cur = Formats{
			Bold:      depth[Bold] > 0,
			Italic:    depth[Italic] > 0,
			Underline: depth[Underline] > 0,
		}
	}
	src := []rune(fragment)
	for i := 0; i < len(src); i++ {
		r := src[i]
		if r != '<' {
			if r == '&' {
				if entity, consumed, ok := decodeEntity(src[i:]); ok {
					buf = append(buf, entity)
					i += consumed - 1
					continue
				}
			}
			buf = append(buf, r)
			continue
		}
		end := indexRune(src[i:], '>')
		if end < 0 {
			buf = append(buf, r)
			continue
		}
		tag := strings.ToLower(string(src[i+1 : i+end]))
		i += end
		closing := strings.HasPrefix(tag, "/")
		name := strings.TrimPrefix(tag, "/")
		if idx := strings.IndexAny(name, " \t"); idx >= 0 {
			name = name[:idx]
		}
		format, known := tagFormat(name)
		if !known {
			continue
		}
		flush()
		if closing {
			if depth[format] > 0 {
				depth[format]--
			}
		} else {
			depth[format]++
		}
		recompute()
	}
	flush()
	return runs
}

func tagFormat(name string) (Format, bool) {
	switch name {
	case "b", "strong":
		return Bold, true
	case "i", "em":
		return Italic, true
	case "u":
		return Underline, true
	}
	return 0, false
}

func decodeEntity(src []rune) (rune, int, bool) {
	entities := []struct {
		name  string
		value rune
	}{
		{"&amp;", '&'},
		{"&lt;", '<'},
		{"&gt;", '>'},
		{"&nbsp;", ' '},
		{"&quot;", '"'},
	}
	s := string(src)
	for _, e := range entities {
		if strings.HasPrefix(s, e.name) {
			return e.value, len(e.name), true
		}
	}
	return 0, 0, false
}

func indexRune(src []rune, target rune) int {
	for i, r := range src {
		if r == target {
			return i
		}
	}
	return -1
}

// render emits canonical markup: adjacent runs with identical formats
// merged, tags nested in b > i > u order, text entity-escaped.
func render(runs []run) string {
	var sb strings.Builder
	for i := 0; i < len(runs); i++ {
		text := runs[i].text
		formats := runs[i].formats
		for i+1 < len(runs) && runs[i+1].formats == formats {
			i++
			text = append(text, runs[i].text...)
		}
		if len(text) == 0 {
			continue
		}
		if formats.Bold {
			sb.WriteString("<b>")
		}
		if formats.Italic {
			sb.WriteString("<i>")
		}
		if formats.Underline {
			sb.WriteString("<u>")
		}
		sb.WriteString(escape(string(text)))
		if formats.Underline {
			sb.WriteString("</u>")
		}
		if formats.Italic {
			sb.WriteString("</i>")
		}
		if formats.Bold {
			sb.WriteString("</b>")
		}
	}
	return sb.String()
}

func escape(text string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(text)
}

// Sanitize normalizes a fragment to the canonical dialect: only b/i/u
// spans survive, every other tag is stripped with its inner text kept.
func Sanitize(fragment string) string {
	return render(parse(fragment))
}

// PlainText strips all markup from a fragment.
func PlainText(fragment string) string {
	var sb strings.Builder
	for _, r := range parse(fragment) {
		sb.WriteString(string(r.text))
	}
	return sb.String()
}

// Length returns the rune length of the fragment's plain text.
func Length(fragment string) int {
	n := 0
	for _, r := range parse(fragment) {
		n += len(r.text)
	}
	return n
}

func clamp(sel Selection, length int) Selection {
	if sel.Start < 0 {
		sel.Start = 0
	}
	if sel.End < sel.Start {
		sel.End = sel.Start
	}
	if sel.Start > length {
		sel.Start = length
	}
	if sel.End > length {
		sel.End = length
	}
	return sel
}

// Active derives the toggle state for a selection. A format counts as
// active only when every selected rune carries it; a caret reports the
// formats of the run it sits in (or the preceding run at a boundary),
// matching how an editable region answers the same query.
func Active(fragment string, sel Selection) Formats {
	runs := parse(fragment)
	length := 0
	for _, r := range runs {
		length += len(r.text)
	}
	sel = clamp(sel, length)
	if length == 0 {
		return Formats{}
	}
	if sel.Start == sel.End {
		pos := sel.Start
		if pos > 0 {
			pos--
		}
		offset := 0
		for _, r := range runs {
			if pos < offset+len(r.text) {
				return r.formats
			}
			offset += len(r.text)
		}
		return runs[len(runs)-1].formats
	}
	active := Formats{Bold: true, Italic: true, Underline: true}
	offset := 0
	for _, r := range runs {
		runStart, runEnd := offset, offset+len(r.text)
		offset = runEnd
		if runEnd <= sel.Start || runStart >= sel.End {
			continue
		}
		active.Bold = active.Bold && r.formats.Bold
		active.Italic = active.Italic && r.formats.Italic
		active.Underline = active.Underline && r.formats.Underline
	}
	return active
}

// Toggle flips a format across the selection and returns the new
// fragment. If the format is active over the whole selection it is
// removed; otherwise it is applied to every selected rune. Partially
// formatted selections therefore become uniformly formatted, matching
// editable-region semantics. A caret toggle is a no-op.
func Toggle(fragment string, sel Selection, format Format) string {
	runs := parse(fragment)
	length := 0
	for _, r := range runs {
		length += len(r.text)
	}
	sel = clamp(sel, length)
	if sel.Start == sel.End {
		return render(runs)
	}
	turnOn := !Active(fragment, sel).has(format)

	var out []run
	offset := 0
	for _, r := range runs {
		runStart, runEnd := offset, offset+len(r.text)
		offset = runEnd
		if runEnd <= sel.Start || runStart >= sel.End {
			out = append(out, r)
			continue
		}
		lo := max(sel.Start, runStart) - runStart
		hi := min(sel.End, runEnd) - runStart
		if lo > 0 {
			out = append(out, run{text: r.text[:lo], formats: r.formats})
		}
		toggled := r.formats
		toggled.set(format, turnOn)
		out = append(out, run{text: r.text[lo:hi], formats: toggled})
		if hi < len(r.text) {
			out = append(out, run{text: r.text[hi:], formats: r.formats})
		}
	}
	return render(out)
}
