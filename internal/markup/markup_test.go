package markup

import "testing"

func TestSanitize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"<b>bold</b>", "<b>bold</b>"},
		{"<strong>bold</strong>", "<b>bold</b>"},
		{"<em>it</em>", "<i>it</i>"},
		{"<span style=\"x\">kept</span>", "kept"},
		{"<script>alert(1)</script>", "alert(1)"},
		{"a &amp; b", "a &amp; b"},
		{"5 &lt; 6", "5 &lt; 6"},
		{"<b>unclosed", "<b>unclosed</b>"},
		{"</b>stray closer", "stray closer"},
		{"<b><i>nested</i></b>", "<b><i>nested</i></b>"},
		{"<u><b>reordered</b></u>", "<b><u>reordered</u></b>"},
	}
	for _, c := range cases {
		if got := Sanitize(c.in); got != c.want {
			t.Errorf("Sanitize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPlainTextAndLength(t *testing.T) {
	if got := PlainText("<b>héllo</b> <i>world</i>"); got != "héllo world" {
		t.Fatalf("PlainText = %q", got)
	}
	if got := Length("<b>héllo</b>"); got != 5 {
		t.Fatalf("Length = %d, want 5 (runes, not bytes)", got)
	}
}

func TestActiveUniformSelection(t *testing.T) {
	frag := "<b>bold</b> plain"
	if !Active(frag, Selection{0, 4}).Bold {
		t.Fatalf("selection inside the bold span should be bold")
	}
	if Active(frag, Selection{0, 10}).Bold {
		t.Fatalf("selection spanning bold and plain text is not uniformly bold")
	}
	if Active(frag, Selection{5, 10}).Bold {
		t.Fatalf("selection in plain text should not be bold")
	}
}

func TestActiveCaret(t *testing.T) {
	frag := "<b>ab</b>cd"
	// A caret reports the formats of the preceding rune's run.
	if !Active(frag, Selection{2, 2}).Bold {
		t.Fatalf("caret at the end of the bold run should report bold")
	}
	if Active(frag, Selection{3, 3}).Bold {
		t.Fatalf("caret inside plain text should not report bold")
	}
	if (Active("", Selection{0, 0}) != Formats{}) {
		t.Fatalf("empty fragment has no active formats")
	}
}

func TestToggleApplyAndRemove(t *testing.T) {
	got := Toggle("hello world", Selection{0, 5}, Bold)
	if got != "<b>hello</b> world" {
		t.Fatalf("apply = %q", got)
	}
	got = Toggle(got, Selection{0, 5}, Bold)
	if got != "hello world" {
		t.Fatalf("remove = %q", got)
	}
}

func TestTogglePartialSelectionUnifies(t *testing.T) {
	// "he" bold, selection covers "hell": mixed state, so the toggle
	// applies bold to the whole selection.
	frag := "<b>he</b>llo"
	got := Toggle(frag, Selection{0, 4}, Bold)
	if got != "<b>hell</b>o" {
		t.Fatalf("unify = %q", got)
	}
}

func TestToggleCaretIsNoOp(t *testing.T) {
	frag := "<b>hi</b>"
	if got := Toggle(frag, Selection{1, 1}, Italic); got != frag {
		t.Fatalf("caret toggle changed fragment: %q", got)
	}
}

func TestToggleSecondFormatNests(t *testing.T) {
	got := Toggle("<b>hi</b>", Selection{0, 2}, Italic)
	if got != "<b><i>hi</i></b>" {
		t.Fatalf("nested = %q", got)
	}
}

func TestSelectionClamped(t *testing.T) {
	if got := Toggle("ab", Selection{-3, 99}, Underline); got != "<u>ab</u>" {
		t.Fatalf("clamped toggle = %q", got)
	}
}
