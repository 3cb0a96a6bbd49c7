package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPlainTextExtract(t *testing.T) {
	text, err := PlainText{}.Extract(context.Background(), "notes.md", []byte("  # Heading\nbody  \n"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "# Heading\nbody" {
		t.Fatalf("text = %q", text)
	}
}

func TestPlainTextRejectsFormats(t *testing.T) {
	_, err := PlainText{}.Extract(context.Background(), "deck.pptx", []byte("x"))
	var xerr *ExtractionError
	if !errors.As(err, &xerr) {
		t.Fatalf("want ExtractionError, got %v", err)
	}
	if !strings.Contains(xerr.Error(), "deck.pptx") {
		t.Fatalf("message should name the file: %q", xerr.Error())
	}
}

func TestPlainTextRejectsBinary(t *testing.T) {
	if _, err := (PlainText{}).Extract(context.Background(), "notes.txt", []byte{0xff, 0xfe, 0x00}); err == nil {
		t.Fatalf("invalid UTF-8 should be rejected")
	}
}

func TestTruncate(t *testing.T) {
	short, cut := Truncate("hello")
	if cut || short != "hello" {
		t.Fatalf("short input truncated: %q %v", short, cut)
	}
	long := strings.Repeat("é", MaxChars+10)
	got, cut := Truncate(long)
	if !cut {
		t.Fatalf("long input not truncated")
	}
	if n := len([]rune(got)); n != MaxChars {
		t.Fatalf("truncated to %d runes, want %d", n, MaxChars)
	}
}
