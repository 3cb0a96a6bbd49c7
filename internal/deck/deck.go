// Package deck holds the in-memory presentation document and every
// mutation to it. The document is owned by a single Store; background
// generation results are reconciled into it by stable slide identity
// and generation epoch, never by position.
package deck

import (
	"strings"

	"github.com/google/uuid"
)

// Layout identifies the visual role of a slide.
type Layout string

const (
	LayoutTitle      Layout = "title"
	LayoutContent    Layout = "content"
	LayoutSection    Layout = "section"
	LayoutConclusion Layout = "conclusion"
)

// ValidLayout reports whether value names one of the four slide layouts.
func ValidLayout(value string) bool {
	switch Layout(strings.ToLower(strings.TrimSpace(value))) {
	case LayoutTitle, LayoutContent, LayoutSection, LayoutConclusion:
		return true
	}
	return false
}

// Transition names a slide transition animation. The empty string means
// "use the deck default".
type Transition string

const (
	TransitionNone    Transition = "none"
	TransitionFade    Transition = "fade"
	TransitionPush    Transition = "push"
	TransitionWipe    Transition = "wipe"
	TransitionCover   Transition = "cover"
	TransitionUncover Transition = "uncover"
)

// Transitions lists every selectable transition in display order.
func Transitions() []Transition {
	return []Transition{
		TransitionNone,
		TransitionFade,
		TransitionPush,
		TransitionWipe,
		TransitionCover,
		TransitionUncover,
	}
}

// ValidTransition reports whether value names a known transition.
// The empty string is valid and means "deck default".
func ValidTransition(value Transition) bool {
	if value == "" {
		return true
	}
	for _, t := range Transitions() {
		if t == value {
			return true
		}
	}
	return false
}

// Slide is one slide of the presentation. ID is an opaque identity
// assigned once at creation; it is the only safe key for attaching
// asynchronous results, because positional indexes shift under
// concurrent deletion and reordering.
type Slide struct {
	ID           string
	Layout       Layout
	Title        string
	Content      []string // sanitized inline-markup fragments, rendered top to bottom
	SpeakerNotes string
	Transition   Transition
	ImagePrompt  string
	ImageData    string // data URI; write-once per generation cycle
}

// Clone returns a deep copy of the slide.
func (s Slide) Clone() Slide {
	dup := s
	if s.Content != nil {
		dup.Content = make([]string, len(s.Content))
		copy(dup.Content, s.Content)
	}
	return dup
}

// NewSlideID mints a fresh slide identity.
func NewSlideID() string {
	return uuid.NewString()
}

// Document is the whole presentation. It is replaced wholesale on each
// successful generation and mutated slide-by-slide afterwards.
type Document struct {
	Title    string
	Subtitle string
	Slides   []Slide
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	dup := &Document{Title: d.Title, Subtitle: d.Subtitle}
	if d.Slides != nil {
		dup.Slides = make([]Slide, len(d.Slides))
		for i, s := range d.Slides {
			dup.Slides[i] = s.Clone()
		}
	}
	return dup
}

// SlideIndex returns the position of the slide with the given identity,
// or -1 when it is not part of the document.
func (d *Document) SlideIndex(id string) int {
	if d == nil {
		return -1
	}
	for i := range d.Slides {
		if d.Slides[i].ID == id {
			return i
		}
	}
	return -1
}
