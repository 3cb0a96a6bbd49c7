// Package pipeline runs the two-phase generation flow: structured text
// first, then per-slide imagery fanned out in the background, with
// every late completion reconciled against the live document by slide
// identity and generation epoch.
package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/kingrea/deckforge/internal/deck"
	"github.com/kingrea/deckforge/internal/generate"
	"github.com/kingrea/deckforge/internal/logbook"
	"github.com/kingrea/deckforge/internal/markup"
	"github.com/kingrea/deckforge/internal/theme"
)

// DefaultTitle is committed when neither the generator nor the user
// supplied one.
const DefaultTitle = "Untitled Presentation"

// Settings records the style profile chosen for the current
// generation, consumed by rendering and export.
type Settings struct {
	SlideCount int
	Theme      theme.Theme
	Transition deck.Transition
}

// Result reports a committed generation: the epoch stamped by the
// store and the slides handed to the image fanout.
type Result struct {
	Epoch  deck.Epoch
	Slides []deck.Slide
}

// Coordinator is the top-level generation entry point. It validates
// input, resets the document, awaits the content phase, commits, and
// hands the committed slides to the scheduler without awaiting it.
type Coordinator struct {
	store     *deck.Store
	content   generate.ContentGenerator
	scheduler *Scheduler
	log       *logbook.Logbook

	pickStyle func() theme.Profile

	mu       sync.Mutex
	token    uint64
	settings Settings
}

// NewCoordinator wires the generation pipeline together.
func NewCoordinator(store *deck.Store, content generate.ContentGenerator, scheduler *Scheduler, log *logbook.Logbook) *Coordinator {
	return &Coordinator{
		store:     store,
		content:   content,
		scheduler: scheduler,
		log:       log,
		pickStyle: theme.RandomProfile,
		settings:  Settings{SlideCount: theme.DefaultSlideCount, Theme: theme.Default(), Transition: deck.TransitionFade},
	}
}

// SetStylePicker overrides the random style selection, for tests.
func (c *Coordinator) SetStylePicker(pick func() theme.Profile) {
	if pick != nil {
		c.pickStyle = pick
	}
}

// Settings returns the style profile of the current generation.
func (c *Coordinator) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Generate runs one full generation. Both topic and description empty
// is a ValidationError before any call is made. The current document
// is cleared immediately so the surface shows its loading state. Any
// content-phase failure surfaces as a single GenerationError and
// leaves the document cleared; no partial document is ever committed.
//
// Overlapping calls supersede: a Generate issued while an earlier one
// awaits its content phase invalidates the earlier call's commit, and
// the earlier call returns ErrSuperseded. Stale phase-2 completions
// are separately discarded by the epoch check at merge time.
func (c *Coordinator) Generate(ctx context.Context, topic, description string, slideCount int) (Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" && strings.TrimSpace(description) == "" {
		return Result{}, &ValidationError{Reason: "Please provide a topic or upload a document."}
	}
	if !theme.ValidSlideCount(slideCount) {
		slideCount = theme.DefaultSlideCount
	}

	profile := c.pickStyle()
	c.mu.Lock()
	c.token++
	token := c.token
	c.settings = Settings{SlideCount: slideCount, Theme: profile.Theme, Transition: profile.Transition}
	c.mu.Unlock()

	c.store.Clear()
	c.log.Info("generation started: topic=%q slides=%d theme=%s", topic, slideCount, profile.Theme.ID)

	outline, err := c.content.Generate(ctx, generate.Request{
		Topic:      topic,
		Context:    description,
		SlideCount: slideCount,
		StyleName:  profile.Theme.Name,
	})
	if err != nil {
		c.log.Error("content generation failed: %v", err)
		return Result{}, &GenerationError{Err: err}
	}
	if err := outline.Validate(); err != nil {
		c.log.Error("content generation returned invalid outline: %v", err)
		return Result{}, &GenerationError{Err: err}
	}

	doc := buildDocument(outline, topic)

	// The token check and the commit form one critical section: a
	// newer Generate bumps the token and commits under the same lock,
	// so a superseded document can never land after the newer one.
	c.mu.Lock()
	if token != c.token {
		c.mu.Unlock()
		c.log.Warn("discarding superseded generation for topic %q", topic)
		return Result{}, ErrSuperseded
	}
	epoch := c.store.Replace(doc)
	c.mu.Unlock()
	c.log.Info("committed %d slides at epoch %d", len(doc.Slides), epoch)

	slides := make([]deck.Slide, len(doc.Slides))
	for i, s := range doc.Slides {
		slides[i] = s.Clone()
	}
	// Phase 2 is detached from phase 1: dispatch returns immediately
	// and each task resolves on its own.
	c.scheduler.Dispatch(ctx, slides, epoch)

	return Result{Epoch: epoch, Slides: slides}, nil
}

// buildDocument turns a validated outline into a committed document,
// assigning every slide a fresh stable identity.
func buildDocument(outline *generate.Outline, topic string) *deck.Document {
	title := strings.TrimSpace(outline.Title)
	if title == "" {
		title = strings.TrimSpace(topic)
	}
	if title == "" {
		title = DefaultTitle
	}
	doc := &deck.Document{
		Title:    title,
		Subtitle: strings.TrimSpace(outline.Subtitle),
	}
	for _, raw := range outline.Slides {
		content := make([]string, 0, len(raw.Content))
		for _, fragment := range raw.Content {
			content = append(content, markup.Sanitize(fragment))
		}
		doc.Slides = append(doc.Slides, deck.Slide{
			ID:           deck.NewSlideID(),
			Layout:       deck.Layout(raw.Layout),
			Title:        raw.Title,
			Content:      content,
			SpeakerNotes: raw.SpeakerNotes,
			ImagePrompt:  strings.TrimSpace(raw.ImagePrompt),
		})
	}
	return doc
}
