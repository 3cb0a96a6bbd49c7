package pipeline

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/kingrea/deckforge/internal/deck"
	"github.com/kingrea/deckforge/internal/generate"
	"github.com/kingrea/deckforge/internal/logbook"
)

// minPromptLength is the trimmed prompt length a slide must exceed to
// be eligible for imagery.
const minPromptLength = 5

// Completion is one finished image task, carrying the identity and
// epoch it was dispatched under. The payload is a data URI.
type Completion struct {
	SlideID string
	Payload string
	Epoch   deck.Epoch
}

// Sink receives completions. When nil, the scheduler applies each
// completion to the store directly; an interactive surface installs a
// sink that forwards completions onto its event loop so every merge
// interleaves with user edits on a single thread.
type Sink func(Completion)

// Scheduler fans out one background image task per eligible slide and
// reconciles each completion into the store. Tasks run to completion
// even when their result will be discarded; staleness is suppressed at
// merge time by the identity+epoch check, not by cancellation.
type Scheduler struct {
	store  *deck.Store
	images generate.ImageGenerator
	log    *logbook.Logbook
	sink   Sink

	// maxConcurrent caps in-flight tasks; zero means unbounded,
	// matching the original full fan-out.
	maxConcurrent int

	wg sync.WaitGroup
}

// NewScheduler builds a scheduler that merges into store.
func NewScheduler(store *deck.Store, images generate.ImageGenerator, log *logbook.Logbook) *Scheduler {
	return &Scheduler{store: store, images: images, log: log}
}

// SetSink installs a completion sink. Must be called before Dispatch.
func (s *Scheduler) SetSink(sink Sink) { s.sink = sink }

// SetMaxConcurrent caps concurrent image tasks; zero removes the cap.
func (s *Scheduler) SetMaxConcurrent(n int) {
	if n < 0 {
		n = 0
	}
	s.maxConcurrent = n
}

// Eligible reports whether a slide qualifies for image generation.
func Eligible(slide deck.Slide) bool {
	prompt := strings.TrimSpace(slide.ImagePrompt)
	if utf8.RuneCountInString(prompt) <= minPromptLength {
		return false
	}
	return strings.ToLower(prompt) != "n/a"
}

// Dispatch launches one independent task per eligible slide and
// returns immediately. Ineligible slides are skipped and never block
// anything. Completions arrive in no particular order.
func (s *Scheduler) Dispatch(ctx context.Context, slides []deck.Slide, epoch deck.Epoch) {
	var sem chan struct{}
	if s.maxConcurrent > 0 {
		sem = make(chan struct{}, s.maxConcurrent)
	}
	for _, slide := range slides {
		if !Eligible(slide) {
			continue
		}
		id, prompt := slide.ID, strings.TrimSpace(slide.ImagePrompt)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			s.runTask(ctx, id, prompt, epoch)
		}()
	}
}

// runTask performs one image call. Failures and empty payloads are
// recorded locally and never reach the user-visible error channel.
func (s *Scheduler) runTask(ctx context.Context, slideID, prompt string, epoch deck.Epoch) {
	img, err := s.images.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn("image task for slide %s failed: %v", slideID, err)
		return
	}
	if img == nil || len(img.Data) == 0 {
		s.log.Warn("image task for slide %s returned no payload", slideID)
		return
	}
	completion := Completion{
		SlideID: slideID,
		Payload: DataURI(img.MIMEType, img.Data),
		Epoch:   epoch,
	}
	if s.sink != nil {
		s.sink(completion)
		return
	}
	s.Apply(completion)
}

// Apply merges one completion into the store. It is a no-op when the
// epoch is stale or the slide no longer exists.
func (s *Scheduler) Apply(c Completion) bool {
	merged := s.store.MergeImage(c.SlideID, c.Payload, c.Epoch)
	if !merged {
		s.log.Info("discarded stale image for slide %s (epoch %d)", c.SlideID, c.Epoch)
	}
	return merged
}

// Wait blocks until every dispatched task has finished. Tests use it
// to make completion ordering deterministic.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// DataURI encodes an image payload as a data URI.
func DataURI(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
