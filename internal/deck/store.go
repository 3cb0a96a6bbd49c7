package deck

import "sync"

// Epoch counts wholesale document replacements. Background tasks carry
// the epoch they were dispatched under; a merge whose epoch no longer
// matches the store's current epoch is silently dropped.
type Epoch uint64

// Observer is invoked synchronously after every mutation that changed
// the document.
type Observer func()

// Store owns the single mutable document. All mutators are atomic at
// slide or document granularity; image merges are conditionally
// idempotent (identity + epoch checked), so completions may arrive in
// any order and interleave freely with user edits.
type Store struct {
	mu        sync.Mutex
	doc       *Document
	epoch     Epoch
	observers []Observer
}

// NewStore returns an empty store at epoch zero.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers an observer called after each mutation. Intended
// for single-threaded surfaces; observers run while holding no lock.
func (s *Store) Subscribe(fn Observer) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()
	for _, fn := range observers {
		fn()
	}
}

// Epoch returns the current generation epoch.
func (s *Store) Epoch() Epoch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Document returns a deep copy of the current document, or nil when no
// document has been committed.
func (s *Store) Document() *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// SlideCount returns the number of slides in the current document.
func (s *Store) SlideCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return 0
	}
	return len(s.doc.Slides)
}

// Slide returns a copy of the slide with the given identity.
func (s *Store) Slide(id string) (Slide, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return Slide{}, false
	}
	if idx := s.doc.SlideIndex(id); idx >= 0 {
		return s.doc.Slides[idx].Clone(), true
	}
	return Slide{}, false
}

// Replace swaps in a new document wholesale, bumps the epoch and
// returns it. A replacement strictly supersedes the previous document:
// merges dispatched under earlier epochs become no-ops.
func (s *Store) Replace(doc *Document) Epoch {
	epoch := func() Epoch {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.doc = doc.Clone()
		s.epoch++
		return s.epoch
	}()
	s.notify()
	return epoch
}

// Clear discards the current document without bumping the epoch. The
// next Replace still supersedes any in-flight work; while cleared,
// merges are no-ops because no slide identity resolves.
func (s *Store) Clear() {
	changed := func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		changed := s.doc != nil
		s.doc = nil
		return changed
	}()
	if changed {
		s.notify()
	}
}

// UpdateSlide applies mutate to the slide with the given identity and
// reports whether a match was found. The mutator receives a copy and
// the result is swapped in whole, so a panicking or half-finished
// mutation never leaves a partially applied slide. The slide identity
// cannot be changed through this path.
func (s *Store) UpdateSlide(id string, mutate func(*Slide)) bool {
	if mutate == nil {
		return false
	}
	// The mutator is caller code; defer keeps the lock balanced even
	// when it panics, and the panic then propagates with the document
	// untouched.
	applied := func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.doc == nil {
			return false
		}
		idx := s.doc.SlideIndex(id)
		if idx < 0 {
			return false
		}
		dup := s.doc.Slides[idx].Clone()
		mutate(&dup)
		dup.ID = id
		s.doc.Slides[idx] = dup
		return true
	}()
	if applied {
		s.notify()
	}
	return applied
}

// DeleteSlide removes the slide with the given identity, preserving
// the relative order of the rest.
func (s *Store) DeleteSlide(id string) bool {
	deleted := func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.doc == nil {
			return false
		}
		idx := s.doc.SlideIndex(id)
		if idx < 0 {
			return false
		}
		s.doc.Slides = append(s.doc.Slides[:idx], s.doc.Slides[idx+1:]...)
		return true
	}()
	if deleted {
		s.notify()
	}
	return deleted
}

// MergeImage attaches an image payload to the slide with the given
// identity, leaving every other field untouched. The merge is a no-op
// when epoch no longer matches the store (a newer generation
// superseded this one) or when the slide was deleted. Applying the
// same payload twice is idempotent.
func (s *Store) MergeImage(id, payload string, epoch Epoch) bool {
	merged := func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.doc == nil || s.epoch != epoch {
			return false
		}
		idx := s.doc.SlideIndex(id)
		if idx < 0 {
			return false
		}
		s.doc.Slides[idx].ImageData = payload
		return true
	}()
	if merged {
		s.notify()
	}
	return merged
}
