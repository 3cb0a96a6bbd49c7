package deck

import (
	"github.com/kingrea/deckforge/internal/markup"
)

// EditSession is the synchronous mutation surface for user-driven
// edits. Every operation delegates to Store.UpdateSlide, so edits are
// slide-atomic and strictly ordered by the event loop that drives
// them; no two user edits are ever concurrent by construction.
type EditSession struct {
	store *Store
}

// NewEditSession wraps a store for user edits.
func NewEditSession(store *Store) *EditSession {
	return &EditSession{store: store}
}

// SetTitle replaces the slide title.
func (e *EditSession) SetTitle(slideID, title string) bool {
	return e.store.UpdateSlide(slideID, func(s *Slide) {
		s.Title = title
	})
}

// SetBulletText replaces one bullet fragment, sanitizing the markup.
// Out-of-range indexes leave the slide untouched.
func (e *EditSession) SetBulletText(slideID string, index int, fragment string) bool {
	applied := false
	found := e.store.UpdateSlide(slideID, func(s *Slide) {
		if index < 0 || index >= len(s.Content) {
			return
		}
		s.Content[index] = markup.Sanitize(fragment)
		applied = true
	})
	return found && applied
}

// AddBullet appends a bullet fragment to the slide.
func (e *EditSession) AddBullet(slideID, fragment string) bool {
	return e.store.UpdateSlide(slideID, func(s *Slide) {
		s.Content = append(s.Content, markup.Sanitize(fragment))
	})
}

// InsertBullet inserts a bullet fragment at index, clamping to the
// valid range.
func (e *EditSession) InsertBullet(slideID string, index int, fragment string) bool {
	return e.store.UpdateSlide(slideID, func(s *Slide) {
		if index < 0 {
			index = 0
		}
		if index > len(s.Content) {
			index = len(s.Content)
		}
		s.Content = append(s.Content, "")
		copy(s.Content[index+1:], s.Content[index:])
		s.Content[index] = markup.Sanitize(fragment)
	})
}

// RemoveBullet deletes the bullet at index, preserving the order of
// the rest.
func (e *EditSession) RemoveBullet(slideID string, index int) bool {
	applied := false
	found := e.store.UpdateSlide(slideID, func(s *Slide) {
		if index < 0 || index >= len(s.Content) {
			return
		}
		s.Content = append(s.Content[:index], s.Content[index+1:]...)
		applied = true
	})
	return found && applied
}

// SetTransition sets the per-slide transition. Unknown values are
// rejected without touching the slide.
func (e *EditSession) SetTransition(slideID string, transition Transition) bool {
	if !ValidTransition(transition) {
		return false
	}
	return e.store.UpdateSlide(slideID, func(s *Slide) {
		s.Transition = transition
	})
}

// SetSpeakerNotes replaces the speaker notes.
func (e *EditSession) SetSpeakerNotes(slideID, notes string) bool {
	return e.store.UpdateSlide(slideID, func(s *Slide) {
		s.SpeakerNotes = notes
	})
}

// ActiveFormats derives the formatting toggle state for a selection in
// one bullet. The state is recomputed from the fragment on every call;
// nothing is cached.
func (e *EditSession) ActiveFormats(slideID string, index int, sel markup.Selection) markup.Formats {
	slide, ok := e.store.Slide(slideID)
	if !ok || index < 0 || index >= len(slide.Content) {
		return markup.Formats{}
	}
	return markup.Active(slide.Content[index], sel)
}

// ToggleFormat flips a format across the selection in one bullet and
// writes the resulting fragment back through the store.
func (e *EditSession) ToggleFormat(slideID string, index int, sel markup.Selection, format markup.Format) bool {
	applied := false
	found := e.store.UpdateSlide(slideID, func(s *Slide) {
		if index < 0 || index >= len(s.Content) {
			return
		}
		s.Content[index] = markup.Toggle(s.Content[index], sel, format)
		applied = true
	})
	return found && applied
}
