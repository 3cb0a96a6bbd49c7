package deck

// Playback is a bounded cursor over the committed document for linear
// review. It clamps at both ends rather than wrapping and has no
// external effects beyond reporting the current index.
type Playback struct {
	cursor  int
	count   int
	playing bool
}

// NewPlayback starts a playback session at the first slide.
func NewPlayback(slideCount int) *Playback {
	if slideCount < 0 {
		slideCount = 0
	}
	return &Playback{count: slideCount, playing: slideCount > 0}
}

// Playing reports whether play mode is active.
func (p *Playback) Playing() bool { return p.playing }

// Cursor returns the current slide index.
func (p *Playback) Cursor() int { return p.cursor }

// Next advances the cursor, clamping at the last slide.
func (p *Playback) Next() int {
	if p.cursor < p.count-1 {
		p.cursor++
	}
	return p.cursor
}

// Prev moves the cursor back, clamping at the first slide.
func (p *Playback) Prev() int {
	if p.cursor > 0 {
		p.cursor--
	}
	return p.cursor
}

// Exit leaves play mode.
func (p *Playback) Exit() {
	p.playing = false
}

// Resize adjusts the slide count after an edit removed slides while
// playing, keeping the cursor in bounds.
func (p *Playback) Resize(slideCount int) {
	if slideCount < 0 {
		slideCount = 0
	}
	p.count = slideCount
	if p.count == 0 {
		p.cursor = 0
		p.playing = false
		return
	}
	if p.cursor > p.count-1 {
		p.cursor = p.count - 1
	}
}
