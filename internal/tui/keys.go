package tui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/deckforge/internal/deck"
	"github.com/kingrea/deckforge/internal/extract"
	"github.com/kingrea/deckforge/internal/markup"
)

func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+g":
		return a.startGeneration()
	case "tab":
		a.input.nextField()
		return a, nil
	case "shift+tab":
		a.input.prevField()
		return a, nil
	}
	if a.input.focus == fieldSlideCount {
		switch msg.String() {
		case "left", "h":
			a.input.cycleCount(-1)
			return a, nil
		case "right", "l":
			a.input.cycleCount(1)
			return a, nil
		}
	}
	if a.input.focus == fieldFile && msg.String() == "enter" {
		return a, a.loadFileCmd(a.input.file.Value())
	}
	cmd := a.input.update(msg)
	return a, cmd
}

// loadFileCmd reads and extracts a context document off the event
// loop, reporting back with extractFinishedMsg.
func (a *App) loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return extractFinishedMsg{err: &extract.ExtractionError{Filename: path, Err: err}}
		}
		text, err := a.extractor.Extract(context.Background(), path, data)
		if err != nil {
			return extractFinishedMsg{err: err}
		}
		text, truncated := extract.Truncate(text)
		return extractFinishedMsg{text: text, truncated: truncated}
	}
}

func (a *App) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	doc := a.store.Document()
	count := 0
	if doc != nil {
		count = len(doc.Slides)
	}
	a.preview.clamp(doc)

	if a.preview.editingField() {
		return a.handlePreviewEditKey(msg, doc)
	}

	if a.confirmReset {
		switch msg.String() {
		case "y":
			a.resetProject()
		default:
			a.confirmReset = false
			a.statusMsg = ""
		}
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		if a.preview.cursor > 0 {
			a.preview.cursor--
			a.preview.bullet = 0
		}
	case "down", "j":
		if a.preview.cursor < count-1 {
			a.preview.cursor++
			a.preview.bullet = 0
		}
	case "left", "h":
		if a.preview.bullet > 0 {
			a.preview.bullet--
		}
	case "right", "l":
		if s := a.preview.slide(doc); s != nil && a.preview.bullet < len(s.Content)-1 {
			a.preview.bullet++
		}
	case "enter", "e":
		if s := a.preview.slide(doc); s != nil && a.preview.bullet < len(s.Content) {
			a.preview.beginEdit(editBullet, s.ID, a.preview.bullet, markup.PlainText(s.Content[a.preview.bullet]))
		}
	case "T":
		if s := a.preview.slide(doc); s != nil {
			a.preview.beginEdit(editTitle, s.ID, 0, s.Title)
		}
	case "s":
		if s := a.preview.slide(doc); s != nil {
			a.preview.beginEdit(editNotes, s.ID, 0, s.SpeakerNotes)
		}
	case "a":
		if s := a.preview.slide(doc); s != nil {
			a.edit.AddBullet(s.ID, "")
			a.preview.bullet = len(s.Content)
			a.preview.beginEdit(editBullet, s.ID, a.preview.bullet, "")
		}
	case "backspace", "D":
		if s := a.preview.slide(doc); s != nil && len(s.Content) > 0 {
			a.edit.RemoveBullet(s.ID, a.preview.bullet)
			if a.preview.bullet > 0 {
				a.preview.bullet--
			}
		}
	case "d":
		if s := a.preview.slide(doc); s != nil {
			a.store.DeleteSlide(s.ID)
			a.log.Info("deleted slide %q", markup.PlainText(s.Title))
			a.preview.clamp(a.store.Document())
		}
	case "t":
		if s := a.preview.slide(doc); s != nil {
			next := nextTransition(s.Transition)
			a.edit.SetTransition(s.ID, next)
			a.statusMsg = "Transition: " + transitionLabel(next)
		}
	case "ctrl+b":
		a.toggleBulletFormat(doc, markup.Bold)
	case "ctrl+i":
		a.toggleBulletFormat(doc, markup.Italic)
	case "ctrl+u":
		a.toggleBulletFormat(doc, markup.Underline)
	case "p":
		if count > 0 {
			a.playback = deck.NewPlayback(count)
			a.state = statePlayback
		}
	case "x":
		return a.startExport()
	case "g":
		a.state = stateInput
	case "n":
		a.confirmReset = true
		a.statusMsg = "Start a new project? This discards the deck (y/esc)"
	}
	return a, nil
}

func (a *App) handlePreviewEditKey(msg tea.KeyMsg, doc *deck.Document) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.commitEdit()
		return a, nil
	case "esc":
		a.preview.cancelEdit()
		return a, nil
	}
	cmd := a.preview.updateField(msg)
	return a, cmd
}

// commitEdit writes the in-progress field back through the edit
// session. The slide may have been deleted while editing; the edit is
// then silently discarded.
func (a *App) commitEdit() {
	id := a.preview.editSlideID
	value := a.preview.field.Value()
	switch a.preview.editTarget {
	case editTitle:
		a.edit.SetTitle(id, value)
	case editBullet:
		a.edit.SetBulletText(id, a.preview.editIndex, value)
	case editNotes:
		a.edit.SetSpeakerNotes(id, value)
	}
	a.preview.cancelEdit()
}

// toggleBulletFormat flips a format across the whole selected bullet.
func (a *App) toggleBulletFormat(doc *deck.Document, format markup.Format) {
	s := a.preview.slide(doc)
	if s == nil || a.preview.bullet >= len(s.Content) {
		return
	}
	sel := markup.Selection{Start: 0, End: markup.Length(s.Content[a.preview.bullet])}
	a.edit.ToggleFormat(s.ID, a.preview.bullet, sel, format)
}

func (a *App) handlePlaybackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.playback == nil {
		a.state = statePreview
		return a, nil
	}
	a.playback.Resize(a.store.SlideCount())
	if !a.playback.Playing() {
		a.state = statePreview
		a.playback = nil
		return a, nil
	}
	switch msg.String() {
	case "right", "l", " ", "enter", "down", "j":
		a.playback.Next()
	case "left", "h", "up", "k":
		a.playback.Prev()
	case "esc", "q":
		a.playback.Exit()
		a.playback = nil
		a.state = statePreview
	}
	return a, nil
}

// nextTransition cycles deck default → none → fade → … → deck default.
func nextTransition(t deck.Transition) deck.Transition {
	all := deck.Transitions()
	if t == "" {
		return all[0]
	}
	for i, cand := range all {
		if cand == t {
			if i == len(all)-1 {
				return ""
			}
			return all[i+1]
		}
	}
	return ""
}

func transitionLabel(t deck.Transition) string {
	if t == "" {
		return "deck default"
	}
	return string(t)
}
