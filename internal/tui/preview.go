package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/deckforge/internal/deck"
	"github.com/kingrea/deckforge/internal/markup"
)

// editTarget names which slide field an inline edit writes to.
type editTarget int

const (
	editNone editTarget = iota
	editTitle
	editBullet
	editNotes
)

// previewModel holds preview/edit cursor state. Slides are addressed
// by ID the moment an edit starts, so edits survive background merges
// and concurrent deletions are simply dropped.
type previewModel struct {
	cursor int
	bullet int

	editTarget  editTarget
	editSlideID string
	editIndex   int
	field       textinput.Model
}

func newPreviewModel() previewModel {
	return previewModel{}
}

func (p *previewModel) editingField() bool { return p.editTarget != editNone }

func (p *previewModel) beginEdit(target editTarget, slideID string, index int, initial string) {
	field := textinput.New()
	field.CharLimit = 500
	field.Width = 60
	field.SetValue(initial)
	field.CursorEnd()
	field.Focus()
	p.editTarget = target
	p.editSlideID = slideID
	p.editIndex = index
	p.field = field
}

func (p *previewModel) cancelEdit() {
	p.editTarget = editNone
	p.editSlideID = ""
}

func (p *previewModel) updateField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.field, cmd = p.field.Update(msg)
	return cmd
}

// clamp keeps the cursors inside the (possibly shrunk) document.
func (p *previewModel) clamp(doc *deck.Document) {
	if doc == nil || len(doc.Slides) == 0 {
		p.cursor, p.bullet = 0, 0
		return
	}
	if p.cursor >= len(doc.Slides) {
		p.cursor = len(doc.Slides) - 1
	}
	if n := len(doc.Slides[p.cursor].Content); p.bullet >= n {
		if n == 0 {
			p.bullet = 0
		} else {
			p.bullet = n - 1
		}
	}
}

func (p *previewModel) slide(doc *deck.Document) *deck.Slide {
	if doc == nil || p.cursor < 0 || p.cursor >= len(doc.Slides) {
		return nil
	}
	return &doc.Slides[p.cursor]
}

func (a *App) viewPreview() string {
	doc := a.store.Document()
	if doc == nil || len(doc.Slides) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Render("No deck yet. Press g to return to the generator.")
	}
	a.preview.clamp(doc)
	settings := a.coordinator.Settings()
	colors := settings.Theme.Colors

	strip := a.renderThumbnails(doc)
	main := a.renderSlideDetail(doc, colors.Primary, colors.Accent)
	body := lipgloss.JoinHorizontal(lipgloss.Top, strip, "  ", main)

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Render("↑/↓ slide · ←/→ bullet · enter edit · a add · D remove · d delete slide\n" +
			"T title · s notes · t transition · ctrl+b/i/u format · p play · x export · n new")
	return body + "\n\n" + help
}

// renderThumbnails draws the left navigation strip. A dot marks
// slides whose visual has already arrived.
func (a *App) renderThumbnails(doc *deck.Document) string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#0EA5E9"))
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))

	var b strings.Builder
	for i, s := range doc.Slides {
		marker := "  "
		if s.ImageData != "" {
			marker = "● "
		}
		title := markup.PlainText(s.Title)
		if runes := []rune(title); len(runes) > 18 {
			title = string(runes[:18]) + "…"
		}
		line := fmt.Sprintf("%s%2d %s", marker, i+1, title)
		if i == a.preview.cursor {
			b.WriteString(active.Render("▸ " + line))
		} else {
			b.WriteString(idle.Render("  " + line))
		}
		b.WriteByte('\n')
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color("#444444")).
		PaddingRight(1).
		Render(strings.TrimRight(b.String(), "\n"))
}

func (a *App) renderSlideDetail(doc *deck.Document, primary, accent string) string {
	s := doc.Slides[a.preview.cursor]
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(primary))
	bulletStyle := lipgloss.NewStyle()
	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(accent)).
		Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	var b strings.Builder
	b.WriteString(dim.Render(fmt.Sprintf("%s slide · transition %s", s.Layout, transitionLabel(s.Transition))))
	b.WriteByte('\n')

	if a.preview.editTarget == editTitle && a.preview.editSlideID == s.ID {
		b.WriteString(a.preview.field.View() + "\n")
	} else {
		b.WriteString(titleStyle.Render(markup.PlainText(s.Title)) + "\n")
	}
	b.WriteByte('\n')

	for i, fragment := range s.Content {
		if a.preview.editTarget == editBullet && a.preview.editSlideID == s.ID && a.preview.editIndex == i {
			b.WriteString("• " + a.preview.field.View() + "\n")
			continue
		}
		line := "• " + decorateFragment(fragment)
		if i == a.preview.bullet {
			b.WriteString(selectedStyle.Render("▸ ") + bulletStyle.Render(line))
			b.WriteString("  " + dim.Render(formatBadge(fragment)))
		} else {
			b.WriteString("  " + bulletStyle.Render(line))
		}
		b.WriteByte('\n')
	}

	if s.ImagePrompt != "" {
		b.WriteByte('\n')
		if s.ImageData != "" {
			b.WriteString(dim.Render("visual: ready"))
		} else {
			b.WriteString(dim.Render("visual: generating…"))
		}
		b.WriteByte('\n')
	}

	if a.preview.editTarget == editNotes && a.preview.editSlideID == s.ID {
		b.WriteString("\n" + dim.Render("notes: ") + a.preview.field.View() + "\n")
	} else if s.SpeakerNotes != "" {
		b.WriteString("\n" + dim.Render("notes: "+s.SpeakerNotes) + "\n")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(primary)).
		Padding(1, 2).
		Width(64).
		Render(strings.TrimRight(b.String(), "\n"))
}

// decorateFragment renders inline markup with terminal styles.
func decorateFragment(fragment string) string {
	text := markup.PlainText(fragment)
	active := markup.Active(fragment, markup.Selection{Start: 0, End: markup.Length(fragment)})
	style := lipgloss.NewStyle()
	if active.Bold {
		style = style.Bold(true)
	}
	if active.Italic {
		style = style.Italic(true)
	}
	if active.Underline {
		style = style.Underline(true)
	}
	return style.Render(text)
}

// formatBadge summarizes the formats active across the whole bullet.
func formatBadge(fragment string) string {
	active := markup.Active(fragment, markup.Selection{Start: 0, End: markup.Length(fragment)})
	var parts []string
	if active.Bold {
		parts = append(parts, "B")
	}
	if active.Italic {
		parts = append(parts, "I")
	}
	if active.Underline {
		parts = append(parts, "U")
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, "") + "]"
}

func (a *App) viewPlayback() string {
	doc := a.store.Document()
	if doc == nil || len(doc.Slides) == 0 || a.playback == nil {
		return ""
	}
	a.playback.Resize(len(doc.Slides))
	s := doc.Slides[a.playback.Cursor()]
	settings := a.coordinator.Settings()
	colors := settings.Theme.Colors

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Primary)).
		Render(markup.PlainText(s.Title))

	var bullets strings.Builder
	for _, fragment := range s.Content {
		bullets.WriteString("• " + decorateFragment(fragment) + "\n")
	}

	counter := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Render(fmt.Sprintf("%d / %d · ←/→ navigate · esc exit", a.playback.Cursor()+1, len(doc.Slides)))

	content := title + "\n\n" + strings.TrimRight(bullets.String(), "\n") + "\n\n" + counter
	if a.width > 0 && a.height > 0 {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
