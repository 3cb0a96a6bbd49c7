package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/deckforge/internal/extract"
	"github.com/kingrea/deckforge/internal/theme"
)

// inputField identifies which form control has focus.
type inputField int

const (
	fieldTopic inputField = iota
	fieldDescription
	fieldSlideCount
	fieldFile
)

// inputModel is the topic/description form shown on first launch.
type inputModel struct {
	topic       textinput.Model
	description textarea.Model
	file        textinput.Model
	focus       inputField
	countIndex  int
	width       int
}

func newInputModel(defaultCount int) inputModel {
	topic := textinput.New()
	topic.Placeholder = "What is the presentation about?"
	topic.CharLimit = 200
	topic.Width = 60
	topic.Focus()

	description := textarea.New()
	description.Placeholder = "Optional context: paste notes or load a file below"
	description.CharLimit = extract.MaxChars
	description.SetWidth(60)
	description.SetHeight(5)

	file := textinput.New()
	file.Placeholder = "Path to a .txt or .md file (enter to load)"
	file.CharLimit = 400
	file.Width = 60

	m := inputModel{
		topic:       topic,
		description: description,
		file:        file,
	}
	m.countIndex = countIndexFor(defaultCount)
	return m
}

func countIndexFor(count int) int {
	for i, c := range theme.SlideCounts {
		if c == count {
			return i
		}
	}
	return countIndexFor(theme.DefaultSlideCount)
}

func (m *inputModel) init() tea.Cmd {
	return textinput.Blink
}

func (m *inputModel) reset(defaultCount int) {
	*m = newInputModel(defaultCount)
}

func (m *inputModel) resize(width, _ int) {
	m.width = width
	w := width - 8
	if w > 80 {
		w = 80
	}
	if w < 20 {
		w = 20
	}
	m.topic.Width = w
	m.description.SetWidth(w)
	m.file.Width = w
}

func (m *inputModel) topicValue() string       { return m.topic.Value() }
func (m *inputModel) descriptionValue() string { return m.description.Value() }
func (m *inputModel) slideCount() int          { return theme.SlideCounts[m.countIndex] }

func (m *inputModel) setDescription(text string) {
	m.description.SetValue(text)
}

func (m *inputModel) nextField() {
	m.setFocus((m.focus + 1) % 4)
}

func (m *inputModel) prevField() {
	m.setFocus((m.focus + 3) % 4)
}

func (m *inputModel) setFocus(f inputField) {
	m.focus = f
	m.topic.Blur()
	m.description.Blur()
	m.file.Blur()
	switch f {
	case fieldTopic:
		m.topic.Focus()
	case fieldDescription:
		m.description.Focus()
	case fieldFile:
		m.file.Focus()
	}
}

func (m *inputModel) cycleCount(delta int) {
	n := len(theme.SlideCounts)
	m.countIndex = (m.countIndex + delta + n) % n
}

func (m *inputModel) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case fieldTopic:
		m.topic, cmd = m.topic.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	case fieldFile:
		m.file, cmd = m.file.Update(msg)
	}
	return cmd
}

func (m *inputModel) view(generating bool) string {
	label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	counts := make([]string, len(theme.SlideCounts))
	for i, c := range theme.SlideCounts {
		s := fmt.Sprintf(" %d ", c)
		if i == m.countIndex {
			s = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#0EA5E9")).
				Render(fmt.Sprintf("[%d]", c))
		}
		counts[i] = s
	}
	countRow := strings.Join(counts, " ")
	if m.focus == fieldSlideCount {
		countRow += dim.Render("  ←/→ to change")
	}

	var b strings.Builder
	b.WriteString(label.Render("TOPIC") + "\n")
	b.WriteString(m.topic.View() + "\n\n")
	b.WriteString(label.Render("CONTEXT") + "\n")
	b.WriteString(m.description.View() + "\n\n")
	b.WriteString(label.Render("SLIDES") + "  " + countRow + "\n\n")
	b.WriteString(label.Render("LOAD FILE") + "\n")
	b.WriteString(m.file.View() + "\n\n")
	if generating {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Render("⟳ Generating presentation…") + "\n")
	} else {
		b.WriteString(dim.Render("tab: next field · ctrl+g: generate · ctrl+c: quit") + "\n")
	}
	return b.String()
}
