// internal/tui/app.go
//
// The main TUI for deckforge. It uses bubbletea, which follows The Elm
// Architecture: the App model holds all state, Update reacts to
// messages, View renders. Asynchronous work (content generation,
// per-slide image tasks, extraction, export) runs as tea commands
// whose results come back as typed messages, so every document
// mutation happens on this single event loop, interleaved with user
// keystrokes.

package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/deckforge/internal/config"
	"github.com/kingrea/deckforge/internal/deck"
	"github.com/kingrea/deckforge/internal/export"
	"github.com/kingrea/deckforge/internal/extract"
	"github.com/kingrea/deckforge/internal/generate"
	"github.com/kingrea/deckforge/internal/logbook"
	"github.com/kingrea/deckforge/internal/pipeline"
)

// appState represents which "screen" we're on.
type appState int

const (
	stateInput    appState = iota // topic/description form
	statePreview                  // deck preview and editing
	statePlayback                 // full-screen linear review
)

// completionBuffer sizes the channel carrying image completions onto
// the event loop. Tasks block on a full buffer rather than drop.
const completionBuffer = 16

type generateFinishedMsg struct {
	result pipeline.Result
	err    error
}

type imageCompletionMsg pipeline.Completion

type extractFinishedMsg struct {
	text      string
	truncated bool
	err       error
}

type exportFinishedMsg struct {
	path string
	err  error
}

// AppOption customizes App construction for tests and alternate
// runtimes.
type AppOption func(*App)

// WithGenerators overrides the generative backends.
func WithGenerators(content generate.ContentGenerator, images generate.ImageGenerator) AppOption {
	return func(a *App) {
		if content != nil {
			a.content = content
		}
		if images != nil {
			a.images = images
		}
	}
}

// WithExporter overrides the deck exporter.
func WithExporter(exp export.Exporter) AppOption {
	return func(a *App) {
		if exp != nil {
			a.exporter = exp
		}
	}
}

// App is the main application model.
type App struct {
	state  appState
	config *config.Config
	log    *logbook.Logbook

	store       *deck.Store
	edit        *deck.EditSession
	coordinator *pipeline.Coordinator
	scheduler   *pipeline.Scheduler
	content     generate.ContentGenerator
	images      generate.ImageGenerator
	exporter    export.Exporter
	extractor   extract.Extractor

	completions chan pipeline.Completion

	input    inputModel
	preview  previewModel
	playback *deck.Playback

	generating   bool
	confirmReset bool
	statusMsg    string
	errMsg       string

	width  int
	height int
}

// NewApp constructs the application. With no API key configured the
// app runs offline with placeholder generators.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.New(filepath.Join(cfg.LogsDir(), "deckforge.log"))
	if err != nil {
		return nil, err
	}

	app := &App{
		state:       stateInput,
		config:      cfg,
		log:         lb,
		store:       deck.NewStore(),
		extractor:   extract.PlainText{},
		exporter:    export.NewHTML(),
		completions: make(chan pipeline.Completion, completionBuffer),
	}
	app.edit = deck.NewEditSession(app.store)
	app.input = newInputModel(cfg.DefaultSlideCount())

	if key := cfg.APIKey(); key != "" {
		client, err := generate.NewGeminiClient(context.Background(), key)
		if err != nil {
			return nil, err
		}
		app.content = &generate.GeminiContentGenerator{Client: client, Model: cfg.ContentModel()}
		app.images = &generate.GeminiImageGenerator{Client: client, Model: cfg.ImageModel()}
		lb.Info("Session opened · Gemini backend (%s, %s)", cfg.ContentModel(), cfg.ImageModel())
	} else {
		app.content = generate.MockContentGenerator{}
		app.images = generate.MockImageGenerator{}
		lb.Warn("Session opened · no API key, running offline")
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}

	app.scheduler = pipeline.NewScheduler(app.store, app.images, lb)
	app.scheduler.SetMaxConcurrent(cfg.MaxConcurrentImages())
	// Completions are funneled through a channel the event loop
	// drains, so merges never race user edits.
	app.scheduler.SetSink(func(c pipeline.Completion) {
		app.completions <- c
	})
	app.coordinator = pipeline.NewCoordinator(app.store, app.content, app.scheduler, lb)
	return app, nil
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.input.init(), a.listenForCompletions())
}

// listenForCompletions receives one image completion and re-arms
// itself from Update, yielding the cooperative merge loop.
func (a *App) listenForCompletions() tea.Cmd {
	return func() tea.Msg {
		return imageCompletionMsg(<-a.completions)
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.resize(msg.Width, msg.Height)
		return a, nil

	case generateFinishedMsg:
		return a.handleGenerateFinished(msg)

	case imageCompletionMsg:
		merged := a.scheduler.Apply(pipeline.Completion(msg))
		if merged {
			a.statusMsg = "Slide visual arrived"
		}
		return a, a.listenForCompletions()

	case extractFinishedMsg:
		return a.handleExtractFinished(msg)

	case exportFinishedMsg:
		if msg.err != nil {
			a.errMsg = msg.err.Error()
			a.log.Error("export failed: %v", msg.err)
		} else {
			a.statusMsg = fmt.Sprintf("Exported deck to %s", msg.path)
			a.log.Info("exported deck to %s", msg.path)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.updateFocused(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.errMsg != "" && msg.String() == "esc" {
		a.errMsg = ""
		return a, nil
	}
	switch a.state {
	case stateInput:
		return a.handleInputKey(msg)
	case statePreview:
		return a.handlePreviewKey(msg)
	case statePlayback:
		return a.handlePlaybackKey(msg)
	}
	return a, nil
}

func (a *App) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.state == stateInput {
		cmd := a.input.update(msg)
		return a, cmd
	}
	if a.state == statePreview && a.preview.editingField() {
		cmd := a.preview.updateField(msg)
		return a, cmd
	}
	return a, nil
}

// startGeneration kicks off phase 1. The document and error state are
// cleared inside the coordinator before any external call.
func (a *App) startGeneration() (tea.Model, tea.Cmd) {
	if a.generating {
		a.statusMsg = "A generation is already running; it will be superseded"
	}
	topic := a.input.topicValue()
	description := a.input.descriptionValue()
	slideCount := a.input.slideCount()
	if strings.TrimSpace(topic) == "" && strings.TrimSpace(description) == "" {
		a.errMsg = "Please provide a topic or upload a document."
		return a, nil
	}
	a.generating = true
	a.errMsg = ""
	a.statusMsg = "Generating presentation…"
	return a, func() tea.Msg {
		result, err := a.coordinator.Generate(context.Background(), topic, description, slideCount)
		return generateFinishedMsg{result: result, err: err}
	}
}

func (a *App) handleGenerateFinished(msg generateFinishedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, pipeline.ErrSuperseded) {
		// A newer Generate owns the flow now; keep its spinner state.
		return a, nil
	}
	a.generating = false
	if msg.err != nil {
		a.errMsg = msg.err.Error()
		return a, nil
	}
	a.state = statePreview
	a.preview = newPreviewModel()
	a.statusMsg = fmt.Sprintf("Generated %d slides · visuals arriving in the background", len(msg.result.Slides))
	return a, nil
}

func (a *App) handleExtractFinished(msg extractFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.errMsg = msg.err.Error()
		a.log.Error("extraction failed: %v", msg.err)
		return a, nil
	}
	a.input.setDescription(msg.text)
	if msg.truncated {
		a.statusMsg = fmt.Sprintf("Document content truncated to %d characters", extract.MaxChars)
	} else {
		a.statusMsg = "Document loaded as context"
	}
	return a, nil
}

// resetProject clears inputs, document and error state.
func (a *App) resetProject() {
	a.store.Clear()
	a.input.reset(a.config.DefaultSlideCount())
	a.preview = newPreviewModel()
	a.errMsg = ""
	a.statusMsg = "Started a new project"
	a.state = stateInput
	a.confirmReset = false
	a.log.Info("project reset")
}

func (a *App) startExport() (tea.Model, tea.Cmd) {
	doc := a.store.Document()
	if doc == nil || len(doc.Slides) == 0 {
		a.statusMsg = "Nothing to export yet"
		return a, nil
	}
	settings := a.coordinator.Settings()
	req := export.Request{Document: doc, Theme: settings.Theme, Transition: settings.Transition}
	exportsDir := a.config.ExportsDir()
	a.statusMsg = "Exporting deck…"
	return a, func() tea.Msg {
		path, err := writeExport(a.exporter, req, exportsDir)
		return exportFinishedMsg{path: path, err: err}
	}
}

// View renders the current state to a string.
func (a *App) View() string {
	var content string
	switch a.state {
	case stateInput:
		content = a.input.view(a.generating)
	case statePreview:
		content = a.viewPreview()
	case statePlayback:
		return a.viewPlayback() // playback owns the whole screen
	}
	return a.renderChrome(content)
}

func (a *App) renderChrome(content string) string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#0EA5E9")).
		MarginBottom(1).
		Render("◆ DECKFORGE")
	sections := []string{header, content}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	if a.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			Render(fmt.Sprintf("✗ %s (esc to dismiss)", a.errMsg)))
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}

func (a *App) renderLogPanel() string {
	lines := a.log.Tail(4)
	if len(lines) == 0 {
		return ""
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#5B8DEF")).
		Render("LOG")
	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA")).
		Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(fmt.Sprintf("%s\n%s", head, body))
}
