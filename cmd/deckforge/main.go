// cmd/deckforge/main.go
//
// Entry point for the deckforge TUI. Running `deckforge` in any
// directory treats that directory as the project: the .deckforge
// folder (config, logs, exports) is created there on first run.

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/deckforge/internal/config"
	"github.com/kingrea/deckforge/internal/tui"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitDeckforgeDir(cwd); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .deckforge directory: %v\n", err)
		os.Exit(1)
	}

	app, err := tui.NewApp(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting deckforge: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
