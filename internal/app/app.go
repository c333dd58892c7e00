package app

import (
	"errors"
	"time"

	"github.com/atomicstack/buildtree/internal/backend"
	"github.com/atomicstack/buildtree/internal/logging"
	"github.com/atomicstack/buildtree/internal/session"
	"github.com/atomicstack/buildtree/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Width      int
	Height     int
	ASCII      bool
	ShowFooter bool
	Watch      bool
}

const watchInterval = 250 * time.Millisecond

// Run bootstraps and executes the Bubble Tea program over s.
func Run(cfg Config, s *session.Session) error {
	var watcher *backend.Watcher
	if cfg.Watch && s.Path() != "" {
		w, err := backend.NewWatcher(s.Path(), watchInterval)
		if err != nil {
			logging.Error(err)
		} else {
			watcher = w
			defer watcher.Stop()
		}
	}
	model := ui.NewModel(s, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ASCII:      cfg.ASCII,
		ShowFooter: cfg.ShowFooter,
		Watcher:    watcher,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
