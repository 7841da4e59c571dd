package ui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

// RunConfig configures RunModel.
type RunConfig struct {
	// Width and Height force the window size; 0 follows the terminal.
	Width     int
	Height    int
	StartKeys []string
	Options   Options
	Configure func(*Model)
}

// RunModel starts the Bubble Tea program and blocks until the user quits.
// It returns the final model so callers can read the last selection.
// Extra ProgramOptions (e.g., custom IO) are passed to tea.NewProgram.
func RunModel(items []gallery.Item, cfg RunConfig, opts ...tea.ProgramOption) (*Model, error) {
	m := NewModel(items, cfg.Options)
	if cfg.Configure != nil {
		cfg.Configure(m)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		m.ForceWindowSize = true
		m.WinWidth = cfg.Width
		m.WinHeight = cfg.Height
		opts = append(opts, tea.WithWindowSize(cfg.Width, cfg.Height))
	}
	m.applyLayout()
	ApplyStartupKeys(m, cfg.StartKeys)

	prog := tea.NewProgram(m, opts...)
	final, err := prog.Run()
	if err != nil {
		return m, fmt.Errorf("run gallery: %w", err)
	}
	if fm, ok := final.(*Model); ok && fm != nil {
		return fm, nil
	}
	return m, nil
}
