// Package tui is the embedding API for imgx: run the swipeable gallery over
// host-provided items, or render a single frame as a string.
package tui

import (
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	imgcel "github.com/oakwood-commons/imgx/internal/cel"
	"github.com/oakwood-commons/imgx/internal/ui"
	"github.com/oakwood-commons/imgx/pkg/gallery"
)

// defaultFallbackTermWidth is used when terminal size cannot be detected.
const defaultFallbackTermWidth = 120

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS environment variable.
// If detection fails completely, it returns (120, 24).
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	if col := os.Getenv("COLUMNS"); col != "" {
		if w, err := strconv.Atoi(col); err == nil && w > 0 {
			return w, 0
		}
	}
	return defaultFallbackTermWidth, 24
}

// Run starts the interactive gallery and blocks until the user quits. It
// returns the selection state at exit.
//
//	state, err := tui.Run(items, tui.DefaultConfig())
func Run(items []gallery.Item, cfg Config, opts ...tea.ProgramOption) (gallery.SelectionState, error) {
	cfg.Apply()
	m, err := ui.RunModel(items, ui.RunConfig{
		Width:     cfg.Width,
		Height:    cfg.Height,
		StartKeys: cfg.StartKeys,
		Options:   cfg.uiOptions(),
	}, opts...)
	if m == nil {
		return gallery.SelectionState{}, err
	}
	return m.Gallery.State(), err
}

// RenderSnapshot renders one frame of the gallery after replaying
// cfg.StartKeys. Images are decoded synchronously.
func RenderSnapshot(items []gallery.Item, cfg Config) string {
	cfg.Apply()
	return ui.RenderModelSnapshot(items, ui.SnapshotConfig{
		Width:     cfg.Width,
		Height:    cfg.Height,
		StartKeys: cfg.StartKeys,
		Options:   cfg.uiOptions(),
	})
}

// FilterItems keeps the items for which the CEL expression is true. The
// expression sees `item` (title, description, uri, ext), `index` and `total`.
// An empty expression returns items unchanged.
func FilterItems(items []gallery.Item, expr string) ([]gallery.Item, error) {
	return imgcel.Apply(items, expr)
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
