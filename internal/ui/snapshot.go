package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

// SnapshotConfig configures snapshot rendering.
type SnapshotConfig struct {
	Width     int
	Height    int
	StartKeys []string
	Options   Options
	Configure func(*Model)
}

// RenderModelSnapshot renders one frame through the same Model code path as
// the interactive program. Images decode synchronously so the frame is final.
func RenderModelSnapshot(items []gallery.Item, cfg SnapshotConfig) string {
	opts := cfg.Options
	opts.Synchronous = true
	m := NewModel(items, opts)
	m.ForceWindowSize = true
	m.WinWidth = cfg.Width
	m.WinHeight = cfg.Height
	if cfg.Configure != nil {
		cfg.Configure(m)
	}
	m.applyLayout()
	ApplyStartupKeys(m, cfg.StartKeys)

	view := m.Render()
	if m.NoColor {
		view = ansi.Strip(view)
	}
	return padSnapshotHeight(view, m.height(), m.width())
}

func padSnapshotHeight(view string, height, width int) string {
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	if len(lines) >= height {
		return strings.Join(lines, "\n")
	}
	padLine := strings.Repeat(" ", max(1, width))
	for len(lines) < height {
		lines = append(lines, padLine)
	}
	return strings.Join(lines, "\n")
}
