package ui

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/oakwood-commons/imgx/internal/imageview"
)

// copyToClipboardFn and openFileFn are the active implementations for
// clipboard and viewer operations. Tests replace them via StubPlatformActions.
var (
	copyToClipboardFn = clipboard.WriteAll
	openFileFn        = openFileImpl
)

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) error { return copyToClipboardFn(text) }

// OpenFile opens a path or URL with the system default application.
func OpenFile(target string) error { return openFileFn(target) }

// StubPlatformActions replaces clipboard and viewer functions with no-ops
// and returns a restore function.
func StubPlatformActions() (restore func()) {
	origCopy := copyToClipboardFn
	origOpen := openFileFn
	copyToClipboardFn = func(string) error { return nil }
	openFileFn = func(string) error { return nil }
	return func() {
		copyToClipboardFn = origCopy
		openFileFn = origOpen
	}
}

// openFileImpl starts the platform opener. The child outlives the caller, so
// it gets a detached context and is not waited on.
func openFileImpl(target string) error {
	ctx := context.Background()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", target)
	case "linux":
		if _, err := exec.LookPath("xdg-open"); err != nil {
			return fmt.Errorf("xdg-open not found (install xdg-utils)")
		}
		cmd = exec.CommandContext(ctx, "xdg-open", target)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

// platformResultMsg carries the outcome of a clipboard or viewer command.
type platformResultMsg struct {
	status string
	err    error
}

func (m *Model) copySelected() tea.Cmd {
	item, ok := m.Gallery.SelectedItem()
	if !ok || !item.HasSource() {
		return nil
	}
	uri := item.Source.URI
	return func() tea.Msg {
		if err := CopyToClipboard(uri); err != nil {
			return platformResultMsg{err: fmt.Errorf("copy: %w", err)}
		}
		return platformResultMsg{status: "copied " + filepath.Base(uri)}
	}
}

// openSelected hands local images to the system viewer by path; other
// schemes are passed through for the opener to handle.
func (m *Model) openSelected() tea.Cmd {
	item, ok := m.Gallery.SelectedItem()
	if !ok || !item.HasSource() {
		return nil
	}
	target := item.Source.URI
	if path, err := imageview.ResolvePath(target); err == nil {
		target = path
	}
	return func() tea.Msg {
		if err := OpenFile(target); err != nil {
			return platformResultMsg{err: fmt.Errorf("open: %w", err)}
		}
		return platformResultMsg{status: "opened " + filepath.Base(target)}
	}
}
