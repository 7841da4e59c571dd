package cmd

import (
	"os"
	"testing"

	"github.com/oakwood-commons/imgx/internal/ui"
)

// TestMain stubs platform actions (clipboard, file viewer) so that no test in
// the cmd package can trigger real side effects.
func TestMain(m *testing.M) {
	restore := ui.StubPlatformActions()
	code := m.Run()
	restore()
	os.Exit(code)
}
