package cmd

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTYDevices(t *testing.T) {
	in, out := ttyDevices("windows")
	assert.Equal(t, "CONIN$", in)
	assert.Equal(t, "CONOUT$", out)

	for _, goos := range []string{"linux", "darwin", "freebsd"} {
		in, out = ttyDevices(goos)
		assert.Equal(t, "/dev/tty", in, goos)
		assert.Equal(t, "/dev/tty", out, goos)
	}
}

// stubTTY replaces pipe detection and terminal opening for one test.
func stubTTY(t *testing.T, piped bool, open func() (*os.File, *os.File, error)) {
	t.Helper()
	origPiped, origOpen := stdinIsPiped, openTTYFiles
	stdinIsPiped = func() bool { return piped }
	openTTYFiles = open
	t.Cleanup(func() {
		stdinIsPiped, openTTYFiles = origPiped, origOpen
	})
}

func TestGetProgramOptions(t *testing.T) {
	t.Run("piped stdin opens the terminal", func(t *testing.T) {
		dir := t.TempDir()
		in, err := os.CreateTemp(dir, "tty-in-*")
		require.NoError(t, err)
		out, err := os.CreateTemp(dir, "tty-out-*")
		require.NoError(t, err)
		stubTTY(t, true, func() (*os.File, *os.File, error) { return in, out, nil })

		opts, cleanup := getProgramOptions()
		// context, input, output, resize watcher
		assert.Len(t, opts, 4)

		cleanup()
		assert.Error(t, in.Close(), "cleanup closes the input")
		assert.Error(t, out.Close(), "cleanup closes the output")
	})

	t.Run("shared input and output close once", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "tty-*")
		require.NoError(t, err)
		stubTTY(t, true, func() (*os.File, *os.File, error) { return f, f, nil })

		_, cleanup := getProgramOptions()
		assert.NotPanics(t, cleanup)
		assert.Error(t, f.Close())
	})

	t.Run("terminal stdin keeps defaults", func(t *testing.T) {
		stubTTY(t, false, func() (*os.File, *os.File, error) {
			t.Fatal("terminal must not be opened")
			return nil, nil, nil
		})
		opts, cleanup := getProgramOptions()
		assert.Nil(t, opts)
		assert.NotPanics(t, cleanup)
	})

	t.Run("no controlling terminal", func(t *testing.T) {
		stubTTY(t, true, func() (*os.File, *os.File, error) { return nil, nil, os.ErrNotExist })
		opts, cleanup := getProgramOptions()
		assert.Nil(t, opts)
		assert.NotPanics(t, cleanup)
	})
}

// stubSizes makes termGetSize return the given sizes in order, repeating the last.
func stubSizes(t *testing.T, sizes ...[2]int) {
	t.Helper()
	orig := termGetSize
	i := 0
	termGetSize = func(int) (int, int, error) {
		s := sizes[i]
		if i < len(sizes)-1 {
			i++
		}
		return s[0], s[1], nil
	}
	t.Cleanup(func() { termGetSize = orig })
}

func TestSizeWatcherPoll(t *testing.T) {
	stubSizes(t, [2]int{80, 24}, [2]int{80, 24}, [2]int{100, 30})
	sw := &sizeWatcher{}

	msg, ok := sw.poll()
	require.True(t, ok)
	assert.Equal(t, tea.WindowSizeMsg{Width: 80, Height: 24}, msg)

	_, ok = sw.poll()
	assert.False(t, ok, "unchanged size is not reported")

	msg, ok = sw.poll()
	require.True(t, ok)
	assert.Equal(t, tea.WindowSizeMsg{Width: 100, Height: 30}, msg)
}

func TestSizeWatcherPollError(t *testing.T) {
	orig := termGetSize
	termGetSize = func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") }
	t.Cleanup(func() { termGetSize = orig })

	_, ok := (&sizeWatcher{}).poll()
	assert.False(t, ok)
}

type fakeTicker struct {
	ch      chan time.Time
	stopped chan struct{}
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }
func (f *fakeTicker) Stop()               { close(f.stopped) }

func TestSizeWatcherRun(t *testing.T) {
	stubSizes(t, [2]int{80, 24}, [2]int{81, 24})
	ticker := &fakeTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
	sent := make(chan tea.WindowSizeMsg, 2)

	ctx, cancel := context.WithCancel(context.Background())
	go (&sizeWatcher{}).run(ctx, ticker, func(m tea.WindowSizeMsg) { sent <- m })

	ticker.ch <- time.Now()
	ticker.ch <- time.Now()
	assert.Equal(t, tea.WindowSizeMsg{Width: 80, Height: 24}, <-sent)
	assert.Equal(t, tea.WindowSizeMsg{Width: 81, Height: 24}, <-sent)

	cancel()
	select {
	case <-ticker.stopped:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop the ticker on cancel")
	}
}
