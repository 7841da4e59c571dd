package cmd

import (
	"context"
	"os"
	"runtime"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

const resizePollInterval = 250 * time.Millisecond

var (
	stdinIsPiped  = func() bool { return !term.IsTerminal(int(os.Stdin.Fd())) }
	stdoutIsPiped = func() bool { return !term.IsTerminal(int(os.Stdout.Fd())) }
	openTTYFiles  = openTTY
	termGetSize   = term.GetSize
	newPollTicker = func(d time.Duration) pollTicker { return timeTicker{time.NewTicker(d)} }
)

type pollTicker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	*time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.Ticker.C }

// ttySession is the controlling terminal, opened when the manifest arrives
// on stdin so the gallery still gets keys, clicks and resizes.
type ttySession struct {
	in     *os.File
	out    *os.File
	cancel context.CancelFunc
}

func (s *ttySession) programOptions(ctx context.Context) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithInput(s.in)}
	if s.out != nil {
		opts = append(opts, tea.WithOutput(s.out), watchResize(ctx, s.out))
	}
	return opts
}

// Close stops the resize watcher and releases the terminal files.
func (s *ttySession) Close() {
	s.cancel()
	_ = s.in.Close()
	if s.out != nil && s.out != s.in {
		_ = s.out.Close()
	}
}

// getProgramOptions returns the program options for the current stdin and a
// cleanup func that is always safe to call. Without a controlling terminal
// (CI) the program runs on the piped stdin.
func getProgramOptions() ([]tea.ProgramOption, func()) {
	if !stdinIsPiped() {
		return nil, func() {}
	}
	in, out, err := openTTYFiles()
	if err != nil {
		return nil, func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &ttySession{in: in, out: out, cancel: cancel}
	return s.programOptions(ctx), s.Close
}

func openTTY() (*os.File, *os.File, error) {
	inName, outName := ttyDevices(runtime.GOOS)
	in, err := os.OpenFile(inName, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	if outName == inName {
		return in, in, nil
	}
	out, err := os.OpenFile(outName, os.O_RDWR, 0)
	if err != nil {
		_ = in.Close()
		return nil, nil, err
	}
	return in, out, nil
}

func ttyDevices(goos string) (in, out string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}

// sizeWatcher tracks the last size reported for a terminal.
type sizeWatcher struct {
	fd     int
	width  int
	height int
}

// poll reads the terminal size and reports it when it changed.
func (s *sizeWatcher) poll() (tea.WindowSizeMsg, bool) {
	w, h, err := termGetSize(s.fd)
	if err != nil || (w == s.width && h == s.height) {
		return tea.WindowSizeMsg{}, false
	}
	s.width, s.height = w, h
	return tea.WindowSizeMsg{Width: w, Height: h}, true
}

func (s *sizeWatcher) run(ctx context.Context, t pollTicker, send func(tea.WindowSizeMsg)) {
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			if msg, ok := s.poll(); ok {
				send(msg)
			}
		}
	}
}

// watchResize polls out for size changes; SIGWINCH is not delivered for a
// reopened terminal on every platform.
func watchResize(ctx context.Context, out *os.File) tea.ProgramOption {
	return func(p *tea.Program) {
		sw := &sizeWatcher{fd: int(out.Fd())}
		go sw.run(ctx, newPollTicker(resizePollInterval), func(msg tea.WindowSizeMsg) { p.Send(msg) })
	}
}
