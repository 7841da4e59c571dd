// Package ui hosts the Bubble Tea program around a gallery.Gallery: key and
// mouse handling, background image loading, footer, help panel and themes.
package ui

import (
	"fmt"
	"path/filepath"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/imgx/internal/imageview"
	"github.com/oakwood-commons/imgx/internal/pager"
	"github.com/oakwood-commons/imgx/pkg/gallery"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures a Model.
type Options struct {
	// Gallery is handed to gallery.New. A nil ImageRenderer selects the
	// half-block terminal renderer, a nil RenderPlaceholder the spinner.
	Gallery gallery.Options
	AppName string
	// About is shown under the title in the help panel.
	About      string
	NoColor    bool
	HideFooter bool
	// ImageOverlay and Indicator enable the built-in caption and page
	// indicator when the matching Gallery overlay func is nil.
	ImageOverlay bool
	Indicator    bool
	Fit          string
	Scaling      string
	PeekWidth    int
	// Synchronous decodes images while rendering instead of in the background.
	Synchronous bool
	Theme       *Theme
	Keys        *KeyMap
}

// Model is the Bubble Tea model of the gallery program.
type Model struct {
	Gallery *gallery.Gallery
	Pager   *pager.Pager
	// Images is nil when the host supplied its own image renderer.
	Images  *imageview.Renderer
	Spinner spinner.Model
	Keys    KeyMap
	Theme   Theme

	AppName         string
	About           string
	NoColor         bool
	HideFooter      bool
	HelpVisible     bool
	WinWidth        int
	WinHeight       int
	ForceWindowSize bool
	ErrMsg          string
	StatusMsg       string

	showNext bool
	spinning bool
	logger   logr.Logger
}

// NewModel builds a model over items.
func NewModel(items []gallery.Item, opts Options) *Model {
	m := &Model{
		Keys:       DefaultKeyMap(),
		Theme:      CurrentTheme(),
		AppName:    opts.AppName,
		About:      opts.About,
		NoColor:    opts.NoColor,
		HideFooter: opts.HideFooter,
		showNext:   opts.Gallery.ShowNextPage,
		logger:     opts.Gallery.Logger,
	}
	if opts.Theme != nil {
		m.Theme = *opts.Theme
	}
	if opts.Keys != nil {
		m.Keys = *opts.Keys
	}
	m.Spinner = spinner.New()
	m.Spinner.Spinner = spinner.Line
	if !m.NoColor {
		m.Spinner.Style = lipgloss.NewStyle().Foreground(m.Theme.Accent)
	}

	gopts := opts.Gallery
	if gopts.ImageRenderer == nil {
		m.Images = imageview.New()
		m.Images.NoColor = opts.NoColor
		m.Images.Synchronous = opts.Synchronous
		m.Images.Logger = gopts.Logger
		if !m.NoColor {
			m.Images.ErrorStyle = lipgloss.NewStyle().Foreground(m.Theme.StatusError)
		} else {
			m.Images.ErrorStyle = lipgloss.NewStyle()
		}
		gopts.ImageRenderer = m.Images
	}
	gopts.PropsTransform = withRenderHints(opts.Fit, opts.Scaling, gopts.PropsTransform)
	if gopts.RenderPlaceholder == nil {
		gopts.RenderPlaceholder = m.placeholder
	}
	if gopts.RenderImageOverlay == nil && opts.ImageOverlay {
		gopts.RenderImageOverlay = m.caption
	}
	if gopts.RenderOverlay == nil && opts.Indicator {
		gopts.RenderOverlay = m.indicator
	}
	m.Gallery = gallery.New(items, gopts)

	m.Pager = pager.New()
	if opts.PeekWidth > 0 {
		m.Pager.PeekWidth = opts.PeekWidth
	}
	if gopts.RenderOverlay == nil {
		m.Pager.OverlayHeight = 0
	}
	m.applyLayout()
	return m
}

// withRenderHints adds fit and scaling hints before the host transform runs,
// so the host can still override them.
func withRenderHints(fit, scaling string, next gallery.PropsTransform) gallery.PropsTransform {
	return func(p gallery.ImageProps) gallery.ImageProps {
		hints := make(map[string]string, len(p.Hints)+2)
		for k, v := range p.Hints {
			hints[k] = v
		}
		if fit != "" {
			hints[imageview.HintFit] = fit
		}
		if scaling != "" {
			hints[imageview.HintScaling] = scaling
		}
		p.Hints = hints
		if next != nil {
			p = next(p)
		}
		return p
	}
}

func (m *Model) placeholder() string {
	return m.Spinner.View()
}

func (m *Model) caption(item gallery.Item, index int) string {
	w, _ := m.Pager.PageSize(m.peekVisible())
	return RenderCaption(item, index, w, m.Theme, m.NoColor)
}

func (m *Model) indicator(_ gallery.Item, index int) string {
	return RenderIndicator(index, m.Gallery.Len(), m.width(), m.Theme, m.NoColor)
}

func (m *Model) width() int {
	if m.WinWidth > 0 {
		return m.WinWidth
	}
	return defaultWidth
}

func (m *Model) height() int {
	if m.WinHeight > 0 {
		return m.WinHeight
	}
	return defaultHeight
}

// footerHeight is zero in image preview mode so the image gets the whole screen.
func (m *Model) footerHeight() int {
	if m.HideFooter || m.Gallery.Mode() == gallery.ModeImagePreview {
		return 0
	}
	return 1
}

func (m *Model) bodyHeight() int {
	h := m.height() - m.footerHeight()
	if h < 1 {
		h = 1
	}
	return h
}

// peekVisible reports whether the pager draws a peek of the next page, which
// it skips on the last page.
func (m *Model) peekVisible() bool {
	return m.showNext && m.Gallery.SelectedIndex()+1 < m.Gallery.Len()
}

// applyLayout pushes the window size down to the pager and the gallery. It
// runs again after page changes since the peek depends on the selected index.
func (m *Model) applyLayout() {
	m.Pager.SetSize(m.width(), m.bodyHeight())
	m.Gallery.SetPageSize(m.Pager.PageSize(m.peekVisible()))
}

// Init starts loading the visible images.
func (m *Model) Init() tea.Cmd {
	m.logger.V(1).Info("gallery started", "items", m.Gallery.Len(), "index", m.Gallery.SelectedIndex())
	return m.preloadWindow()
}

// preloadWindow starts decoding the selected image and its neighbours.
func (m *Model) preloadWindow() tea.Cmd {
	if m.Images == nil || m.Images.Synchronous {
		return nil
	}
	cmd := m.Images.Preload(m.windowURIs()...)
	return tea.Batch(cmd, m.startSpinner())
}

func (m *Model) windowURIs() []string {
	items := m.Gallery.Items()
	var uris []string
	for _, i := range pager.Window(m.Gallery.SelectedIndex(), len(items)) {
		if items[i].HasSource() {
			uris = append(uris, items[i].Source.URI)
		}
	}
	return uris
}

// loading reports whether a visible image is still being decoded.
func (m *Model) loading() bool {
	if m.Images == nil {
		return false
	}
	for _, uri := range m.windowURIs() {
		if done, _ := m.Images.Status(uri); !done {
			return true
		}
	}
	return false
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning || !m.loading() {
		return nil
	}
	m.spinning = true
	return m.Spinner.Tick
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ForceWindowSize {
			m.WinWidth = msg.Width
			m.WinHeight = msg.Height
		}
		m.applyLayout()
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case platformResultMsg:
		if msg.err != nil {
			m.logger.Error(msg.err, "platform action failed")
			m.ErrMsg = msg.err.Error()
			m.StatusMsg = ""
		} else {
			m.ErrMsg = ""
			m.StatusMsg = msg.status
		}
		return m, nil

	case imageview.LoadedMsg:
		if msg.Err != nil {
			m.ErrMsg = fmt.Sprintf("%s: %v", filepath.Base(msg.URI), msg.Err)
		}
		return m, nil

	case tea.MouseClickMsg:
		mouse := msg.Mouse()
		if mouse.Button == tea.MouseLeft && !m.HelpVisible && mouse.Y < m.bodyHeight() {
			m.tap()
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		// Esc backs out of help and preview before it quits.
		if msg.String() == "esc" {
			if m.HelpVisible {
				m.HelpVisible = false
				return m, nil
			}
			if m.Gallery.Mode() == gallery.ModeImagePreview {
				m.tap()
				return m, nil
			}
		}
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
		return m, nil
	}
	if m.HelpVisible {
		return m, nil
	}

	props := m.Gallery.Props()
	moved := false
	switch {
	case key.Matches(msg, m.Keys.Prev):
		moved = m.Pager.Prev(props)
	case key.Matches(msg, m.Keys.Next):
		moved = m.Pager.Next(props)
	case key.Matches(msg, m.Keys.First):
		moved = m.Pager.GoTo(props, 0)
	case key.Matches(msg, m.Keys.Last):
		moved = m.Pager.GoTo(props, len(props.Items)-1)
	case key.Matches(msg, m.Keys.Tap):
		m.tap()
	case key.Matches(msg, m.Keys.Copy):
		return m, m.copySelected()
	case key.Matches(msg, m.Keys.Open):
		return m, m.openSelected()
	}
	if !moved {
		return m, nil
	}
	m.ErrMsg = ""
	m.StatusMsg = ""
	m.applyLayout()
	if m.Images != nil {
		m.Images.Retain(m.windowURIs()...)
	}
	return m, m.preloadWindow()
}

// tap toggles the gallery mode; the footer appears or disappears with it.
func (m *Model) tap() {
	if m.Gallery.Len() == 0 {
		return
	}
	m.Gallery.TapImage()
	m.applyLayout()
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.KeyboardEnhancements.ReportEventTypes = true
	return v
}

// Render returns the full screen as a string.
func (m *Model) Render() string {
	w, h := m.width(), m.bodyHeight()
	var body string
	if m.HelpVisible {
		body = lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.helpView())
	} else {
		body = lipgloss.NewStyle().Width(w).MaxWidth(w).Height(h).MaxHeight(h).
			Render(m.Gallery.View(m.Pager))
	}
	if m.footerHeight() == 0 {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.footerView())
}
