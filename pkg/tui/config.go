package tui

import (
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/imgx/internal/imageview"
	"github.com/oakwood-commons/imgx/internal/ui"
	"github.com/oakwood-commons/imgx/pkg/gallery"
)

// Config holds host-provided settings for running the gallery.
type Config struct {
	AppName    string
	About      string
	Width      int
	Height     int
	NoColor    bool
	HideFooter bool // Hide the footer bar (for non-interactive display)
	ThemeName  string

	SelectedIndex int
	ShowNextPage  bool
	PeekWidth     int
	// OnIndexSelected and OnModeChanged are optional observers; they run after
	// the gallery has committed the new state.
	OnIndexSelected func(index int)
	OnModeChanged   func(mode gallery.Mode)
	Style           gallery.Style

	// RenderOverlay and RenderImageOverlay replace the built-in page indicator
	// and caption. Indicator and ImageOverlay switch the built-ins on or off.
	RenderOverlay      gallery.OverlayFunc
	RenderImageOverlay gallery.OverlayFunc
	RenderPlaceholder  gallery.PlaceholderFunc
	ImageOverlay       *bool
	Indicator          *bool

	// ImageRenderer replaces the built-in half-block renderer.
	ImageRenderer  gallery.ImageRenderer
	PropsTransform gallery.PropsTransform
	Fit            string // contain (default) or cover
	Scaling        string // nearest, approx, bilinear or catmullrom (default)

	StartKeys []string
	Logger    logr.Logger
}

// DefaultConfig returns a baseline config with the same defaults as the CLI.
func DefaultConfig() Config {
	cfg := Config{
		AppName:   "imgx",
		Fit:       imageview.FitContain,
		Scaling:   "catmullrom",
		PeekWidth: 0,
	}
	imageOverlay, indicator := true, true
	cfg.ImageOverlay = &imageOverlay
	cfg.Indicator = &indicator

	embedded, err := ui.EmbeddedDefaultConfig()
	if err != nil {
		return cfg
	}
	if name := strings.TrimSpace(embedded.App.About.Name); name != "" {
		cfg.AppName = name
	}
	cfg.About = embedded.App.About.Description
	cfg.ThemeName = embedded.UI.Theme.Default
	g := embedded.Gallery
	if g.ShowNextPage != nil {
		cfg.ShowNextPage = *g.ShowNextPage
	}
	if g.PeekWidth != nil {
		cfg.PeekWidth = *g.PeekWidth
	}
	if g.Fit != nil {
		cfg.Fit = *g.Fit
	}
	if g.Scaling != nil {
		cfg.Scaling = *g.Scaling
	}
	if g.ImageOverlay != nil {
		v := *g.ImageOverlay
		cfg.ImageOverlay = &v
	}
	if g.Indicator != nil {
		v := *g.Indicator
		cfg.Indicator = &v
	}
	return cfg
}

// Apply applies the config to the UI globals. An unknown ThemeName falls back
// to the embedded default theme so the gallery can still start.
func (c Config) Apply() {
	if c.ThemeName == "" {
		return
	}
	if len(ui.ThemeNames()) == 0 {
		if embedded, err := ui.EmbeddedDefaultConfig(); err == nil {
			ui.InitializeThemes(embedded.UI.Themes)
		}
	}
	if err := ui.SetThemeByName(c.ThemeName); err != nil {
		c.Logger.V(1).Info("theme not found, using default", "theme", c.ThemeName)
		ui.SetTheme(ui.DefaultTheme())
	}
}

// uiOptions maps the config onto the UI model options.
func (c Config) uiOptions() ui.Options {
	return ui.Options{
		Gallery: gallery.Options{
			SelectedIndex:      c.SelectedIndex,
			OnIndexSelected:    c.OnIndexSelected,
			OnModeChanged:      c.OnModeChanged,
			ShowNextPage:       c.ShowNextPage,
			Style:              c.Style,
			RenderOverlay:      c.RenderOverlay,
			RenderImageOverlay: c.RenderImageOverlay,
			RenderPlaceholder:  c.RenderPlaceholder,
			ImageRenderer:      c.ImageRenderer,
			PropsTransform:     c.PropsTransform,
			Logger:             c.Logger,
		},
		AppName:      c.AppName,
		About:        c.About,
		NoColor:      c.NoColor,
		HideFooter:   c.HideFooter,
		ImageOverlay: boolOr(c.ImageOverlay, true),
		Indicator:    boolOr(c.Indicator, true),
		Fit:          c.Fit,
		Scaling:      c.Scaling,
		PeekWidth:    c.PeekWidth,
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
