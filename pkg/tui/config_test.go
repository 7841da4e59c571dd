package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/imgx/internal/ui"
	"github.com/oakwood-commons/imgx/pkg/gallery"
)

func TestDefaultConfigMatchesEmbeddedDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "imgx", cfg.AppName)
	assert.Equal(t, "dark", cfg.ThemeName)
	assert.Equal(t, "contain", cfg.Fit)
	assert.Equal(t, "catmullrom", cfg.Scaling)
	assert.Equal(t, 8, cfg.PeekWidth)
	assert.False(t, cfg.ShowNextPage)
	require.NotNil(t, cfg.ImageOverlay)
	assert.True(t, *cfg.ImageOverlay)
	require.NotNil(t, cfg.Indicator)
	assert.True(t, *cfg.Indicator)
}

func TestApplyThemeByName(t *testing.T) {
	defer ui.SetTheme(ui.Theme{})

	Config{ThemeName: "cool"}.Apply()
	cool, ok := ui.GetTheme("cool")
	require.True(t, ok)
	assert.Equal(t, cool, ui.CurrentTheme())

	Config{ThemeName: "does-not-exist"}.Apply()
	assert.Equal(t, ui.DefaultTheme(), ui.CurrentTheme(), "unknown names fall back to the default theme")
}

func TestUIOptionsMapping(t *testing.T) {
	off := false
	var selected int
	cfg := Config{
		AppName:         "host",
		SelectedIndex:   2,
		ShowNextPage:    true,
		OnIndexSelected: func(i int) { selected = i },
		Indicator:       &off,
		Fit:             "cover",
	}
	opts := cfg.uiOptions()
	assert.Equal(t, "host", opts.AppName)
	assert.Equal(t, 2, opts.Gallery.SelectedIndex)
	assert.True(t, opts.Gallery.ShowNextPage)
	assert.False(t, opts.Indicator)
	assert.True(t, opts.ImageOverlay, "nil flags default to on")
	assert.Equal(t, "cover", opts.Fit)

	require.NotNil(t, opts.Gallery.OnIndexSelected)
	opts.Gallery.OnIndexSelected(4)
	assert.Equal(t, 4, selected)
	assert.Nil(t, opts.Gallery.OnModeChanged)
	assert.Equal(t, gallery.Style{}, opts.Gallery.Style)
}
