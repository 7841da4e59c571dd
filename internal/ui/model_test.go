package ui

import (
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/imgx/internal/imageview"
	"github.com/oakwood-commons/imgx/pkg/gallery"
)

func newBlockModel(t *testing.T, n int, opts Options) *Model {
	t.Helper()
	if opts.Gallery.ImageRenderer == nil {
		opts.Gallery.ImageRenderer = gallery.ImageRendererFunc(blockRenderer)
	}
	opts.NoColor = true
	m := NewModel(testItems(n), opts)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(testItems(2), Options{})
	assert.Equal(t, gallery.ModeGallery, m.Gallery.Mode())
	assert.Equal(t, 0, m.Gallery.SelectedIndex())
	assert.NotNil(t, m.Images, "nil renderer selects the terminal renderer")

	host := NewModel(testItems(2), Options{Gallery: gallery.Options{ImageRenderer: gallery.NopImageRenderer{}}})
	assert.Nil(t, host.Images)
}

func TestKeyNavigation(t *testing.T) {
	var selected []int
	m := newBlockModel(t, 3, Options{Gallery: gallery.Options{
		OnIndexSelected: func(i int) { selected = append(selected, i) },
	}})

	press(m, "right")
	assert.Equal(t, 1, m.Gallery.SelectedIndex())
	press(m, "l")
	assert.Equal(t, 2, m.Gallery.SelectedIndex())
	press(m, "right")
	assert.Equal(t, 2, m.Gallery.SelectedIndex(), "no page after the last")
	press(m, "home")
	assert.Equal(t, 0, m.Gallery.SelectedIndex())
	press(m, "left")
	assert.Equal(t, 0, m.Gallery.SelectedIndex(), "no page before the first")
	press(m, "G")
	assert.Equal(t, 2, m.Gallery.SelectedIndex())
	press(m, "h")
	assert.Equal(t, 1, m.Gallery.SelectedIndex())

	assert.Equal(t, []int{1, 2, 0, 2, 1}, selected)
}

func TestTapTogglesPreviewAndFooter(t *testing.T) {
	var modes []gallery.Mode
	m := newBlockModel(t, 2, Options{AppName: "imgx", Gallery: gallery.Options{
		OnModeChanged: func(mode gallery.Mode) { modes = append(modes, mode) },
	}})
	assert.Contains(t, m.Render(), "GALLERY")

	press(m, "enter")
	assert.Equal(t, gallery.ModeImagePreview, m.Gallery.Mode())
	assert.Equal(t, 0, m.footerHeight())
	assert.NotContains(t, m.Render(), "GALLERY")

	press(m, " ")
	assert.Equal(t, gallery.ModeGallery, m.Gallery.Mode())
	assert.Equal(t, []gallery.Mode{gallery.ModeImagePreview, gallery.ModeGallery}, modes)
}

func TestPagingAllowedInPreview(t *testing.T) {
	m := newBlockModel(t, 2, Options{})
	press(m, "enter", "right")
	assert.Equal(t, 1, m.Gallery.SelectedIndex())
	assert.Equal(t, gallery.ModeImagePreview, m.Gallery.Mode(), "paging keeps the mode")
}

func TestEscLeavesPreviewBeforeQuitting(t *testing.T) {
	m := newBlockModel(t, 2, Options{})
	press(m, "enter")
	cmd := press(m, "esc")
	assert.Nil(t, cmd)
	assert.Equal(t, gallery.ModeGallery, m.Gallery.Mode())

	cmd = press(m, "esc")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestQuitKey(t *testing.T) {
	m := newBlockModel(t, 1, Options{})
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestMouseClickTaps(t *testing.T) {
	m := newBlockModel(t, 2, Options{})
	m.Update(tea.MouseClickMsg{Button: tea.MouseLeft, X: 3, Y: 2})
	assert.Equal(t, gallery.ModeImagePreview, m.Gallery.Mode())

	m.Update(tea.MouseClickMsg{Button: tea.MouseRight, X: 3, Y: 2})
	assert.Equal(t, gallery.ModeImagePreview, m.Gallery.Mode())
}

func TestTapOnEmptyGalleryIsIgnored(t *testing.T) {
	m := newBlockModel(t, 0, Options{})
	press(m, "enter")
	assert.Equal(t, gallery.ModeGallery, m.Gallery.Mode())
}

func TestHelpToggle(t *testing.T) {
	m := newBlockModel(t, 2, Options{AppName: "imgx", About: "terminal gallery"})
	press(m, "?")
	require.True(t, m.HelpVisible)
	view := m.Render()
	assert.Contains(t, view, "previous image")
	assert.Contains(t, view, "terminal gallery")

	press(m, "right")
	assert.Equal(t, 0, m.Gallery.SelectedIndex(), "navigation is blocked while help is open")

	press(m, "esc")
	assert.False(t, m.HelpVisible)
}

func TestWindowSizeSetsPageSize(t *testing.T) {
	var got gallery.ImageProps
	renderer := gallery.ImageRendererFunc(func(p gallery.ImageProps, item gallery.Item, index int) string {
		got = p
		return blockRenderer(p, item, index)
	})

	m := newBlockModel(t, 2, Options{Gallery: gallery.Options{ImageRenderer: renderer}})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Render()
	assert.Equal(t, 100, got.Width)
	assert.Equal(t, 29, got.Height, "one row for the footer")

	m = newBlockModel(t, 2, Options{Indicator: true, Gallery: gallery.Options{ImageRenderer: renderer}})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Render()
	assert.Equal(t, 28, got.Height, "one more row for the page indicator")

	m = newBlockModel(t, 2, Options{Gallery: gallery.Options{ImageRenderer: renderer, ShowNextPage: true}})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Render()
	assert.Less(t, got.Width, 100, "the peek takes columns from the page")

	press(m, "right")
	m.Render()
	assert.Equal(t, 100, got.Width, "the last page has nothing to peek at")
	press(m, "left")
	m.Render()
	assert.Less(t, got.Width, 100)
}

func TestForcedWindowSizeIgnoresResize(t *testing.T) {
	m := newBlockModel(t, 1, Options{})
	m.ForceWindowSize = true
	m.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	assert.Equal(t, 40, m.width())
	assert.Equal(t, 12, m.height())
}

func TestCaptionHiddenInPreview(t *testing.T) {
	m := newBlockModel(t, 2, Options{ImageOverlay: true, HideFooter: true})
	assert.Contains(t, m.Render(), "Image A")
	press(m, "enter")
	assert.NotContains(t, m.Render(), "Image A")
}

func TestRenderHints(t *testing.T) {
	var got gallery.ImageProps
	capture := gallery.ImageRendererFunc(func(p gallery.ImageProps, _ gallery.Item, _ int) string {
		got = p
		return "x"
	})

	m := newBlockModel(t, 1, Options{Fit: "cover", Scaling: "nearest", Gallery: gallery.Options{ImageRenderer: capture}})
	m.Render()
	assert.Equal(t, "cover", got.Hint(imageview.HintFit, ""))
	assert.Equal(t, "nearest", got.Hint(imageview.HintScaling, ""))

	override := func(p gallery.ImageProps) gallery.ImageProps {
		p.Hints[imageview.HintFit] = "contain"
		return p
	}
	m = newBlockModel(t, 1, Options{Fit: "cover", Gallery: gallery.Options{ImageRenderer: capture, PropsTransform: override}})
	m.Render()
	assert.Equal(t, "contain", got.Hint(imageview.HintFit, ""), "host transform runs last")
}

func TestPlaceholderUntilImageLoads(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "red.png", color.RGBA{R: 255, A: 255})
	m := NewModel([]gallery.Item{{Source: gallery.Source{URI: path}, Title: "red"}}, Options{})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})

	init := m.Init()
	require.NotNil(t, init)
	view := m.Render()
	assert.Contains(t, view, "|", "spinner placeholder while decoding")
	assert.NotContains(t, view, "▀")
	assert.True(t, m.loading())

	runCmd(m, init)
	done, err := m.Images.Status(path)
	require.True(t, done)
	require.NoError(t, err)
	assert.False(t, m.loading())
	assert.Contains(t, m.Render(), "▀")
}

func TestLoadErrorShownInFooter(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.png")
	m := NewModel([]gallery.Item{{Source: gallery.Source{URI: missing}}}, Options{NoColor: true})
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 10})
	runCmd(m, m.Init())
	assert.Contains(t, m.ErrMsg, "missing.png")
	assert.Contains(t, m.Render(), "missing.png")

	m.Update(imageview.LoadedMsg{URI: missing})
	assert.Contains(t, m.ErrMsg, "missing.png", "a successful load does not clear other errors")
}

func TestNavigationPreloadsNeighbours(t *testing.T) {
	dir := t.TempDir()
	var items []gallery.Item
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png"} {
		items = append(items, gallery.Item{Source: gallery.Source{URI: writeTestPNG(t, dir, name, color.White)}})
	}
	m := NewModel(items, Options{})
	runCmd(m, m.Init())
	done, _ := m.Images.Status(items[2].Source.URI)
	assert.False(t, done, "only the selected page and its neighbours are loaded")

	runCmd(m, press(m, "right"))
	done, _ = m.Images.Status(items[2].Source.URI)
	assert.True(t, done)

	runCmd(m, press(m, "right"))
	done, _ = m.Images.Status(items[0].Source.URI)
	assert.False(t, done, "pages outside the window are evicted")
	done, _ = m.Images.Status(items[3].Source.URI)
	assert.True(t, done)
}

func TestCopySelectedPath(t *testing.T) {
	var copied string
	orig := copyToClipboardFn
	copyToClipboardFn = func(s string) error { copied = s; return nil }
	defer func() { copyToClipboardFn = orig }()

	m := NewModel([]gallery.Item{{Source: gallery.Source{URI: "/photos/cat.png"}}}, Options{
		Gallery: gallery.Options{ImageRenderer: gallery.NopImageRenderer{}},
	})
	runCmd(m, press(m, "y"))
	assert.Equal(t, "/photos/cat.png", copied)
	assert.Equal(t, "copied cat.png", m.StatusMsg)
}

func TestOpenSelectedError(t *testing.T) {
	orig := openFileFn
	openFileFn = func(string) error { return errors.New("no viewer") }
	defer func() { openFileFn = orig }()

	m := NewModel([]gallery.Item{{Source: gallery.Source{URI: "file:///photos/cat.png"}}}, Options{
		Gallery: gallery.Options{ImageRenderer: gallery.NopImageRenderer{}},
	})
	runCmd(m, press(m, "o"))
	assert.Equal(t, "open: no viewer", m.ErrMsg)
	assert.Empty(t, m.StatusMsg)
}
