package gallery

import (
	"charm.land/bubbles/v2/spinner"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"
)

// Style holds container and page style overrides. The zero value applies no styling.
type Style struct {
	Container lipgloss.Style
	Page      lipgloss.Style
}

// Options configures a Gallery. Every callback is optional.
type Options struct {
	// SelectedIndex is the initially selected page (default 0).
	SelectedIndex int
	// OnIndexSelected fires after each page change, once the new index is committed.
	OnIndexSelected func(index int)
	// OnModeChanged fires after each mode transition, once the new mode is committed.
	OnModeChanged func(mode Mode)
	// ShowNextPage asks the pager to show a peek of the next page.
	ShowNextPage bool
	Style        Style
	// RenderOverlay draws the whole-gallery overlay (page indicators etc.).
	RenderOverlay OverlayFunc
	// RenderImageOverlay draws the per-image overlay, only on the selected
	// page and never in image preview mode.
	RenderImageOverlay OverlayFunc
	// RenderPlaceholder draws the loading state (default: a spinner frame).
	RenderPlaceholder PlaceholderFunc
	// ImageRenderer draws images (default: NopImageRenderer).
	ImageRenderer ImageRenderer
	// PropsTransform is applied to every page's image props (default: identity).
	PropsTransform PropsTransform
	Logger         logr.Logger
}

// Gallery holds the selection state of one gallery view. It is driven from a
// single goroutine (the UI event loop) and must not be shared.
type Gallery struct {
	items []Item
	opts  Options
	state SelectionState

	pageWidth  int
	pageHeight int
}

// New creates a Gallery in ModeGallery selecting opts.SelectedIndex.
func New(items []Item, opts Options) *Gallery {
	if opts.ImageRenderer == nil {
		opts.ImageRenderer = NopImageRenderer{}
	}
	if opts.PropsTransform == nil {
		opts.PropsTransform = IdentityTransform
	}
	if opts.RenderPlaceholder == nil {
		opts.RenderPlaceholder = DefaultPlaceholder
	}
	g := &Gallery{
		items: items,
		opts:  opts,
		state: SelectionState{
			SelectedIndex:         clampIndex(opts.SelectedIndex, len(items)),
			ImageSwitchingEnabled: true,
			Mode:                  ModeGallery,
		},
	}
	return g
}

// DefaultPlaceholder renders a static spinner frame.
func DefaultPlaceholder() string {
	return spinner.Line.Frames[0]
}

func clampIndex(index, n int) int {
	if index < 0 {
		return 0
	}
	if n > 0 && index >= n {
		return n - 1
	}
	return index
}

// State returns a copy of the current selection state.
func (g *Gallery) State() SelectionState {
	return g.state
}

// Mode returns the current mode.
func (g *Gallery) Mode() Mode {
	return g.state.Mode
}

// SelectedIndex returns the selected page index.
func (g *Gallery) SelectedIndex() int {
	return g.state.SelectedIndex
}

// ImageSwitchingEnabled reports whether paging is currently permitted.
func (g *Gallery) ImageSwitchingEnabled() bool {
	return g.state.ImageSwitchingEnabled
}

// Items returns the gallery items.
func (g *Gallery) Items() []Item {
	return g.items
}

// Len returns the number of items.
func (g *Gallery) Len() int {
	return len(g.items)
}

// SelectedItem returns the item at the selected index, if it exists.
func (g *Gallery) SelectedItem() (Item, bool) {
	i := g.state.SelectedIndex
	if i < 0 || i >= len(g.items) {
		return Item{}, false
	}
	return g.items[i], true
}

// SetItems replaces the items. The selection is clamped into the new range
// when it is non-empty; no observer is notified.
func (g *Gallery) SetItems(items []Item) {
	g.items = items
	g.state.SelectedIndex = clampIndex(g.state.SelectedIndex, len(items))
}

// SetPageSize records the page size in cells reported through ImageProps.
func (g *Gallery) SetPageSize(width, height int) {
	g.pageWidth = width
	g.pageHeight = height
}

// SetMode switches to target. Setting the current mode is a no-op and does
// not notify OnModeChanged.
func (g *Gallery) SetMode(target Mode) {
	if target == g.state.Mode {
		return
	}
	prev := g.state.Mode
	g.state.Mode = target
	g.opts.Logger.V(1).Info("gallery mode changed", "from", prev, "to", target, "index", g.state.SelectedIndex)
	if g.opts.OnModeChanged != nil {
		g.opts.OnModeChanged(target)
	}
}

// TapImage handles a tap on the displayed image by toggling the mode.
func (g *Gallery) TapImage() {
	g.SetMode(g.state.Mode.Toggle())
}

// SelectIndex is the pager's callback for a page change. The index is
// trusted as reported; OnIndexSelected runs after the state holds it.
func (g *Gallery) SelectIndex(index int) {
	g.state.SelectedIndex = index
	g.opts.Logger.V(1).Info("gallery index selected", "index", index)
	if g.opts.OnIndexSelected != nil {
		g.opts.OnIndexSelected(index)
	}
}

// RenderPage renders one page for the pager. Items without a source render
// as an empty page. The per-image overlay is attached only when a renderer
// is configured, the gallery is not in image preview mode, and index is the
// selected page.
func (g *Gallery) RenderPage(item Item, index int) Page {
	if !item.HasSource() {
		return Page{Key: index, empty: true}
	}
	props := g.opts.PropsTransform(ImageProps{
		Source: Source{URI: item.Source.URI},
		Layout: LayoutFillParent,
		Width:  g.pageWidth,
		Height: g.pageHeight,
	})
	page := Page{
		Key:   index,
		Image: g.opts.ImageRenderer.RenderImage(props, item, index),
	}
	if g.opts.RenderImageOverlay != nil &&
		g.state.Mode != ModeImagePreview &&
		index == g.state.SelectedIndex {
		page.Overlay = g.opts.RenderImageOverlay(item, index)
		page.HasOverlay = true
	}
	return page
}

// Props builds the pager props from the current state.
func (g *Gallery) Props() PagerProps {
	return PagerProps{
		Items:             g.items,
		SelectedIndex:     g.state.SelectedIndex,
		OnIndexSelected:   g.SelectIndex,
		ShowNextPage:      g.opts.ShowNextPage,
		RenderPage:        g.RenderPage,
		RenderOverlay:     g.opts.RenderOverlay,
		RenderPlaceholder: g.opts.RenderPlaceholder,
		ScrollEnabled:     g.state.ImageSwitchingEnabled,
		PageStyle:         g.opts.Style.Page,
	}
}

// View renders the gallery through p inside the container style.
func (g *Gallery) View(p Pager) string {
	return g.opts.Style.Container.Render(p.Render(g.Props()))
}
