package gallery

import "charm.land/lipgloss/v2"

// OverlayFunc renders a visual for an item at index.
type OverlayFunc func(item Item, index int) string

// PlaceholderFunc renders the loading-state visual.
type PlaceholderFunc func() string

// PagerProps is everything a Pager needs for one render pass. It is rebuilt
// from the live Gallery state on every call to Gallery.Props.
type PagerProps struct {
	Items             []Item
	SelectedIndex     int
	OnIndexSelected   func(index int)
	ShowNextPage      bool
	RenderPage        func(item Item, index int) Page
	RenderOverlay     OverlayFunc
	RenderPlaceholder PlaceholderFunc
	ScrollEnabled     bool
	PageStyle         lipgloss.Style
}

// Pager owns the horizontal paging mechanics. It calls RenderPage for the
// pages it materializes and OnIndexSelected when the user moves to a page.
type Pager interface {
	Render(props PagerProps) string
}

// PagerFunc adapts a function to Pager.
type PagerFunc func(props PagerProps) string

// Render calls f.
func (f PagerFunc) Render(props PagerProps) string {
	return f(props)
}
