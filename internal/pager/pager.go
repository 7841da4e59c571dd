// Package pager is a horizontal terminal pager for gallery.PagerProps. It
// materializes the selected page and its neighbours, optionally shows a peek
// of the next page, and reports page changes through OnIndexSelected.
package pager

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

const (
	// DefaultPeekWidth is the number of columns of the next page shown when
	// ShowNextPage is set.
	DefaultPeekWidth = 8
	defaultGap       = 1
	minPageWidth     = 4
)

// Pager renders one page at a time plus an optional peek of the next one.
type Pager struct {
	Width     int
	Height    int
	PeekWidth int
	Gap       int
	// OverlayHeight is the number of rows reserved for the whole-gallery overlay.
	OverlayHeight int

	// materialized holds the page keys rendered by the last Render call.
	materialized []int
}

// New returns a pager with default peek width and gap.
func New() *Pager {
	return &Pager{PeekWidth: DefaultPeekWidth, Gap: defaultGap, OverlayHeight: 1}
}

// SetSize sets the area available to the pager.
func (p *Pager) SetSize(width, height int) {
	p.Width = width
	p.Height = height
}

// PageSize returns the cell size of one page. peek reserves the columns of
// the next-page peek; pass it only when a next page exists.
func (p *Pager) PageSize(peek bool) (int, int) {
	w := p.Width
	if peek {
		w -= p.PeekWidth + p.Gap
	}
	if w < minPageWidth {
		w = minPageWidth
	}
	h := p.Height - p.OverlayHeight
	if h < 1 {
		h = 1
	}
	return w, h
}

// Window returns the page indexes to materialize: the selected page and its
// immediate neighbours, clamped to the item range.
func Window(selected, n int) []int {
	if n <= 0 {
		return nil
	}
	var out []int
	for i := selected - 1; i <= selected+1; i++ {
		if i >= 0 && i < n {
			out = append(out, i)
		}
	}
	return out
}

// Materialized returns the page keys rendered by the last Render call.
func (p *Pager) Materialized() []int {
	return append([]int(nil), p.materialized...)
}

// Render implements gallery.Pager.
func (p *Pager) Render(props gallery.PagerProps) string {
	n := len(props.Items)
	peek := props.ShowNextPage && props.SelectedIndex >= 0 && props.SelectedIndex+1 < n
	pageW, pageH := p.PageSize(peek)
	frame := lipgloss.NewStyle().Width(pageW).Height(pageH).Align(lipgloss.Center, lipgloss.Center)

	if n == 0 || props.SelectedIndex < 0 || props.SelectedIndex >= n {
		p.materialized = nil
		return p.withOverlay(props, frame.Render(placeholder(props)))
	}

	pages := make(map[int]gallery.Page, 3)
	p.materialized = p.materialized[:0]
	for _, i := range Window(props.SelectedIndex, n) {
		if props.RenderPage == nil {
			break
		}
		pages[i] = props.RenderPage(props.Items[i], i)
		p.materialized = append(p.materialized, i)
	}

	current := frame.Inherit(props.PageStyle).Render(p.pageView(pages, props.SelectedIndex, props))
	if peek {
		next := p.pageView(pages, props.SelectedIndex+1, props)
		peekStyle := lipgloss.NewStyle().Width(p.PeekWidth).MaxWidth(p.PeekWidth).Height(pageH).MaxHeight(pageH)
		current = lipgloss.JoinHorizontal(lipgloss.Top, current, strings.Repeat(" ", p.Gap), peekStyle.Render(next))
	}
	return p.withOverlay(props, current)
}

func (p *Pager) pageView(pages map[int]gallery.Page, index int, props gallery.PagerProps) string {
	page, ok := pages[index]
	if !ok || page.IsEmpty() {
		return ""
	}
	if page.Image == "" && !page.HasOverlay {
		return placeholder(props)
	}
	if page.Image == "" {
		return lipgloss.JoinVertical(lipgloss.Center, placeholder(props), page.Overlay)
	}
	return page.View()
}

func (p *Pager) withOverlay(props gallery.PagerProps, body string) string {
	if props.RenderOverlay == nil || props.SelectedIndex < 0 || props.SelectedIndex >= len(props.Items) {
		return body
	}
	overlay := props.RenderOverlay(props.Items[props.SelectedIndex], props.SelectedIndex)
	if overlay == "" {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Center, body, lipgloss.PlaceHorizontal(lipgloss.Width(body), lipgloss.Center, overlay))
}

func placeholder(props gallery.PagerProps) string {
	if props.RenderPlaceholder == nil {
		return ""
	}
	return props.RenderPlaceholder()
}

// Next swipes to the following page. It returns false when scrolling is
// disabled or the last page is selected.
func (p *Pager) Next(props gallery.PagerProps) bool {
	return p.GoTo(props, props.SelectedIndex+1)
}

// Prev swipes to the previous page.
func (p *Pager) Prev(props gallery.PagerProps) bool {
	return p.GoTo(props, props.SelectedIndex-1)
}

// GoTo moves to index, reporting it through OnIndexSelected. Out of range
// targets and the current page are ignored.
func (p *Pager) GoTo(props gallery.PagerProps, index int) bool {
	if !props.ScrollEnabled || index < 0 || index >= len(props.Items) || index == props.SelectedIndex {
		return false
	}
	if props.OnIndexSelected != nil {
		props.OnIndexSelected(index)
	}
	return true
}
