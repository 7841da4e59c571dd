package gallery

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Page is the rendered slot for one item. Key is the page index and stays
// stable across re-renders.
type Page struct {
	Key        int
	Image      string
	Overlay    string
	HasOverlay bool

	empty bool
}

// IsEmpty reports whether the page was rendered without an image source.
func (p Page) IsEmpty() bool {
	return p.empty
}

// View composes the page: the overlay is drawn over the bottom rows of the
// image, centered. An empty page renders as "".
func (p Page) View() string {
	if p.empty {
		return ""
	}
	if !p.HasOverlay || p.Overlay == "" {
		return p.Image
	}
	if p.Image == "" {
		return p.Overlay
	}
	return overlayBottom(p.Image, p.Overlay)
}

func overlayBottom(base, top string) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")
	width := lipgloss.Width(base)
	if len(topLines) >= len(baseLines) {
		return lipgloss.JoinVertical(lipgloss.Center, base, top)
	}
	start := len(baseLines) - len(topLines)
	for i, line := range topLines {
		baseLines[start+i] = lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
	}
	return strings.Join(baseLines, "\n")
}
