package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

const (
	indicatorDot      = "●"
	indicatorDotEmpty = "○"
)

// RenderCaption draws the per-image caption band: the title, then the
// description on a second line when present. Both are cut to width.
func RenderCaption(item gallery.Item, index, width int, th Theme, noColor bool) string {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = fmt.Sprintf("#%d", index+1)
	}
	if width < 1 {
		width = 1
	}
	titleStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle()
	if !noColor {
		titleStyle = titleStyle.Foreground(th.CaptionFG).Background(th.CaptionBG)
		descStyle = descStyle.Foreground(th.DescriptionFG).Background(th.CaptionBG)
	}
	lines := []string{titleStyle.Render(runewidth.Truncate(title, width, "…"))}
	if desc := strings.TrimSpace(item.Description); desc != "" {
		desc = strings.Join(strings.Fields(desc), " ")
		lines = append(lines, descStyle.Render(runewidth.Truncate(desc, width, "…")))
	}
	return strings.Join(lines, "\n")
}

// RenderIndicator draws the page indicator: one dot per page when they fit in
// width, otherwise a "3/10" counter.
func RenderIndicator(index, total, width int, th Theme, noColor bool) string {
	if total <= 0 {
		return ""
	}
	active := lipgloss.NewStyle()
	inactive := lipgloss.NewStyle()
	if !noColor {
		active = active.Foreground(th.IndicatorActive)
		inactive = inactive.Foreground(th.IndicatorInactive)
	}
	if total*2-1 > width {
		return active.Render(fmt.Sprintf("%d/%d", index+1, total))
	}
	dots := make([]string, total)
	for i := range dots {
		if i == index {
			dots[i] = active.Render(indicatorDot)
		} else {
			dots[i] = inactive.Render(indicatorDotEmpty)
		}
	}
	return strings.Join(dots, " ")
}
