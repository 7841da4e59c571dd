package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/imgx/pkg/gallery"
)

func modeLabel(mode gallery.Mode) string {
	if mode == gallery.ModeImagePreview {
		return " PREVIEW "
	}
	return " GALLERY "
}

// footerView renders the one-line status bar: mode, position, title on the
// left and image status (or the last error) plus a help hint on the right.
func (m *Model) footerView() string {
	w := m.width()
	base := lipgloss.NewStyle()
	badge := lipgloss.NewStyle().Bold(true)
	errStyle := lipgloss.NewStyle()
	if !m.NoColor {
		base = base.Foreground(m.Theme.FooterFG).Background(m.Theme.FooterBG)
		badge = badge.Foreground(m.Theme.FooterBG).Background(m.Theme.Accent)
		errStyle = errStyle.Foreground(m.Theme.StatusError).Background(m.Theme.FooterBG)
	} else {
		badge = badge.Reverse(true)
	}

	label := modeLabel(m.Gallery.Mode())
	position := "0/0"
	title := ""
	status := ""
	if item, ok := m.Gallery.SelectedItem(); ok {
		position = fmt.Sprintf("%d/%d", m.Gallery.SelectedIndex()+1, m.Gallery.Len())
		title = strings.TrimSpace(item.Title)
		if m.Images != nil && item.HasSource() {
			status = m.Images.Describe(item.Source.URI)
		}
	}
	if name := strings.TrimSpace(m.AppName); name != "" {
		position = name + " " + position
	}

	right := m.Keys.Help.Help().Key + " help"
	rightStyle := base
	switch {
	case m.ErrMsg != "":
		right = m.ErrMsg + "  " + right
		rightStyle = errStyle
	case m.StatusMsg != "":
		right = m.StatusMsg + "  " + right
	case status != "":
		right = status + "  " + right
	}

	leftW := lipgloss.Width(label) + 1 + runewidth.StringWidth(position)
	avail := w - leftW - 2 - runewidth.StringWidth(right)
	if avail < 0 {
		right = runewidth.Truncate(right, max(0, w-leftW-2), "…")
		avail = 0
	}
	if title != "" && avail > 1 {
		title = runewidth.Truncate(title, avail-1, "…")
		position += " " + title
	}

	left := badge.Render(label) + base.Render(" "+position)
	gap := w - lipgloss.Width(left) - runewidth.StringWidth(right)
	if gap < 0 {
		gap = 0
	}
	line := left + base.Render(strings.Repeat(" ", gap)) + rightStyle.Render(right)
	return lipgloss.NewStyle().MaxWidth(w).Render(line)
}
