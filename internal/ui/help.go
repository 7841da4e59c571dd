package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// helpView renders the key binding panel from the key map.
func (m *Model) helpView() string {
	keyStyle := lipgloss.NewStyle().Bold(true)
	valStyle := lipgloss.NewStyle()
	titleStyle := lipgloss.NewStyle().Bold(true)
	box := lipgloss.NewStyle().Border(m.Theme.border()).Padding(0, 2)
	if !m.NoColor {
		keyStyle = keyStyle.Foreground(m.Theme.HelpKey)
		valStyle = valStyle.Foreground(m.Theme.HelpValue)
		titleStyle = titleStyle.Foreground(m.Theme.Accent)
		box = box.BorderForeground(m.Theme.BorderColor)
	}

	type row struct{ key, desc string }
	var rows []row
	keyW := 0
	for _, group := range m.Keys.FullHelp() {
		for _, b := range group {
			if !b.Enabled() {
				continue
			}
			h := b.Help()
			rows = append(rows, row{h.Key, h.Desc})
			keyW = max(keyW, lipgloss.Width(h.Key))
		}
	}
	rows = append(rows, row{"click", "toggle preview"})
	keyW = max(keyW, lipgloss.Width("click"))

	var lines []string
	title := strings.TrimSpace(m.AppName)
	if title == "" {
		title = "Help"
	}
	lines = append(lines, titleStyle.Render(title))
	if about := strings.TrimSpace(m.About); about != "" {
		lines = append(lines, valStyle.Render(about))
	}
	lines = append(lines, "")
	for _, r := range rows {
		lines = append(lines, keyStyle.Width(keyW).Render(r.key)+"  "+valStyle.Render(r.desc))
	}
	return box.Render(strings.Join(lines, "\n"))
}
