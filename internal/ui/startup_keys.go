package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys replays startup keypresses (Vim-like tokens and literal
// text) through Update. Commands are discarded, so callers that need images
// should use a synchronous renderer.
func ApplyStartupKeys(m *Model, keys []string) {
	if len(keys) == 0 || m == nil {
		return
	}
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		// Leading backslash forces literal text (e.g., "\\<f1>").
		if strings.HasPrefix(token, `\`) {
			sendText(m, strings.TrimPrefix(token, `\`))
			continue
		}
		for _, segment := range parseTokenSegments(token) {
			if !segment.isVimKey {
				sendText(m, segment.text)
				continue
			}
			if msg, ok := msgFromToken(segment.text); ok {
				m.Update(msg)
			}
		}
	}
}

func sendText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// tokenSegment is a parsed part of a token: a <key> or literal text.
type tokenSegment struct {
	text     string
	isVimKey bool
}

// parseTokenSegments splits a token into vim-style keys and literal text.
// Example: "<Right>ll" -> [{"<Right>", true}, {"ll", false}]
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token

	for len(remaining) > 0 {
		startIdx := strings.Index(remaining, "<")
		if startIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if startIdx > 0 {
			segments = append(segments, tokenSegment{text: remaining[:startIdx]})
		}
		endIdx := strings.Index(remaining[startIdx:], ">")
		if endIdx == -1 {
			segments = append(segments, tokenSegment{text: remaining[startIdx:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[startIdx : startIdx+endIdx+1], isVimKey: true})
		remaining = remaining[startIdx+endIdx+1:]
	}
	return segments
}

// msgFromToken parses a Vim-like token into a message.
// Examples: "<Esc>", "<CR>", "<Space>", "<Left>", "<PageDown>", "<C-c>", "<F1>", "<Click>".
func msgFromToken(token string) (tea.Msg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") {
		return nil, false
	}
	inner := strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">"))
	var msg tea.Msg
	switch inner {
	case "esc", "c-[", "escape":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "cr", "enter", "return":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "space":
		msg = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "left":
		msg = tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		msg = tea.KeyPressMsg{Code: tea.KeyRight}
	case "home":
		msg = tea.KeyPressMsg{Code: tea.KeyHome}
	case "end":
		msg = tea.KeyPressMsg{Code: tea.KeyEnd}
	case "pageup", "pgup":
		msg = tea.KeyPressMsg{Code: tea.KeyPgUp}
	case "pagedown", "pgdown":
		msg = tea.KeyPressMsg{Code: tea.KeyPgDown}
	case "f1":
		msg = tea.KeyPressMsg{Code: tea.KeyF1}
	case "c-c":
		msg = tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "click", "leftmouse":
		msg = tea.MouseClickMsg{Button: tea.MouseLeft}
	default:
		return nil, false
	}
	return msg, true
}
