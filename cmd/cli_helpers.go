package cmd

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oakwood-commons/imgx/internal/ui"
)

type themeSelectionError struct {
	Selected     string
	Available    []string
	DefaultTheme string
}

func (e themeSelectionError) Error() string {
	return fmt.Sprintf("unknown theme %q\navailable themes: %v\ndefault theme: %s", e.Selected, e.Available, e.DefaultTheme)
}

func defaultThemeName(cfg ui.ConfigFile) string {
	if name := strings.TrimSpace(cfg.UI.Theme.Default); name != "" {
		return name
	}
	return "dark"
}

// selectTheme registers the configured themes and picks the one to use. An
// explicit --theme must exist; a bad default from the config file falls back
// to the embedded default.
func selectTheme(cfg ui.ConfigFile, cliTheme string, themeFlagSet bool) (string, error) {
	ui.InitializeThemes(cfg.UI.Themes)

	selected := ""
	if themeFlagSet {
		selected = strings.TrimSpace(cliTheme)
	}
	if selected == "" {
		selected = defaultThemeName(cfg)
	}
	if _, ok := ui.GetTheme(selected); ok {
		return selected, nil
	}
	if !themeFlagSet {
		if embedded, err := ui.EmbeddedDefaultConfig(); err == nil {
			if _, ok := ui.GetTheme(embedded.UI.Theme.Default); ok {
				return embedded.UI.Theme.Default, nil
			}
		}
	}
	return "", themeSelectionError{
		Selected:     selected,
		Available:    availableThemes(cfg),
		DefaultTheme: defaultThemeName(cfg),
	}
}

func printThemeSelectionError(w io.Writer, err error) {
	var themeErr themeSelectionError
	if errors.As(err, &themeErr) {
		fmt.Fprintf(w, "unknown theme %q\n", themeErr.Selected)
		fmt.Fprintf(w, "available themes: %v\n", themeErr.Available)
		fmt.Fprintf(w, "default theme: %s\n", themeErr.DefaultTheme)
		return
	}
	fmt.Fprintln(w, err)
}

func availableThemes(cfg ui.ConfigFile) []string {
	names := make([]string, 0, len(cfg.UI.Themes))
	for name := range cfg.UI.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
