package ui

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
	"gopkg.in/yaml.v3"
)

// Theme defines the colors used by the gallery chrome. Images are never tinted.
type Theme struct {
	Accent            color.Color // Title and focused elements
	CaptionFG         color.Color // Image caption text
	CaptionBG         color.Color // Image caption band
	DescriptionFG     color.Color // Secondary caption line
	IndicatorActive   color.Color // Page indicator for the selected page
	IndicatorInactive color.Color // Page indicator for other pages
	FooterFG          color.Color // Footer text
	FooterBG          color.Color // Footer background
	StatusError       color.Color // Error text in the footer
	HelpKey           color.Color // Help key labels
	HelpValue         color.Color // Help descriptions
	BorderColor       color.Color // Help panel border
	BorderStyle       string      // Border style (normal|rounded)
}

var (
	themesMu     sync.RWMutex
	loadedThemes = map[string]Theme{}
	currentTheme Theme
	themeSet     bool
)

// fallbackDefaultTheme is used when no configured theme is available.
func fallbackDefaultTheme() Theme {
	return Theme{
		Accent:            lipgloss.Color("81"),
		CaptionFG:         lipgloss.Color("252"),
		CaptionBG:         lipgloss.Color("236"),
		DescriptionFG:     lipgloss.Color("245"),
		IndicatorActive:   lipgloss.Color("81"),
		IndicatorInactive: lipgloss.Color("240"),
		FooterFG:          lipgloss.Color("244"),
		FooterBG:          lipgloss.Color("235"),
		StatusError:       lipgloss.Color("203"),
		HelpKey:           lipgloss.Color("81"),
		HelpValue:         lipgloss.Color("245"),
		BorderColor:       lipgloss.Color("238"),
		BorderStyle:       "rounded",
	}
}

// DefaultTheme returns the theme selected by the embedded default configuration.
func DefaultTheme() Theme {
	cfg, err := EmbeddedDefaultConfig()
	if err != nil {
		return fallbackDefaultTheme()
	}
	name := strings.TrimSpace(cfg.UI.Theme.Default)
	tc, ok := cfg.UI.Themes[name]
	if !ok {
		return fallbackDefaultTheme()
	}
	return ThemeFromConfig(tc)
}

// InitializeThemes replaces the named theme registry.
func InitializeThemes(themes map[string]ThemeConfig) {
	themesMu.Lock()
	defer themesMu.Unlock()
	loadedThemes = make(map[string]Theme, len(themes))
	for name, tc := range themes {
		loadedThemes[name] = ThemeFromConfig(tc)
	}
}

// SetTheme overrides the current theme. The zero Theme clears the override
// so CurrentTheme returns DefaultTheme again.
func SetTheme(t Theme) {
	set := t != (Theme{})
	if set {
		t.BorderStyle = normalizeBorderStyle(t.BorderStyle)
	}
	themesMu.Lock()
	currentTheme, themeSet = t, set
	themesMu.Unlock()
}

// SetThemeByName selects a theme registered through InitializeThemes.
func SetThemeByName(name string) error {
	th, ok := GetTheme(name)
	if !ok {
		if len(ThemeNames()) == 0 {
			return fmt.Errorf("no themes loaded; call InitializeThemes() before SetThemeByName()")
		}
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	SetTheme(th)
	return nil
}

// GetTheme looks up a registered theme.
func GetTheme(name string) (Theme, bool) {
	themesMu.RLock()
	defer themesMu.RUnlock()
	th, ok := loadedThemes[name]
	return th, ok
}

// ThemeNames returns the registered theme names, sorted.
func ThemeNames() []string {
	themesMu.RLock()
	defer themesMu.RUnlock()
	names := make([]string, 0, len(loadedThemes))
	for name := range loadedThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CurrentTheme returns the theme set by SetTheme, or DefaultTheme.
func CurrentTheme() Theme {
	themesMu.RLock()
	th, set := currentTheme, themeSet
	themesMu.RUnlock()
	if !set {
		return DefaultTheme()
	}
	return th
}

func normalizeBorderStyle(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rounded":
		return "rounded"
	default:
		return "normal"
	}
}

func (t Theme) border() lipgloss.Border {
	if normalizeBorderStyle(t.BorderStyle) == "rounded" {
		return lipgloss.RoundedBorder()
	}
	return lipgloss.NormalBorder()
}

// ColorValue stores a color token (number or name) and marshals numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: s}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	*c = ColorValue(value.Value)
	return nil
}

func (c ColorValue) color(def color.Color) color.Color {
	s := strings.TrimSpace(string(c))
	if s == "" {
		return def
	}
	return lipgloss.Color(s)
}

// ThemeConfig is the YAML form of a Theme (colors accept ints or strings).
type ThemeConfig struct {
	Accent            ColorValue `yaml:"accent,omitempty" json:"accent,omitempty"`
	CaptionFG         ColorValue `yaml:"caption_fg,omitempty" json:"caption_fg,omitempty"`
	CaptionBG         ColorValue `yaml:"caption_bg,omitempty" json:"caption_bg,omitempty"`
	DescriptionFG     ColorValue `yaml:"description_fg,omitempty" json:"description_fg,omitempty"`
	IndicatorActive   ColorValue `yaml:"indicator_active,omitempty" json:"indicator_active,omitempty"`
	IndicatorInactive ColorValue `yaml:"indicator_inactive,omitempty" json:"indicator_inactive,omitempty"`
	FooterFG          ColorValue `yaml:"footer_fg,omitempty" json:"footer_fg,omitempty"`
	FooterBG          ColorValue `yaml:"footer_bg,omitempty" json:"footer_bg,omitempty"`
	StatusError       ColorValue `yaml:"status_error,omitempty" json:"status_error,omitempty"`
	HelpKey           ColorValue `yaml:"help_key,omitempty" json:"help_key,omitempty"`
	HelpValue         ColorValue `yaml:"help_value,omitempty" json:"help_value,omitempty"`
	BorderColor       ColorValue `yaml:"border_color,omitempty" json:"border_color,omitempty"`
	BorderStyle       string     `yaml:"border_style,omitempty" json:"border_style,omitempty"`
}

// ThemeFromConfig converts a ThemeConfig, filling unset colors from the fallback palette.
func ThemeFromConfig(tc ThemeConfig) Theme {
	base := fallbackDefaultTheme()
	th := Theme{
		Accent:            tc.Accent.color(base.Accent),
		CaptionFG:         tc.CaptionFG.color(base.CaptionFG),
		CaptionBG:         tc.CaptionBG.color(base.CaptionBG),
		DescriptionFG:     tc.DescriptionFG.color(base.DescriptionFG),
		IndicatorActive:   tc.IndicatorActive.color(base.IndicatorActive),
		IndicatorInactive: tc.IndicatorInactive.color(base.IndicatorInactive),
		FooterFG:          tc.FooterFG.color(base.FooterFG),
		FooterBG:          tc.FooterBG.color(base.FooterBG),
		StatusError:       tc.StatusError.color(base.StatusError),
		HelpKey:           tc.HelpKey.color(base.HelpKey),
		HelpValue:         tc.HelpValue.color(base.HelpValue),
		BorderColor:       tc.BorderColor.color(base.BorderColor),
		BorderStyle:       base.BorderStyle,
	}
	if strings.TrimSpace(tc.BorderStyle) != "" {
		th.BorderStyle = normalizeBorderStyle(tc.BorderStyle)
	}
	return th
}

// MergeThemeConfig overlays the non-empty fields of override onto base.
func MergeThemeConfig(base, override ThemeConfig) ThemeConfig {
	out := base
	apply := func(src ColorValue, dst *ColorValue) {
		if src != "" {
			*dst = src
		}
	}
	if strings.TrimSpace(override.BorderStyle) != "" {
		out.BorderStyle = override.BorderStyle
	}
	apply(override.Accent, &out.Accent)
	apply(override.CaptionFG, &out.CaptionFG)
	apply(override.CaptionBG, &out.CaptionBG)
	apply(override.DescriptionFG, &out.DescriptionFG)
	apply(override.IndicatorActive, &out.IndicatorActive)
	apply(override.IndicatorInactive, &out.IndicatorInactive)
	apply(override.FooterFG, &out.FooterFG)
	apply(override.FooterBG, &out.FooterBG)
	apply(override.StatusError, &out.StatusError)
	apply(override.HelpKey, &out.HelpKey)
	apply(override.HelpValue, &out.HelpValue)
	apply(override.BorderColor, &out.BorderColor)
	return out
}
