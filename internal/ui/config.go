package ui

// ConfigFile is the merged imgx configuration: the embedded defaults with the
// user's config file layered on top.
type ConfigFile struct {
	App     AppConfig     `yaml:"app,omitempty" json:"app,omitempty"`
	Gallery GalleryConfig `yaml:"gallery,omitempty" json:"gallery,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty" json:"ui,omitempty"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	About AboutConfig `yaml:"about,omitempty" json:"about,omitempty"`
}

// AboutConfig is shown in the help panel and by `imgx version`.
// Version, GoVersion and GitCommit are filled at runtime from build info.
type AboutConfig struct {
	Name          string `yaml:"name,omitempty" json:"name,omitempty"`
	Description   string `yaml:"description,omitempty" json:"description,omitempty"`
	RepositoryURL string `yaml:"repository_url,omitempty" json:"repository_url,omitempty"`
	Version       string `yaml:"version,omitempty" json:"version,omitempty"`
	GoVersion     string `yaml:"go_version,omitempty" json:"go_version,omitempty"`
	GitCommit     string `yaml:"git_commit,omitempty" json:"git_commit,omitempty"`
}

// GalleryConfig holds gallery defaults; flags override them.
type GalleryConfig struct {
	ShowNextPage *bool   `yaml:"show_next_page,omitempty" json:"show_next_page,omitempty"`
	PeekWidth    *int    `yaml:"peek_width,omitempty" json:"peek_width,omitempty"`
	Fit          *string `yaml:"fit,omitempty" json:"fit,omitempty"`
	Scaling      *string `yaml:"scaling,omitempty" json:"scaling,omitempty"`
	ImageOverlay *bool   `yaml:"image_overlay,omitempty" json:"image_overlay,omitempty"`
	Indicator    *bool   `yaml:"indicator,omitempty" json:"indicator,omitempty"`
}

// UIConfig groups theme selection and theme presets.
type UIConfig struct {
	Theme  ThemeSelectionConfig   `yaml:"theme,omitempty" json:"theme,omitempty"`
	Themes map[string]ThemeConfig `yaml:"themes,omitempty" json:"themes,omitempty"`
}

// ThemeSelectionConfig holds theme selection configuration.
type ThemeSelectionConfig struct {
	Default string `yaml:"default,omitempty" json:"default,omitempty"`
}

// MergeConfig overlays every field set in override onto base. Themes are
// merged per name and per color.
func MergeConfig(base, override ConfigFile) ConfigFile {
	out := base
	setString := func(src string, dst *string) {
		if src != "" {
			*dst = src
		}
	}
	setString(override.App.About.Name, &out.App.About.Name)
	setString(override.App.About.Description, &out.App.About.Description)
	setString(override.App.About.RepositoryURL, &out.App.About.RepositoryURL)

	g := override.Gallery
	if g.ShowNextPage != nil {
		out.Gallery.ShowNextPage = g.ShowNextPage
	}
	if g.PeekWidth != nil {
		out.Gallery.PeekWidth = g.PeekWidth
	}
	if g.Fit != nil {
		out.Gallery.Fit = g.Fit
	}
	if g.Scaling != nil {
		out.Gallery.Scaling = g.Scaling
	}
	if g.ImageOverlay != nil {
		out.Gallery.ImageOverlay = g.ImageOverlay
	}
	if g.Indicator != nil {
		out.Gallery.Indicator = g.Indicator
	}

	setString(override.UI.Theme.Default, &out.UI.Theme.Default)
	if len(override.UI.Themes) > 0 {
		merged := make(map[string]ThemeConfig, len(base.UI.Themes)+len(override.UI.Themes))
		for name, tc := range base.UI.Themes {
			merged[name] = tc
		}
		for name, tc := range override.UI.Themes {
			merged[name] = MergeThemeConfig(merged[name], tc)
		}
		out.UI.Themes = merged
	}
	return out
}
