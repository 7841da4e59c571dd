package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/imgx/internal/ui"
)

func TestConfigLoaderLoadMergedConfigDefaults(t *testing.T) {
	cfg, err := loadMergedConfig("")
	require.NoError(t, err)
	require.NotEmpty(t, cfg.UI.Themes)
	require.Equal(t, "imgx", cfg.App.About.Name)
	require.NotEmpty(t, strings.TrimSpace(cfg.App.About.Version))
	require.NotEmpty(t, strings.TrimSpace(cfg.App.About.GoVersion))
	require.Equal(t, "dark", cfg.UI.Theme.Default)
	require.NotNil(t, cfg.Gallery.Fit)
	require.Equal(t, "contain", *cfg.Gallery.Fit)
}

func TestConfigLoaderUserOverrideMergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	configYAML := `app:
  about:
    name: photos
gallery:
  show_next_page: true
  fit: cover
ui:
  theme:
    default: midnight
  themes:
    midnight:
      accent: "#00ff00"
    warm:
      accent: 99
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(configYAML), 0o600))

	cfg, err := loadMergedConfig(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "photos", cfg.App.About.Name)
	require.Equal(t, "midnight", cfg.UI.Theme.Default)
	require.True(t, *cfg.Gallery.ShowNextPage)
	require.Equal(t, "cover", *cfg.Gallery.Fit)
	// untouched defaults survive
	require.Equal(t, "catmullrom", *cfg.Gallery.Scaling)
	require.Contains(t, cfg.UI.Themes, "dark")
	require.Equal(t, ui.ColorValue("#00ff00"), cfg.UI.Themes["midnight"].Accent)
	require.Equal(t, ui.ColorValue("99"), cfg.UI.Themes["warm"].Accent)
	require.NotEmpty(t, cfg.UI.Themes["warm"].FooterBG)
}

func TestConfigLoaderMissingFile(t *testing.T) {
	_, err := loadMergedConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestConfigLoaderInvalidUserYAML(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("gallery: [unclosed"), 0o600))

	_, err := loadMergedConfig(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode config file bad.yaml")
}

func TestConfigLoaderRejectsDefaultsWithoutThemes(t *testing.T) {
	l := configLoader{defaultConfig: func() ([]byte, error) {
		return []byte("app:\n  about:\n    name: x\n"), nil
	}}
	_, err := l.loadMergedConfig("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing required theme defaults")
}

func TestConfigLoaderDefaultConfigError(t *testing.T) {
	l := configLoader{defaultConfig: func() ([]byte, error) {
		return nil, errors.New("boom")
	}}
	_, err := l.loadMergedConfig("")
	require.ErrorContains(t, err, "load default config: boom")
}

func TestSanitizeConfigClearsDynamicFields(t *testing.T) {
	cfg, err := loadMergedConfig("")
	require.NoError(t, err)

	sanitized := sanitizeConfig(cfg)
	require.Empty(t, sanitized.App.About.Version)
	require.Empty(t, sanitized.App.About.GoVersion)
	require.Empty(t, sanitized.App.About.GitCommit)
	require.Equal(t, cfg.App.About.Name, sanitized.App.About.Name)
	require.NotEmpty(t, cfg.App.About.Version, "original must not be mutated")
}

func TestResolveConfigPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	require.Equal(t, "/explicit.yaml", resolveConfigPath("/explicit.yaml"))
	require.Empty(t, resolveConfigPath(""))

	path := filepath.Join(xdg, "imgx", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("ui: {}\n"), 0o600))
	require.Equal(t, path, resolveConfigPath(""))
}
