package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	rdebug "runtime/debug"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/imgx/internal/ui"
	"github.com/oakwood-commons/imgx/pkg/settings"
)

// configLoader centralizes config loading so callers avoid duplicating merge logic.
type configLoader struct {
	defaultConfig func() ([]byte, error)
}

var cfgLoader = configLoader{defaultConfig: loadDefaultConfigYAML}

func loadMergedConfig(cfgPath string) (ui.ConfigFile, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

func loadDefaultConfigRaw() ([]byte, error) {
	return cfgLoader.loadDefaultConfigRaw()
}

func loadDefaultConfigYAML() ([]byte, error) {
	data := ui.DefaultConfigYAML()
	if len(data) == 0 {
		return nil, fmt.Errorf("embedded default config is empty")
	}
	return data, nil
}

// loadMergedConfig decodes the embedded defaults and layers cfgPath on top.
// An empty cfgPath yields the defaults with build data filled in.
func (l configLoader) loadMergedConfig(cfgPath string) (ui.ConfigFile, error) {
	var cfg ui.ConfigFile

	defaultData, err := l.loadDefaultConfigRaw()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}
	if err := yaml.Unmarshal(defaultData, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	if cfg.UI.Theme.Default == "" || len(cfg.UI.Themes) == 0 {
		return cfg, fmt.Errorf("default config is missing required theme defaults")
	}

	if cfgPath != "" {
		data, err := os.ReadFile(cfgPath)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		var user ui.ConfigFile
		if err := yaml.Unmarshal(data, &user); err != nil {
			return cfg, fmt.Errorf("decode config file %s: %w", filepath.Base(cfgPath), err)
		}
		cfg = ui.MergeConfig(cfg, user)
	}

	applyBuildData(&cfg, buildVersionData())
	return cfg, nil
}

func (l configLoader) loadDefaultConfigRaw() ([]byte, error) {
	if l.defaultConfig != nil {
		return l.defaultConfig()
	}
	return loadDefaultConfigYAML()
}

// sanitizeConfig drops the fields filled from build info; they are not
// settings and should not appear in `config get` output.
func sanitizeConfig(cfg ui.ConfigFile) ui.ConfigFile {
	out := cfg
	out.App.About.Version = ""
	out.App.About.GoVersion = ""
	out.App.About.GitCommit = ""
	return out
}

// buildInfo is the subset of build metadata shown by `imgx version`.
type buildInfo struct {
	Version   string
	GoVersion string
	GitCommit string
}

func buildVersionData() buildInfo {
	data := buildInfo{
		Version:   settings.VersionInformation.BuildVersion,
		GoVersion: runtime.Version(),
	}
	if c := settings.VersionInformation.Commit; c != "" && c != "unknown" {
		data.GitCommit = c
	}

	info, ok := rdebug.ReadBuildInfo()
	if !ok {
		return data
	}
	if info.GoVersion != "" {
		data.GoVersion = info.GoVersion
	}
	// ldflags win over module info; module info wins over the nightly placeholder.
	if strings.HasSuffix(data.Version, "-nightly") && info.Main.Version != "" && info.Main.Version != "(devel)" {
		data.Version = info.Main.Version
	}
	if data.GitCommit == "" {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				data.GitCommit = s.Value[:7]
				break
			}
		}
	}
	return data
}

func applyBuildData(cfg *ui.ConfigFile, data buildInfo) {
	cfg.App.About.Version = data.Version
	cfg.App.About.GoVersion = data.GoVersion
	cfg.App.About.GitCommit = data.GitCommit
}

// resolveConfigPath returns explicit if set, otherwise $XDG_CONFIG_HOME/imgx/config.yaml
// or ~/.config/imgx/config.yaml when that file exists.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}
