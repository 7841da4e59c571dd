package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/imgx/pkg/settings"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print imgx version",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
		return nil
	},
}

// configCmd groups configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage imgx configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show merged configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runConfigView(cmd.OutOrStdout())
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runThemesList(cmd.OutOrStdout())
	},
}

// runThemesList prints the themes of the merged configuration.
func runThemesList(w io.Writer) error {
	merged, err := loadMergedConfig(resolveConfigPath(configFile))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Fprintf(w, "Available themes (default: %s):\n", defaultThemeName(merged))
	for _, name := range availableThemes(merged) {
		fmt.Fprintf(w, " - %s\n", name)
	}
	return nil
}

// runConfigView prints the configuration honoring --output. yaml and json
// show the merged result; raw prints the user's file (or the embedded
// default) verbatim, comments included.
func runConfigView(w io.Writer) error {
	resolved := resolveConfigPath(configFile)
	switch configOutput {
	case "raw":
		var raw []byte
		var err error
		if resolved != "" {
			if raw, err = os.ReadFile(resolved); err != nil {
				return fmt.Errorf("failed to read config file %s: %w", resolved, err)
			}
		} else if raw, err = loadDefaultConfigRaw(); err != nil {
			return fmt.Errorf("failed to read default config: %w", err)
		}
		writeWithNewline(w, raw)
		return nil
	case "yaml", "json":
	default:
		return usageErrorf("invalid output for config: %s (use yaml|json|raw)", configOutput)
	}

	merged, err := loadMergedConfig(resolved)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	out := sanitizeConfig(merged)
	if configOutput == "json" {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		writeWithNewline(w, data)
		return nil
	}
	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_ = enc.Close()
	writeWithNewline(w, []byte(buf.String()))
	return nil
}

func writeWithNewline(w io.Writer, data []byte) {
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	_, _ = w.Write(data)
}

// cliVersionString builds the version line for `imgx version` and --version.
func cliVersionString() string {
	cfg, _ := loadMergedConfig(resolveConfigPath(""))
	name := cfg.App.About.Name
	if name == "" {
		name = settings.CliBinaryName
	}
	data := buildVersionData()
	s := fmt.Sprintf("%s %s (go %s)", name, data.Version, data.GoVersion)
	if data.GitCommit != "" {
		s += " commit " + data.GitCommit
	}
	return s
}

func getCLIShortHelp() string {
	cfg, _ := loadMergedConfig(resolveConfigPath(""))
	name := cfg.App.About.Name
	if name == "" {
		name = settings.CliBinaryName
	}
	desc := cfg.App.About.Description
	if desc == "" {
		desc = "swipeable image gallery"
	}
	return fmt.Sprintf("%s - %s", name, desc)
}

func getCLILongHelp() string {
	return `Browse images one page at a time. Pass a manifest (JSON, NDJSON, YAML or
TOML), a directory of images, or pipe a manifest on stdin.

Keys:
  ←/h/pgup       previous image
  →/l/pgdown     next image
  home/g, end/G  first, last image
  enter/space    toggle full-screen preview (or click the image)
  y, o           copy path, open in the system viewer
  ?/f1           help
  q/esc/ctrl+c   quit (esc leaves preview first)

Gallery defaults and themes come from the embedded config, overridden by
$XDG_CONFIG_HOME/imgx/config.yaml (or --config-file), overridden by flags.`
}

// helpAboutHeader is printed above the usage text when help is requested.
func helpAboutHeader() string {
	cfg, _ := loadMergedConfig(resolveConfigPath(""))
	about := cfg.App.About
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", about.Name, about.Version)
	if about.RepositoryURL != "" {
		fmt.Fprintf(&b, "%s\n", about.RepositoryURL)
	}
	b.WriteString("\n")
	return b.String()
}

func registerCommands() {
	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFlag := cmd.Flags().Lookup("help")
		helpRequested := (helpFlag != nil && helpFlag.Changed) || cmd.CalledAs() == "help"
		if helpRequested && cmd == rootCmd {
			fmt.Fprint(cmd.OutOrStdout(), helpAboutHeader())
		}
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(versionCmd)
	configCmd.PersistentFlags().StringVarP(&configOutput, "output", "o", "yaml", "output format: yaml|json|raw")
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(themesCmd)
	registerListCommands()
}
