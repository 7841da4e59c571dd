package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	imgcel "github.com/oakwood-commons/imgx/internal/cel"
	"github.com/oakwood-commons/imgx/internal/imageview"
	"github.com/oakwood-commons/imgx/internal/limiter"
	"github.com/oakwood-commons/imgx/internal/ui"
	"github.com/oakwood-commons/imgx/pkg/gallery"
	"github.com/oakwood-commons/imgx/pkg/loader"
	"github.com/oakwood-commons/imgx/pkg/logger"
	"github.com/oakwood-commons/imgx/pkg/settings"
	"github.com/oakwood-commons/imgx/pkg/tui"
)

// errShowHelp is returned by loadItems when there is no argument and nothing on stdin.
var errShowHelp = errors.New("no input provided")

var (
	selectedIndex  int
	showNextPage   bool
	themeName      string
	configFile     string
	configOutput   string
	filterExpr     string
	noImageOverlay bool
	noIndicator    bool
	renderSnapshot bool
	startKeys      []string
	snapshotWidth  int
	snapshotHeight int
	noColor        bool
	debug          bool
	logFile        string
	limitItems     int
	offsetItems    int
	tailItems      int

	fitFlag     = newEnumValue("", imageview.FitContain, imageview.FitCover)
	scalingFlag = newEnumValue("", "nearest", "approx", "bilinear", "catmullrom")
)

var (
	rootCtx      = context.Background()
	closeLogFile = func() {}
)

type snapshotSize struct {
	Width  int
	Height int
}

// resolveSnapshotSize prefers the flags, then the detected terminal, then 80x24.
func resolveSnapshotSize(flagWidth, flagHeight, detectedWidth, detectedHeight int) snapshotSize {
	width, height := flagWidth, flagHeight
	if width <= 0 {
		width = detectedWidth
	}
	if height <= 0 {
		height = detectedHeight
	}
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	return snapshotSize{Width: width, Height: height}
}

var rootCmd = &cobra.Command{
	Use:   "imgx [manifest|dir]",
	Short: getCLIShortHelp(),
	Long:  getCLILongHelp(),
	Example: "\n  imgx ~/Pictures/trip\n  imgx gallery.yaml --selected 3 --show-next-page\n" +
		"  imgx gallery.json --filter 'item.ext == \"png\"'\n  find . -name '*.jpg' | imgx\n" +
		"  imgx gallery.yaml --snapshot --width 60 --height 20 --press '<right><enter>'\n",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		var level int8
		if debug {
			level = -1
		}
		var sink io.Writer = os.Stderr
		switch {
		case logFile != "":
			w, closeFn, err := logger.OpenFile(logFile)
			if err != nil {
				return usageErrorf("invalid --log-file: %v", err)
			}
			sink, closeLogFile = w, closeFn
		case cmd == cmd.Root() && !renderSnapshot && !stdoutIsPiped():
			// The alt screen owns the terminal.
			sink = io.Discard
		}
		lgr := logger.Get(level, logger.WithWriter(sink))
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		rootCtx = logger.WithLogger(context.Background(), lgr)

		params := settings.NewCliParams()
		params.MinLogLevel = level
		params.LogFile = logFile
		params.NoColor = noColor
		params.Interactive = !renderSnapshot && !stdoutIsPiped()
		rootCtx = settings.IntoContext(rootCtx, params)
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		logger.Sync()
		closeLogFile()
		closeLogFile = func() {}
	},
	RunE: runRoot,
}

func runRoot(cmd *cobra.Command, args []string) error {
	lgr := *logger.FromContext(rootCtx)
	params, ok := settings.FromContext(rootCtx)
	if !ok {
		params = settings.NewCliParams()
	}

	if err := validateFlags(); err != nil {
		return err
	}
	filter, err := compileFilter()
	if err != nil {
		return err
	}

	cfgPath := resolveConfigPath(configFile)
	cfg, err := loadMergedConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	selectedTheme, err := selectTheme(cfg, themeName, cmd.Flags().Changed("theme"))
	if err != nil {
		printThemeSelectionError(cmd.ErrOrStderr(), err)
		return &exitError{code: 2, err: err}
	}

	items, err := loadItems(args, params)
	if err != nil {
		if errors.Is(err, errShowHelp) {
			return cmd.Help()
		}
		return err
	}
	if items, err = selectItems(items, filter); err != nil {
		return err
	}
	lgr.V(1).Info("items loaded", logger.SourceKey, string(params.Source), logger.ItemsKey, len(items), "config", cfgPath)

	tcfg := buildTUIConfig(cmd, cfg, lgr)
	tcfg.ThemeName = selectedTheme

	if !params.Interactive {
		detectedW, detectedH := 0, 0
		if snapshotWidth <= 0 || snapshotHeight <= 0 {
			detectedW, detectedH = tui.DetectTerminalSize()
		}
		size := resolveSnapshotSize(snapshotWidth, snapshotHeight, detectedW, detectedH)
		tcfg.Width, tcfg.Height = size.Width, size.Height
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderSnapshot(items, tcfg))
		return nil
	}

	if cmd.Flags().Changed("width") && cmd.Flags().Changed("height") {
		tcfg.Width, tcfg.Height = snapshotWidth, snapshotHeight
	}
	opts, cleanup := getProgramOptions()
	defer cleanup()
	state, err := tui.Run(items, tcfg, opts...)
	if err != nil {
		return err
	}
	lgr.V(1).Info("gallery closed", logger.IndexKey, state.SelectedIndex, logger.ModeKey, state.Mode.String())
	return nil
}

func limitConfig() limiter.Config {
	return limiter.Config{Limit: limitItems, Offset: offsetItems, Tail: tailItems}
}

func validateFlags() error {
	if err := limitConfig().Validate(); err != nil {
		return usageErrorf("%v", err)
	}
	if snapshotWidth < 0 {
		return usageErrorf("invalid --width %d: must not be negative", snapshotWidth)
	}
	if snapshotHeight < 0 {
		return usageErrorf("invalid --height %d: must not be negative", snapshotHeight)
	}
	return nil
}

// loadItems reads the manifest or directory named by args, or a manifest on stdin.
func loadItems(args []string, params *settings.Run) ([]gallery.Item, error) {
	if len(args) == 1 {
		path := args[0]
		st, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		params.Path = path
		if st.IsDir() {
			params.Source = settings.SourceDir
			return loader.LoadDir(path)
		}
		params.Source = settings.SourceFile
		return loader.LoadFile(path)
	}
	if !stdinIsPiped() {
		return nil, errShowHelp
	}
	params.Source = settings.SourceStdin
	items, err := loader.LoadReader(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("stdin: %w", err)
	}
	if wd, err := os.Getwd(); err == nil {
		items = loader.ResolveRelative(items, wd)
	}
	return items, nil
}

func compileFilter() (*imgcel.Filter, error) {
	if strings.TrimSpace(filterExpr) == "" {
		return nil, nil
	}
	f, err := imgcel.Compile(filterExpr)
	if err != nil {
		return nil, usageErrorf("invalid --filter: %v", err)
	}
	return f, nil
}

// selectItems applies --filter, then --limit/--offset/--tail.
func selectItems(items []gallery.Item, filter *imgcel.Filter) ([]gallery.Item, error) {
	if filter != nil {
		var err error
		if items, err = filter.Apply(items); err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
	}
	return limiter.Apply(limitConfig(), items), nil
}

// buildTUIConfig layers the merged config file and then the flags that were
// set explicitly over tui.DefaultConfig.
func buildTUIConfig(cmd *cobra.Command, cfg ui.ConfigFile, lgr logr.Logger) tui.Config {
	tcfg := tui.DefaultConfig()
	if name := strings.TrimSpace(cfg.App.About.Name); name != "" {
		tcfg.AppName = name
	}
	if cfg.App.About.Description != "" {
		tcfg.About = cfg.App.About.Description
	}

	g := cfg.Gallery
	if g.ShowNextPage != nil {
		tcfg.ShowNextPage = *g.ShowNextPage
	}
	if g.PeekWidth != nil {
		tcfg.PeekWidth = *g.PeekWidth
	}
	if g.Fit != nil {
		tcfg.Fit = *g.Fit
	}
	if g.Scaling != nil {
		tcfg.Scaling = *g.Scaling
	}
	if g.ImageOverlay != nil {
		v := *g.ImageOverlay
		tcfg.ImageOverlay = &v
	}
	if g.Indicator != nil {
		v := *g.Indicator
		tcfg.Indicator = &v
	}

	flags := cmd.Flags()
	if flags.Changed("show-next-page") {
		tcfg.ShowNextPage = showNextPage
	}
	if flags.Changed("fit") {
		tcfg.Fit = fitFlag.String()
	}
	if flags.Changed("scaling") {
		tcfg.Scaling = scalingFlag.String()
	}
	if noImageOverlay {
		off := false
		tcfg.ImageOverlay = &off
	}
	if noIndicator {
		off := false
		tcfg.Indicator = &off
	}

	tcfg.SelectedIndex = selectedIndex
	tcfg.NoColor = noColor
	tcfg.StartKeys = startKeys
	tcfg.Logger = lgr
	tcfg.OnIndexSelected = func(index int) {
		lgr.V(1).Info("index selected", logger.IndexKey, index)
	}
	tcfg.OnModeChanged = func(mode gallery.Mode) {
		lgr.V(1).Info("mode changed", logger.ModeKey, mode.String())
	}
	return tcfg
}

func init() { //nolint:gochecknoinits
	rootCmd.SetFlagErrorFunc(flagError)
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	rootCmd.Flags().IntVar(&selectedIndex, "selected", 0, "index of the image selected at startup")
	rootCmd.Flags().BoolVar(&showNextPage, "show-next-page", false, "narrow pages so the neighbouring images peek in (default from config)")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "theme name (default from config; see 'imgx themes')")
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a YAML config file (gallery defaults, themes)")
	rootCmd.PersistentFlags().StringVar(&filterExpr, "filter", "", "CEL expression selecting images, e.g. 'item.ext == \"png\" && index < 10'")
	rootCmd.PersistentFlags().IntVar(&limitItems, "limit", 0, "keep only the first N images (after --offset)")
	rootCmd.PersistentFlags().IntVar(&offsetItems, "offset", 0, "skip the first N images")
	rootCmd.PersistentFlags().IntVar(&tailItems, "tail", 0, "keep only the last N images (excludes --limit; ignores --offset)")
	rootCmd.Flags().Var(fitFlag, "fit", "image fit: contain|cover (default from config)")
	rootCmd.Flags().Var(scalingFlag, "scaling", "image scaling: nearest|approx|bilinear|catmullrom (default from config)")
	rootCmd.Flags().BoolVar(&noImageOverlay, "no-image-overlay", false, "hide the caption drawn over each image")
	rootCmd.Flags().BoolVar(&noIndicator, "no-indicator", false, "hide the page indicator")
	rootCmd.Flags().BoolVar(&renderSnapshot, "snapshot", false, "render a single frame and exit; honors --width/--height")
	rootCmd.Flags().StringArrayVar(&startKeys, "press", nil, "Simulate keys on startup. Use <Key> for special keys (e.g. <right>, <enter>, <esc>, <click>). Examples: --press \"<right><right>\" or --press \"l<enter>\"")
	rootCmd.Flags().IntVar(&snapshotWidth, "width", 0, "width in columns (default: terminal width)")
	rootCmd.Flags().IntVar(&snapshotHeight, "height", 0, "height in rows (default: terminal height)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write JSON logs to this file")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	registerCommands()
}

// Execute runs the root command. Use ExitCode to map the error to an exit status.
func Execute() error {
	return rootCmd.Execute()
}
