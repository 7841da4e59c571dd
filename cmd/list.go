package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/imgx/internal/formatter"
	"github.com/oakwood-commons/imgx/internal/htmlexport"
	"github.com/oakwood-commons/imgx/pkg/gallery"
	"github.com/oakwood-commons/imgx/pkg/logger"
	"github.com/oakwood-commons/imgx/pkg/settings"
	"github.com/oakwood-commons/imgx/pkg/tui"
)

var (
	listOutput  = newEnumValue("table", "table", "tree", "json", "yaml")
	listColumns string
	listWidth   int
	noTitles    bool

	exportOut   string
	exportTitle string
)

var listCmd = &cobra.Command{
	Use:   "list [manifest|dir]",
	Short: "Print the images a gallery would show",
	Example: "  imgx list ~/Pictures/trip\n  imgx list gallery.yaml -o tree\n" +
		"  imgx list gallery.json --columns '#,title,description' --filter 'item.ext == \"png\"'\n",
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var exportCmd = &cobra.Command{
	Use:     "export [manifest|dir]",
	Short:   "Write the gallery as a static HTML page",
	Example: "  imgx export ~/Pictures/trip --out trip.html --title 'Summer trip'\n",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runExport,
}

// loadSelection loads the input named by args and applies --filter and the
// --limit/--offset/--tail window. A missing input shows the command help.
func loadSelection(cmd *cobra.Command, args []string) ([]gallery.Item, bool, error) {
	if err := validateFlags(); err != nil {
		return nil, false, err
	}
	filter, err := compileFilter()
	if err != nil {
		return nil, false, err
	}
	params, ok := settings.FromContext(rootCtx)
	if !ok {
		params = settings.NewCliParams()
	}
	items, err := loadItems(args, params)
	if err != nil {
		if errors.Is(err, errShowHelp) {
			return nil, false, cmd.Help()
		}
		return nil, false, err
	}
	if items, err = selectItems(items, filter); err != nil {
		return nil, false, err
	}
	lgr := *logger.FromContext(rootCtx)
	lgr.V(1).Info("items loaded", logger.SourceKey, string(params.Source), logger.ItemsKey, len(items))
	return items, true, nil
}

func runList(cmd *cobra.Command, args []string) error {
	columns, err := formatter.ParseColumns(listColumns)
	if err != nil {
		return usageErrorf("invalid --columns: %v", err)
	}
	if listWidth < 0 {
		return usageErrorf("invalid --width %d: must not be negative", listWidth)
	}
	items, loaded, err := loadSelection(cmd, args)
	if err != nil || !loaded {
		return err
	}
	return writeList(cmd.OutOrStdout(), items, listOutput.String(), columns)
}

func writeList(w io.Writer, items []gallery.Item, format string, columns []string) error {
	var out string
	var err error
	switch format {
	case "tree":
		out = formatter.RenderItemTree(items, formatter.TreeOptions{NoTitles: noTitles})
	case "json":
		out, err = formatter.FormatItemsJSON(items)
	case "yaml":
		out, err = formatter.FormatItemsYAML(items)
	default:
		width := listWidth
		if width == 0 && !stdoutIsPiped() {
			width, _ = tui.DetectTerminalSize()
		}
		out = formatter.RenderItemTable(items, formatter.TableOptions{
			Width:   width,
			NoColor: noColor || stdoutIsPiped(),
			Columns: columns,
		})
	}
	if err != nil {
		return fmt.Errorf("format %s: %w", format, err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportOut == "" {
		return usageErrorf("--out is required")
	}
	items, loaded, err := loadSelection(cmd, args)
	if err != nil || !loaded {
		return err
	}
	title := exportTitle
	if title == "" {
		if cfg, cfgErr := loadMergedConfig(resolveConfigPath(configFile)); cfgErr == nil && cfg.App.About.Name != "" {
			title = cfg.App.About.Name + " gallery"
		}
	}
	if err := htmlexport.WriteFile(exportOut, items, htmlexport.Options{Title: title}); err != nil {
		return err
	}
	lgr := *logger.FromContext(rootCtx)
	lgr.V(1).Info("gallery exported", "out", exportOut, logger.ItemsKey, len(items))
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d images to %s\n", len(items), exportOut)
	return nil
}

func registerListCommands() {
	listCmd.Flags().VarP(listOutput, "output", "o", "output format: table|tree|json|yaml")
	listCmd.Flags().StringVar(&listColumns, "columns", "", "table columns, comma separated: #,title,ext,uri,description")
	listCmd.Flags().IntVar(&listWidth, "width", 0, "table width in columns (default: terminal width, unbounded when piped)")
	listCmd.Flags().BoolVar(&noTitles, "no-titles", false, "tree output shows file names only")
	rootCmd.AddCommand(listCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "HTML file to write (required)")
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "page title (default from config)")
	rootCmd.AddCommand(exportCmd)
}
