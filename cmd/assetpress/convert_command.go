package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"assetpress/internal/config"
	"assetpress/internal/deps"
	"assetpress/internal/services"
	"assetpress/internal/workflow"
)

// conversionFlags are the per-invocation overrides shared by convert and
// watch.
type conversionFlags struct {
	outputDir  string
	format     string
	width      int
	quality    int
	zoom       float64
	prefix     string
	extensions []string
	exclude    []string
	force      bool
}

func (f *conversionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outputDir, "out", "o", "", "Output directory (default from config)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: avif, webp, png, or jpg")
	cmd.Flags().IntVar(&f.width, "width", 0, "Maximum output width in pixels")
	cmd.Flags().IntVar(&f.quality, "quality", -1, "Quality 0-100 for lossy formats")
	cmd.Flags().Float64Var(&f.zoom, "zoom", 0, "PDF render zoom factor")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Filename prefix for all outputs")
	cmd.Flags().StringSliceVar(&f.extensions, "ext", nil, "Source extensions to convert (repeatable)")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "Glob patterns to skip, relative to the source directory (repeatable)")
	cmd.Flags().BoolVar(&f.force, "force", false, "Run even when optional encoder tools are missing")
}

// apply layers the flag overrides onto the loaded config and re-validates.
func (f *conversionFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if strings.TrimSpace(f.outputDir) != "" {
		expanded, err := config.ExpandPath(f.outputDir)
		if err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
		cfg.Paths.OutputDir = expanded
	}
	if strings.TrimSpace(f.format) != "" {
		cfg.Convert.Format = strings.ToLower(strings.TrimSpace(f.format))
		if cfg.Convert.Format == "jpeg" {
			cfg.Convert.Format = "jpg"
		}
		// A new format resets quality to its default unless set explicitly.
		if !cmd.Flags().Changed("quality") {
			cfg.Convert.Quality = -1
		}
	}
	if f.quality >= 0 && cmd.Flags().Changed("quality") {
		cfg.Convert.Quality = f.quality
	}
	if cfg.Convert.Quality < 0 {
		cfg.Convert.Quality = cfg.OutputFormat().DefaultQuality()
	}
	if f.width > 0 {
		cfg.Convert.TargetWidth = f.width
	}
	if f.zoom > 0 {
		cfg.Convert.PDFZoom = f.zoom
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Convert.Prefix = f.prefix
	}
	if len(f.extensions) > 0 {
		cfg.Convert.Extensions = normalizeExtensions(f.extensions)
	}
	if len(f.exclude) > 0 {
		cfg.Convert.Exclude = append(cfg.Convert.Exclude, f.exclude...)
	}
	return cfg.Validate()
}

// checkTools verifies the external binaries the run needs, failing unless
// --force downgrades missing tools to a warning.
func (f *conversionFlags) checkTools(cfg *config.Config, out io.Writer) error {
	statuses := deps.CheckBinaries(deps.Requirements(cfg.OutputFormat(), cfg.WantsPDF()))
	missing := deps.Missing(statuses)
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for _, status := range missing {
		names = append(names, status.Command)
	}
	if !f.force {
		return services.Wrap(services.ErrNotFound, "setup", "check tools",
			fmt.Sprintf("missing required tools: %s (install them or pass --force to convert what is possible)",
				strings.Join(names, ", ")), nil)
	}
	fmt.Fprintf(out, "Warning: missing tools %s; affected files will fail\n", strings.Join(names, ", "))
	return nil
}

func normalizeExtensions(extensions []string) []string {
	normalized := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags conversionFlags
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "convert DIR",
		Short: "Convert every supported file under DIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			sourceDir, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve source directory: %w", err)
			}

			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				runner := workflow.NewRunner(cfg, logger, nil)
				planned, err := runner.Plan(cmd.Context(), sourceDir)
				if err != nil {
					return err
				}
				printPlan(out, planned)
				return nil
			}

			if err := flags.checkTools(cfg, out); err != nil {
				return err
			}

			journal := ctx.openJournal(logger)
			if journal != nil {
				defer journal.Close()
			}

			runner := workflow.NewRunner(cfg, logger, journal)
			summary, err := runner.Run(cmd.Context(), sourceDir)
			if err != nil {
				return err
			}
			printSummary(out, summary)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve output names without converting anything")
	return cmd
}

func printPlan(out io.Writer, planned []workflow.PlannedItem) {
	if len(planned) == 0 {
		fmt.Fprintln(out, "Nothing to convert")
		return
	}

	rows := make([][]string, 0, len(planned))
	for _, item := range planned {
		page := ""
		if item.Page > 0 {
			page = strconv.Itoa(item.Page)
		}
		target := item.Target
		if target == "" {
			target = "(unreadable)"
		}
		rows = append(rows, []string{item.Source, page, target})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Source", "Page", "Target"},
		rows,
		1,
	))
	fmt.Fprintf(out, "%d outputs planned\n", len(planned))
}

func printSummary(out io.Writer, summary *workflow.Summary) {
	fmt.Fprintf(out, "Converted %d, failed %d in %s\n",
		summary.Succeeded, summary.Failed, summary.Duration.Round(time.Millisecond))
	if summary.Failed == 0 {
		return
	}

	rows := make([][]string, 0, summary.Failed)
	for _, outcome := range summary.Outcomes {
		if outcome.OK() {
			continue
		}
		page := ""
		if outcome.Page > 0 {
			page = strconv.Itoa(outcome.Page)
		}
		rows = append(rows, []string{outcome.Source, page, outcome.Err.Error()})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Failed", "Page", "Error"},
		rows,
		1,
	))
}
