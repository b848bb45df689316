package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"assetpress/internal/report"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the most recent conversion run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := report.Open(cfg.Paths.LogDir)
			if err != nil {
				return fmt.Errorf("open run journal: %w", err)
			}
			defer store.Close()

			run, items, err := store.LastRun(cmd.Context())
			if errors.Is(err, report.ErrNoRuns) {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read run journal: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run %s\n", run.ID)
			fmt.Fprintf(out, "  started:   %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
			if !run.EndedAt.IsZero() {
				fmt.Fprintf(out, "  finished:  %s\n", run.EndedAt.Local().Format("2006-01-02 15:04:05"))
			}
			fmt.Fprintf(out, "  source:    %s\n", run.SourceDir)
			fmt.Fprintf(out, "  output:    %s (%s)\n", run.OutputDir, run.Format)
			fmt.Fprintf(out, "  converted: %d, failed: %d\n", run.Succeeded, run.Failed)

			rows := make([][]string, 0, len(items))
			for _, item := range items {
				if failedOnly && item.Status != report.StatusFailed {
					continue
				}
				page := ""
				if item.Page > 0 {
					page = strconv.Itoa(item.Page)
				}
				detail := item.Target
				if item.Status == report.StatusFailed {
					detail = item.Detail
				}
				rows = append(rows, []string{item.Source, page, item.Status, detail})
			}
			if len(rows) == 0 {
				if failedOnly {
					fmt.Fprintln(out, "No failures in the last run")
				}
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Source", "Page", "Status", "Target / Detail"},
				rows,
				1,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Only show failed items")
	return cmd
}
