package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"assetpress/internal/deps"
	"assetpress/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check directories, disk space, and external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			checks := preflight.RunAll(cfg)
			rows := make([][]string, 0, len(checks))
			failed := 0
			for _, check := range checks {
				if !check.Passed {
					failed++
				}
				rows = append(rows, []string{check.Name, yesNo(check.Passed), check.Detail})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Check", "OK", "Detail"},
				rows,
			))

			statuses := deps.CheckBinaries(deps.AllRequirements())
			toolRows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				toolRows = append(toolRows, []string{
					status.Name, status.Command, yesNo(status.Available), status.Detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Found", "Detail"},
				toolRows,
			))

			if failed > 0 {
				return fmt.Errorf("%d preflight check(s) failed", failed)
			}
			return nil
		},
	}
}
