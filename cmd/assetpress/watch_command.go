package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"assetpress/internal/config"
	"assetpress/internal/watch"
	"assetpress/internal/workflow"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var flags conversionFlags

	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Convert files under DIR as they appear",
		Long: "Converts everything already under DIR, then keeps running and converts " +
			"new files as they land. Collision counters carry across the whole watch, " +
			"so repeated names keep numbering where the last file left off.",
		Args: cobra.ExactArgs(1),
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
			if err := flags.checkTools(cfg, cmd.OutOrStdout()); err != nil {
				return err
			}

			journal := ctx.openJournal(logger)
			if journal != nil {
				defer journal.Close()
			}

			signalCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := workflow.NewRunner(cfg, logger, journal)
			watcher := watch.New(cfg, logger, runner)
			if err := watcher.Run(signalCtx, sourceDir); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
