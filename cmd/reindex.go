package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Runs one crawl and writes the snapshot",
		Long: `Crawls the cocktail index once, persists the resulting snapshot to
the configured cache backend, and exits. Useful for cron-driven refreshes
and for seeding the cache before first serve.`,
		RunE: runReindex,
	}
}

func runReindex(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	summary, err := a.catalog.Reindex(cmd.Context())
	if err != nil {
		return fmt.Errorf("reindex: %w", err)
	}

	a.logger.Info("reindex finished",
		zap.Int("count", summary.Count),
		zap.Bool("safe_mode", summary.Safe),
		zap.Int("skipped", summary.Report.Skipped),
		zap.Int("failed", summary.Report.Failed),
		zap.Duration("duration", summary.Report.Duration),
	)
	return nil
}
