package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/paisaflow/paisaflow/internal/engine"
	"github.com/paisaflow/paisaflow/internal/source"
)

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <backup-file>",
		Short: "Scan an SMS backup file for transactions",
		Long: `Run the full pipeline over a historical SMS backup XML file:
classify, extract, deduplicate and persist every genuine transaction.

Re-running a scan is safe; previously seen messages are detected as
duplicates and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	cmd.Flags().Bool("no-progress", false, "Disable the progress bar")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	noProgress, _ := cmd.Flags().GetBool("no-progress")

	src, err := source.NewBackupSource(args[0])
	if err != nil {
		return err
	}
	slog.Info("Loaded backup file", "path", args[0], "messages", src.Count())

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	eng := engine.New(store, newLoader(), engine.LogNotifier{})

	opts := engine.ScanOptions{}
	if !noProgress {
		opts.TotalMessages = src.Count()
	}

	stats, err := eng.Scan(cmd.Context(), src, opts)
	if err != nil {
		return fmt.Errorf("scan aborted after %d messages: %w", stats.Processed, err)
	}

	slog.Info("Scan finished",
		"accepted", stats.Accepted,
		"duplicates", stats.Duplicates,
		"rejected", stats.Rejected,
		"failures", stats.Failures)
	return nil
}
