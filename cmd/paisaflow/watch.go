package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paisaflow/paisaflow/internal/engine"
	"github.com/paisaflow/paisaflow/internal/source"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process live messages from stdin",
		Long: `Read messages as JSON lines from stdin, one object per line:

  {"sender": "VM-HDFCBK", "body": "...", "timestampMillis": 1700000000000}

Each accepted transaction is persisted and an event is emitted. Runs until
stdin closes or the process is interrupted.`,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	eng := engine.New(store, newLoader(), engine.LogNotifier{})

	_, err = eng.Scan(cmd.Context(), source.NewFeedSource(os.Stdin), engine.ScanOptions{})
	return err
}
