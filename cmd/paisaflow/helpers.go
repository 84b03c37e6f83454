package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/paisaflow/paisaflow/internal/rules"
	"github.com/paisaflow/paisaflow/internal/storage"
)

// databasePath resolves the database path from config, defaulting to the
// XDG data directory.
func databasePath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "paisaflow", "paisaflow.db"), nil
}

// openStorage opens the SQLite storage at the configured path.
func openStorage() (*storage.SQLiteStorage, error) {
	dbPath, err := databasePath()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return store, nil
}

// newLoader creates a rule loader from the configured rules path, or the
// embedded default document when none is set.
func newLoader() *rules.Loader {
	if path := viper.GetString("rules.path"); path != "" {
		return rules.NewFileLoader(path)
	}
	return rules.NewDefaultLoader()
}
