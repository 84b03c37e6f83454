// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/paisaflow/paisaflow/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Transaction operations
	SaveTransaction(ctx context.Context, txn *model.ParsedTransaction) error
	GetTransactionByID(ctx context.Context, id string) (*model.ParsedTransaction, error)
	FindSimilarTransaction(ctx context.Context, merchant string, amount float64, date time.Time) (*model.ParsedTransaction, error)
	GetTransactionCount(ctx context.Context) (int, error)

	// Alias operations
	GetAlias(ctx context.Context, canonicalKey string) (*model.MerchantAlias, error)
	SaveAlias(ctx context.Context, alias *model.MerchantAlias) error
	DeleteAlias(ctx context.Context, canonicalKey string) error
	GetAllAliases(ctx context.Context) ([]model.MerchantAlias, error)
	GetAliasesByDisplayName(ctx context.Context, displayName string) ([]model.MerchantAlias, error)
	SetMerchantExcluded(ctx context.Context, canonicalKey string, excluded bool) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// MessageSource yields a sequence of raw messages, either as a bounded
// historical batch or as a live one-at-a-time feed. Next returns io.EOF
// once the source is exhausted.
type MessageSource interface {
	Next(ctx context.Context) (*model.RawMessage, error)
}

// TransactionEvent is emitted after a new, non-duplicate transaction has
// been persisted. Payload contract only; transport is up to the Notifier.
type TransactionEvent struct {
	EventID         string
	TransactionID   string
	Merchant        string
	Amount          float64
	CategoryPending bool
}

// Notifier receives events for downstream consumers such as UI refresh.
type Notifier interface {
	TransactionAdded(ctx context.Context, event TransactionEvent) error
}

// ScanStats shows the results of a scan run.
type ScanStats struct {
	Processed  int
	Accepted   int
	Rejected   int
	Duplicates int
	Failures   int
	Duration   time.Duration
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
