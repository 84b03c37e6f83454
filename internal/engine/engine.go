// Package engine orchestrates the message-processing pipeline: classify,
// extract, score, deduplicate, resolve and persist.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/paisaflow/paisaflow/internal/classify"
	"github.com/paisaflow/paisaflow/internal/common"
	"github.com/paisaflow/paisaflow/internal/dedupe"
	"github.com/paisaflow/paisaflow/internal/extract"
	"github.com/paisaflow/paisaflow/internal/merchant"
	"github.com/paisaflow/paisaflow/internal/model"
	"github.com/paisaflow/paisaflow/internal/rules"
	"github.com/paisaflow/paisaflow/internal/score"
	"github.com/paisaflow/paisaflow/internal/service"
)

// Outcome is the pipeline's verdict for a single message.
type Outcome int

const (
	// OutcomeRejected means the message is not a usable transaction.
	OutcomeRejected Outcome = iota
	// OutcomeDuplicate means an equivalent transaction is already persisted.
	OutcomeDuplicate
	// OutcomeAccepted means a new transaction was persisted.
	OutcomeAccepted
)

// ScanOptions configures a scan run.
type ScanOptions struct {
	// TotalMessages, when > 0, enables a progress bar sized to the batch.
	TotalMessages int
}

// ScanEngine runs the full pipeline over a message source. Safe for
// concurrent use; per-message processing is stateless apart from the
// shared rule cache and alias registry.
type ScanEngine struct {
	storage    service.Storage
	loader     *rules.Loader
	classifier *classify.Classifier
	extractor  *extract.Extractor
	dedup      *dedupe.Deduplicator
	registry   *merchant.Registry
	notifier   service.Notifier
}

// New creates a scan engine with the given collaborators. notifier may be
// nil when no downstream consumer exists.
func New(storage service.Storage, loader *rules.Loader, notifier service.Notifier) *ScanEngine {
	return &ScanEngine{
		storage:    storage,
		loader:     loader,
		classifier: classify.New(loader.Compile),
		extractor:  extract.New(loader.Compile),
		dedup:      dedupe.New(storage),
		registry:   merchant.NewRegistry(storage),
		notifier:   notifier,
	}
}

// Registry exposes the engine's alias registry for callers that manage
// aliases alongside scans.
func (e *ScanEngine) Registry() *merchant.Registry {
	return e.registry
}

// Scan drains the message source through the pipeline. Cancellation is
// checked between messages; no message is ever half-processed. Returns the
// statistics accumulated so far even when stopping early.
func (e *ScanEngine) Scan(ctx context.Context, src service.MessageSource, opts ScanOptions) (*service.ScanStats, error) {
	start := time.Now()
	stats := &service.ScanStats{}

	// Fail fast on an unloadable rule document instead of per message.
	if _, err := e.loader.Load(); err != nil {
		return stats, fmt.Errorf("failed to load rules: %w", err)
	}

	var bar *progressbar.ProgressBar
	if opts.TotalMessages > 0 {
		bar = progressbar.Default(int64(opts.TotalMessages), "scanning")
	}

	for {
		select {
		case <-ctx.Done():
			stats.Duration = time.Since(start)
			return stats, ctx.Err()
		default:
		}

		msg, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("failed to read message: %w", err)
		}

		stats.Processed++
		outcome, _, err := e.Process(ctx, *msg)
		switch {
		case err != nil:
			stats.Failures++
			common.LogError(err, "Failed to process message", common.Fields{
				"sender": msg.Sender,
			})
		case outcome == OutcomeAccepted:
			stats.Accepted++
		case outcome == OutcomeDuplicate:
			stats.Duplicates++
		default:
			stats.Rejected++
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	stats.Duration = time.Since(start)
	slog.Info("Scan complete",
		"processed", stats.Processed,
		"accepted", stats.Accepted,
		"rejected", stats.Rejected,
		"duplicates", stats.Duplicates,
		"failures", stats.Failures,
		"duration", stats.Duration)

	return stats, nil
}

// Process runs a single message through the pipeline. Classification and
// extraction perform no I/O; deduplication and persistence go to storage.
func (e *ScanEngine) Process(ctx context.Context, msg model.RawMessage) (Outcome, *model.ParsedTransaction, error) {
	doc, err := e.loader.Load()
	if err != nil {
		return OutcomeRejected, nil, fmt.Errorf("failed to load rules: %w", err)
	}

	if !e.classifier.IsTransaction(msg, doc) {
		return OutcomeRejected, nil, nil
	}

	bank := doc.MatchBank(msg.Sender, e.loader.Compile)
	fields, ok := e.extractor.Extract(msg, bank, doc)
	if !ok {
		return OutcomeRejected, nil, nil
	}

	var weights *rules.ConfidenceWeights
	if bank != nil {
		weights = bank.ConfidenceWeights
	}

	txn := &model.ParsedTransaction{
		ID:         dedupe.IdentityOf(msg),
		Amount:     fields.Amount,
		Merchant:   fields.Merchant,
		BankName:   fields.BankName,
		Date:       fields.Date,
		RawText:    msg.Body,
		Type:       fields.Type,
		Confidence: score.Score(msg.Body, fields, weights),
	}

	isDup, err := e.dedup.IsDuplicate(ctx, txn)
	if err != nil {
		return OutcomeRejected, nil, err
	}
	if isDup {
		return OutcomeDuplicate, txn, nil
	}

	canonicalKey := merchant.Normalize(txn.Merchant)
	resolution, err := e.registry.Resolve(ctx, canonicalKey, txn.Merchant)
	if err != nil {
		return OutcomeRejected, nil, err
	}

	err = common.WithRetry(ctx, func() error {
		return e.storage.SaveTransaction(ctx, txn)
	}, service.RetryOptions{MaxAttempts: 3})
	if err != nil {
		return OutcomeRejected, nil, fmt.Errorf("failed to persist transaction %s: %w", txn.ID, err)
	}

	if e.notifier != nil {
		event := service.TransactionEvent{
			EventID:         uuid.NewString(),
			TransactionID:   txn.ID,
			Merchant:        resolution.DisplayName,
			Amount:          txn.Amount,
			CategoryPending: !resolution.FromAlias,
		}
		if notifyErr := e.notifier.TransactionAdded(ctx, event); notifyErr != nil {
			common.LogError(notifyErr, "Failed to emit transaction event", common.Fields{
				"transaction_id": txn.ID,
			})
		}
	}

	return OutcomeAccepted, txn, nil
}
