// Package dedupe derives stable message identities and detects
// near-duplicate transactions already known to the system.
package dedupe

import (
	"context"
	"errors"
	"fmt"

	"github.com/paisaflow/paisaflow/internal/common"
	"github.com/paisaflow/paisaflow/internal/model"
	"github.com/paisaflow/paisaflow/internal/service"
)

// IdentityOf derives the stable identity for a message. Pure and
// deterministic over (sender, body, timestamp).
func IdentityOf(msg model.RawMessage) string {
	return msg.IdentityHash()
}

// Deduplicator checks candidates against persisted transactions. Stateless;
// both lookups are delegated to the storage collaborator.
type Deduplicator struct {
	storage service.Storage
}

// New creates a deduplicator over the given storage.
func New(storage service.Storage) *Deduplicator {
	return &Deduplicator{storage: storage}
}

// IsDuplicate reports whether a candidate duplicates a persisted
// transaction, either by identity or by similarity (same normalized
// merchant and amount on the same day, guarding against identity-function
// changes across versions). Duplication is a normal outcome, not an error.
func (d *Deduplicator) IsDuplicate(ctx context.Context, candidate *model.ParsedTransaction) (bool, error) {
	existing, err := d.storage.GetTransactionByID(ctx, candidate.ID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return false, fmt.Errorf("failed to look up transaction %s: %w", candidate.ID, err)
	}
	if existing != nil {
		return true, nil
	}

	similar, err := d.storage.FindSimilarTransaction(ctx, candidate.Merchant, candidate.Amount, candidate.Date)
	if err != nil {
		return false, fmt.Errorf("failed to look up similar transactions: %w", err)
	}
	return similar != nil, nil
}
