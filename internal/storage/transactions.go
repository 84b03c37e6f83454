package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/paisaflow/paisaflow/internal/common"
	"github.com/paisaflow/paisaflow/internal/merchant"
	"github.com/paisaflow/paisaflow/internal/model"
)

// SaveTransaction inserts a parsed transaction. The canonical merchant form
// is stored alongside the raw merchant text for similarity lookups.
func (s *SQLiteStorage) SaveTransaction(ctx context.Context, txn *model.ParsedTransaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (
			id, date, merchant, canonical_merchant, bank_name, raw_text, txn_type, amount, confidence
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		txn.ID,
		txn.Date,
		txn.Merchant,
		merchant.Normalize(txn.Merchant),
		txn.BankName,
		txn.RawText,
		string(txn.Type),
		txn.Amount,
		txn.Confidence,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
	}

	return nil
}

// GetTransactionByID retrieves a transaction by its identity, returning
// common.ErrNotFound when no record exists.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.ParsedTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, merchant, bank_name, raw_text, txn_type, amount, confidence
		FROM transactions
		WHERE id = ?
	`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// FindSimilarTransaction looks for an existing transaction with the same
// normalized merchant and amount on the same day. Returns nil when none
// exists; absence is not an error.
func (s *SQLiteStorage) FindSimilarTransaction(ctx context.Context, rawMerchant string, amount float64, date time.Time) (*model.ParsedTransaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, merchant, bank_name, raw_text, txn_type, amount, confidence
		FROM transactions
		WHERE canonical_merchant = ?
		  AND ABS(amount - ?) < 0.005
		  AND date(date) = date(?)
		LIMIT 1
	`, merchant.Normalize(rawMerchant), amount, date)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find similar transaction: %w", err)
	}
	return txn, nil
}

// GetTransactionCount returns the number of persisted transactions.
func (s *SQLiteStorage) GetTransactionCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(row *sql.Row) (*model.ParsedTransaction, error) {
	var txn model.ParsedTransaction
	var txnType string

	err := row.Scan(
		&txn.ID,
		&txn.Date,
		&txn.Merchant,
		&txn.BankName,
		&txn.RawText,
		&txnType,
		&txn.Amount,
		&txn.Confidence,
	)
	if err != nil {
		return nil, err
	}

	txn.Type = model.TransactionType(txnType)
	return &txn, nil
}
