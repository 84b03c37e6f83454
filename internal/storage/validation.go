package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paisaflow/paisaflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidAlias       = errors.New("invalid alias")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransaction validates a single parsed transaction.
func validateTransaction(txn *model.ParsedTransaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if strings.TrimSpace(txn.Merchant) == "" {
		return fmt.Errorf("%w: missing merchant", ErrInvalidTransaction)
	}
	if txn.Amount < 1 {
		return fmt.Errorf("%w: amount must be >= 1", ErrInvalidTransaction)
	}
	if txn.Confidence < 0 || txn.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidTransaction)
	}
	return nil
}

// validateAlias validates a merchant alias.
func validateAlias(alias *model.MerchantAlias) error {
	if alias == nil {
		return fmt.Errorf("%w: alias", ErrNilParameter)
	}
	if strings.TrimSpace(alias.CanonicalKey) == "" {
		return fmt.Errorf("%w: missing canonical key", ErrInvalidAlias)
	}
	if strings.TrimSpace(alias.DisplayName) == "" {
		return fmt.Errorf("%w: missing display name", ErrInvalidAlias)
	}
	if strings.TrimSpace(alias.Category) == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidAlias)
	}
	if strings.TrimSpace(alias.CategoryColor) == "" {
		return fmt.Errorf("%w: missing category color", ErrInvalidAlias)
	}
	return nil
}
