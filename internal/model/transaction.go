package model

import "time"

// TransactionType indicates the direction of a parsed transaction.
type TransactionType string

const (
	// TypeDebit indicates money leaving the account.
	TypeDebit TransactionType = "DEBIT"
	// TypeCredit indicates money arriving in the account.
	TypeCredit TransactionType = "CREDIT"
	// TypeUnknown indicates the direction could not be determined.
	TypeUnknown TransactionType = "UNKNOWN"
)

// ParsedTransaction is a monetary transaction extracted from a RawMessage.
// Instances are immutable once produced by the extractor and scorer.
type ParsedTransaction struct {
	Date       time.Time
	ID         string
	Merchant   string
	BankName   string
	RawText    string
	Type       TransactionType
	Amount     float64
	Confidence float64
}
