// Package extract pulls amount, merchant, bank and date fields out of
// messages accepted by the classifier.
package extract

import (
	"strconv"
	"strings"
	"time"

	"github.com/paisaflow/paisaflow/internal/model"
	"github.com/paisaflow/paisaflow/internal/rules"
)

// Placeholder values for fields that could not be resolved.
const (
	UnknownMerchant = "Unknown Merchant"
	UnknownBank     = "Unknown Bank"
)

// referenceMarkers are the tokens that indicate a reference number in a
// message body. Matched case-insensitively.
var referenceMarkers = []string{"ref ", "ref-", "ref no", "reference"}

// HasReferenceMarker reports whether the body carries a reference-number
// marker.
func HasReferenceMarker(body string) bool {
	lower := strings.ToLower(body)
	for _, marker := range referenceMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Fields holds the values extracted from a single message together with
// flags recording which extractions succeeded, for confidence scoring.
type Fields struct {
	Date                time.Time
	BodyDate            time.Time
	Merchant            string
	BankName            string
	Type                model.TransactionType
	Amount              float64
	SenderMatched       bool
	MerchantFromPattern bool
	DateInBody          bool
	ReferenceFound      bool
}

// Extractor evaluates ordered rule patterns against message bodies.
// Stateless apart from the shared compile cache; safe for concurrent use.
type Extractor struct {
	compile rules.CompileFunc
}

// New creates an extractor backed by the given compile cache.
func New(compile rules.CompileFunc) *Extractor {
	return &Extractor{compile: compile}
}

// Extract pulls all fields from a message. bank may be nil, in which case
// only the document's fallback patterns apply. Returns false when no valid
// amount can be extracted; a degenerate transaction is never produced.
func (e *Extractor) Extract(msg model.RawMessage, bank *rules.BankRule, doc *rules.Document) (*Fields, bool) {
	amount, ok := e.Amount(msg.Body, bank, doc)
	if !ok {
		return nil, false
	}

	merchant, fromPattern := e.Merchant(msg.Body, bank, doc)

	fields := &Fields{
		Amount:              amount,
		Merchant:            merchant,
		MerchantFromPattern: fromPattern,
		BankName:            e.BankName(msg.Sender),
		Date:                msg.Time(),
		Type:                e.transactionType(msg.Body, bank),
		SenderMatched:       bank != nil,
		ReferenceFound:      HasReferenceMarker(msg.Body),
	}

	if bank != nil {
		if bodyDate, found := e.bodyDate(msg.Body, bank); found {
			fields.BodyDate = bodyDate
			fields.DateInBody = true
		}
	}

	return fields, true
}

// Amount tries each amount pattern in order, bank-specific first, then the
// fallback list. The first pattern whose capture parses to a value >= 1
// wins, even when the body mentions several differently-valued amounts
// (a transaction amount next to a balance is taken as-is; known precision
// limitation).
func (e *Extractor) Amount(body string, bank *rules.BankRule, doc *rules.Document) (float64, bool) {
	if bank != nil {
		if amount, ok := e.firstAmount(body, bank.Patterns.Amount); ok {
			return amount, true
		}
	}
	return e.firstAmount(body, doc.FallbackPatterns.Amount)
}

func (e *Extractor) firstAmount(body string, patterns []string) (float64, bool) {
	for _, p := range patterns {
		re, err := e.compile(p)
		if err != nil {
			continue
		}
		match := re.FindStringSubmatch(body)
		if len(match) < 2 {
			continue
		}
		raw := strings.ReplaceAll(match[1], ",", "")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || amount < 1 {
			continue
		}
		return amount, true
	}
	return 0, false
}

// Merchant tries each merchant pattern in order, then the static
// known-merchant keyword list, then the first capitalized token sequence.
// Returns UnknownMerchant when everything fails; the second return value
// reports whether a rule pattern produced the value.
func (e *Extractor) Merchant(body string, bank *rules.BankRule, doc *rules.Document) (string, bool) {
	var patterns []string
	if bank != nil {
		patterns = append(patterns, bank.Patterns.Merchant...)
	}
	patterns = append(patterns, doc.FallbackPatterns.Merchant...)

	for _, p := range patterns {
		re, err := e.compile(p)
		if err != nil {
			continue
		}
		match := re.FindStringSubmatch(body)
		if len(match) < 2 {
			continue
		}
		candidate := cleanupMerchant(match[1])
		if len(candidate) >= 2 {
			return candidate, true
		}
	}

	if known := knownMerchant(body); known != "" {
		return known, false
	}
	if seq := capitalizedSequence(body); seq != "" {
		return seq, false
	}
	return UnknownMerchant, false
}

// cleanupMerchant collapses whitespace and strips trailing special-char
// suffixes from a raw capture.
func cleanupMerchant(raw string) string {
	cleaned := strings.Join(strings.Fields(raw), " ")
	return strings.TrimRight(cleaned, " .,*#@/-_")
}

// transactionType determines direction from the bank's transaction-type
// patterns, falling back to a generic keyword check.
func (e *Extractor) transactionType(body string, bank *rules.BankRule) model.TransactionType {
	if bank != nil {
		for _, p := range bank.Patterns.TransactionType {
			re, err := e.compile(p)
			if err != nil {
				continue
			}
			match := re.FindStringSubmatch(body)
			if len(match) < 2 {
				continue
			}
			return directionOf(match[1])
		}
	}

	lower := strings.ToLower(body)
	for _, kw := range creditKeywords {
		if strings.Contains(lower, kw) {
			return model.TypeCredit
		}
	}
	for _, kw := range debitKeywords {
		if strings.Contains(lower, kw) {
			return model.TypeDebit
		}
	}
	return model.TypeUnknown
}

var creditKeywords = []string{"credited", "received", "deposited", "salary"}

var debitKeywords = []string{"debited", "sent", "paid", "withdrawn", "spent", "debit"}

func directionOf(word string) model.TransactionType {
	lower := strings.ToLower(word)
	for _, kw := range creditKeywords {
		if strings.Contains(lower, kw) {
			return model.TypeCredit
		}
	}
	return model.TypeDebit
}

// bodyDateLayouts are the display formats banks use for in-body dates.
var bodyDateLayouts = []string{
	"02-01-06",
	"02-01-2006",
	"02/01/06",
	"02/01/2006",
	"02-Jan-06",
	"02-Jan-2006",
	"2-Jan-06",
	"02Jan06",
	"2 Jan 06",
	"2 Jan 2006",
}

// bodyDate extracts the displayed transaction date from the body when the
// bank declares date patterns. The message timestamp stays authoritative;
// absence of a body date is not an error.
func (e *Extractor) bodyDate(body string, bank *rules.BankRule) (time.Time, bool) {
	for _, p := range bank.Patterns.Date {
		re, err := e.compile(p)
		if err != nil {
			continue
		}
		match := re.FindStringSubmatch(body)
		if len(match) < 2 {
			continue
		}
		for _, layout := range bodyDateLayouts {
			if t, err := time.Parse(layout, match[1]); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
