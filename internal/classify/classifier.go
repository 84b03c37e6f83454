// Package classify decides whether a raw message is a genuine transaction
// notification rather than an OTP, promotion, balance enquiry or reminder.
package classify

import (
	"strings"

	"github.com/paisaflow/paisaflow/internal/extract"
	"github.com/paisaflow/paisaflow/internal/model"
	"github.com/paisaflow/paisaflow/internal/rules"
)

// Rejection marker token lists, matched case-insensitively against the body.
var (
	promoMarkers = []string{
		"offer", "pre-approved", "preapproved", "click", "http", "www.",
		"t&c", "convert to emi", "win ",
	}
	otpMarkers = []string{
		"otp", "verification", "do not share", "valid for",
	}
	emiReminderMarkers = []string{
		"emi reminder", "e-mandate", "will be deducted",
	}
)

// defaultActionPatterns are the is-transaction action phrases used when a
// bank declares no transaction-type patterns of its own.
var defaultActionPatterns = []string{
	`(?i)\b(debited|credited|sent|received|paid|withdrawn|spent|deposited)\b`,
}

// Classifier applies the ordered decision procedure for accepting a
// message as a transaction. Pure; no side effects and no I/O.
type Classifier struct {
	compile   rules.CompileFunc
	extractor *extract.Extractor
}

// New creates a classifier backed by the given compile cache.
func New(compile rules.CompileFunc) *Classifier {
	return &Classifier{
		compile:   compile,
		extractor: extract.New(compile),
	}
}

// IsTransaction reports whether the message is a genuine transaction
// notification under the given rule document. Checks run in a fixed order
// and short-circuit on the first rejection.
func (c *Classifier) IsTransaction(msg model.RawMessage, doc *rules.Document) bool {
	if !extract.HasReferenceMarker(msg.Body) {
		return false
	}

	bank := doc.MatchBank(msg.Sender, c.compile)
	if bank == nil {
		return false
	}
	if !c.matchesAction(msg.Body, bank) {
		return false
	}

	lower := strings.ToLower(msg.Body)
	if containsAny(lower, promoMarkers) {
		return false
	}
	if containsAny(lower, otpMarkers) {
		return false
	}
	if containsAny(lower, emiReminderMarkers) {
		return false
	}

	if _, ok := c.extractor.Amount(msg.Body, bank, doc); !ok {
		return false
	}

	return true
}

// matchesAction checks the body against the bank's is-transaction action
// phrases, or the default set when the bank declares none.
func (c *Classifier) matchesAction(body string, bank *rules.BankRule) bool {
	patterns := bank.Patterns.TransactionType
	if len(patterns) == 0 {
		patterns = defaultActionPatterns
	}
	for _, p := range patterns {
		re, err := c.compile(p)
		if err != nil {
			continue
		}
		if re.MatchString(body) {
			return true
		}
	}
	return false
}

func containsAny(lower string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
