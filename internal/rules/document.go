// Package rules loads, validates and compiles the versioned extraction
// rule document that drives classification and extraction.
package rules

import (
	"regexp"
	"strings"
)

// SupportedVersion is the rule document schema version this build understands.
const SupportedVersion = 1

// Weight-sum tolerance for per-bank confidence weights.
const (
	minWeightSum = 0.9
	maxWeightSum = 1.1
)

// Document is a validated rule document. Loaded once at process start and
// cached for the process lifetime.
type Document struct {
	FallbackPatterns FallbackPatterns `json:"fallbackPatterns"`
	Banks            []BankRule       `json:"banks"`
	Version          int              `json:"version"`
}

// BankRule holds the extraction rules for a single bank.
type BankRule struct {
	ConfidenceWeights *ConfidenceWeights `json:"confidenceWeights,omitempty"`
	Code              string             `json:"code"`
	SenderPatterns    []string           `json:"senderPatterns"`
	Patterns          PatternSet         `json:"patterns"`
}

// PatternSet groups the ordered extraction pattern lists for a bank.
// Date and TransactionType are optional.
type PatternSet struct {
	Amount          []string `json:"amount"`
	Merchant        []string `json:"merchant"`
	Date            []string `json:"date,omitempty"`
	TransactionType []string `json:"transactionType,omitempty"`
}

// ConfidenceWeights are per-field weights summed for each successfully
// extracted field. When present the heuristic scoring mode is not used.
type ConfidenceWeights struct {
	SenderMatch               float64 `json:"senderMatch"`
	AmountExtraction          float64 `json:"amountExtraction"`
	MerchantExtraction        float64 `json:"merchantExtraction"`
	DateExtraction            float64 `json:"dateExtraction"`
	ReferenceNumberExtraction float64 `json:"referenceNumberExtraction"`
}

// Sum returns the total of all field weights.
func (w ConfidenceWeights) Sum() float64 {
	return w.SenderMatch + w.AmountExtraction + w.MerchantExtraction +
		w.DateExtraction + w.ReferenceNumberExtraction
}

// FallbackPatterns are bank-agnostic patterns used when no bank-specific
// pattern matches.
type FallbackPatterns struct {
	Amount   []string `json:"amount"`
	Merchant []string `json:"merchant"`
}

// CompileFunc resolves pattern text to a compiled regexp, typically backed
// by the loader's memoized compile cache.
type CompileFunc func(pattern string) (*regexp.Regexp, error)

// MatchBank returns the first bank rule whose sender patterns match the
// given sender, or nil if none match. Patterns that fail to compile are
// skipped; a loaded document has already compiled every pattern.
func (d *Document) MatchBank(sender string, compile CompileFunc) *BankRule {
	for i := range d.Banks {
		for _, p := range d.Banks[i].SenderPatterns {
			re, err := compile(p)
			if err != nil {
				continue
			}
			if re.MatchString(sender) {
				return &d.Banks[i]
			}
		}
	}
	return nil
}

// validate checks the document against the schema rules. All rules must
// pass or loading fails with a descriptive error.
func (d *Document) validate() error {
	if d.Version != SupportedVersion {
		return newValidationError("unsupported version %d, want %d", d.Version, SupportedVersion)
	}
	if len(d.Banks) == 0 {
		return newValidationError("document declares no bank rules")
	}
	for i := range d.Banks {
		bank := &d.Banks[i]
		if strings.TrimSpace(bank.Code) == "" {
			return newValidationError("bank at index %d has a blank code", i)
		}
		if len(bank.SenderPatterns) == 0 {
			return newValidationError("bank %s has no sender patterns", bank.Code)
		}
		if len(bank.Patterns.Amount) == 0 {
			return newValidationError("bank %s has no amount patterns", bank.Code)
		}
		if len(bank.Patterns.Merchant) == 0 {
			return newValidationError("bank %s has no merchant patterns", bank.Code)
		}
		if w := bank.ConfidenceWeights; w != nil {
			if sum := w.Sum(); sum < minWeightSum || sum > maxWeightSum {
				return newValidationError("bank %s confidence weights sum to %.3f, want [%.1f, %.1f]",
					bank.Code, sum, minWeightSum, maxWeightSum)
			}
		}
	}
	if len(d.FallbackPatterns.Amount) == 0 {
		return newValidationError("fallback amount patterns are empty")
	}
	if len(d.FallbackPatterns.Merchant) == 0 {
		return newValidationError("fallback merchant patterns are empty")
	}
	return nil
}

// allPatterns returns every pattern declared across banks and fallbacks,
// in declaration order.
func (d *Document) allPatterns() []string {
	var patterns []string
	for i := range d.Banks {
		bank := &d.Banks[i]
		patterns = append(patterns, bank.SenderPatterns...)
		patterns = append(patterns, bank.Patterns.Amount...)
		patterns = append(patterns, bank.Patterns.Merchant...)
		patterns = append(patterns, bank.Patterns.Date...)
		patterns = append(patterns, bank.Patterns.TransactionType...)
	}
	patterns = append(patterns, d.FallbackPatterns.Amount...)
	patterns = append(patterns, d.FallbackPatterns.Merchant...)
	return patterns
}
