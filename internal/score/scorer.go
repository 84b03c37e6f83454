// Package score computes bounded [0,1] confidence estimates reflecting how
// much evidence supports an extraction. Not a probability in the
// statistical sense.
package score

import (
	"regexp"

	"github.com/paisaflow/paisaflow/internal/extract"
	"github.com/paisaflow/paisaflow/internal/rules"
)

// Heuristic-mode baseline and evidence bonuses.
const (
	baseline            = 0.5
	strictCurrencyBonus = 0.2
	directionBonus      = 0.2
	balanceBonus        = 0.1
)

var (
	strictCurrencyRe = regexp.MustCompile(`(?i)(?:rs\.?|inr|₹)\s*[0-9]`)
	directionRe      = regexp.MustCompile(`(?i)\b(debit|debited|credit|credited)\b`)
	balanceRe        = regexp.MustCompile(`(?i)\b(bal|balance)\b`)
)

// Score computes the confidence for an extraction. When the bank rule
// declares confidence weights the weighted mode sums per-field weights for
// each successfully extracted field; otherwise the heuristic mode applies.
// The two modes are never mixed for a single bank.
func Score(body string, fields *extract.Fields, weights *rules.ConfidenceWeights) float64 {
	if weights != nil {
		return clamp(weighted(fields, weights))
	}
	return clamp(heuristic(body))
}

func weighted(fields *extract.Fields, weights *rules.ConfidenceWeights) float64 {
	var total float64
	if fields.SenderMatched {
		total += weights.SenderMatch
	}
	if fields.Amount >= 1 {
		total += weights.AmountExtraction
	}
	if fields.Merchant != "" && fields.Merchant != extract.UnknownMerchant {
		total += weights.MerchantExtraction
	}
	if fields.DateInBody {
		total += weights.DateExtraction
	}
	if fields.ReferenceFound {
		total += weights.ReferenceNumberExtraction
	}
	return total
}

func heuristic(body string) float64 {
	total := baseline
	if strictCurrencyRe.MatchString(body) {
		total += strictCurrencyBonus
	}
	if directionRe.MatchString(body) {
		total += directionBonus
	}
	if balanceRe.MatchString(body) {
		total += balanceBonus
	}
	return total
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
