// Package merchant canonicalizes raw merchant text and serves user-defined
// alias overrides keyed by the canonical form.
package merchant

import (
	"regexp"
	"strings"
)

var (
	// Trailing order/payment/transaction-id suffixes: everything from the
	// first *, # or @ marker, or from a run of repeated separators.
	idSuffixRe    = regexp.MustCompile(`[*#@].*$`)
	repeatedSepRe = regexp.MustCompile(`[-_]{2,}.*$`)
)

// legalSuffixes are trailing legal-entity designations, longest first so
// compound forms are stripped whole.
var legalSuffixes = []string{
	"PRIVATE LIMITED",
	"PVT LTD",
	"PVT. LTD",
	"LIMITED",
	"LTD",
	"LLC",
	"INC",
	"CORP",
}

// Normalize canonicalizes raw merchant text into a stable lookup key.
// Deterministic, total and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(rawMerchant string) string {
	key := strings.ToUpper(strings.TrimSpace(rawMerchant))
	key = idSuffixRe.ReplaceAllString(key, "")
	key = repeatedSepRe.ReplaceAllString(key, "")
	key = strings.Join(strings.Fields(key), " ")

	for changed := true; changed; {
		changed = false
		key = strings.TrimRight(key, " .,-_/")
		for _, suffix := range legalSuffixes {
			if strings.HasSuffix(key, " "+suffix) {
				key = strings.TrimSuffix(key, " "+suffix)
				changed = true
			}
		}
	}

	return strings.TrimSpace(key)
}

// cityTokens are known city names stripped only in aggressive mode.
var cityTokens = map[string]bool{
	"MUMBAI":    true,
	"DELHI":     true,
	"BANGALORE": true,
	"BENGALURU": true,
	"HYDERABAD": true,
	"CHENNAI":   true,
	"KOLKATA":   true,
	"PUNE":      true,
	"AHMEDABAD": true,
	"GURGAON":   true,
	"GURUGRAM":  true,
	"NOIDA":     true,
	"JAIPUR":    true,
	"LUCKNOW":   true,
	"KOCHI":     true,
	"INDORE":    true,
}

// shortSuffixTokens are short company designations stripped anywhere in
// aggressive mode.
var shortSuffixTokens = map[string]bool{
	"PVT": true,
	"LTD": true,
	"LLP": true,
	"CO":  true,
	"IN":  true,
	"IND": true,
}

// AggressiveNormalize additionally strips known city names and short
// company-suffix tokens anywhere in the string. Destructive; used only when
// a user explicitly requests grouping of two different canonical keys,
// never for automatic classification.
func AggressiveNormalize(rawMerchant string) string {
	key := Normalize(rawMerchant)

	fields := strings.Fields(key)
	kept := fields[:0]
	for _, f := range fields {
		if cityTokens[f] || shortSuffixTokens[f] {
			continue
		}
		kept = append(kept, f)
	}

	return strings.Join(kept, " ")
}
