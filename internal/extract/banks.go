package extract

import "strings"

// bankCodes maps known sender codes to friendly bank names. Ordered so
// longer, more specific codes win over substrings.
var bankCodes = []struct {
	code string
	name string
}{
	{"HDFC", "HDFC Bank"},
	{"ICICI", "ICICI Bank"},
	{"KOTAK", "Kotak Mahindra Bank"},
	{"AXIS", "Axis Bank"},
	{"SBI", "State Bank of India"},
	{"PNB", "Punjab National Bank"},
	{"BOB", "Bank of Baroda"},
	{"IDFC", "IDFC First Bank"},
	{"YES", "Yes Bank"},
	{"CANARA", "Canara Bank"},
	{"INDUSIND", "IndusInd Bank"},
	{"FEDERAL", "Federal Bank"},
	{"PAYTM", "Paytm Payments Bank"},
	{"AIRTEL", "Airtel Payments Bank"},
}

// bankFallbacks covers sender-ID conventions that do not contain the bank
// code itself.
var bankFallbacks = []struct {
	code string
	name string
}{
	{"SBIN", "State Bank of India"},
	{"UTIB", "Axis Bank"},
	{"PUNB", "Punjab National Bank"},
	{"CNRB", "Canara Bank"},
	{"IDIB", "Indian Bank"},
}

// BankName maps a sender to a friendly bank name. Unmatched non-empty
// senders are returned as-is.
func (e *Extractor) BankName(sender string) string {
	if strings.TrimSpace(sender) == "" {
		return UnknownBank
	}

	upper := strings.ToUpper(sender)
	for _, entry := range bankCodes {
		if strings.Contains(upper, entry.code) {
			return entry.name
		}
	}
	for _, entry := range bankFallbacks {
		if strings.Contains(upper, entry.code) {
			return entry.name
		}
	}
	return sender
}
