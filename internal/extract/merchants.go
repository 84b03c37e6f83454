package extract

import (
	"regexp"
	"strings"
)

// knownMerchants is the static brand keyword list consulted when no rule
// pattern captures a merchant.
var knownMerchants = []struct {
	token string
	name  string
}{
	{"SWIGGY", "Swiggy"},
	{"ZOMATO", "Zomato"},
	{"AMAZON", "Amazon"},
	{"FLIPKART", "Flipkart"},
	{"MYNTRA", "Myntra"},
	{"BIGBASKET", "BigBasket"},
	{"BLINKIT", "Blinkit"},
	{"UBER", "Uber"},
	{"OLA", "Ola"},
	{"RAPIDO", "Rapido"},
	{"IRCTC", "IRCTC"},
	{"MAKEMYTRIP", "MakeMyTrip"},
	{"DOMINOS", "Dominos"},
	{"MCDONALD", "McDonalds"},
	{"STARBUCKS", "Starbucks"},
	{"NETFLIX", "Netflix"},
	{"SPOTIFY", "Spotify"},
	{"HOTSTAR", "Hotstar"},
	{"BOOKMYSHOW", "BookMyShow"},
	{"PAYTM", "Paytm"},
	{"PHONEPE", "PhonePe"},
	{"DMART", "DMart"},
	{"RELIANCE", "Reliance"},
	{"CROMA", "Croma"},
	{"DECATHLON", "Decathlon"},
}

func knownMerchant(body string) string {
	upper := strings.ToUpper(body)
	for _, m := range knownMerchants {
		if strings.Contains(upper, m.token) {
			return m.name
		}
	}
	return ""
}

var capitalizedSeqRe = regexp.MustCompile(`\b[A-Z][A-Za-z0-9&]{2,}(?:\s+[A-Z][A-Za-z0-9&]+)*`)

// capitalizedStopwords are capitalized tokens common in bank copy that are
// never merchant names.
var capitalizedStopwords = map[string]bool{
	"Dear":      true,
	"Your":      true,
	"The":       true,
	"Rs":        true,
	"Inr":       true,
	"Ref":       true,
	"Bank":      true,
	"Account":   true,
	"Acct":      true,
	"Avl":       true,
	"Bal":       true,
	"Balance":   true,
	"Info":      true,
	"Sent":      true,
	"Card":      true,
	"Customer":  true,
	"Available": true,
	"Thank":     true,
	"Paid":      true,
	"Payment":   true,
	"Debited":   true,
	"Credited":  true,
	"Received":  true,
	"Txn":       true,
	"Upi":       true,
	"UPI":       true,
	"Not":       true,
	"Please":    true,
	"Call":      true,
	"Dial":      true,
}

// capitalizedSequence returns the first capitalized token sequence of
// length >= 3 that is not common bank boilerplate. Last-resort fallback.
func capitalizedSequence(body string) string {
	for _, match := range capitalizedSeqRe.FindAllString(body, -1) {
		first := strings.Fields(match)[0]
		if capitalizedStopwords[first] {
			continue
		}
		return cleanupMerchant(match)
	}
	return ""
}
