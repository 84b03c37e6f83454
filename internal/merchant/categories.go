package merchant

import "strings"

// DefaultCategoryName is assigned when no keyword rule matches.
const DefaultCategoryName = "Other"

// categoryKeywords drive the rule-based default category assigned when no
// alias exists for a merchant.
var categoryKeywords = []struct {
	token    string
	category string
}{
	{"SWIGGY", "Food"},
	{"ZOMATO", "Food"},
	{"DOMINOS", "Food"},
	{"MCDONALD", "Food"},
	{"STARBUCKS", "Food"},
	{"CAFE", "Food"},
	{"RESTAURANT", "Food"},
	{"AMAZON", "Shopping"},
	{"FLIPKART", "Shopping"},
	{"MYNTRA", "Shopping"},
	{"CROMA", "Shopping"},
	{"DECATHLON", "Shopping"},
	{"BIGBASKET", "Groceries"},
	{"BLINKIT", "Groceries"},
	{"DMART", "Groceries"},
	{"GROCERY", "Groceries"},
	{"UBER", "Travel"},
	{"OLA", "Travel"},
	{"RAPIDO", "Travel"},
	{"IRCTC", "Travel"},
	{"MAKEMYTRIP", "Travel"},
	{"AIRLINES", "Travel"},
	{"NETFLIX", "Entertainment"},
	{"SPOTIFY", "Entertainment"},
	{"HOTSTAR", "Entertainment"},
	{"BOOKMYSHOW", "Entertainment"},
	{"AIRTEL", "Utilities"},
	{"JIO", "Utilities"},
	{"VODAFONE", "Utilities"},
	{"ELECTRICITY", "Utilities"},
	{"BROADBAND", "Utilities"},
	{"PHARMACY", "Health"},
	{"APOLLO", "Health"},
	{"MEDPLUS", "Health"},
	{"HOSPITAL", "Health"},
}

// categoryColors maps category names to their display colors.
var categoryColors = map[string]string{
	"Food":              "#E74C3C",
	"Shopping":          "#9B59B6",
	"Groceries":         "#27AE60",
	"Travel":            "#2980B9",
	"Entertainment":     "#E67E22",
	"Utilities":         "#16A085",
	"Health":            "#C0392B",
	DefaultCategoryName: "#7F8C8D",
}

// DefaultCategory returns the rule-based category and color for a canonical
// merchant key that has no alias.
func DefaultCategory(canonicalKey string) (string, string) {
	upper := strings.ToUpper(canonicalKey)
	for _, rule := range categoryKeywords {
		if strings.Contains(upper, rule.token) {
			return rule.category, categoryColors[rule.category]
		}
	}
	return DefaultCategoryName, categoryColors[DefaultCategoryName]
}

// CategoryColor returns the display color for a category, falling back to
// the default color for unknown categories.
func CategoryColor(category string) string {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return categoryColors[DefaultCategoryName]
}
