// Package currency formats amounts in the user's active currency.
package currency

import "github.com/shopspring/decimal"

// symbols maps supported ISO 4217 codes to display symbols and the number of
// decimal places conventional for the currency.
var symbols = map[string]struct {
	symbol string
	places int32
}{
	"USD": {"$", 2},
	"EUR": {"€", 2},
	"GBP": {"£", 2},
	"INR": {"₹", 2},
	"JPY": {"¥", 0},
}

// DefaultCode is the currency assumed when settings carry an unknown code.
const DefaultCode = "USD"

// Supported returns the fixed set of selectable currency codes.
func Supported() []string {
	return []string{"USD", "EUR", "GBP", "INR", "JPY"}
}

// IsSupported reports whether code is in the selectable set.
func IsSupported(code string) bool {
	_, ok := symbols[code]
	return ok
}

// Formatter renders float amounts as display strings in one currency.
// Formatting goes through decimal so 19.999999 renders as $20.00, not $20.00-ish
// float noise.
type Formatter struct {
	code string
}

// NewFormatter returns a formatter for code, falling back to DefaultCode when
// the code is unknown (legacy settings blobs may carry anything).
func NewFormatter(code string) Formatter {
	if !IsSupported(code) {
		code = DefaultCode
	}
	return Formatter{code: code}
}

// Code returns the active currency code.
func (f Formatter) Code() string {
	return f.code
}

// Format renders amount with the currency symbol, e.g. "$1234.50".
func (f Formatter) Format(amount float64) string {
	s := symbols[f.code]
	return s.symbol + decimal.NewFromFloat(amount).StringFixed(s.places)
}
