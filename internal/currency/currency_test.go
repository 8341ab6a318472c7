package currency

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		amount float64
		want   string
	}{
		{"usd two places", "USD", 1234.5, "$1234.50"},
		{"usd float noise rounds", "USD", 19.999999, "$20.00"},
		{"eur", "EUR", 7.1, "€7.10"},
		{"gbp", "GBP", 0, "£0.00"},
		{"inr", "INR", 99999.99, "₹99999.99"},
		{"jpy has no decimals", "JPY", 1234.5, "¥1235"},
		{"unknown code falls back to usd", "XYZ", 3, "$3.00"},
		{"negative", "USD", -42.5, "$-42.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewFormatter(tt.code).Format(tt.amount); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestNewFormatterCode(t *testing.T) {
	if got := NewFormatter("EUR").Code(); got != "EUR" {
		t.Errorf("Code() = %q, want EUR", got)
	}
	if got := NewFormatter("").Code(); got != DefaultCode {
		t.Errorf("Code() for empty input = %q, want %q", got, DefaultCode)
	}
}

func TestSupported(t *testing.T) {
	for _, code := range Supported() {
		if !IsSupported(code) {
			t.Errorf("Supported() lists %q but IsSupported rejects it", code)
		}
	}
	if IsSupported("BTC") {
		t.Error("IsSupported(BTC) = true")
	}
}
