package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// StrToDecimal parses s as an exact decimal. Surrounding whitespace is ignored.
func StrToDecimal(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// DecimalToStr renders d without exponent or binary float rounding.
func DecimalToStr(d decimal.Decimal) string {
	return d.String()
}

// TruncateStr cuts s to at most n runes.
func TruncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// NormalizeKey lower-cases key and strips underscores, so API_KEY, apiKey
// and api_key compare equal.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "")
}
