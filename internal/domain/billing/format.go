package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD renders an amount for display, e.g. "$1,234.56" or "-$30.00".
// It is applied only at the presentation boundary and is the inverse of
// ParseUSD; amounts are never stored or summed in this form.
func FormatUSD(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String() + "." + fracPart
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

// ParseUSD converts a display-formatted amount back to its numeric value.
func ParseUSD(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	neg := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}
