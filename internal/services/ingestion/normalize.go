package ingestion

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order when parsing the notification date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02-01-2006",
	"02/01/2006",
}

// NormalizeAmount turns a loosely formatted amount ("€121,00", "1.234,56",
// "1,234.56") into a decimal. When both separators are present, the one
// appearing last is the decimal point and the other marks thousands, which
// handles Dutch ("1.234,56") and US ("1,234.56") formats alike. A lone
// comma is the decimal separator. Every remaining character that is not a
// digit or a dot is stripped. Unparsable or empty input yields zero.
func NormalizeAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case lastDot >= 0 && lastComma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseInvoiceDate parses the notification date, trying a few layouts.
// The second return value is false when no layout matched and the caller
// should fall back to the current date.
func ParseInvoiceDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
