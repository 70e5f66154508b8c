package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// formatUnitValue renders a measured value for output. Currency codes are
// prefixed ("EUR 123.45"), percent is appended without separator ("12.5%"),
// any other unit is appended after a space ("120 mm").
func formatUnitValue(value, unit string) string {
	value = strings.TrimSpace(value)
	unit = strings.TrimSpace(unit)
	switch {
	case value == "" || unit == "":
		return value
	case unit == "%":
		return value + "%"
	case isCurrencyCode(unit):
		return unit + " " + value
	default:
		return value + " " + unit
	}
}

// formatAmount renders a monetary amount with its currency code prefixed.
func formatAmount(v float64, code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		code = "EUR"
	}
	return fmt.Sprintf("%s %.2f", code, v)
}

// formatPercent renders a percentage with no space before the sign.
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// isCurrencyCode reports whether unit looks like an ISO 4217 code.
func isCurrencyCode(unit string) bool {
	if len(unit) != 3 {
		return false
	}
	for _, r := range unit {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// formatSize renders an attachment size for the appendix index.
func formatSize(n int64) string {
	if n <= 0 {
		return ""
	}
	return humanize.Bytes(uint64(n))
}
