// Package utils provides formatting and identifier helpers for EDGAR data.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatUSD formats a number as US dollars with thousands separators ($1,234,567.89).
func FormatUSD(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	cents := int64(math.Round(amount * 100))
	formatted := groupThousands(cents/100) + fmt.Sprintf(".%02d", cents%100)

	if negative {
		return "-$" + formatted
	}
	return "$" + formatted
}

// FormatCompact formats a dollar amount in short scale notation.
// e.g., 1234567 → "$1.23M", 2500000000 → "$2.5B"
func FormatCompact(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	prefix := "$"
	if negative {
		prefix = "-$"
	}

	switch {
	case amount >= 1e12:
		return fmt.Sprintf("%s%sT", prefix, formatWithDecimals(amount/1e12))
	case amount >= 1e9:
		return fmt.Sprintf("%s%sB", prefix, formatWithDecimals(amount/1e9))
	case amount >= 1e6:
		return fmt.Sprintf("%s%sM", prefix, formatWithDecimals(amount/1e6))
	case amount >= 1e3:
		return fmt.Sprintf("%s%sK", prefix, formatWithDecimals(amount/1e3))
	default:
		return fmt.Sprintf("%s%.2f", prefix, amount)
	}
}

// FormatShares formats a share count with thousands separators.
func FormatShares(shares int64) string {
	if shares < 0 {
		return "-" + groupThousands(-shares)
	}
	return groupThousands(shares)
}

// FormatPercent formats an ownership percentage, e.g. 5.1234 → "5.12%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatChangePct formats a percentage change with sign.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatChangePct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatBytes formats a document size, e.g. 1536 → "1.5 KB".
func FormatBytes(n int64) string {
	v := float64(n)
	switch {
	case v >= 1<<30:
		return formatWithDecimals(v/(1<<30)) + " GB"
	case v >= 1<<20:
		return formatWithDecimals(v/(1<<20)) + " MB"
	case v >= 1<<10:
		return formatWithDecimals(v/(1<<10)) + " KB"
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// groupThousands formats a non-negative integer with comma groups of three.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatWithDecimals formats a number with up to 2 decimal places,
// removing trailing zeros.
func formatWithDecimals(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
