package utils

import (
	"regexp"
	"strings"
)

var (
	accessionRe      = regexp.MustCompile(`^\d{10}-\d{2}-\d{6}$`)
	accessionPlainRe = regexp.MustCompile(`^\d{18}$`)
	cikRe            = regexp.MustCompile(`^\d{1,10}$`)
	cusipRe          = regexp.MustCompile(`^[0-9A-Z]{8}[0-9]$`)
)

// PadCIK pads a CIK number to 10 digits with leading zeros.
// Values longer than 10 characters are returned unchanged.
func PadCIK(cik string) string {
	if len(cik) >= 10 {
		return cik
	}
	return strings.Repeat("0", 10-len(cik)) + cik
}

// NormalizeCIK trims whitespace and an optional "CIK" prefix and pads to
// 10 digits. It returns false if the input is not numeric.
func NormalizeCIK(raw string) (string, bool) {
	s := strings.TrimSpace(strings.ToUpper(raw))
	s = strings.TrimPrefix(s, "CIK")
	if !cikRe.MatchString(s) {
		return "", false
	}
	return PadCIK(s), true
}

// TrimCIK strips leading zeros, as EDGAR archive paths expect.
func TrimCIK(cik string) string {
	t := strings.TrimLeft(cik, "0")
	if t == "" && cik != "" {
		return "0"
	}
	return t
}

// IsAccessionNumber reports whether s has the NNNNNNNNNN-YY-NNNNNN form.
func IsAccessionNumber(s string) bool {
	return accessionRe.MatchString(s)
}

// NormalizeAccession accepts either the dashed or the 18-digit form and
// returns the dashed form.
func NormalizeAccession(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if accessionRe.MatchString(s) {
		return s, true
	}
	if accessionPlainRe.MatchString(s) {
		return s[:10] + "-" + s[10:12] + "-" + s[12:], true
	}
	return "", false
}

// AccessionNoDashes returns the accession number as used in archive URLs.
func AccessionNoDashes(acc string) string {
	return strings.ReplaceAll(acc, "-", "")
}

// IsCUSIP reports whether s looks like a 9-character CUSIP.
func IsCUSIP(s string) bool {
	return cusipRe.MatchString(strings.ToUpper(s))
}

// NormalizeTicker upper-cases a ticker and maps share-class separators to
// the dash form EDGAR uses (BRK.B → BRK-B).
func NormalizeTicker(ticker string) string {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	t = strings.ReplaceAll(t, ".", "-")
	t = strings.ReplaceAll(t, "/", "-")
	return t
}

// LooksLikeCIK reports whether a free-text search term should be treated as
// a CIK rather than a company name.
func LooksLikeCIK(term string) bool {
	s := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(term)), "CIK")
	return cikRe.MatchString(s)
}
