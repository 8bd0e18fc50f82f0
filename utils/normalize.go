package utils

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	panRegex   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	tanRegex   = regexp.MustCompile(`^[A-Z]{4}[0-9]{5}[A-Z]$`)
	amountJunk = regexp.MustCompile(`[₹,\s]`)
)

// IsValidPAN reports whether pan matches the 5-letter/4-digit/1-letter
// PAN format. Matching is done on the uppercased value.
func IsValidPAN(pan string) bool {
	if pan == "" {
		return false
	}
	return panRegex.MatchString(strings.ToUpper(pan))
}

// IsValidTAN reports whether tan matches the 4-letter/5-digit/1-letter
// TAN format.
func IsValidTAN(tan string) bool {
	if tan == "" {
		return false
	}
	return tanRegex.MatchString(strings.ToUpper(tan))
}

// NormalizeAmount converts a currency string to an integer amount,
// stripping the Rupee sign, thousands separators and whitespace.
// Fractional paise are truncated. Unparseable input yields 0.
func NormalizeAmount(s string) int {
	if s == "" {
		return 0
	}
	clean := amountJunk.ReplaceAllString(s, "")
	if clean == "" {
		return 0
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// NormalizeName title-cases each word of a name.
func NormalizeName(name string) string {
	fields := strings.Fields(strings.TrimSpace(name))
	for i, w := range fields {
		lower := strings.ToLower(w)
		first, size := utf8.DecodeRuneInString(lower)
		if first == utf8.RuneError && size <= 1 {
			fields[i] = lower
			continue
		}
		fields[i] = string(unicode.ToUpper(first)) + lower[size:]
	}
	return strings.Join(fields, " ")
}

// NormalizePAN uppercases and trims a PAN or TAN value.
func NormalizePAN(pan string) string {
	return strings.ToUpper(strings.TrimSpace(pan))
}
