package dto

import "strings"

// placeholderValues is the set of sentinels recognized anywhere in an
// ITR document, compared after trim + uppercase.
var placeholderValues = map[string]bool{
	"":           true,
	"-":          true,
	"NA":         true,
	"N/A":        true,
	"NONE":       true,
	"NULL":       true,
	"AAAAA0000A": true,
	"SW00000001": true,
}

// IsPlaceholder reports whether a leaf value still needs user input.
// Uniform across the document: the fixed sentinel set, any REPLACE_*
// marker, a zero number, or nil.
func IsPlaceholder(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		s := strings.ToUpper(strings.TrimSpace(v))
		return placeholderValues[s] || strings.HasPrefix(s, "REPLACE")
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	}
	return false
}
