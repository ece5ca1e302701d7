// Package codes validates and classifies HSN/SAC classification codes.
// HSN codes identify goods (4, 6 or 8 digits); SAC codes identify
// services (4 or 6 digits, heading 99xx).
package codes

import (
	"strconv"
	"strings"

	"lekha/internal/domain"
)

// ValidateHSN reports whether code is a well-formed HSN code: purely
// numeric and 4, 6 or 8 digits after trimming. The original string is
// validated as entered; separators are not stripped first.
func ValidateHSN(code string) bool {
	code = strings.TrimSpace(code)
	if !isNumeric(code) {
		return false
	}
	return len(code) == 4 || len(code) == 6 || len(code) == 8
}

// ValidateSAC reports whether code is a well-formed SAC code: purely
// numeric and 4 or 6 digits after trimming.
func ValidateSAC(code string) bool {
	code = strings.TrimSpace(code)
	if !isNumeric(code) {
		return false
	}
	return len(code) == 4 || len(code) == 6
}

// Normalize prepares a code for comparison: trims, strips spaces,
// dashes and dots, and uppercases. Never used before the validators,
// which check the original string.
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	replacer := strings.NewReplacer(" ", "", "-", "", ".", "")
	return strings.ToUpper(replacer.Replace(code))
}

// Classify determines whether a code is HSN (goods) or SAC (services).
// Non-numeric codes and lengths other than 4, 6 or 8 are invalid; odd
// in-range lengths like 5 or 7 identify no real heading. Services sit
// under heading 99, so a two-digit prefix of 99 classifies as SAC;
// 8-digit codes are always HSN.
func Classify(code string) domain.CodeType {
	code = strings.TrimSpace(code)
	if !isNumeric(code) {
		return domain.CodeTypeInvalid
	}
	switch len(code) {
	case 8:
		return domain.CodeTypeHSN
	case 4, 6:
	default:
		return domain.CodeTypeInvalid
	}
	prefix, err := strconv.Atoi(code[:2])
	if err != nil {
		return domain.CodeTypeInvalid
	}
	if prefix >= 99 {
		return domain.CodeTypeSAC
	}
	return domain.CodeTypeHSN
}

// MatchPattern matches a code against a list of candidate patterns.
// An exact normalized match wins first; otherwise a prefix containment
// in either direction wins and the shorter of the two normalized
// strings is returned, so callers get the common root heading.
func MatchPattern(code string, patterns []string) (string, bool) {
	normalized := Normalize(code)
	if normalized == "" {
		return "", false
	}

	for _, p := range patterns {
		if Normalize(p) == normalized {
			return normalized, true
		}
	}

	for _, p := range patterns {
		np := Normalize(p)
		if np == "" {
			continue
		}
		if strings.HasPrefix(normalized, np) || strings.HasPrefix(np, normalized) {
			if len(np) < len(normalized) {
				return np, true
			}
			return normalized, true
		}
	}

	return "", false
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
