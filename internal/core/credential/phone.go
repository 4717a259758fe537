package credential

import (
	"strings"
	"unicode"
)

// countryCallingCode is the fixed prefix applied to every stored phone number.
const countryCallingCode = "+55"

// stripPhone removes every non-digit character from a raw phone input.
func stripPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidatePhone checks a raw phone input and returns every violated rule.
// Formatting characters (spaces, dashes, parentheses, a leading '+' or country
// code) are stripped before checking. Both checks are always evaluated.
func ValidatePhone(raw string) []string {
	var violations []string
	digits := stripPhone(raw)

	// Area code plus local number: 10 digits for landlines, 11 for mobiles.
	if len(digits) != 10 && len(digits) != 11 {
		violations = append(violations, "phone must have 10 or 11 digits (area code + number)")
	}

	// Redundant after stripping, kept as a defensive invariant.
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			violations = append(violations, "phone must contain digits only")
			break
		}
	}

	return violations
}

// CanonicalPhone returns the only phone form ever persisted: the fixed country
// calling code followed by the digit-only number. Callers canonicalize exactly
// once per raw input, at the point of persistence.
func CanonicalPhone(raw string) string {
	return countryCallingCode + stripPhone(raw)
}
