// Package credential implements the shared credential policy: password rules,
// phone canonicalization, and password hashing. Both account kinds go through
// the same functions.
package credential

import "unicode"

const minPasswordLength = 8

// ValidatePassword checks a candidate password against the policy and returns
// every violated rule, in evaluation order: length first, then the combined
// character-composition rule. An empty slice means the password passes. The
// checks do not short-circuit so the caller can report all violations at once.
func ValidatePassword(password string) []string {
	var violations []string

	if len(password) < minPasswordLength {
		violations = append(violations, "password must be at least 8 characters long")
	}

	var lower, upper, digit, symbol int
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower++
		case unicode.IsUpper(r):
			upper++
		case unicode.IsDigit(r):
			digit++
		default:
			symbol++
		}
	}

	if lower == 0 || upper == 0 || digit == 0 || symbol == 0 {
		violations = append(violations, "password must contain lowercase letters, uppercase letters, digits and symbols")
	}

	return violations
}
