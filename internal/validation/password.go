package validation

import "unicode"

// HasSpecialChar reports whether the string contains at least one
// non-alphanumeric character.
func HasSpecialChar(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// ValidPassword enforces the minimum password policy.
func ValidPassword(s string) bool {
	return len(s) >= 8 && HasSpecialChar(s)
}
