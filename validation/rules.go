// Package validation holds the pure validation and normalization rules for
// intake submissions. Same input always produces the same verdict; no I/O.
package validation

import (
	"regexp"
	"strings"
)

// FieldErrors maps a submitted field name to a human-readable problem. An empty
// map means the payload passed.
type FieldErrors map[string]string

// emailPattern is a conservative local@domain.tld check. Anything fancier is the
// mail provider's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PhoneRule decides whether a phone number (digits only) is acceptable. Kept
// pluggable because digit counts are locale-specific.
type PhoneRule func(digits string) bool

// BrazilPhoneRule accepts 10 digits (landline) or 11 (mobile with the leading 9).
func BrazilPhoneRule(digits string) bool {
	return len(digits) >= 10 && len(digits) <= 11
}

// ValidEmail reports whether the value matches the basic email shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// DigitsOnly strips everything that is not an ASCII digit, so formatted numbers
// like "(21) 91234-5678" validate on their digit count alone.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeEmail trims and lowercases an email address. Uniqueness in storage is
// enforced on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
