// Package textnorm provides the deterministic text normalization shared by
// the field matchers. Every function is pure and idempotent; which
// punctuation survives is decided by the caller, since different matchers
// need different characters (date separators, slashes, commas).
package textnorm

import (
	"strings"
	"unicode"
)

// Fold lowercases s, turns newlines into spaces and collapses runs of
// whitespace into a single space.
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Keep lowercases s and replaces every rune outside the allow-list with a
// space, then collapses whitespace. Letters and digits are always kept;
// extra lists the punctuation that survives.
func Keep(s string, extra string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case strings.ContainsRune(extra, r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// DigitsOnly strips everything but decimal digits. Used for the
// punctuation-insensitive company-number comparison.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AlphaNumOnly lowercases s and strips every rune that is not a letter or
// digit, spaces included. The lease matcher compares these forms for exact
// equality.
func AlphaNumOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Address normalizes an address line for containment tests: lowercase, keep
// letters, digits, spaces and commas, then turn commas into spaces and
// collapse whitespace.
func Address(s string) string {
	kept := Keep(s, ",")
	kept = strings.ReplaceAll(kept, ",", " ")
	return strings.Join(strings.Fields(kept), " ")
}
