// Package names derives a fallback candidate name when none could be extracted from the resume.
package names

import (
	"strings"
	"unicode"
)

// FromEmail derives a plausible name from the local part of an email address.
// Dots and underscores become spaces, other non-letters are dropped and whitespace is collapsed.
// It returns "" when email has no "@"; callers treat "" as no usable fallback.
func FromEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return ""
	}
	local := strings.NewReplacer(".", " ", "_", " ").Replace(email[:at])

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, local)
	return strings.Join(strings.Fields(cleaned), " ")
}

// FromEmails derives a name from the first address of a comma-separated list.
func FromEmails(emails string) string {
	first, _, _ := strings.Cut(emails, ",")
	return FromEmail(strings.TrimSpace(first))
}
