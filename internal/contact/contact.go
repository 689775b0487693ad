// Package contact extracts the candidate's own email addresses and phone numbers from resume text.
package contact

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 18
	// phone candidates: a leading digit followed by 5 to 17 characters of digits, dashes,
	// whitespace and parentheses
	minPhoneTail = 5
	maxPhoneTail = 17
	minYear      = 1960
	maxYear      = 2025
)

var (
	referencesRe = regexp.MustCompile(`(?i)referees|references?`)
	emailRe      = regexp.MustCompile(`[A-Za-z0-9_.+\-]+@[A-Za-z0-9\-]+(?:\.[A-Za-z0-9\-]+)+`)
	longSpaceRe  = regexp.MustCompile(`\s{3,}`)
)

// ReferenceCutoff returns the part of text before the first "references", "referees" or
// "reference" heading (case-insensitive). Referees' contact details follow that heading and
// must not be mistaken for the candidate's own.
func ReferenceCutoff(text string) string {
	if loc := referencesRe.FindStringIndex(text); loc != nil {
		return text[:loc[0]]
	}
	return text
}

// AllEmails returns the distinct email addresses before the references section in first-seen order.
func AllEmails(text string) []string {
	text = ReferenceCutoff(text)
	seen := make(map[string]bool)
	var out []string
	for _, loc := range emailRe.FindAllStringIndex(text, -1) {
		if embedded(text, loc[0], loc[1]) {
			continue
		}
		email := strings.TrimLeft(text[loc[0]:loc[1]], ".-")
		if !validDomain(email) {
			continue
		}
		key := strings.ToLower(email)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, email)
	}
	return out
}

// Emails returns the distinct email addresses comma-joined, or "" when none are found.
func Emails(text string) string {
	return strings.Join(AllEmails(text), ", ")
}

// embedded reports whether the match at text[start:end] is part of a longer word or address.
func embedded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if r == '@' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if r == '@' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// validDomain requires a top-level domain of at least two characters containing a letter.
func validDomain(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at <= 0 {
		return false
	}
	domain := email[at+1:]
	tld := domain[strings.LastIndexByte(domain, '.')+1:]
	if len(tld) < 2 {
		return false
	}
	return strings.IndexFunc(tld, unicode.IsLetter) >= 0
}

// FirstPhone returns the first valid phone number before the references section, or "".
func FirstPhone(text string) string {
	for _, candidate := range phoneCandidates(ReferenceCutoff(text)) {
		if validPhone(candidate) {
			return candidate
		}
	}
	return ""
}

// AllPhones returns every valid phone number before the references section.
func AllPhones(text string) []string {
	var out []string
	for _, candidate := range phoneCandidates(ReferenceCutoff(text)) {
		if validPhone(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// Phones returns all valid phone numbers joined with ", ", or "" when none are found.
func Phones(text string) string {
	return strings.Join(AllPhones(text), ", ")
}

// phoneCandidates scans for non-overlapping phone-like tokens. A token is an optional
// "+" or "(" prefix, a digit, then 5 to 17 characters of digits, dashes, whitespace or
// parentheses. It must not be preceded or followed by a digit; the tail is matched greedily
// and shortened until the following character is not a digit.
func phoneCandidates(text string) []string {
	rs := []rune(text)
	var out []string
	for i := 0; i < len(rs); {
		if i > 0 && isDigit(rs[i-1]) {
			i++
			continue
		}
		end := matchPhoneAt(rs, i)
		if end < 0 {
			i++
			continue
		}
		out = append(out, strings.TrimSpace(string(rs[i:end])))
		i = end
	}
	return out
}

func matchPhoneAt(rs []rune, start int) int {
	for _, withPrefix := range []bool{true, false} {
		p := start
		if withPrefix {
			if rs[p] != '+' && rs[p] != '(' {
				continue
			}
			p++
		}
		if p >= len(rs) || !isDigit(rs[p]) {
			continue
		}
		p++

		n := 0
		for p+n < len(rs) && n < maxPhoneTail && isPhoneRune(rs[p+n]) {
			n++
		}
		for ; n >= minPhoneTail; n-- {
			end := p + n
			if end < len(rs) && isDigit(rs[end]) {
				continue
			}
			return end
		}
	}
	return -1
}

// validPhone applies the post-match rules that separate phone numbers from dates and prose.
func validPhone(number string) bool {
	digits := 0
	for _, r := range number {
		if isDigit(r) {
			digits++
		}
	}
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return false
	}

	if strings.HasPrefix(number, "(") {
		closing := strings.IndexRune(number, ')')
		if closing < 2 || closing > 4 {
			return false
		}
	}

	if longSpaceRe.MatchString(number) {
		return false
	}

	parts := strings.FieldsFunc(number, func(r rune) bool {
		return r == '-' || unicode.IsSpace(r)
	})
	for _, part := range parts {
		if isYear(part) {
			return false
		}
	}
	return true
}

func isYear(part string) bool {
	if len(part) != 4 {
		return false
	}
	for _, r := range part {
		if !isDigit(r) {
			return false
		}
	}
	year, err := strconv.Atoi(part)
	if err != nil {
		return false
	}
	return year >= minYear && year <= maxYear
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isPhoneRune(r rune) bool {
	return isDigit(r) || r == '-' || r == '(' || r == ')' || unicode.IsSpace(r)
}
