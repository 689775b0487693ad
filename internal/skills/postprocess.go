package skills

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-parser/internal/stopwords"
)

const unwantedChars = `\/()[]{}<>|`

var (
	nerEmailRe  = regexp.MustCompile(`\S+@\S+`)
	nerURLRe    = regexp.MustCompile(`(?i)(?:https?://|www\.)\S*`)
	nerDomainRe = regexp.MustCompile(`(?i)\b[a-z0-9\-]+\.(?:com|org|net|io|dev|co|edu|gov|me|info|ke|uk)\b(?:/\S*)?`)
	nerSpaceRe  = regexp.MustCompile(`\s+`)
)

// PostProcess cleans raw NER phrases: it lowercases and trims them, removes emails, URLs and
// domain fragments, collapses immediately repeated words ("node.js node.js" becomes "node.js"),
// and drops short, numeric, stopword-only or bracket-bearing items. Order is preserved and
// duplicates are removed.
func PostProcess(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, item := range items {
		skill := strings.ToLower(strings.TrimSpace(item))
		skill = nerEmailRe.ReplaceAllString(skill, " ")
		skill = nerURLRe.ReplaceAllString(skill, " ")
		skill = nerDomainRe.ReplaceAllStringFunc(skill, func(m string) string {
			if knownDotted(m) {
				return m
			}
			return " "
		})
		skill = collapseRepeats(nerSpaceRe.ReplaceAllString(skill, " "))
		skill = strings.Trim(skill, " ,;:-")

		if len([]rune(skill)) < 2 {
			continue
		}
		if strings.ContainsAny(skill, unwantedChars) {
			continue
		}
		if isNumeric(skill) {
			continue
		}
		if stopwords.OnlyStopwords(skill) {
			continue
		}
		if seen[skill] {
			continue
		}
		seen[skill] = true
		out = append(out, skill)
	}
	return out
}

// knownDotted keeps skill names such as "node.js" or "asp.net" from being read as domains.
func knownDotted(skill string) bool {
	switch skill {
	case "asp.net", "ado.net", "vb.net", "node.js", "vue.js", "next.js", "react.js", "express.js":
		return true
	}
	return false
}

func collapseRepeats(s string) string {
	words := strings.Fields(s)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(out) > 0 && out[len(out)-1] == w {
			continue
		}
		out = append(out, w)
	}
	// "machine learning machine learning" repeats a multi-word phrase
	for len(out) >= 2 && len(out)%2 == 0 {
		half := len(out) / 2
		if strings.Join(out[:half], " ") != strings.Join(out[half:], " ") {
			break
		}
		out = out[:half]
	}
	return strings.Join(out, " ")
}

func isNumeric(s string) bool {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '.' && r != ',' {
			return false
		}
	}
	return true
}
