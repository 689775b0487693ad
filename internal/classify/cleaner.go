package classify

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-parser/internal/stopwords"
)

// Cleaner prepares raw resume text for a vectorizer. It must match the preprocessing the
// model was trained with.
type Cleaner func(text string) string

var (
	expURLRe      = regexp.MustCompile(`(?m)http\S+|www\S+|https\S+`)
	expMentionRe  = regexp.MustCompile(`@\w+|#`)
	expNonWordRe  = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	resumeURLRe   = regexp.MustCompile(`http\S+\s*`)
	resumeRTccRe  = regexp.MustCompile(`RT|cc`)
	resumeHashRe  = regexp.MustCompile(`#\S+`)
	resumeMention = regexp.MustCompile(`@\S+`)
	nonASCIIRe    = regexp.MustCompile(`[^\x00-\x7f]`)
	spaceRunRe    = regexp.MustCompile(`\s+`)
	digitsRe      = regexp.MustCompile(`[0-9]+`)
)

// asciiPunctuation is the set of ASCII punctuation characters.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// CleanForExperience lowercases text, strips URLs, mentions, hashes and punctuation,
// and removes English stopwords.
func CleanForExperience(text string) string {
	text = strings.ToLower(text)
	text = expURLRe.ReplaceAllString(text, "")
	text = expMentionRe.ReplaceAllString(text, "")
	text = expNonWordRe.ReplaceAllString(text, "")
	text = stripPunctuation(text)
	return strings.Join(stopwords.Filter(strings.Fields(text)), " ")
}

// CleanResume strips URLs, "RT"/"cc" markers, hashtags, mentions, non-ASCII characters,
// punctuation and digits, then lowercases. The case-sensitive "cc" removal is part of the
// job-role model's training preprocessing and is kept as is.
func CleanResume(text string) string {
	text = resumeURLRe.ReplaceAllString(text, " ")
	text = resumeRTccRe.ReplaceAllString(text, " ")
	text = resumeHashRe.ReplaceAllString(text, " ")
	text = resumeMention.ReplaceAllString(text, " ")
	text = nonASCIIRe.ReplaceAllString(text, " ")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = stripPunctuation(text)
	text = digitsRe.ReplaceAllString(text, " ")
	return strings.ToLower(text)
}

func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, text)
}
