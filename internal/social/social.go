// Package social extracts social media and portfolio links from resume text.
package social

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-parser/internal/contact"
)

// Platform names a social media site.
type Platform string

const (
	LinkedIn      Platform = "LinkedIn"
	GitHub        Platform = "GitHub"
	Twitter       Platform = "Twitter"
	Medium        Platform = "Medium"
	Portfolio     Platform = "Portfolio"
	Kaggle        Platform = "Kaggle"
	StackOverflow Platform = "StackOverflow"
	Behance       Platform = "Behance"
	Dribbble      Platform = "Dribbble"
)

// Platforms lists every platform in output order.
var Platforms = []Platform{LinkedIn, GitHub, Twitter, Medium, Portfolio, Kaggle, StackOverflow, Behance, Dribbble}

// Links maps a platform to its normalized URLs in first-seen order.
type Links map[Platform][]string

const (
	scheme = `(?:https?://)?(?:www\.)?`
	handle = `[a-zA-Z0-9\-_%]+`
	site   = `[a-zA-Z0-9][a-zA-Z0-9\-]*[a-zA-Z0-9]`
	path   = `(?:/[a-zA-Z0-9\-_%/]*)?`
)

// Every alternative carries exactly one capture group holding the link.
var platformPatterns = map[Platform]*regexp.Regexp{
	LinkedIn: compileBank(
		`(`+scheme+`linkedin\.com/in/`+handle+`)`,
		`(`+scheme+`linkedin\.com/profile/view\?id=`+handle+`)`,
	),
	GitHub:  compileBank(`(` + scheme + `github\.com/` + handle + `)`),
	Twitter: compileBank(`(` + scheme + `twitter\.com/` + handle + `)`),
	Medium: compileBank(
		`(`+scheme+`medium\.com/@`+handle+`)`,
		`(`+scheme+`medium\.com/`+handle+`)`,
	),
	Portfolio: compileBank(
		`(?:portfolio at|portfolio|personal site|website)(?:\s*:\s*|\s+)(`+scheme+site+`\.[a-zA-Z]{2,6}\b`+path+`)`,
		`(`+scheme+site+`\.(?:io|dev|me|com|net|org|co)\b`+path+`)`,
	),
	Kaggle:        compileBank(`(` + scheme + `kaggle\.com/` + handle + `)`),
	StackOverflow: compileBank(`(` + scheme + `stackoverflow\.com/users/` + handle + `)`),
	Behance:       compileBank(`(` + scheme + `behance\.net/` + handle + `)`),
	Dribbble:      compileBank(`(` + scheme + `dribbble\.com/` + handle + `)`),
}

// usernamePatterns recover a profile from a bare handle such as "linkedin: johndoe" or "Twitter @jdoe".
var usernamePatterns = []struct {
	platform Platform
	re       *regexp.Regexp
	base     string
}{
	{LinkedIn, regexp.MustCompile(`(?i)\blinkedin(?:\.com)?\s*(?::\s*@?|@|/in/)\s*([a-zA-Z0-9\-_]{3,30})\b`), "https://linkedin.com/in/"},
	{GitHub, regexp.MustCompile(`(?i)\bgithub(?:\.com)?\s*(?::\s*@?|@|/)\s*([a-zA-Z0-9\-_]{3,39})\b`), "https://github.com/"},
	{Twitter, regexp.MustCompile(`(?i)\btwitter(?:\.com)?\s*(?::\s*@?|@|/)\s*([a-zA-Z0-9\-_]{3,15})\b`), "https://twitter.com/"},
}

// genericHandles are words that follow a platform name in prose but are not usernames.
var genericHandles = map[string]bool{
	"profile": true, "account": true, "page": true, "handle": true,
	"username": true, "url": true, "link": true, "com": true,
}

// excludedPortfolioDomains belong to the named platforms or to common non-personal sites.
var excludedPortfolioDomains = []string{
	"github.com", "linkedin.com", "twitter.com", "medium.com",
	"kaggle.com", "stackoverflow.com", "behance.net", "dribbble.com",
	"facebook.com", "instagram.com", "youtube.com", "google.com",
	"asp.net", "ado.net", "vb.net",
}

var domainRe = regexp.MustCompile(`(?i)^https?://(?:www\.)?([^/]+)`)

func compileBank(patterns ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + strings.Join(patterns, "|"))
}

// Extract finds social links before the references section, grouped by platform.
func Extract(text string) Links {
	links := make(Links)
	if strings.TrimSpace(text) == "" {
		return links
	}
	text = contact.ReferenceCutoff(text)

	for _, platform := range Platforms {
		re := platformPatterns[platform]
		var found []string
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			start, end := firstGroup(m)
			if start < 0 {
				continue
			}
			if platform == Portfolio && partOfLargerToken(text, start, end) {
				continue
			}
			found = append(found, normalize(text[start:end]))
		}
		if platform == Portfolio {
			found = filterPortfolio(found)
		}
		if found = dedupe(found); len(found) > 0 {
			links[platform] = found
		}
	}

	for _, up := range usernamePatterns {
		if len(links[up.platform]) > 0 {
			continue
		}
		var found []string
		for _, m := range up.re.FindAllStringSubmatch(text, -1) {
			if genericHandles[strings.ToLower(m[1])] {
				continue
			}
			found = append(found, up.base+m[1])
		}
		if found = dedupe(found); len(found) > 0 {
			links[up.platform] = found
		}
	}
	return links
}

// Flatten lists every link in platform order without duplicates. The result is never nil.
func Flatten(links Links) []string {
	out := make([]string, 0)
	for _, platform := range Platforms {
		out = append(out, links[platform]...)
	}
	return dedupe(out)
}

// ByPlatform keys the links by platform name, skipping platforms without links.
func (l Links) ByPlatform() map[string][]string {
	out := make(map[string][]string, len(l))
	for _, platform := range Platforms {
		if urls := l[platform]; len(urls) > 0 {
			out[string(platform)] = append([]string(nil), urls...)
		}
	}
	return out
}

func firstGroup(m []int) (int, int) {
	for i := 2; i+1 < len(m); i += 2 {
		if m[i] >= 0 {
			return m[i], m[i+1]
		}
	}
	return -1, -1
}

// partOfLargerToken reports whether a bare-domain match belongs to an email address or a longer host name.
func partOfLargerToken(text string, start, end int) bool {
	if end < len(text) && text[end] == '@' {
		return true
	}
	if start == 0 {
		return false
	}
	prev := text[start-1]
	return prev == '@' || prev == '.' || prev == '/' || prev == '-' || prev == '_'
}

func normalize(link string) string {
	link = strings.TrimRight(link, "/")
	lower := strings.ToLower(link)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return link
	}
	return "https://" + link
}

func filterPortfolio(urls []string) []string {
	var out []string
	for _, u := range urls {
		m := domainRe.FindStringSubmatch(u)
		if m == nil || excludedDomain(strings.ToLower(m[1])) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func excludedDomain(domain string) bool {
	for _, d := range excludedPortfolioDomains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}

func dedupe(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if seen[x] {
			continue
		}
		seen[x] = true
		out = append(out, x)
	}
	return out
}
