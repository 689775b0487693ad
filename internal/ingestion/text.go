package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpaceRe     = regexp.MustCompile(`[ \t]+`)
	lineSpaceRe      = regexp.MustCompile(`\s+`)
	excessBlankRe    = regexp.MustCompile(`\n\n\n+`)
	escapedNewlineRe = strings.NewReplacer(`\r\n`, "\n", `\n`, "\n", `\t`, "\t", `\r`, "\n")
)

// Normalize removes lines that are empty after trimming and joins the rest with newlines.
// Kept lines are right-trimmed; the function is total and returns "" for empty input.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	raw = normalizeLineEndings(raw)
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return strings.Join(kept, "\n")
}

// PreprocessForAI prepares normalized text for the AI extractor: it unescapes literal
// \n, \t and \r sequences left by some extraction backends, collapses runs of spaces,
// and reduces two or more blank lines to exactly one.
func PreprocessForAI(text string) string {
	if text == "" {
		return ""
	}
	text = escapedNewlineRe.Replace(text)
	text = normalizeLineEndings(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = multiSpaceRe.ReplaceAllString(line, " ")
		lines[i] = strings.TrimRight(line, " ")
	}
	text = strings.Join(lines, "\n")
	text = excessBlankRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// CleanText cleans plain-text uploads while preserving structure: line endings are
// normalized, lines are stripped, and runs of three or more newlines are collapsed.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = normalizeLineEndings(content)
	lines := strings.Split(content, "\n")

	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

// cleanLine strips a single line and normalizes inner whitespace.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	return lineSpaceRe.ReplaceAllString(trimmed, " ")
}

// removeExcessiveBlankLines reduces consecutive blank lines to at most one.
func removeExcessiveBlankLines(content string) string {
	return excessBlankRe.ReplaceAllString(content, "\n\n")
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
