// Package types provides type definitions for structured data used throughout the resume-parser system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

const (
	// NotAvailable is the placeholder the AI extractor emits for any absent fact.
	NotAvailable = "n/a"
	// NotSpecified is the value used when a field could not be resolved by any source.
	NotSpecified = "Not specified"
	// DefaultLanguage is reported when no spoken language can be found or detected.
	DefaultLanguage = "English"
)

// placeholders holds the lowercased values treated as "no data" in list fields.
var placeholders = map[string]bool{
	"":                true,
	"n/a":             true,
	"na":              true,
	"n.a.":            true,
	"none":            true,
	"null":            true,
	"nil":             true,
	"-":               true,
	"not specified":   true,
	"not available":   true,
	"not applicable":  true,
	"not provided":    true,
	"no social media": true,
}

// ResumeRecord is the structured output of the pipeline for one document.
type ResumeRecord struct {
	Name                 string              `json:"name"`
	JobRole              string              `json:"job_role"`
	SocialMedia          []string            `json:"social_media"`
	SocialProfiles       map[string][]string `json:"social_profiles,omitempty"`
	Education            []Education         `json:"education"`
	TotalExperienceYears Years               `json:"total_experience_years"`
	Experience           []Experience        `json:"experience"`
	Skills               []string            `json:"skills"`
	Certifications       []string            `json:"certifications"`
	Email                string              `json:"email,omitempty"`
	Phone                string              `json:"phone,omitempty"`
	ExperienceLevel      string              `json:"experience_level"`
	RawText              string              `json:"raw_text"`
}

// Education is a single education entry.
type Education struct {
	Level         string `json:"level"`
	FieldOfStudy  string `json:"field_of_study"`
	Institution   string `json:"institution"`
	Grade         string `json:"grade"`
	DateCompleted string `json:"date_completed"`
}

// Experience is a single employer entry with the roles held there.
type Experience struct {
	Organization string   `json:"organization"`
	Roles        []string `json:"roles"`
}

// IsMissing reports whether s is empty or the n/a sentinel, ignoring case and surrounding space.
func IsMissing(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "" || v == NotAvailable
}

// IsPlaceholder reports whether s is a placeholder-like value such as "n/a", "none" or "-".
func IsPlaceholder(s string) bool {
	return placeholders[strings.ToLower(strings.TrimSpace(s))]
}

// IsMissingList reports whether xs is empty or consists only of placeholder entries.
func IsMissingList(xs []string) bool {
	for _, x := range xs {
		if !IsPlaceholder(x) {
			return false
		}
	}
	return true
}

// WithoutPlaceholders returns xs with placeholder entries removed. The result is never nil.
func WithoutPlaceholders(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if IsPlaceholder(x) {
			continue
		}
		out = append(out, strings.TrimSpace(x))
	}
	return out
}

// DedupeFold removes case-insensitive duplicates, keeping the first spelling seen.
func DedupeFold(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		key := strings.ToLower(strings.TrimSpace(x))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(x))
	}
	return out
}

// ContainsFold reports whether xs contains s, ignoring case and surrounding space.
func ContainsFold(xs []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, x := range xs {
		if strings.EqualFold(strings.TrimSpace(x), s) {
			return true
		}
	}
	return false
}
