// Package education finds education levels, institutions and fields of study in resume text by
// matching embedded reference lists.
package education

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

//go:embed education.csv
var defaultReference []byte

// Reference list columns.
const (
	ColumnLevels       = "Education Levels"
	ColumnInstitutions = "Institutions"
	ColumnFields       = "Field of Study"
)

var (
	wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+(?:['’\-&][\p{L}\p{N}_]+)*`)

	headerRe = regexp.MustCompile(`(?im)^[ \t]*(?:education|educational school|educational background|academics?|academic background|academic qualifications)\b[ \t]*[:|\-]?[ \t]*$`)
	nextRe   = regexp.MustCompile(`(?im)^[ \t]*(?:experience|skills|projects?|certifications|work|work experience|awards|achievements|activities|accomplishments|strengths|other|other qualifications|professional qualifications|professional experience|professional background)\b[ \t]*[:|\-]?[ \t]*$`)
)

// contextExclusions drops field-of-study matches when the resume mentions a phrase that makes
// them ambiguous, such as "engineering" inside "feature engineering".
var contextExclusions = map[string][]string{
	"feature engineering": {"feature engineering", "engineering"},
	"agriculture":         {"agriculture"},
}

var (
	fieldExclusions = map[string]bool{"feature engineering": true, "engineering": true, "agriculture": true}
	levelExclusions = map[string]bool{"vocational": true}
)

// Reference holds the three phrase lists.
type Reference struct {
	Levels       []string
	Institutions []string
	Fields       []string
}

// Matches is the lowercased phrases found in a resume, each list in order of first occurrence.
type Matches struct {
	Levels       []string `json:"education_levels"`
	Institutions []string `json:"institutions"`
	Fields       []string `json:"field_of_study"`
}

// Empty reports whether nothing was found.
func (m Matches) Empty() bool {
	return len(m.Levels) == 0 && len(m.Institutions) == 0 && len(m.Fields) == 0
}

type phraseSet struct {
	phrases  map[string]bool
	maxWords int
}

func newPhraseSet(list []string) phraseSet {
	s := phraseSet{phrases: make(map[string]bool)}
	for _, p := range list {
		words := tokenize(p)
		if len(words) == 0 {
			continue
		}
		s.phrases[strings.Join(words, " ")] = true
		if len(words) > s.maxWords {
			s.maxWords = len(words)
		}
	}
	return s
}

// match returns every phrase of s found in tokens, in order of first occurrence.
func (s phraseSet) match(tokens []string) []string {
	var found []string
	seen := make(map[string]bool)
	for i := range tokens {
		for n := 1; n <= s.maxWords && i+n <= len(tokens); n++ {
			key := strings.Join(tokens[i:i+n], " ")
			if !s.phrases[key] || seen[key] {
				continue
			}
			seen[key] = true
			found = append(found, key)
		}
	}
	return found
}

// Extractor matches a Reference against resume text.
type Extractor struct {
	levels       phraseSet
	institutions phraseSet
	fields       phraseSet
}

// New creates an Extractor for ref.
func New(ref Reference) *Extractor {
	return &Extractor{
		levels:       newPhraseSet(ref.Levels),
		institutions: newPhraseSet(ref.Institutions),
		fields:       newPhraseSet(ref.Fields),
	}
}

// DefaultReference returns the built-in reference lists.
func DefaultReference() Reference {
	ref, err := parseReference(bytes.NewReader(defaultReference))
	if err != nil {
		panic(fmt.Sprintf("embedded education reference is invalid: %v", err))
	}
	return ref
}

// Default creates an Extractor over the built-in reference lists.
func Default() *Extractor {
	return New(DefaultReference())
}

// LoadReference reads a CSV file whose header names the "Education Levels", "Institutions"
// and "Field of Study" columns. Empty cells are skipped and missing columns stay empty.
func LoadReference(path string) (Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return Reference{}, fmt.Errorf("failed to open education reference: %w", err)
	}
	defer func() { _ = f.Close() }()

	ref, err := parseReference(f)
	if err != nil {
		return Reference{}, fmt.Errorf("failed to read education reference %s: %w", path, err)
	}
	return ref, nil
}

func parseReference(r io.Reader) (Reference, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return Reference{}, err
	}
	if len(rows) < 2 {
		return Reference{}, errors.New("education reference has no rows")
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		cols[strings.ToLower(h)] = i
	}
	column := func(name string) []string {
		i, ok := cols[strings.ToLower(name)]
		if !ok {
			return nil
		}
		var out []string
		for _, row := range rows[1:] {
			if i < len(row) {
				if v := strings.TrimSpace(row[i]); v != "" {
					out = append(out, v)
				}
			}
		}
		return out
	}

	ref := Reference{
		Levels:       column(ColumnLevels),
		Institutions: column(ColumnInstitutions),
		Fields:       column(ColumnFields),
	}
	if len(ref.Levels)+len(ref.Institutions)+len(ref.Fields) == 0 {
		return Reference{}, fmt.Errorf("education reference has none of the columns %q, %q, %q", ColumnLevels, ColumnInstitutions, ColumnFields)
	}
	return ref, nil
}

// Extract returns the reference phrases found in text. Excluded and ambiguous matches are
// dropped, and a phrase contained in a longer match of the same kind is removed.
func (e *Extractor) Extract(text string) Matches {
	tokens := tokenize(text)
	lowered := strings.ToLower(text)

	excluded := make(map[string]bool)
	for phrase, drops := range contextExclusions {
		if strings.Contains(lowered, phrase) {
			for _, d := range drops {
				excluded[d] = true
			}
		}
	}

	var levels, fields []string
	for _, l := range e.levels.match(tokens) {
		if !levelExclusions[l] {
			levels = append(levels, l)
		}
	}
	for _, f := range e.fields.match(tokens) {
		if !excluded[f] && !fieldExclusions[f] {
			fields = append(fields, f)
		}
	}

	return Matches{
		Levels:       removeNested(levels),
		Institutions: removeNested(e.institutions.match(tokens)),
		Fields:       removeNested(fields),
	}
}

// removeNested drops phrases that are substrings of another phrase in the list, keeping the
// original order of the survivors.
func removeNested(phrases []string) []string {
	byLength := append([]string(nil), phrases...)
	sort.SliceStable(byLength, func(i, j int) bool { return len(byLength[i]) > len(byLength[j]) })

	keep := make(map[string]bool)
	var kept []string
	for _, p := range byLength {
		nested := false
		for _, k := range kept {
			if strings.Contains(k, p) {
				nested = true
				break
			}
		}
		if !nested {
			keep[p] = true
			kept = append(kept, p)
		}
	}

	out := make([]string, 0, len(kept))
	for _, p := range phrases {
		if keep[p] {
			out = append(out, p)
		}
	}
	return out
}

// Section returns the text under an education heading, up to the next common section heading.
// It returns "" when the resume has no education heading.
func Section(text string) string {
	loc := headerRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	content := text[loc[1]:]
	if next := nextRe.FindStringIndex(content); next != nil {
		content = content[:next[0]]
	}
	return strings.TrimSpace(content)
}

// Entries returns education records for text. Matching is limited to the education section
// when the resume has one. Levels, fields and institutions are paired by position; unmatched
// positions and the grade and completion date are n/a.
func (e *Extractor) Entries(text string) []types.Education {
	scope := Section(text)
	if scope == "" {
		scope = text
	}
	m := e.Extract(scope)

	n := max(len(m.Levels), len(m.Fields), len(m.Institutions))
	out := make([]types.Education, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, types.Education{
			Level:         at(m.Levels, i),
			FieldOfStudy:  at(m.Fields, i),
			Institution:   at(m.Institutions, i),
			Grade:         types.NotAvailable,
			DateCompleted: types.NotAvailable,
		})
	}
	return out
}

func at(xs []string, i int) string {
	if i < len(xs) {
		return xs[i]
	}
	return types.NotAvailable
}

func tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}
