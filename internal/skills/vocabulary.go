// Package skills finds skills in resume text by vocabulary phrase matching, with an optional
// named-entity-recognition escalation for resumes phrased outside the vocabulary.
package skills

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// maxPhraseTokens is the longest vocabulary phrase, in tokens, that can be matched.
const maxPhraseTokens = 3

var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_][\p{L}\p{N}_\-+.#]*`)

// Vocabulary is a case-normalized set of skill phrases.
type Vocabulary struct {
	// terms maps the token key of a phrase to its canonical spelling.
	terms map[string]string
	// category maps a canonical skill to its category table, when it has one.
	category map[string]string
}

// NewVocabulary builds a vocabulary from the given phrases plus the built-in catalogue.
func NewVocabulary(extra []string) *Vocabulary {
	v := &Vocabulary{
		terms:    make(map[string]string),
		category: make(map[string]string),
	}
	for _, s := range extra {
		v.Add(s)
	}
	for _, s := range diverseSkills {
		v.Add(s)
	}
	for _, table := range categorizedSkills {
		for _, s := range table.skills {
			canonical := v.Add(s)
			if _, ok := v.category[canonical]; !ok && canonical != "" {
				v.category[canonical] = table.category
			}
		}
	}
	return v
}

// DefaultVocabulary returns the built-in catalogue without a base dataset.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(nil)
}

// LoadVocabulary builds a vocabulary whose base skills are the column headers of the CSV
// dataset at path, merged with the built-in catalogue.
func LoadVocabulary(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open skills dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	header, err := readHeader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills dataset %s: %w", path, err)
	}
	return NewVocabulary(header), nil
}

func readHeader(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset is empty")
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header, nil
}

// Add inserts a skill phrase and returns its canonical (lowercased, trimmed) spelling.
// Phrases longer than three tokens or without any token are ignored.
func (v *Vocabulary) Add(skill string) string {
	canonical := strings.ToLower(strings.TrimSpace(skill))
	tokens := tokenize(canonical)
	if len(tokens) == 0 || len(tokens) > maxPhraseTokens {
		return ""
	}
	key := strings.Join(tokens, " ")
	if existing, ok := v.terms[key]; ok {
		return existing
	}
	v.terms[key] = canonical
	return canonical
}

// Len returns the number of distinct phrases.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Contains reports whether skill is in the vocabulary.
func (v *Vocabulary) Contains(skill string) bool {
	_, ok := v.terms[strings.Join(tokenize(strings.ToLower(skill)), " ")]
	return ok
}

// Category returns the category table of a skill, or "" when it is uncategorized.
func (v *Vocabulary) Category(skill string) string {
	return v.category[strings.ToLower(strings.TrimSpace(skill))]
}

// Categorize groups skills by category; uncategorized skills are grouped under "Other".
func (v *Vocabulary) Categorize(skills []string) map[string][]string {
	out := make(map[string][]string)
	for _, s := range skills {
		cat := v.Category(s)
		if cat == "" {
			cat = "Other"
		}
		out[cat] = append(out[cat], s)
	}
	return out
}

// tokenize splits lowercased text into word-ish tokens of letters, digits and "-+.#",
// dropping trailing sentence punctuation.
func tokenize(text string) []string {
	raw := tokenRe.FindAllString(text, -1)
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		tok = strings.TrimRight(tok, ".-")
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
