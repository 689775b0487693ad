// Package languages finds spoken languages mentioned in a resume and identifies the language
// the resume itself is written in.
package languages

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-parser/internal/types"
)

//go:embed languages.txt
var defaultNames []byte

var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+(?:['’\-][\p{L}\p{N}_]+)*`)

// Detector identifies the language of a whole document.
type Detector interface {
	Detect(text string) (string, error)
}

// WhatlangDetector identifies languages with whatlanggo trigram profiles.
type WhatlangDetector struct{}

// Detect implements Detector. Empty text and unidentifiable text are errors.
func (WhatlangDetector) Detect(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("no text to detect")
	}
	name := whatlanggo.Detect(text).Lang.String()
	if name == "" {
		return "", errors.New("language could not be identified")
	}
	return name, nil
}

// Extractor matches a reference list of language names against resume text.
type Extractor struct {
	names    []string
	phrases  map[string]string
	maxWords int
	detector Detector
}

// New creates an Extractor for names. Duplicate names are dropped case-insensitively, keeping
// the first spelling. detector may be nil to disable detection.
func New(names []string, detector Detector) *Extractor {
	e := &Extractor{phrases: make(map[string]string), detector: detector}
	for _, name := range names {
		name = strings.TrimSpace(name)
		words := tokenize(name)
		if len(words) == 0 {
			continue
		}
		key := strings.Join(words, " ")
		if _, ok := e.phrases[key]; ok {
			continue
		}
		e.phrases[key] = name
		e.names = append(e.names, name)
		if len(words) > e.maxWords {
			e.maxWords = len(words)
		}
	}
	return e
}

// DefaultNames returns the built-in reference list.
func DefaultNames() []string {
	names, err := parseNames(bytes.NewReader(defaultNames))
	if err != nil {
		panic(fmt.Sprintf("embedded language list is invalid: %v", err))
	}
	return names
}

// Default creates an Extractor over the built-in reference list with whatlanggo detection.
func Default() *Extractor {
	return New(DefaultNames(), WhatlangDetector{})
}

// Names returns the reference list.
func (e *Extractor) Names() []string {
	return append([]string(nil), e.names...)
}

// LoadNames reads a reference list from a plain-text or CSV file. When the first row names a
// "Language" column that column is used, otherwise the first column.
func LoadNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open language list: %w", err)
	}
	defer func() { _ = f.Close() }()

	names, err := parseNames(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read language list %s: %w", path, err)
	}
	return names, nil
}

func parseNames(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("language list is empty")
	}

	col := 0
	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "language") {
			col = i
			rows = rows[1:]
			break
		}
	}

	var names []string
	for _, row := range rows {
		if col < len(row) {
			if name := strings.TrimSpace(row[col]); name != "" {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return nil, errors.New("language list has no names")
	}
	return names, nil
}

// Match returns the reference names that appear in text as whole words, in order of first
// occurrence.
func (e *Extractor) Match(text string) []string {
	tokens := tokenize(text)
	found := make([]string, 0)
	seen := make(map[string]bool)
	for i := range tokens {
		for n := 1; n <= e.maxWords && i+n <= len(tokens); n++ {
			name, ok := e.phrases[strings.Join(tokens[i:i+n], " ")]
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			found = append(found, name)
		}
	}
	return found
}

// Extract returns the languages named in text plus the detected language of the document
// when it is not already listed. The result is never empty; it falls back to English.
func (e *Extractor) Extract(text string) []string {
	found := e.Match(text)
	if e.detector != nil {
		detected, err := e.detector.Detect(text)
		switch {
		case err != nil:
			log.Debug().Err(err).Msg("language detection failed")
		case !types.ContainsFold(found, detected):
			found = append(found, detected)
		}
	}
	if len(found) == 0 {
		return []string{types.DefaultLanguage}
	}
	return found
}

func tokenize(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}
