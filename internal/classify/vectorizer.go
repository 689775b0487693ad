package classify

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
)

const sklearnTokenPattern = `(?u)\b\w\w+\b`

// defaultTokenRe is the unicode equivalent of sklearn's default token pattern.
var defaultTokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Vectorizer is a fitted TF-IDF transform exported as JSON.
type Vectorizer struct {
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf"`
	NGramRange   [2]int         `json:"ngram_range"`
	Lowercase    bool           `json:"lowercase"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Norm         string         `json:"norm"`
	StopWords    []string       `json:"stop_words,omitempty"`
	TokenPattern string         `json:"token_pattern,omitempty"`

	tokenRe   *regexp.Regexp
	stopWords map[string]bool
}

// DecodeVectorizer parses a vectorizer artifact. Missing settings take the scikit-learn
// defaults: unigrams, lowercasing and l2 normalization.
func DecodeVectorizer(data []byte) (*Vectorizer, error) {
	v := &Vectorizer{NGramRange: [2]int{1, 1}, Lowercase: true, Norm: "l2"}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("failed to decode vectorizer: %w", err)
	}
	if err := v.init(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vectorizer) init() error {
	if len(v.Vocabulary) == 0 {
		return fmt.Errorf("vectorizer vocabulary is empty")
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			return fmt.Errorf("vocabulary term %q has index %d outside idf of length %d", term, idx, len(v.IDF))
		}
	}
	if v.NGramRange[0] < 1 || v.NGramRange[1] < v.NGramRange[0] {
		return fmt.Errorf("invalid ngram range %v", v.NGramRange)
	}
	switch v.Norm {
	case "l1", "l2", "", "none":
	default:
		return fmt.Errorf("unsupported norm %q", v.Norm)
	}

	v.tokenRe = defaultTokenRe
	if v.TokenPattern != "" && v.TokenPattern != sklearnTokenPattern {
		re, err := regexp.Compile(strings.TrimPrefix(v.TokenPattern, "(?u)"))
		if err != nil {
			return fmt.Errorf("invalid token pattern: %w", err)
		}
		v.tokenRe = re
	}
	v.stopWords = make(map[string]bool, len(v.StopWords))
	for _, w := range v.StopWords {
		v.stopWords[w] = true
	}
	return nil
}

// Features returns the number of columns the vectorizer produces.
func (v *Vectorizer) Features() int {
	return len(v.IDF)
}

// Transform maps text to a sparse, normalized TF-IDF row keyed by feature index.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	if v.Lowercase {
		text = strings.ToLower(text)
	}
	var tokens []string
	for _, tok := range v.tokenRe.FindAllString(text, -1) {
		if !v.stopWords[tok] {
			tokens = append(tokens, tok)
		}
	}

	row := make(map[int]float64)
	for n := v.NGramRange[0]; n <= v.NGramRange[1]; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			if idx, ok := v.Vocabulary[strings.Join(tokens[i:i+n], " ")]; ok {
				row[idx]++
			}
		}
	}

	for idx, tf := range row {
		if v.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		row[idx] = tf * v.IDF[idx]
	}
	normalize(row, v.Norm)
	return row
}

func normalize(row map[int]float64, norm string) {
	var total float64
	switch norm {
	case "l2":
		for _, x := range row {
			total += x * x
		}
		total = math.Sqrt(total)
	case "l1":
		for _, x := range row {
			total += math.Abs(x)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for idx := range row {
		row[idx] /= total
	}
}
