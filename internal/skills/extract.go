package skills

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// minDictionarySkills is the dictionary result size below which NER escalation is attempted.
const minDictionarySkills = 2

// Extract returns the vocabulary skills found in text as unigrams, bigrams or trigrams of
// its tokens, in order of first occurrence. There is no partial or fuzzy matching.
func Extract(text string, vocab *Vocabulary) []string {
	matched := make([]string, 0)
	if vocab == nil {
		return matched
	}
	tokens := tokenize(strings.ToLower(text))
	seen := make(map[string]bool)
	for i := range tokens {
		for n := 1; n <= maxPhraseTokens && i+n <= len(tokens); n++ {
			key := strings.Join(tokens[i:i+n], " ")
			canonical, ok := vocab.terms[key]
			if !ok || seen[canonical] {
				continue
			}
			seen[canonical] = true
			matched = append(matched, canonical)
		}
	}
	return matched
}

// Extractor runs dictionary matching and escalates to an NER tagger when the dictionary
// finds fewer than two skills.
type Extractor struct {
	Vocab *Vocabulary
	NER   NER
}

// NewExtractor creates an Extractor. ner may be nil to disable escalation.
func NewExtractor(vocab *Vocabulary, ner NER) *Extractor {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	return &Extractor{Vocab: vocab, NER: ner}
}

// Extract returns the skills in text. When escalation fails the dictionary result is
// returned together with the tagger error.
func (e *Extractor) Extract(ctx context.Context, text string) ([]string, error) {
	found := Extract(text, e.Vocab)
	if len(found) >= minDictionarySkills || e.NER == nil {
		return found, nil
	}

	log.Debug().Int("dictionary_skills", len(found)).Msg("escalating skill extraction to NER")
	entities, err := e.NER.Tag(ctx, text)
	if err != nil {
		return found, err
	}
	merged := append(found, PostProcess(entities)...)
	return dedupe(merged), nil
}

func dedupe(xs []string) []string {
	seen := make(map[string]bool, len(xs))
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		key := strings.ToLower(x)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, x)
	}
	return out
}
