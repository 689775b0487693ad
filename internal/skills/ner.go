package skills

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	tagBeginSkill  = "B-SKILL"
	tagInsideSkill = "I-SKILL"
	groupSkill     = "SKILL"
)

// NER tags skill phrases in free text.
type NER interface {
	Tag(ctx context.Context, text string) ([]string, error)
}

// Entity is one item of a token-classification response. Aggregated responses carry
// EntityGroup; token-level responses carry a BIO tag in Entity.
type Entity struct {
	Entity      string  `json:"entity,omitempty"`
	EntityGroup string  `json:"entity_group,omitempty"`
	Word        string  `json:"word"`
	Score       float64 `json:"score"`
	Start       *int    `json:"start,omitempty"`
	End         *int    `json:"end,omitempty"`
}

// HTTPTagger calls a token-classification inference endpoint that accepts {"inputs": text}
// and answers with a JSON array of entities.
type HTTPTagger struct {
	Endpoint string
	Token    string
	Client   *http.Client
}

// NewHTTPTagger creates a tagger for endpoint with the given request timeout.
func NewHTTPTagger(endpoint, token string, timeout time.Duration) *HTTPTagger {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPTagger{
		Endpoint: endpoint,
		Token:    token,
		Client:   &http.Client{Timeout: timeout},
	}
}

// Tag implements NER. It returns raw skill phrases; callers apply PostProcess.
func (h *HTTPTagger) Tag(ctx context.Context, text string) ([]string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	body, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("failed to encode NER request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create NER request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.Token != "" {
		req.Header.Set("Authorization", "Bearer "+h.Token)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NER request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read NER response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NER endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var entities []Entity
	if err := json.Unmarshal(payload, &entities); err != nil {
		return nil, fmt.Errorf("failed to decode NER response: %w", err)
	}
	return MergeEntities(text, entities), nil
}

// MergeEntities joins BIO-tagged pieces into skill phrases. A B-SKILL piece starts a new
// phrase, I-SKILL pieces extend the current one, and "##" word-piece continuations attach
// without a space. Aggregated SKILL groups are taken whole. When character offsets are
// present the phrase is cut from text so original spacing survives tokenization.
func MergeEntities(text string, entities []Entity) []string {
	var (
		phrases []string
		current []string
		start   = -1
		end     = -1
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		phrase := strings.Join(current, "")
		if start >= 0 && end > start && end <= len(text) {
			phrase = text[start:end]
		}
		phrases = append(phrases, strings.TrimSpace(phrase))
		current, start, end = nil, -1, -1
	}
	appendPiece := func(e Entity, continuation bool) {
		word := e.Word
		if strings.HasPrefix(word, "##") {
			word = strings.TrimPrefix(word, "##")
		} else if continuation {
			word = " " + word
		}
		current = append(current, word)
		if e.Start != nil && e.End != nil {
			if start < 0 {
				start = *e.Start
			}
			end = *e.End
		} else {
			start, end = -1, -1
		}
	}

	for _, e := range entities {
		switch {
		case strings.EqualFold(e.EntityGroup, groupSkill):
			flush()
			appendPiece(e, false)
			flush()
		case e.Entity == tagBeginSkill:
			if strings.HasPrefix(e.Word, "##") && len(current) > 0 {
				appendPiece(e, true)
				continue
			}
			flush()
			appendPiece(e, false)
		case e.Entity == tagInsideSkill:
			if len(current) > 0 {
				appendPiece(e, true)
			}
		default:
			flush()
		}
	}
	flush()
	return phrases
}
