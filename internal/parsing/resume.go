// Package parsing extracts a structured resume record from plain text with a single LLM call.
package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-parser/internal/llm"
	"github.com/jonathan/resume-parser/internal/prompts"
	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/jonathan/resume-parser/internal/types"
)

const (
	promptFile      = "parsing.json"
	promptKey       = "resume-extraction"
	systemPromptKey = "resume-extraction-system"
)

// Options tunes an Extractor.
type Options struct {
	Tier      llm.ModelTier
	Timeout   time.Duration
	Retries   int
	RetryWait time.Duration
}

func (o *Options) defaults() {
	if o.Tier == "" {
		o.Tier = llm.TierStandard
	}
	if o.Timeout <= 0 {
		o.Timeout = 60 * time.Second
	}
	if o.Retries < 0 {
		o.Retries = 0
	}
	if o.Retries > 1 {
		o.Retries = 1
	}
	if o.RetryWait <= 0 {
		o.RetryWait = 2 * time.Second
	}
}

// Extractor turns resume text into an AIRecord.
type Extractor struct {
	client llm.Client
	opts   Options
}

// NewExtractor creates an Extractor over client.
func NewExtractor(client llm.Client, opts Options) *Extractor {
	opts.defaults()
	return &Extractor{client: client, opts: opts}
}

// NewGeminiExtractor creates a Gemini client configured with the resume parser system prompt.
func NewGeminiExtractor(ctx context.Context, apiKey string, opts Options) (*Extractor, error) {
	if apiKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}
	cfg := llm.DefaultGeminiConfig().WithSystemInstruction(prompts.MustGet(promptFile, systemPromptKey))
	client, err := llm.NewClient(ctx, cfg, apiKey)
	if err != nil {
		return nil, &APICallError{Message: "failed to create LLM client", Cause: err}
	}
	return NewExtractor(client, opts), nil
}

// Close releases the underlying client.
func (e *Extractor) Close() error {
	return e.client.Close()
}

// Parse asks the model for the structured record of text. Provider failures are retried at
// most once; malformed or schema-invalid output is a ParseError and is not retried.
func (e *Extractor) Parse(ctx context.Context, text string) (*types.AIRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "resume text is empty"}
	}

	prompt, err := prompts.Render(promptFile, promptKey, map[string]string{"ResumeText": text})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := e.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("tier", string(e.opts.Tier)).
		Dur("elapsed", time.Since(start)).
		Int("response_bytes", len(raw)).
		Msg("AI extraction response received")

	return decodeRecord(raw)
}

func (e *Extractor) generate(ctx context.Context, prompt string) (string, error) {
	var raw string
	op := func() error {
		callCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()

		resp, err := e.client.GenerateJSON(callCtx, prompt, e.opts.Tier)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(&APICallError{Message: "request cancelled", Cause: err})
			}
			return &APICallError{Message: "failed to generate content from LLM", Cause: err}
		}
		raw = resp
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(e.opts.RetryWait), uint64(e.opts.Retries)), ctx)
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("retry_in", wait).Msg("AI extraction failed, retrying")
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		var apiErr *APICallError
		if errors.As(err, &apiErr) {
			return "", apiErr
		}
		return "", &APICallError{Message: "request aborted", Cause: err}
	}
	return raw, nil
}

// decodeRecord cleans, validates and decodes a model response.
func decodeRecord(raw string) (*types.AIRecord, error) {
	cleaned := llm.CleanJSONBlock(raw)
	if cleaned == "" {
		return nil, &ParseError{Message: "empty response"}
	}
	if !json.Valid([]byte(cleaned)) {
		return nil, &ParseError{Message: "response is not valid JSON", Cause: errors.New(truncate(cleaned, 200))}
	}
	if err := schemas.Validate(schemas.AIRecord, []byte(cleaned)); err != nil {
		return nil, newParseError("response does not match the record schema", err)
	}

	record := types.NewAIRecord()
	if err := json.Unmarshal([]byte(cleaned), record); err != nil {
		return nil, newParseError("failed to decode record", err)
	}
	record.Skills = NormalizeSkills(record.Skills)
	return record, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
