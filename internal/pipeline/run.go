// Package pipeline runs one resume document from raw bytes to a resolved record.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jonathan/resume-parser/internal/ingestion"
	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/jonathan/resume-parser/internal/types"
)

var tracer = otel.Tracer("github.com/jonathan/resume-parser/internal/pipeline")

// Pipeline stages reported to the progress callback.
const (
	StageExtract  = "extract"
	StageResolve  = "resolve"
	StageValidate = "validate"
	StageDone     = "done"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// DocumentExtractor turns an uploaded file into normalized text.
type DocumentExtractor interface {
	ExtractFile(ctx context.Context, path string) (*ingestion.Document, error)
	ExtractBytes(ctx context.Context, filename string, data []byte) (*ingestion.Document, error)
}

// Resolver builds a record from resume text.
type Resolver interface {
	Resolve(ctx context.Context, text string) (*types.ResumeRecord, error)
}

// Pipeline processes one document at a time. It is safe for concurrent use when its
// extractor and resolver are.
type Pipeline struct {
	Extractor      DocumentExtractor
	Resolver       Resolver
	OnProgress     ProgressCallback
	ValidateOutput bool
}

// New creates a Pipeline.
func New(extractor DocumentExtractor, resolver Resolver) *Pipeline {
	return &Pipeline{Extractor: extractor, Resolver: resolver}
}

// OutputError reports a record that does not match the output schema.
type OutputError struct {
	Cause error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("record failed output validation: %v", e.Cause)
}

func (e *OutputError) Unwrap() error {
	return e.Cause
}

// ProcessFile extracts and resolves the document at path.
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*types.ResumeRecord, error) {
	ctx, span := tracer.Start(ctx, "pipeline.file")
	defer span.End()
	span.SetAttributes(attribute.String("file", filepath.Base(path)))

	p.emit(StageExtract, fmt.Sprintf("Extracting text from %s", filepath.Base(path)), nil)
	doc, err := p.Extractor.ExtractFile(ctx, path)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return p.process(ctx, filepath.Base(path), doc)
}

// ProcessBytes extracts and resolves a document held in memory. filename selects the format.
func (p *Pipeline) ProcessBytes(ctx context.Context, filename string, data []byte) (*types.ResumeRecord, error) {
	ctx, span := tracer.Start(ctx, "pipeline.bytes")
	defer span.End()
	span.SetAttributes(attribute.String("file", filename), attribute.Int("bytes", len(data)))

	p.emit(StageExtract, fmt.Sprintf("Extracting text from %s", filename), nil)
	doc, err := p.Extractor.ExtractBytes(ctx, filename, data)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return p.process(ctx, filename, doc)
}

func (p *Pipeline) process(ctx context.Context, filename string, doc *ingestion.Document) (*types.ResumeRecord, error) {
	log.Ctx(ctx).Debug().
		Str("file", filename).
		Str("format", string(doc.Format)).
		Int("chars", len(doc.Text)).
		Msg("document extracted")

	p.emit(StageResolve, fmt.Sprintf("Resolving fields for %d characters of text", len(doc.Text)), nil)
	rec, err := p.Resolver.Resolve(ctx, doc.Text)
	if err != nil {
		return nil, err
	}

	if p.ValidateOutput {
		p.emit(StageValidate, "Validating record against output schema", nil)
		if err := ValidateRecord(rec); err != nil {
			return nil, err
		}
	}

	p.emit(StageDone, fmt.Sprintf("Parsed %s", filename), rec)
	return rec, nil
}

// ValidateRecord checks rec against the output schema.
func ValidateRecord(rec *types.ResumeRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return &OutputError{Cause: err}
	}
	if err := schemas.Validate(schemas.ResumeRecord, data); err != nil {
		return &OutputError{Cause: err}
	}
	return nil
}

// emit calls the progress callback if configured
func (p *Pipeline) emit(stage, message string, content any) {
	if p.OnProgress != nil {
		p.OnProgress(ProgressEvent{Stage: stage, Message: message, Content: content})
	}
}
