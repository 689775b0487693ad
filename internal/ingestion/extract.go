// Package ingestion turns resume documents into normalized plain text.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

// Format identifies the source format of a document.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatText  Format = "txt"
	FormatImage Format = "image"
)

// allowedExtensions maps accepted file extensions to their format.
var allowedExtensions = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".txt":  FormatText,
	".jpg":  FormatImage,
	".jpeg": FormatImage,
	".png":  FormatImage,
}

// legacyErrorPrefixes are the prefixes older extraction backends used to report failures in-band.
var legacyErrorPrefixes = []string{
	"error:",
	"error extracting",
	"error reading",
	"error processing",
	"unsupported file",
}

// Document is the successful result of text extraction.
type Document struct {
	Text   string
	Format Format
	Pages  int
}

// Extractor extracts text from resume documents. The zero value handles PDF, DOCX and TXT;
// image support requires an OCR engine.
type Extractor struct {
	OCR OCR
}

// NewExtractor creates an Extractor using the given OCR engine (may be nil).
func NewExtractor(ocr OCR) *Extractor {
	return &Extractor{OCR: ocr}
}

// FormatFor returns the format for a filename, or an InputError if the extension is not accepted.
func FormatFor(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	format, ok := allowedExtensions[ext]
	if !ok {
		if ext == "" {
			ext = "(none)"
		}
		return "", &InputError{Message: fmt.Sprintf("unsupported file type %s", ext)}
	}
	return format, nil
}

// ExtractFile reads and extracts a document from disk.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Document, error) {
	if _, err := FormatFor(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &InputError{Message: "file not found", Cause: err}
		}
		return nil, &InputError{Message: "failed to read file", Cause: err}
	}
	return e.ExtractBytes(ctx, filepath.Base(path), data)
}

// ExtractBytes extracts a document held in memory, dispatching on the filename extension.
// The returned Document always carries non-empty, normalized text.
func (e *Extractor) ExtractBytes(ctx context.Context, filename string, data []byte) (*Document, error) {
	format, err := FormatFor(filename)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, &InputError{Message: "empty upload"}
	}

	doc := &Document{Format: format}
	switch format {
	case FormatPDF:
		doc.Text, doc.Pages, err = extractPDF(data)
	case FormatDOCX:
		doc.Text, err = extractDOCX(data)
	case FormatText:
		doc.Text, err = extractPlainText(data)
	case FormatImage:
		if e.OCR == nil {
			return nil, &ExtractionError{Format: string(format), Message: "no OCR engine configured"}
		}
		doc.Text, err = e.OCR.Recognize(ctx, data)
	}
	if err != nil {
		var extErr *ExtractionError
		if errors.As(err, &extErr) {
			return nil, err
		}
		return nil, &ExtractionError{Format: string(format), Message: "backend failure", Cause: err}
	}

	if IsBackendError(doc.Text) {
		return nil, &ExtractionError{Format: string(format), Message: firstLine(doc.Text)}
	}
	doc.Text = Normalize(doc.Text)
	if doc.Text == "" {
		return nil, &ExtractionError{Format: string(format), Message: "document contains no text"}
	}

	log.Debug().
		Str("file", filename).
		Str("format", string(format)).
		Int("pages", doc.Pages).
		Int("chars", len(doc.Text)).
		Msg("extracted document text")
	return doc, nil
}

// IsBackendError reports whether text is an in-band error message from an extraction backend
// rather than document content.
func IsBackendError(text string) bool {
	head := strings.ToLower(strings.TrimSpace(text))
	for _, prefix := range legacyErrorPrefixes {
		if strings.HasPrefix(head, prefix) {
			return true
		}
	}
	return false
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		data = []byte(strings.ToValidUTF8(string(data), ""))
	}
	return CleanText(string(data)), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
