package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog/log"
)

// pdfPageCount validates the document structure with pdfcpu and returns its page count.
func pdfPageCount(data []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return 0, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return 0, fmt.Errorf("failed to ensure page count: %w", err)
	}
	return ctx.PageCount, nil
}

// extractPDF returns the plain text of every page joined by newlines, plus the page count.
// Structural validation failures are logged and text extraction is still attempted.
func extractPDF(data []byte) (text string, pages int, err error) {
	pages, verr := pdfPageCount(data)
	if verr != nil {
		log.Warn().Err(verr).Msg("pdf validation failed, attempting text extraction anyway")
	}

	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Format: string(FormatPDF), Message: fmt.Sprintf("parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", pages, &ExtractionError{Format: string(FormatPDF), Message: "failed to read pdf", Cause: err}
	}

	numPages := reader.NumPage()
	if pages == 0 {
		pages = numPages
	}

	parts := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, perr := page.GetPlainText(nil)
		if perr != nil {
			log.Warn().Err(perr).Int("page", i).Msg("failed to extract pdf page text")
			continue
		}
		if strings.TrimSpace(pageText) != "" {
			parts = append(parts, pageText)
		}
	}
	return strings.Join(parts, "\n"), pages, nil
}
