package ingestion

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxParagraphEndRe = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	docxTabRe          = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTagRe           = regexp.MustCompile(`<[^>]+>`)
)

// extractDOCX returns the paragraph text of a Word document.
func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: string(FormatDOCX), Message: "failed to parse docx", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText converts WordprocessingML body XML into plain text with one paragraph per line.
func docxXMLToText(content string) string {
	content = docxParagraphEndRe.ReplaceAllString(content, "\n")
	content = docxTabRe.ReplaceAllString(content, "\t")
	content = xmlTagRe.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content))
}
