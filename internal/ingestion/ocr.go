package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// OCR recognizes text in an image.
type OCR interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// TesseractOCR runs the tesseract command line tool, streaming the image through stdin.
type TesseractOCR struct {
	Command  string
	Language string
}

// NewTesseractOCR creates an OCR engine backed by the given tesseract binary.
func NewTesseractOCR(command, language string) *TesseractOCR {
	if command == "" {
		command = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &TesseractOCR{Command: command, Language: language}
}

// Recognize implements OCR.
func (t *TesseractOCR) Recognize(ctx context.Context, image []byte) (string, error) {
	if _, err := exec.LookPath(t.Command); err != nil {
		return "", &ExtractionError{Format: string(FormatImage), Message: "OCR engine unavailable", Cause: err}
	}

	cmd := exec.CommandContext(ctx, t.Command, "stdin", "stdout", "-l", t.Language)
	cmd.Stdin = bytes.NewReader(image)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &ExtractionError{Format: string(FormatImage), Message: "OCR timed out", Cause: ctx.Err()}
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "tesseract failed"
		}
		return "", &ExtractionError{Format: string(FormatImage), Message: fmt.Sprintf("OCR failed: %s", firstLine(msg)), Cause: err}
	}
	return stdout.String(), nil
}
