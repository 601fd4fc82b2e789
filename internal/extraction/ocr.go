package extraction

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

//go:generate mockgen -source=ocr.go -destination=ocr_mock.go -package=extraction

// OCREngine recognizes text in an encoded image.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
	Name() string
}

// TesseractEngine shells out to the tesseract binary, streaming the image on
// stdin and reading text from stdout.
type TesseractEngine struct {
	Path     string
	Language string
}

// NewTesseractEngine returns an engine for the binary at path ("tesseract"
// resolves through PATH).
func NewTesseractEngine(path string) *TesseractEngine {
	return &TesseractEngine{Path: path, Language: "eng"}
}

// Name implements OCREngine.
func (t *TesseractEngine) Name() string { return "tesseract" }

// Recognize implements OCREngine.
func (t *TesseractEngine) Recognize(ctx context.Context, image []byte) (string, error) {
	args := []string{"stdin", "stdout"}
	if t.Language != "" {
		args = append(args, "-l", t.Language)
	}

	cmd := exec.CommandContext(ctx, t.Path, args...)
	cmd.Stdin = bytes.NewReader(image)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", &ExtractionError{
				Code:    ErrOCRUnavailable,
				Message: "tesseract binary not found",
				Method:  t.Name(),
				Cause:   err,
			}
		}
		if ctx.Err() != nil {
			return "", &ExtractionError{
				Code:      ErrOCRTimeout,
				Message:   "tesseract interrupted",
				Method:    t.Name(),
				Retryable: true,
				Cause:     ctx.Err(),
			}
		}
		return "", &ExtractionError{
			Code:    ErrOCRUnavailable,
			Message: strings.TrimSpace("tesseract failed " + stderr.String()),
			Method:  t.Name(),
			Cause:   err,
		}
	}
	return stdout.String(), nil
}
