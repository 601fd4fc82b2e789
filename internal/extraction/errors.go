package extraction

import "fmt"

// ExtractionErrorCode represents specific extraction error types.
type ExtractionErrorCode string

const (
	ErrOCRUnavailable  ExtractionErrorCode = "OCR_UNAVAILABLE"
	ErrOCRTimeout      ExtractionErrorCode = "OCR_TIMEOUT"
	ErrOCREmpty        ExtractionErrorCode = "OCR_EMPTY"
	ErrInvalidDocument ExtractionErrorCode = "INVALID_DOCUMENT"
)

// ExtractionError is a structured error for extraction failures. The
// extractor never returns it to callers; it travels between the OCR engines,
// the retry loop and the log line that precedes the placeholder text.
type ExtractionError struct {
	Code      ExtractionErrorCode
	Message   string
	Method    string // e.g. "tesseract" or "remote-ocr"
	Retryable bool
	Cause     error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether this error is retryable.
func (e *ExtractionError) IsRetryable() bool {
	return e.Retryable
}
