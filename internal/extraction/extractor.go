package extraction

import (
	"context"
	"strings"

	"github.com/castlemilk/mydiet/internal/logger"
	"golang.org/x/text/encoding/unicode"
)

var log = logger.For("extraction")

// Extractor dispatches an uploaded document to the matching extraction path.
// It is safe for concurrent use once built.
type Extractor struct {
	preprocessor Preprocessor
	primaryOCR   OCREngine
	fallbackOCR  OCREngine
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPrimaryOCR sets the engine tried first on the preprocessed image.
func WithPrimaryOCR(engine OCREngine) Option {
	return func(e *Extractor) { e.primaryOCR = engine }
}

// WithFallbackOCR sets the engine tried on the original image when the
// primary engine yields no text.
func WithFallbackOCR(engine OCREngine) Option {
	return func(e *Extractor) { e.fallbackOCR = engine }
}

// WithPreprocessor overrides the image preparation settings.
func WithPreprocessor(p Preprocessor) Option {
	return func(e *Extractor) { e.preprocessor = p }
}

// NewExtractor creates an extractor. Without OCR options every image yields
// PlaceholderOCRUnsupported.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{preprocessor: DefaultPreprocessor()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract never fails: unreadable or unsupported input comes back as one of
// the Placeholder texts with no numeric fields.
func (e *Extractor) Extract(ctx context.Context, doc Document) Record {
	kind := DetectKind(doc.Name, doc.Data)
	entry := log.WithField("file", doc.Name).WithField("kind", kind)

	var rec Record
	switch kind {
	case KindPDF:
		rec = e.withNumeric(kind, extractPDF(doc.Data))
	case KindImage:
		rec = e.withNumeric(kind, e.extractImage(ctx, doc.Data))
	case KindText:
		rec = e.withNumeric(kind, decodeText(doc.Data))
	case KindCSV, KindSpreadsheet:
		rec = extractTabular(kind, doc.Data)
	default:
		rec = Record{Text: PlaceholderUnsupported, Kind: KindUnknown}
	}

	entry.WithField("chars", len(rec.Text)).
		WithField("numeric_fields", len(rec.Numeric)).
		WithField("placeholder", IsPlaceholder(rec.Text)).
		Info("document extracted")
	return rec
}

// withNumeric runs the numeric parser over free text unless the text is a
// placeholder.
func (e *Extractor) withNumeric(kind Kind, text string) Record {
	rec := Record{Text: text, Kind: kind}
	if IsPlaceholder(text) || strings.TrimSpace(text) == "" {
		return rec
	}
	rec.Numeric = ParseNumericFields(text)
	return rec
}

// decodeText decodes UTF-8, dropping a leading BOM and replacing invalid
// bytes with U+FFFD.
func decodeText(data []byte) string {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\ufffd")
	}
	return string(out)
}

var placeholders = map[string]bool{
	PlaceholderPDFEmpty:         true,
	PlaceholderPDFFailed:        true,
	PlaceholderOCREmpty:         true,
	PlaceholderOCRUnsupported:   true,
	PlaceholderCSVMissingColumn: true,
	PlaceholderTabularFailed:    true,
	PlaceholderUnsupported:      true,
}

// IsPlaceholder reports whether text is one of the fixed failure texts.
func IsPlaceholder(text string) bool {
	return placeholders[text]
}
