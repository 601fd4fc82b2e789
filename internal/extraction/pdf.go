package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const maxTextBytes = 100 * 1024 // 100KB cap for extracted text

// PDFAnalysis contains the text layer of a PDF document.
type PDFAnalysis struct {
	PageCount int
	Text      string
	Error     error
}

// AnalyzePDF extracts the text of every page, one page per line group.
// It is wrapped in recover() and never panics; on failure Error is set and
// the text gathered so far is kept.
func AnalyzePDF(data []byte) (result *PDFAnalysis) {
	result = &PDFAnalysis{PageCount: 1}

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Warn("recovered from panic in pdf reader")
			result.Error = fmt.Errorf("panic during PDF analysis: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		result.Error = fmt.Errorf("open PDF reader: %w", err)
		return result
	}

	result.PageCount = reader.NumPage()
	if result.PageCount < 1 {
		result.PageCount = 1
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			result.Error = fmt.Errorf("extract text of page %d: %w", i, err)
			return result
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
		if sb.Len() >= maxTextBytes {
			break
		}
	}

	text := sb.String()
	if len(text) > maxTextBytes {
		text = strings.ToValidUTF8(text[:maxTextBytes], "")
	}
	result.Text = text
	return result
}

// extractPDF maps an analysis onto the text contract of the extractor.
func extractPDF(data []byte) string {
	analysis := AnalyzePDF(data)
	if analysis.Error != nil {
		log.WithError(analysis.Error).Warn("pdf extraction failed")
		return PlaceholderPDFFailed
	}
	if strings.TrimSpace(analysis.Text) == "" {
		log.WithField("pages", analysis.PageCount).Info("pdf has no text layer")
		return PlaceholderPDFEmpty
	}
	return analysis.Text
}
