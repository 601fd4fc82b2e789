// Package extraction turns uploaded medical documents into clinical text and
// an optional record of lab values.
package extraction

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind is the coarse document type that selects an extraction path.
type Kind string

const (
	KindPDF         Kind = "pdf"
	KindImage       Kind = "image"
	KindText        Kind = "text"
	KindCSV         Kind = "csv"
	KindSpreadsheet Kind = "xlsx"
	KindUnknown     Kind = "unknown"
)

// IsTabular reports whether numeric fields come straight from columns.
func (k Kind) IsTabular() bool {
	return k == KindCSV || k == KindSpreadsheet
}

// Placeholder texts substituted for extraction failures. Callers display them
// as the extracted text; none of them contains a condition keyword.
const (
	PlaceholderPDFEmpty = "⚠️ PDF appears to be image-only or text extraction failed.\n" +
		"Please upload TXT/CSV or paste text manually."
	PlaceholderPDFFailed = "⚠️ PDF reading failed in this environment.\n" +
		"Please upload TXT/CSV or paste text manually."
	PlaceholderOCREmpty = "⚠️ OCR produced empty text.\n" +
		"Please upload PDF/TXT/CSV or paste text manually."
	PlaceholderOCRUnsupported = "⚠️ Image OCR is not supported in this deployment environment.\n" +
		"Please upload PDF/TXT/CSV files or paste text manually."
	PlaceholderCSVMissingColumn = "⚠️ CSV does not contain 'doctor_prescription' column."
	PlaceholderTabularFailed    = "⚠️ Tabular file could not be read or has no data rows."
	PlaceholderUnsupported      = "⚠️ Unsupported file type.\n" +
		"Please upload PDF, PNG/JPG, TXT, CSV or XLSX files."
)

// PrescriptionColumn is the tabular column holding the doctor's free text.
const PrescriptionColumn = "doctor_prescription"

// Document is an uploaded artifact. It lives for a single Extract call.
type Document struct {
	Name string
	Data []byte
}

// Record is the outcome of extracting one document.
type Record struct {
	// Text is always set, possibly to one of the Placeholder constants.
	Text string
	// Numeric is nil when no lab value was recognized.
	Numeric NumericFields
	// Row is the first tabular data row verbatim; nil for other kinds.
	Row map[string]string
	Kind Kind
}

var extensionKinds = map[string]Kind{
	".pdf":  KindPDF,
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".txt":  KindText,
	".csv":  KindCSV,
	".xlsx": KindSpreadsheet,
}

// DetectKind picks the extraction path from the file extension, sniffing the
// content when the name carries no known extension.
func DetectKind(name string, data []byte) Kind {
	if kind, ok := extensionKinds[strings.ToLower(filepath.Ext(name))]; ok {
		return kind
	}
	if len(data) == 0 {
		return KindUnknown
	}

	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("application/pdf"):
		return KindPDF
	case mtype.Is("image/png"), mtype.Is("image/jpeg"):
		return KindImage
	case mtype.Is("text/csv"):
		return KindCSV
	case mtype.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"):
		return KindSpreadsheet
	case mtype.Is("text/plain"):
		return KindText
	}
	return KindUnknown
}
