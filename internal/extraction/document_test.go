package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     Kind
	}{
		{"pdf extension", "report.PDF", nil, KindPDF},
		{"jpeg extension", "scan.jpeg", nil, KindImage},
		{"png extension", "scan.png", nil, KindImage},
		{"text extension", "notes.txt", nil, KindText},
		{"csv extension", "labs.csv", nil, KindCSV},
		{"xlsx extension", "labs.xlsx", nil, KindSpreadsheet},
		{"no name no data", "", nil, KindUnknown},
		{"sniffed pdf", "upload", []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n"), KindPDF},
		{"sniffed png", "upload", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), KindImage},
		{"sniffed text", "upload", []byte("Patient has high blood pressure."), KindText},
		{"unknown extension binary", "archive.zip", []byte{0x00, 0x01, 0x02, 0x03}, KindUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectKind(tc.filename, tc.data))
		})
	}
}

func TestKind_IsTabular(t *testing.T) {
	assert.True(t, KindCSV.IsTabular())
	assert.True(t, KindSpreadsheet.IsTabular())
	assert.False(t, KindText.IsTabular())
	assert.False(t, KindPDF.IsTabular())
}
