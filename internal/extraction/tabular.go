package extraction

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var errNoDataRows = errors.New("no data rows")

// readCSVRows returns the header and the first data row of a CSV upload.
func readCSVRows(data []byte) ([]string, []string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil, nil, errNoDataRows
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		if !blankRow(row) {
			return header, row, nil
		}
	}
}

// readSpreadsheetRows returns the header and first data row of the first
// sheet of an .xlsx workbook.
func readSpreadsheetRows(data []byte) ([]string, []string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errNoDataRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil, errNoDataRows
	}
	for _, row := range rows[1:] {
		if !blankRow(row) {
			return rows[0], row, nil
		}
	}
	return nil, nil, errNoDataRows
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// extractTabular maps the first data row onto a Record. The prescription
// column becomes the text; the whole row is kept verbatim.
func extractTabular(kind Kind, data []byte) Record {
	read := readCSVRows
	if kind == KindSpreadsheet {
		read = readSpreadsheetRows
	}

	header, values, err := read(data)
	if err != nil {
		log.WithError(err).WithField("kind", kind).Warn("tabular extraction failed")
		return Record{Text: PlaceholderTabularFailed, Kind: kind}
	}

	row := make(map[string]string, len(header))
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if col == "" {
			continue
		}
		if i < len(values) {
			row[col] = values[i]
		} else {
			row[col] = ""
		}
	}

	rec := Record{
		Row:     row,
		Numeric: numericFromRow(row),
		Kind:    kind,
	}
	text, ok := row[PrescriptionColumn]
	if !ok {
		log.WithField("columns", len(row)).Info("tabular upload has no prescription column")
		rec.Text = PlaceholderCSVMissingColumn
		return rec
	}
	rec.Text = text
	return rec
}
