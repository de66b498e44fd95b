package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"scoreboard/internal/scoring"
)

// Format is the encoding of an activity export
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// zipMagic prefixes every xlsx file
var zipMagic = []byte("PK\x03\x04")

// DetectFormat guesses the format from a file name or URL, falling back to the content
func DetectFormat(name string, head []byte) (Format, error) {
	lower := strings.ToLower(name)
	if i := strings.IndexAny(lower, "?#"); i >= 0 {
		query := lower[i:]
		lower = lower[:i]
		switch {
		case strings.Contains(query, "format=xlsx"):
			return FormatXLSX, nil
		case strings.Contains(query, "format=csv"):
			return FormatCSV, nil
		}
	}

	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return FormatXLSX, nil
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV, nil
	case bytes.HasPrefix(head, zipMagic):
		return FormatXLSX, nil
	case len(head) > 0 && !bytes.ContainsRune(head, 0):
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Decode parses an export in the given format
func Decode(format Format, r io.Reader) (scoring.Batch, error) {
	switch format {
	case FormatXLSX:
		return DecodeXLSX(r)
	case FormatCSV:
		return DecodeCSV(r)
	default:
		return scoring.Batch{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// DecodeCSV reads a header row followed by data rows. Ragged rows are allowed.
func DecodeCSV(r io.Reader) (scoring.Batch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return scoring.Batch{Rows: [][]any{}}, nil
	}

	return newBatch(records[0], records[1:], nil), nil
}

// DecodeXLSX reads the first worksheet of a workbook.
// Numeric date cells are converted from Excel serial dates.
func DecodeXLSX(r io.Reader) (scoring.Batch, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return scoring.Batch{Rows: [][]any{}}, nil
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return scoring.Batch{}, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return scoring.Batch{Rows: [][]any{}}, nil
	}

	return newBatch(rows[0], rows[1:], excelDate), nil
}

// newBatch converts text rows into a Batch; dateCell, when set, rewrites the Date column
func newBatch(header []string, rows [][]string, dateCell func(string) any) scoring.Batch {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}
	batch := scoring.Batch{Columns: columns, Rows: make([][]any, 0, len(rows))}
	datePos := batch.Column(scoring.ColumnDate)

	for _, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		cells := make([]any, len(row))
		for i, v := range row {
			if strings.TrimSpace(v) == "" {
				cells[i] = nil
				continue
			}
			if i == datePos && dateCell != nil {
				cells[i] = dateCell(v)
				continue
			}
			cells[i] = v
		}
		batch.Rows = append(batch.Rows, cells)
	}
	return batch
}

// excelDate turns a serial day number into a time; text dates are left for the normalizer
func excelDate(v string) any {
	serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || serial <= 0 {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	return t
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
