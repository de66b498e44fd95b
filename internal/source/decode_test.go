package source

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"scoreboard/internal/scoring"
)

var exportHeader = []any{
	"Date", "Participant", "Workout Type", "Total Duration", "Total Distance",
	"Zone 1", "Zone 2", "Zone 3", "Zone 4", "Zone 5",
}

// buildWorkbook writes an export the way a spreadsheet tool would: serial dates and numeric cells
func buildWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	rows := [][]any{
		exportHeader,
		{45726, "Ann", "Run", 30, 3.1, 10, 20, 0, 0, 0},  // 2025-03-10
		{"2025-03-19", "Ben", "Bike", 60, nil, 0, 0, 10}, // text date, short row
		{},
		{"not a date", "Cat", "Run", 20, 2, 1, 1, 1, 1, 1},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeXLSX(t *testing.T) {
	batch, err := DecodeXLSX(bytes.NewReader(buildWorkbook(t)))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Date", "Participant", "Workout Type", "Total Duration", "Total Distance",
		"Zone 1", "Zone 2", "Zone 3", "Zone 4", "Zone 5",
	}, batch.Columns)
	require.Equal(t, 3, batch.Len(), "blank row is skipped")

	date, ok := batch.Rows[0][0].(time.Time)
	require.True(t, ok, "serial date converted, got %T", batch.Rows[0][0])
	assert.Equal(t, "2025-03-10", date.Format("2006-01-02"))
	assert.Equal(t, "2025-03-19", batch.Rows[1][0])
	assert.Nil(t, batch.Rows[1][4])

	cal, err := scoring.NewCalendar(
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), 8)
	require.NoError(t, err)

	records, diag := scoring.Normalize(batch, cal)
	require.Len(t, records, 2)
	assert.Equal(t, 1, diag.DroppedRows)
	assert.Empty(t, diag.MissingColumns)

	assert.Equal(t, "Ben", records[0].Participant)
	assert.Equal(t, 2, records[0].Week)
	assert.Equal(t, 30.0, records[0].Points)
	assert.Nil(t, records[0].TotalDistance)

	assert.Equal(t, "Ann", records[1].Participant)
	assert.Equal(t, 1, records[1].Week)
	assert.Equal(t, 50.0, records[1].Points)
	require.NotNil(t, records[1].TotalDistance)
	assert.Equal(t, 3.1, *records[1].TotalDistance)
}

func TestDecodeXLSX_NotAWorkbook(t *testing.T) {
	_, err := DecodeXLSX(strings.NewReader("Date,Participant\n"))
	assert.Error(t, err)
}

func TestDecodeCSV(t *testing.T) {
	raw := "Date, Participant,Workout Type,Total Duration,Total Distance,Zone 1,Zone 2,Zone 3,Zone 4,Zone 5\n" +
		"2025-03-18,Ann,Run,45,5.5,0,10,10,0,0\n" +
		"3/11/2025,Ben,Walk,30,,5\n" +
		",,,,,,,,,\n"

	batch, err := DecodeCSV(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "Participant", batch.Columns[1], "header trimmed")
	require.Equal(t, 2, batch.Len())
	assert.Equal(t, []any{"2025-03-18", "Ann", "Run", "45", "5.5", "0", "10", "10", "0", "0"}, batch.Rows[0])
	assert.Equal(t, []any{"3/11/2025", "Ben", "Walk", "30", nil, "5"}, batch.Rows[1])
}

func TestDecodeCSV_Empty(t *testing.T) {
	batch, err := DecodeCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, batch.Len())
	assert.NotNil(t, batch.Rows)
}

func TestDecodeCSV_Malformed(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("Date,Participant\n\"unterminated,Ann\n"))
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		head     []byte
		expected Format
		wantErr  bool
	}{
		{name: "xlsx extension", file: "data/export.XLSX", expected: FormatXLSX},
		{name: "csv extension", file: "export.csv", expected: FormatCSV},
		{name: "sheet export query", file: "https://docs.example.com/d/abc/export?format=xlsx", expected: FormatXLSX},
		{name: "csv query", file: "https://docs.example.com/d/abc/export?format=csv&gid=0", expected: FormatCSV},
		{name: "zip content", file: "https://example.com/download", head: []byte("PK\x03\x04rest"), expected: FormatXLSX},
		{name: "text content", file: "https://example.com/download", head: []byte("Date,Participant\n"), expected: FormatCSV},
		{name: "binary content", file: "https://example.com/download", head: []byte{0x00, 0x01}, wantErr: true},
		{name: "nothing to go on", file: "export.bin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.file, tt.head)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, err := Decode(Format("ods"), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
