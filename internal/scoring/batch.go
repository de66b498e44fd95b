package scoring

import "strings"

// Canonical column names of the activity export
const (
	ColumnDate          = "Date"
	ColumnParticipant   = "Participant"
	ColumnWorkoutType   = "Workout Type"
	ColumnTotalDuration = "Total Duration"
	ColumnTotalDistance = "Total Distance"
	ColumnWeek          = "Week"
)

// ZoneColumns are the heart rate zone minute columns, lowest zone first
var ZoneColumns = [5]string{"Zone 1", "Zone 2", "Zone 3", "Zone 4", "Zone 5"}

// RequiredColumns lists the columns a complete export carries.
// Week is optional and therefore not listed.
var RequiredColumns = []string{
	ColumnDate, ColumnParticipant, ColumnWorkoutType, ColumnTotalDuration, ColumnTotalDistance,
	ZoneColumns[0], ZoneColumns[1], ZoneColumns[2], ZoneColumns[3], ZoneColumns[4],
}

// Batch is one raw export: a header row and positional cells.
// Cells may hold strings, numbers, time.Time or nil; rows may be shorter than Columns.
type Batch struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of data rows
func (b Batch) Len() int {
	return len(b.Rows)
}

// Column returns the position of a column matched the way Normalize matches it, or -1
func (b Batch) Column(name string) int {
	return newColumnIndex(b.Columns).position(name)
}

// columnKey folds a header so "Zone 1", "zone_1" and "ZONE-1" match
func columnKey(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '_', '-', '\t':
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// columnIndex maps folded header names to their first position
type columnIndex map[string]int

func newColumnIndex(columns []string) columnIndex {
	idx := make(columnIndex, len(columns))
	for i, c := range columns {
		key := columnKey(c)
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

// position returns the index of a column, or -1 when absent
func (c columnIndex) position(name string) int {
	if i, ok := c[columnKey(name)]; ok {
		return i
	}
	return -1
}

func cell(row []any, pos int) any {
	if pos < 0 || pos >= len(row) {
		return nil
	}
	return row[pos]
}
