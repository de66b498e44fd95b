package scoring

import (
	"math"
	"sort"
)

// Normalize turns a raw export into scored activity records.
//
// Rows whose date cannot be parsed are dropped and counted. Missing zone columns
// read as zero, unusable zone cells become zero, and unusable duration or distance
// cells stay missing. A Week cell is kept when it holds a whole week number inside
// the calendar; otherwise the week is derived from the date.
//
// The result is sorted by date, most recent first, and is never nil.
func Normalize(batch Batch, cal Calendar) ([]ActivityRecord, Diagnostics) {
	diag := Diagnostics{InputRows: batch.Len(), MissingColumns: []string{}}
	records := make([]ActivityRecord, 0, batch.Len())

	idx := newColumnIndex(batch.Columns)
	for _, name := range RequiredColumns {
		if idx.position(name) < 0 {
			diag.MissingColumns = append(diag.MissingColumns, name)
		}
	}

	datePos := idx.position(ColumnDate)
	participantPos := idx.position(ColumnParticipant)
	typePos := idx.position(ColumnWorkoutType)
	durationPos := idx.position(ColumnTotalDuration)
	distancePos := idx.position(ColumnTotalDistance)
	weekPos := idx.position(ColumnWeek)
	var zonePos [5]int
	for i, name := range ZoneColumns {
		zonePos[i] = idx.position(name)
	}

	for _, row := range batch.Rows {
		date, ok := ParseDate(cell(row, datePos))
		if !ok {
			diag.DroppedRows++
			continue
		}

		rec := ActivityRecord{
			Date:        date,
			Participant: textValue(cell(row, participantPos)),
			WorkoutType: textValue(cell(row, typePos)),
		}

		for i, pos := range zonePos {
			v := cell(row, pos)
			if isBlank(v) {
				continue
			}
			minutes, ok := Coerce(v)
			if !ok || minutes < 0 {
				diag.InvalidNumeric++
				continue
			}
			rec.Zones[i] = minutes
		}

		var invalid bool
		rec.TotalDuration, invalid = optionalAmount(cell(row, durationPos))
		if invalid {
			diag.InvalidNumeric++
		}
		rec.TotalDistance, invalid = optionalAmount(cell(row, distancePos))
		if invalid {
			diag.InvalidNumeric++
		}

		rec.Points = Points(rec.Zones)

		week, given, invalid := explicitWeek(cell(row, weekPos), cal.TotalWeeks)
		if invalid {
			diag.InvalidNumeric++
		}
		if given {
			rec.Week = week
		} else {
			rec.Week = cal.WeekOf(date)
		}

		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	return records, diag
}

// optionalAmount parses a non-negative quantity; blank cells are missing, not invalid
func optionalAmount(v any) (amount *float64, invalid bool) {
	if isBlank(v) {
		return nil, false
	}
	f, ok := Coerce(v)
	if !ok || f < 0 {
		return nil, true
	}
	return &f, false
}

// explicitWeek reads a Week cell; given is false when the week must be derived
func explicitWeek(v any, totalWeeks int) (week int, given, invalid bool) {
	if isBlank(v) {
		return 0, false, false
	}
	f, ok := Coerce(v)
	if !ok || f != math.Trunc(f) || f < 1 || f > float64(totalWeeks) {
		return 0, false, true
	}
	return int(f), true, false
}
