package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floatPtr(f float64) *float64 {
	return &f
}

// referenceCalendar is the 2025 schedule: Mon Mar 10 through Mon Mar 17, then Tuesday-started weeks
func referenceCalendar(t *testing.T) Calendar {
	t.Helper()
	cal, err := NewCalendar(day(2025, 3, 10), day(2025, 3, 17), 8)
	require.NoError(t, err)
	return cal
}

func record(participant string, date time.Time, week int, zones [5]float64) ActivityRecord {
	return ActivityRecord{
		Date:        date,
		Participant: participant,
		WorkoutType: "Run",
		Zones:       zones,
		Points:      Points(zones),
		Week:        week,
	}
}
