package scoring

import (
	"strings"
	"time"
)

// DefaultRunningCategory matches workout types counted as running
const DefaultRunningCategory = "run"

// Trend compares a week-to-date aggregate against the same span of the previous week
type Trend struct {
	Current    float64
	Previous   float64
	PctChange  float64
	Applicable bool // false before the competition starts
}

// Trends holds the group week-to-date comparisons
type Trends struct {
	Distance   Trend // running activities only
	Activities Trend
	Points     Trend
}

// PctChange is the percentage change from previous to current.
// A zero baseline counts as +100% when there is any current value, else 0%.
func PctChange(current, previous float64) float64 {
	switch {
	case previous > 0:
		return (current - previous) / previous * 100
	case current > 0:
		return 100
	default:
		return 0
	}
}

// IsRunning reports whether a workout type belongs to the running category
// (case-insensitive substring match)
func IsRunning(workoutType, category string) bool {
	if category == "" {
		category = DefaultRunningCategory
	}
	return strings.Contains(strings.ToLower(workoutType), strings.ToLower(category))
}

// CompareWeekToDate computes the group week-to-date trends for today.
// Before the competition start every trend is reported as not applicable.
func CompareWeekToDate(records []ActivityRecord, cal Calendar, today time.Time, runningCategory string) Trends {
	if !cal.Started(today) {
		return Trends{}
	}

	current, previous := WeekToDate(today)

	var cur, prev struct{ distance, count, points float64 }
	for _, r := range records {
		var bucket *struct{ distance, count, points float64 }
		switch {
		case current.Contains(r.Date):
			bucket = &cur
		case previous.Contains(r.Date):
			bucket = &prev
		default:
			continue
		}

		bucket.count++
		bucket.points += r.Points
		if IsRunning(r.WorkoutType, runningCategory) {
			bucket.distance += r.Distance()
		}
	}

	return Trends{
		Distance:   newTrend(cur.distance, prev.distance),
		Activities: newTrend(cur.count, prev.count),
		Points:     newTrend(cur.points, prev.points),
	}
}

func newTrend(current, previous float64) Trend {
	return Trend{
		Current:    current,
		Previous:   previous,
		PctChange:  PctChange(current, previous),
		Applicable: true,
	}
}
