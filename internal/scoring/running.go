package scoring

import (
	"fmt"
	"sort"
)

// RunnerTotal summarizes one participant's running activities
type RunnerTotal struct {
	Participant string
	Distance    float64
	Duration    float64 // minutes
	Pace        float64 // minutes per distance unit, 0 without distance
}

// RunnerTotals sums running distance and duration per participant,
// longest distance first.
func RunnerTotals(records []ActivityRecord, runningCategory string) []RunnerTotal {
	totals := []RunnerTotal{}
	positions := make(map[string]int)

	for _, r := range records {
		if r.Participant == "" || !IsRunning(r.WorkoutType, runningCategory) {
			continue
		}
		pos, ok := positions[r.Participant]
		if !ok {
			pos = len(totals)
			positions[r.Participant] = pos
			totals = append(totals, RunnerTotal{Participant: r.Participant})
		}
		totals[pos].Distance += r.Distance()
		totals[pos].Duration += r.Duration()
	}

	for i := range totals {
		if totals[i].Distance > 0 {
			totals[i].Pace = totals[i].Duration / totals[i].Distance
		}
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Distance > totals[j].Distance
	})
	return totals
}

// WeeklyRunDistance returns the group running distance of each week, week 1 first
func WeeklyRunDistance(records []ActivityRecord, runningCategory string, totalWeeks int) []float64 {
	if totalWeeks < 0 {
		totalWeeks = 0
	}
	weekly := make([]float64, totalWeeks)
	for _, r := range records {
		if r.Week < 1 || r.Week > totalWeeks || !IsRunning(r.WorkoutType, runningCategory) {
			continue
		}
		weekly[r.Week-1] += r.Distance()
	}
	return weekly
}

// FormatPace renders minutes per unit as m:ss, or N/A without a pace
func FormatPace(minutesPerUnit float64) string {
	if minutesPerUnit <= 0 {
		return "N/A"
	}
	whole := int(minutesPerUnit)
	seconds := int((minutesPerUnit - float64(whole)) * 60)
	return fmt.Sprintf("%d:%02d", whole, seconds)
}
