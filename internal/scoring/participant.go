package scoring

import "sort"

// WeekPoints is one point on a participant's cumulative points curve
type WeekPoints struct {
	Week       int
	Points     float64
	Cumulative float64
}

// TypeCount is the number of activities of one workout type
type TypeCount struct {
	Type  string
	Count int
}

// TypeDuration is the total minutes logged for one workout type
type TypeDuration struct {
	Type    string
	Minutes float64
}

// ParticipantAnalysis compares one participant with the group
type ParticipantAnalysis struct {
	Participant string

	// Training time in minutes; the group average is over per-participant totals
	TotalDuration    float64
	GroupAvgDuration float64
	PctOfGroupAvg    float64

	// Zone minutes, zone 1 first
	Zones         [5]float64
	GroupAvgZones [5]float64

	Cumulative     []WeekPoints
	ByTypeCount    []TypeCount
	ByTypeDuration []TypeDuration

	ActiveWeeks int
	TotalWeeks  int
}

// AnalyzeParticipant builds the individual breakdown for one participant.
// It returns false when the participant has no records.
func AnalyzeParticipant(records []ActivityRecord, participant string, totalWeeks int) (ParticipantAnalysis, bool) {
	if participant == "" {
		return ParticipantAnalysis{}, false
	}

	type totals struct {
		duration float64
		zones    [5]float64
	}
	group := make(map[string]*totals)

	var own []ActivityRecord
	for _, r := range records {
		if r.Participant == "" {
			continue
		}
		t, ok := group[r.Participant]
		if !ok {
			t = &totals{}
			group[r.Participant] = t
		}
		t.duration += r.Duration()
		for i, z := range r.Zones {
			t.zones[i] += z
		}
		if r.Participant == participant {
			own = append(own, r)
		}
	}
	if len(own) == 0 {
		return ParticipantAnalysis{}, false
	}

	a := ParticipantAnalysis{
		Participant: participant,
		TotalWeeks:  totalWeeks,
	}

	mine := group[participant]
	a.TotalDuration = mine.duration
	a.Zones = mine.zones

	// Sum in sorted name order so float results do not depend on map iteration
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := group[name]
		a.GroupAvgDuration += t.duration
		for i, z := range t.zones {
			a.GroupAvgZones[i] += z
		}
	}
	n := float64(len(names))
	a.GroupAvgDuration /= n
	for i := range a.GroupAvgZones {
		a.GroupAvgZones[i] /= n
	}

	switch {
	case a.GroupAvgDuration > 0:
		a.PctOfGroupAvg = a.TotalDuration / a.GroupAvgDuration * 100
	case a.TotalDuration > 0:
		a.PctOfGroupAvg = 100
	}

	a.Cumulative = cumulativePoints(own)
	a.ActiveWeeks = len(a.Cumulative)
	a.ByTypeCount, a.ByTypeDuration = activityBreakdown(own)

	return a, true
}

func cumulativePoints(records []ActivityRecord) []WeekPoints {
	byWeek := make(map[int]float64)
	for _, r := range records {
		byWeek[r.Week] += r.Points
	}

	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	curve := make([]WeekPoints, 0, len(weeks))
	var running float64
	for _, w := range weeks {
		running += byWeek[w]
		curve = append(curve, WeekPoints{Week: w, Points: byWeek[w], Cumulative: running})
	}
	return curve
}

func activityBreakdown(records []ActivityRecord) ([]TypeCount, []TypeDuration) {
	counts := []TypeCount{}
	countPos := make(map[string]int)
	minutes := make(map[string]float64)

	for _, r := range records {
		if r.WorkoutType == "" {
			continue
		}
		pos, ok := countPos[r.WorkoutType]
		if !ok {
			pos = len(counts)
			countPos[r.WorkoutType] = pos
			counts = append(counts, TypeCount{Type: r.WorkoutType})
		}
		counts[pos].Count++
		minutes[r.WorkoutType] += r.Duration()
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	durations := []TypeDuration{}
	for _, c := range counts {
		if m := minutes[c.Type]; m > 0 {
			durations = append(durations, TypeDuration{Type: c.Type, Minutes: m})
		}
	}
	sort.Slice(durations, func(i, j int) bool {
		return durations[i].Type < durations[j].Type
	})

	return counts, durations
}
