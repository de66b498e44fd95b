package scoring

import "sort"

// LeaderboardRow is one participant's standing
type LeaderboardRow struct {
	Rank         int
	Participant  string
	Points       float64
	PointsBehind float64   // leader's points minus this participant's
	WeekPoints   []float64 // index 0 is week 1
}

// Week returns the points earned in a 1-based week, 0 outside the schedule
func (r LeaderboardRow) Week(week int) float64 {
	if week < 1 || week > len(r.WeekPoints) {
		return 0
	}
	return r.WeekPoints[week-1]
}

// Leaderboard is the ranked competition table
type Leaderboard struct {
	TotalWeeks int
	Rows       []LeaderboardRow
}

// Mover is the participant who earned the most points in a week
type Mover struct {
	Participant string
	Points      float64
	Week        int
}

// BuildLeaderboard ranks participants by total points.
// Equal totals keep the order in which participants first appear in records.
// Records without a participant are ignored.
func BuildLeaderboard(records []ActivityRecord, totalWeeks int) Leaderboard {
	if totalWeeks < 0 {
		totalWeeks = 0
	}
	lb := Leaderboard{TotalWeeks: totalWeeks, Rows: []LeaderboardRow{}}

	positions := make(map[string]int)
	for _, r := range records {
		if r.Participant == "" {
			continue
		}
		pos, ok := positions[r.Participant]
		if !ok {
			pos = len(lb.Rows)
			positions[r.Participant] = pos
			lb.Rows = append(lb.Rows, LeaderboardRow{
				Participant: r.Participant,
				WeekPoints:  make([]float64, totalWeeks),
			})
		}

		row := &lb.Rows[pos]
		row.Points += r.Points
		if r.Week >= 1 && r.Week <= totalWeeks {
			row.WeekPoints[r.Week-1] += r.Points
		}
	}

	sort.SliceStable(lb.Rows, func(i, j int) bool {
		return lb.Rows[i].Points > lb.Rows[j].Points
	})

	if len(lb.Rows) == 0 {
		return lb
	}
	leader := lb.Rows[0].Points
	for i := range lb.Rows {
		lb.Rows[i].Rank = i + 1
		lb.Rows[i].PointsBehind = leader - lb.Rows[i].Points
	}
	return lb
}

// BiggestMover finds the participant with the most points in a week.
// It returns false when nobody has scored that week.
func (l Leaderboard) BiggestMover(week int) (Mover, bool) {
	if week < 1 || week > l.TotalWeeks {
		return Mover{}, false
	}

	best := -1
	for i, row := range l.Rows {
		if best < 0 || row.Week(week) > l.Rows[best].Week(week) {
			best = i
		}
	}
	if best < 0 || l.Rows[best].Week(week) <= 0 {
		return Mover{}, false
	}
	return Mover{
		Participant: l.Rows[best].Participant,
		Points:      l.Rows[best].Week(week),
		Week:        week,
	}, true
}

// Row returns the standing of a participant
func (l Leaderboard) Row(participant string) (LeaderboardRow, bool) {
	for _, row := range l.Rows {
		if row.Participant == participant {
			return row, true
		}
	}
	return LeaderboardRow{}, false
}
