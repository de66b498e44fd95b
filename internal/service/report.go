package service

import (
	"time"

	"scoreboard/internal/scoring"
)

// Report is one fully aggregated scoreboard for a reference day
type Report struct {
	GeneratedFor time.Time // the injected "today"
	Source       string
	Calendar     scoring.Calendar

	Records     []scoring.ActivityRecord // date descending
	Diagnostics scoring.Diagnostics

	Leaderboard scoring.Leaderboard
	CurrentWeek int
	Started     bool

	// Biggest mover of the current week, when anybody has scored
	Mover    scoring.Mover
	HasMover bool

	Trends            scoring.Trends
	Runners           []scoring.RunnerTotal
	WeeklyRunDistance []float64

	runningCategory string
}

// ActivityLog returns records filtered by week (0 = all) and participant ("" = all)
func (r *Report) ActivityLog(week int, participant string) []scoring.ActivityRecord {
	return scoring.Filter(r.Records, week, participant)
}

// Recent returns up to n of the latest records
func (r *Report) Recent(n int) []scoring.ActivityRecord {
	if n > len(r.Records) {
		n = len(r.Records)
	}
	return r.Records[:n]
}

// Participants lists everyone with at least one record, alphabetically
func (r *Report) Participants() []string {
	return scoring.Participants(r.Records)
}

// Individual builds the analysis of one participant
func (r *Report) Individual(participant string) (scoring.ParticipantAnalysis, bool) {
	return scoring.AnalyzeParticipant(r.Records, participant, r.Calendar.TotalWeeks)
}

// TopRunners returns the leading runners by distance
func (r *Report) TopRunners(n int) []scoring.RunnerTotal {
	if n > len(r.Runners) {
		n = len(r.Runners)
	}
	return r.Runners[:n]
}

// MoverFor finds the biggest mover of any week
func (r *Report) MoverFor(week int) (scoring.Mover, bool) {
	return r.Leaderboard.BiggestMover(week)
}

// RunningCategory is the workout type filter used for distance figures
func (r *Report) RunningCategory() string {
	return r.runningCategory
}
