package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"scoreboard/internal/observability"
	"scoreboard/internal/scoring"
)

// Fetcher supplies raw activity batches
type Fetcher interface {
	Fetch(ctx context.Context) (scoring.Batch, error)
	Kind() string
	Location() string
}

// Options configures a ScoreboardService
type Options struct {
	RunningCategory string
	Timeout         time.Duration
}

// ScoreboardService fetches a batch and aggregates it into a Report
type ScoreboardService struct {
	source          Fetcher
	calendar        scoring.Calendar
	runningCategory string
	timeout         time.Duration
}

// NewScoreboardService creates a new scoreboard service
func NewScoreboardService(source Fetcher, cal scoring.Calendar, opts Options) *ScoreboardService {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultFetchTimeout
	}
	if opts.RunningCategory == "" {
		opts.RunningCategory = scoring.DefaultRunningCategory
	}
	if !cal.Week2MondayAligned() {
		logrus.WithFields(logrus.Fields{
			"start":     cal.Start.Format(time.DateOnly),
			"week1_end": cal.Week1End.Format(time.DateOnly),
		}).Warn("week 2 does not start on a Monday; week-to-date trends use Monday-based windows")
	}
	return &ScoreboardService{
		source:          source,
		calendar:        cal,
		runningCategory: opts.RunningCategory,
		timeout:         opts.Timeout,
	}
}

// Calendar returns the competition schedule
func (s *ScoreboardService) Calendar() scoring.Calendar {
	return s.calendar
}

// BuildReport fetches the current batch and aggregates it as of today
func (s *ScoreboardService) BuildReport(ctx context.Context, today time.Time) (*Report, error) {
	started := time.Now()
	log := logrus.WithFields(logrus.Fields{
		"source": s.source.Kind(),
		"today":  today.Format(time.DateOnly),
	})

	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	batch, err := s.source.Fetch(fetchCtx)
	if err != nil {
		observability.RecordFetchError(s.source.Kind())
		log.Errorf("fetching activities from %s: %s", s.source.Location(), err)
		return nil, fmt.Errorf("fetching activities: %w", err)
	}

	report := s.Aggregate(batch, today)
	report.Source = s.source.Location()

	diag := report.Diagnostics
	observability.RecordIngest(s.source.Kind(), diag.InputRows, diag.DroppedRows, diag.InvalidNumeric)
	observability.RecordReport(time.Since(started), time.Now())

	log.WithFields(logrus.Fields{
		"rows":         diag.InputRows,
		"records":      len(report.Records),
		"participants": len(report.Leaderboard.Rows),
		"week":         report.CurrentWeek,
		"took":         time.Since(started).String(),
	}).Info("scoreboard report built")

	return report, nil
}

// Aggregate turns a raw batch into a Report without any I/O
func (s *ScoreboardService) Aggregate(batch scoring.Batch, today time.Time) *Report {
	today = scoring.DateOf(today)
	records, diag := scoring.Normalize(batch, s.calendar)
	logDiagnostics(diag)

	report := &Report{
		GeneratedFor:      today,
		Calendar:          s.calendar,
		Records:           records,
		Diagnostics:       diag,
		Leaderboard:       scoring.BuildLeaderboard(records, s.calendar.TotalWeeks),
		CurrentWeek:       s.calendar.CurrentWeek(today),
		Started:           s.calendar.Started(today),
		Trends:            scoring.CompareWeekToDate(records, s.calendar, today, s.runningCategory),
		Runners:           scoring.RunnerTotals(records, s.runningCategory),
		WeeklyRunDistance: scoring.WeeklyRunDistance(records, s.runningCategory, s.calendar.TotalWeeks),
		runningCategory:   s.runningCategory,
	}
	report.Mover, report.HasMover = report.Leaderboard.BiggestMover(report.CurrentWeek)

	return report
}

func logDiagnostics(diag scoring.Diagnostics) {
	if len(diag.MissingColumns) > 0 {
		logrus.WithField("columns", diag.MissingColumns).Warn("export is missing columns; zones default to 0")
	}
	if diag.DroppedRows > 0 {
		logrus.WithFields(logrus.Fields{
			"dropped": diag.DroppedRows,
			"rows":    diag.InputRows,
		}).Warn("dropped rows with unparseable dates")
	}
	if diag.InvalidNumeric > 0 {
		logrus.WithField("cells", diag.InvalidNumeric).Debug("non-numeric cells treated as missing")
	}
}
