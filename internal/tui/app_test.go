package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scoreboard/internal/config"
	"scoreboard/internal/scoring"
	"scoreboard/internal/service"
)

type stubLoader struct {
	report *service.Report
	err    error
	calls  int
	ctx    context.Context
}

func (s *stubLoader) BuildReport(ctx context.Context, today time.Time) (*service.Report, error) {
	s.calls++
	s.ctx = ctx
	return s.report, s.err
}

type noSource struct{}

func (noSource) Fetch(context.Context) (scoring.Batch, error) { return scoring.Batch{}, nil }
func (noSource) Kind() string                                  { return "test" }
func (noSource) Location() string                              { return "test" }

var testToday = time.Date(2025, 3, 26, 0, 0, 0, 0, time.UTC)

func testReport(t *testing.T) *service.Report {
	t.Helper()
	cal, err := scoring.NewCalendar(
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), 8)
	require.NoError(t, err)

	batch := scoring.Batch{
		Columns: []string{"Date", "Participant", "Workout Type", "Total Duration", "Total Distance",
			"Zone 1", "Zone 2", "Zone 3", "Zone 4", "Zone 5"},
		Rows: [][]any{
			{"2025-03-25", "Alice", "Run", 40, 4.5, 0, 10, 10, 0, 0},
			{"2025-03-19", "Bruno", "Bike", 60, 20, 0, 0, 0, 10, 0},
			{"2025-03-12", "Alice", "Yoga", 30, nil, 20, 0, 0, 0, 0},
			{"2025-03-11", "Bruno", "Run", 35, 3.5, 10, 0, 0, 0, 0},
		},
	}
	return service.NewScoreboardService(noSource{}, cal, service.Options{}).Aggregate(batch, testToday)
}

func newTestApp(t *testing.T, loader ReportLoader) *App {
	t.Helper()
	return NewApp(context.Background(), loader, "Spring Challenge", testToday, NewUnits(config.DisplayConfig{DistanceUnit: "mi"}))
}

// load runs the app's initial command and feeds the result back in
func load(t *testing.T, app *App) {
	t.Helper()
	cmd := app.Init()
	require.NotNil(t, cmd)
	app.Update(cmd())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_LoadsLeaderboard(t *testing.T) {
	loader := &stubLoader{report: testReport(t)}
	app := newTestApp(t, loader)

	assert.Contains(t, app.View(), "Loading scoreboard")

	load(t, app)
	assert.Equal(t, 1, loader.calls)

	view := app.View()
	assert.Contains(t, view, "Spring Challenge")
	assert.Contains(t, view, "Alice")
	assert.Contains(t, view, "Bruno")
	assert.Contains(t, view, "Biggest Mover")
	assert.Contains(t, view, "4 activities")
}

func TestApp_LoadError(t *testing.T) {
	app := newTestApp(t, &stubLoader{err: errors.New("download error 403")})
	load(t, app)

	view := app.View()
	assert.Contains(t, view, "download error 403")
	assert.Contains(t, view, "retry")
}

func TestApp_RefreshFailureKeepsReport(t *testing.T) {
	loader := &stubLoader{report: testReport(t)}
	app := newTestApp(t, loader)
	load(t, app)

	loader.report, loader.err = nil, errors.New("timeout")
	_, cmd := app.Update(key("r"))
	require.NotNil(t, cmd)
	app.Update(cmd())

	view := app.View()
	assert.Contains(t, view, "Refresh failed: timeout")
	assert.Contains(t, view, "Alice")
	assert.Equal(t, 2, loader.calls)
}

func TestApp_Navigation(t *testing.T) {
	app := newTestApp(t, &stubLoader{report: testReport(t)})
	load(t, app)

	app.Update(key("2"))
	assert.Equal(t, ScreenActivityLog, app.screen)
	assert.Contains(t, app.View(), "Activity Log (4 activities)")

	app.Update(key("3"))
	assert.Equal(t, ScreenTrends, app.screen)
	assert.Contains(t, app.View(), "Week to Date")

	app.Update(key("4"))
	assert.Equal(t, ScreenIndividual, app.screen)

	app.Update(key("?"))
	assert.Equal(t, ScreenHelp, app.screen)
	assert.Contains(t, app.View(), "Keyboard Shortcuts")

	app.Update(key("esc"))
	assert.Equal(t, ScreenIndividual, app.screen)

	_, cmd := app.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_LoadUsesProgramContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loader := &stubLoader{report: testReport(t)}
	app := NewApp(ctx, loader, "Spring Challenge", testToday, NewUnits(config.DisplayConfig{DistanceUnit: "mi"}))

	app.Init()()
	require.NotNil(t, loader.ctx)
	assert.NoError(t, loader.ctx.Err())

	cancel()
	assert.ErrorIs(t, loader.ctx.Err(), context.Canceled)
}

func TestApp_QuitCancelsLoad(t *testing.T) {
	loader := &stubLoader{report: testReport(t)}
	app := newTestApp(t, loader)

	app.Init()()
	require.NotNil(t, loader.ctx)

	app.Update(key("q"))
	assert.ErrorIs(t, loader.ctx.Err(), context.Canceled)
}

func TestApp_EnterOpensIndividual(t *testing.T) {
	app := newTestApp(t, &stubLoader{report: testReport(t)})
	load(t, app)

	// Alice leads with 70, Bruno is second with 50
	app.Update(key("j"))
	_, cmd := app.Update(key("enter"))
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, ScreenIndividual, app.screen)
	assert.Equal(t, "Bruno", app.individual.Participant())
	assert.Contains(t, app.View(), "Consistency")
}

func TestLeaderboardModel_WeekSelection(t *testing.T) {
	m := NewLeaderboardModel(NewUnits(config.DisplayConfig{}))
	m, _ = m.update(reportLoadedMsg{report: testReport(t)})
	assert.Equal(t, 3, m.week)

	m, _ = m.update(key("h"))
	m, _ = m.update(key("h"))
	m, _ = m.update(key("h"))
	assert.Equal(t, 1, m.week, "clamped at week 1")
	assert.Contains(t, m.View(), "Week 1")

	for i := 0; i < 10; i++ {
		m, _ = m.update(key("l"))
	}
	assert.Equal(t, 8, m.week, "clamped at the last week")
	assert.Contains(t, m.View(), "No points scored this week yet")
}

func TestActivityLogModel_Filters(t *testing.T) {
	m := NewActivityLogModel(NewUnits(config.DisplayConfig{}))
	m, _ = m.update(reportLoadedMsg{report: testReport(t)})
	assert.Len(t, m.filtered, 4)

	m, _ = m.update(key("]"))
	assert.Equal(t, 1, m.week)
	assert.Len(t, m.filtered, 2)

	m, _ = m.update(key("tab"))
	assert.Equal(t, "Alice", m.selectedParticipant())
	assert.Len(t, m.filtered, 1)
	assert.Contains(t, m.View(), "Yoga")

	m, _ = m.update(key("["))
	assert.Equal(t, 0, m.week)
	assert.Len(t, m.filtered, 2)

	m, _ = m.update(key("c"))
	assert.Equal(t, "", m.selectedParticipant())
	assert.Len(t, m.filtered, 4)

	// Wraps from all weeks back to the last week
	m, _ = m.update(key("["))
	assert.Equal(t, 8, m.week)
	assert.Empty(t, m.filtered)
	assert.Contains(t, m.View(), "No activities match")
}

func TestTrendsModel_View(t *testing.T) {
	m := NewTrendsModel(NewUnits(config.DisplayConfig{DistanceUnit: "km"}))
	m, _ = m.update(reportLoadedMsg{report: testReport(t)})

	view := m.View()
	assert.Contains(t, view, "Running distance")
	assert.Contains(t, view, "4.5 km")
	assert.Contains(t, view, "Top Runners")
	assert.Contains(t, view, "Week Totals")
}
