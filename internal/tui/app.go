package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scoreboard/internal/service"
)

// Screen identifiers
type Screen int

const (
	ScreenLeaderboard Screen = iota
	ScreenActivityLog
	ScreenTrends
	ScreenIndividual
	ScreenHelp
)

// ReportLoader builds the scoreboard report for a reference day
type ReportLoader interface {
	BuildReport(ctx context.Context, today time.Time) (*service.Report, error)
}

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	leaderboard LeaderboardModel
	activityLog ActivityLogModel
	trends      TrendsModel
	individual  IndividualModel
	help        HelpModel

	loader ReportLoader
	ctx    context.Context
	cancel context.CancelFunc
	today  time.Time
	title  string

	report  *service.Report
	loading bool
	err     error

	// Window dimensions
	width  int
	height int

	// Status message
	status string
}

// NewApp creates a new App. today is the reference day for week and trend figures.
// Report loads run under ctx and are cancelled when the app quits.
func NewApp(ctx context.Context, loader ReportLoader, title string, today time.Time, units Units) *App {
	if title == "" {
		title = "Competition Scoreboard"
	}
	ctx, cancel := context.WithCancel(ctx)
	return &App{
		screen:      ScreenLeaderboard,
		loader:      loader,
		ctx:         ctx,
		cancel:      cancel,
		today:       today,
		title:       title,
		loading:     true,
		leaderboard: NewLeaderboardModel(units),
		activityLog: NewActivityLogModel(units),
		trends:      NewTrendsModel(units),
		individual:  NewIndividualModel(units, 0, 0),
		help:        NewHelpModel(),
	}
}

// reportLoadedMsg carries a freshly built report to every screen
type reportLoadedMsg struct {
	report *service.Report
	err    error
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.loadReport
}

func (a *App) loadReport() tea.Msg {
	report, err := a.loader.BuildReport(a.ctx, a.today)
	return reportLoadedMsg{report: report, err: err}
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			a.cancel()
			return a, tea.Quit
		case "1":
			a.screen = ScreenLeaderboard
			return a, nil
		case "2":
			a.screen = ScreenActivityLog
			return a, nil
		case "3":
			a.screen = ScreenTrends
			return a, nil
		case "4":
			a.screen = ScreenIndividual
			return a, nil
		case "r":
			if a.loading {
				return a, nil
			}
			a.loading = true
			a.status = "Refreshing..."
			return a, a.loadReport
		case "?":
			if a.screen != ScreenHelp {
				a.prevScreen = a.screen
				a.screen = ScreenHelp
			}
			return a, nil
		case "esc":
			if a.screen == ScreenHelp {
				a.screen = a.prevScreen
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every screen tracks the window size
		return a, a.broadcast(msg)

	case reportLoadedMsg:
		a.loading = false
		a.err = msg.err
		a.status = ""
		if msg.err == nil {
			a.report = msg.report
			a.status = a.reportStatus()
		}
		return a, a.broadcast(msg)

	case openIndividualMsg:
		a.screen = ScreenIndividual
		var cmd tea.Cmd
		a.individual, cmd = a.individual.update(msg)
		return a, cmd
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenLeaderboard:
		a.leaderboard, cmd = a.leaderboard.update(msg)
	case ScreenActivityLog:
		a.activityLog, cmd = a.activityLog.update(msg)
	case ScreenTrends:
		a.trends, cmd = a.trends.update(msg)
	case ScreenIndividual:
		a.individual, cmd = a.individual.update(msg)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// broadcast hands a message to every screen
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds [4]tea.Cmd
	a.leaderboard, cmds[0] = a.leaderboard.update(msg)
	a.activityLog, cmds[1] = a.activityLog.update(msg)
	a.trends, cmds[2] = a.trends.update(msg)
	a.individual, cmds[3] = a.individual.update(msg)
	return tea.Batch(cmds[:]...)
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch {
	case a.screen == ScreenHelp:
		content = a.help.View()
	case a.report == nil && a.loading:
		content = "\n  Loading scoreboard..."
	case a.report == nil && a.err != nil:
		content = errorStyle.Render(fmt.Sprintf("\n  Error: %v", a.err)) +
			statusStyle.Render("\n  Press 'r' to retry")
	default:
		switch a.screen {
		case ScreenLeaderboard:
			content = a.leaderboard.View()
		case ScreenActivityLog:
			content = a.activityLog.View()
		case ScreenTrends:
			content = a.trends.View()
		case ScreenIndividual:
			content = a.individual.View()
		}
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	return headerStyle.Render(a.title + " · " + a.today.Format("Mon Jan 2, 2006"))
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Leaderboard", ScreenLeaderboard},
		{"2", "Activity Log", ScreenActivityLog},
		{"3", "Trends", ScreenTrends},
		{"4", "Individual", ScreenIndividual},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[r] Refresh  [q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	var lines []string
	if a.err != nil && a.report != nil {
		// A failed refresh keeps the previous report on screen
		lines = append(lines, errorStyle.Render(fmt.Sprintf("Refresh failed: %v", a.err)))
	}
	if a.status != "" {
		lines = append(lines, a.status)
	}
	if len(lines) == 0 {
		return ""
	}
	return statusStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// reportStatus summarizes data quality problems of the current report
func (a *App) reportStatus() string {
	if a.report == nil {
		return ""
	}
	d := a.report.Diagnostics
	status := fmt.Sprintf("%d activities from %s", len(a.report.Records), a.report.Source)
	if d.DroppedRows > 0 {
		status += warningStyle.Render(fmt.Sprintf("  ·  %d rows skipped (bad date)", d.DroppedRows))
	}
	if d.InvalidNumeric > 0 {
		status += warningStyle.Render(fmt.Sprintf("  ·  %d unreadable numbers", d.InvalidNumeric))
	}
	if len(d.MissingColumns) > 0 {
		status += warningStyle.Render(fmt.Sprintf("  ·  missing columns: %v", d.MissingColumns))
	}
	return status
}
