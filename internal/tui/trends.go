package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"scoreboard/internal/scoring"
	"scoreboard/internal/service"
)

// TrendsModel is the week-to-date trends screen model
type TrendsModel struct {
	units  Units
	report *service.Report
	width  int
}

// NewTrendsModel creates a new trends model
func NewTrendsModel(units Units) TrendsModel {
	return TrendsModel{units: units}
}

// Init initializes the trends screen
func (m TrendsModel) Init() tea.Cmd {
	return nil
}

func (m TrendsModel) update(msg tea.Msg) (TrendsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.err == nil {
			m.report = msg.report
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the trends screen
func (m TrendsModel) View() string {
	if m.report == nil {
		return "\n  No data available. Press 'r' to load the scoreboard."
	}

	var sections []string
	sections = append(sections, m.renderWeekToDate())

	if chart := m.renderDistanceChart(); chart != "" {
		sections = append(sections, chart)
	}
	sections = append(sections, m.renderWeeklyPoints())
	sections = append(sections, m.renderTopRunners())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m TrendsModel) renderWeekToDate() string {
	r := m.report
	current, previous := scoring.WeekToDate(r.GeneratedFor)
	title := cardTitleStyle.Render(fmt.Sprintf("Week to Date  %s - %s vs %s - %s",
		current.Start.Format("Jan 2"), current.End.Format("Jan 2"),
		previous.Start.Format("Jan 2"), previous.End.Format("Jan 2")))

	if !r.Trends.Points.Applicable {
		note := mutedStyle.Render("The competition starts " + r.Calendar.Start.Format("Monday, Jan 2") + ".")
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, note))
	}

	t := r.Trends
	lines := []string{
		RenderMetric("Running distance", m.units.FormatDistance(t.Distance.Current), formatTrend(t.Distance)),
		RenderMetric("Activities", fmt.Sprintf("%.0f", t.Activities.Current), formatTrend(t.Activities)),
		RenderMetric("Points", formatPoints(t.Points.Current), formatTrend(t.Points)),
		"",
		mutedStyle.Render(fmt.Sprintf("Same days last week: %s · %.0f activities · %s pts",
			m.units.FormatDistance(t.Distance.Previous), t.Activities.Previous, formatPoints(t.Points.Previous))),
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, lines...)...))
}

func (m TrendsModel) renderDistanceChart() string {
	weekly := m.report.WeeklyRunDistance
	if len(weekly) < 2 {
		return ""
	}

	title := cardTitleStyle.Render(fmt.Sprintf("Group Running Distance by Week (%s)", m.units.DistanceLabelLong()))

	width := 60
	if m.width > 20 && m.width-20 < width {
		width = m.width - 20
	}
	graph := asciigraph.Plot(weekly,
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Precision(1),
	)

	labels := make([]string, len(weekly))
	for i := range weekly {
		labels[i] = "W" + itoa(i+1)
	}
	axis := mutedStyle.Render("weeks: " + strings.Join(labels, " "))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph, axis))
}

func (m TrendsModel) renderWeeklyPoints() string {
	title := cardTitleStyle.Render("Week Totals")
	lb := m.report.Leaderboard

	totals := make([]float64, lb.TotalWeeks)
	for _, row := range lb.Rows {
		for i, p := range row.WeekPoints {
			totals[i] += p
		}
	}

	var maxTotal float64
	for _, t := range totals {
		if t > maxTotal {
			maxTotal = t
		}
	}

	lines := []string{}
	for i, t := range totals {
		week := i + 1
		label := fmt.Sprintf("Week %-2d", week)
		if week == m.report.CurrentWeek && m.report.Started {
			label = navActiveStyle.Render(label)
		}
		fraction := 0.0
		if maxTotal > 0 {
			fraction = t / maxTotal
		}
		lines = append(lines, fmt.Sprintf("%s  %s  %8s pts", label, RenderProgressBar(fraction, 30), formatPoints(t)))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, lines...)...))
}

func (m TrendsModel) renderTopRunners() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Top Runners (%q workouts)", m.report.RunningCategory()))

	runners := m.report.TopRunners(service.TopRunnersLimit)
	if len(runners) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No running activities yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-4s  %-20s  %10s  %9s  %10s",
		"#", "Participant", "Distance", "Time", "Pace"))

	rows := []string{header}
	for i, r := range runners {
		rows = append(rows, tableRowStyle.Render(fmt.Sprintf("%-4d  %-20s  %10s  %9s  %10s",
			i+1,
			truncateName(r.Participant, 20),
			m.units.FormatDistance(r.Distance),
			formatMinutes(r.Duration),
			m.units.FormatPace(r.Pace),
		)))
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}
