package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scoreboard/internal/scoring"
	"scoreboard/internal/service"
)

// LeaderboardModel is the leaderboard screen model
type LeaderboardModel struct {
	units  Units
	report *service.Report
	week   int // week shown in the "Week N" column and mover card
	cursor int
}

// NewLeaderboardModel creates a new leaderboard model
func NewLeaderboardModel(units Units) LeaderboardModel {
	return LeaderboardModel{units: units}
}

// Init initializes the leaderboard
func (m LeaderboardModel) Init() tea.Cmd {
	return nil
}

// openIndividualMsg asks the app to show one participant's analysis
type openIndividualMsg struct {
	participant string
}

func (m LeaderboardModel) update(msg tea.Msg) (LeaderboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.err != nil {
			return m, nil
		}
		m.report = msg.report
		m.week = msg.report.CurrentWeek
		if m.cursor >= len(msg.report.Leaderboard.Rows) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		if m.report == nil {
			return m, nil
		}
		rows := m.report.Leaderboard.Rows
		switch msg.String() {
		case "left", "h":
			if m.week > 1 {
				m.week--
			}
		case "right", "l":
			if m.week < m.report.Leaderboard.TotalWeeks {
				m.week++
			}
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(rows)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(rows) {
				participant := rows[m.cursor].Participant
				return m, func() tea.Msg { return openIndividualMsg{participant: participant} }
			}
		}
	}
	return m, nil
}

// View renders the leaderboard
func (m LeaderboardModel) View() string {
	if m.report == nil {
		return "\n  No data available. Press 'r' to load the scoreboard."
	}

	var sections []string

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, m.renderCompetitionCard(), "  ", m.renderMoverCard())
	sections = append(sections, topRow)
	sections = append(sections, m.renderStandings())
	sections = append(sections, m.renderRecentActivities())

	help := statusStyle.Render("h/l: change week  j/k: select  enter: individual analysis")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m LeaderboardModel) renderCompetitionCard() string {
	title := cardTitleStyle.Render("Competition")
	r := m.report
	lb := r.Leaderboard

	var weekLine string
	if r.Started {
		weekLine = RenderMetric("Current week", fmt.Sprintf("%d of %d", r.CurrentWeek, r.Calendar.TotalWeeks), "")
	} else {
		weekLine = RenderMetric("Starts", r.Calendar.Start.Format("Mon Jan 2"), "")
	}

	var total float64
	for _, row := range lb.Rows {
		total += row.Points
	}

	leader := "-"
	if len(lb.Rows) > 0 {
		leader = truncateName(lb.Rows[0].Participant, 16)
	}

	lines := []string{
		weekLine,
		RenderMetric("Week dates", m.weekDates(m.week), ""),
		RenderMetric("Days left", itoa(daysLeft(r.Calendar, r.GeneratedFor)), ""),
		RenderMetric("Participants", itoa(len(lb.Rows)), ""),
		RenderMetric("Total points", formatPoints(total), ""),
		RenderMetric("Leader", leader, ""),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(44).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m LeaderboardModel) renderMoverCard() string {
	title := cardTitleStyle.Render(fmt.Sprintf("Biggest Mover · Week %d", m.week))

	mover, ok := m.report.MoverFor(m.week)
	if !ok {
		return cardStyle.Width(38).Render(lipgloss.JoinVertical(lipgloss.Left, title,
			mutedStyle.Render("No points scored this week yet")))
	}

	lines := []string{
		metricValueStyle.Render(truncateName(mover.Participant, 24)),
		trendUpStyle.Render("+" + formatPoints(mover.Points) + " pts"),
	}
	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Width(38).Render(lipgloss.JoinVertical(lipgloss.Left, title, content))
}

func (m LeaderboardModel) renderStandings() string {
	title := cardTitleStyle.Render("Leaderboard")
	rows := m.report.Leaderboard.Rows

	if len(rows) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No activities yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-5s  %-20s  %9s  %9s  %9s",
		"Rank", "Participant", "Points", "Behind", fmt.Sprintf("Week %d", m.week)))

	lines := []string{header}
	for i, row := range rows {
		behind := "-"
		if row.PointsBehind > 0 {
			behind = formatPoints(row.PointsBehind)
		}

		text := fmt.Sprintf("%-20s  %9s  %9s  %9s",
			truncateName(row.Participant, 20),
			formatPoints(row.Points),
			behind,
			formatPoints(row.Week(m.week)),
		)

		if i == m.cursor {
			lines = append(lines, tableSelectedStyle.Render(fmt.Sprintf("%-5s  %s", "#"+itoa(row.Rank), text)))
		} else {
			rank := lipgloss.NewStyle().Width(5).Render(RenderRank(row.Rank))
			lines = append(lines, tableRowStyle.Render(rank+"  "+text))
		}
	}

	table := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func (m LeaderboardModel) renderRecentActivities() string {
	title := cardTitleStyle.Render("Recent Activities")

	recent := m.report.Recent(service.RecentActivitiesLimit)
	if len(recent) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No activities yet"))
	}

	header := tableHeaderStyle.Render(fmt.Sprintf("%-10s  %-18s  %-14s  %8s  %9s  %7s",
		"Date", "Participant", "Workout", "Time", "Distance", "Points"))

	rows := []string{header}
	for _, a := range recent {
		rows = append(rows, tableRowStyle.Render(fmt.Sprintf("%-10s  %-18s  %-14s  %8s  %9s  %7s",
			a.Date.Format("Mon Jan 02"),
			truncateName(a.Participant, 18),
			truncateName(a.WorkoutType, 14),
			formatOptionalMinutes(a.TotalDuration),
			m.units.FormatOptionalDistance(a.TotalDistance),
			formatPoints(a.Points),
		)))
	}

	table := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, table))
}

func (m LeaderboardModel) weekDates(week int) string {
	w, ok := m.report.Calendar.WeekRange(week)
	if !ok {
		return "-"
	}
	return w.Start.Format("Jan 2") + " - " + w.End.Format("Jan 2")
}

// weekLabel is shared by screens that select a week; 0 means every week
func weekLabel(week int) string {
	if week == 0 {
		return "All weeks"
	}
	return "Week " + itoa(week)
}

// daysLeft counts the days from today through the last competition day
func daysLeft(cal scoring.Calendar, today time.Time) int {
	last, ok := cal.WeekRange(cal.TotalWeeks)
	if !ok {
		return 0
	}
	days := int(last.End.Sub(scoring.DateOf(today)).Hours()/24) + 1
	if days < 0 {
		return 0
	}
	return days
}
