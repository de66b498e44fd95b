package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"scoreboard/internal/scoring"
	"scoreboard/internal/service"
)

// viewportChrome is the number of lines reserved for header, nav and footer
const viewportChrome = 8

// IndividualModel is the per-participant analysis screen model
type IndividualModel struct {
	units        Units
	report       *service.Report
	participants []string
	selected     int
	viewport     viewport.Model
	width        int
	height       int
	ready        bool
}

// NewIndividualModel creates a new individual analysis model
func NewIndividualModel(units Units, width, height int) IndividualModel {
	m := IndividualModel{
		units:  units,
		width:  width,
		height: height,
	}

	if width > 0 && height > viewportChrome {
		m.viewport = viewport.New(width, height-viewportChrome)
		m.ready = true
	}

	return m
}

// Init initializes the individual screen
func (m IndividualModel) Init() tea.Cmd {
	return nil
}

func (m IndividualModel) update(msg tea.Msg) (IndividualModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.err != nil {
			return m, nil
		}
		current := m.Participant()
		m.report = msg.report
		m.participants = msg.report.Participants()
		m.selected = 0
		if i := indexOf(m.participants, current); i >= 0 {
			m.selected = i
		}
		m.refresh()
		return m, nil

	case openIndividualMsg:
		if i := indexOf(m.participants, msg.participant); i >= 0 {
			m.selected = i
			m.refresh()
			m.viewport.GotoTop()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		height := msg.Height - viewportChrome
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			if len(m.participants) > 0 {
				m.selected = (m.selected + 1) % len(m.participants)
				m.refresh()
				m.viewport.GotoTop()
			}
			return m, nil
		case "shift+tab":
			if len(m.participants) > 0 {
				m.selected = (m.selected - 1 + len(m.participants)) % len(m.participants)
				m.refresh()
				m.viewport.GotoTop()
			}
			return m, nil
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// Participant returns the participant currently shown
func (m IndividualModel) Participant() string {
	if m.selected < 0 || m.selected >= len(m.participants) {
		return ""
	}
	return m.participants[m.selected]
}

func (m *IndividualModel) refresh() {
	if m.ready && m.report != nil {
		m.viewport.SetContent(m.renderContent())
	}
}

// View renders the individual analysis screen
func (m IndividualModel) View() string {
	if m.report == nil {
		return "\n  No data available. Press 'r' to load the scoreboard."
	}

	if len(m.participants) == 0 {
		return "\n  No participants yet."
	}

	footer := statusStyle.Render("  tab/shift+tab: participant  j/k or arrows: scroll")

	if !m.ready {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderContent(), footer)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m IndividualModel) renderContent() string {
	who := m.Participant()
	a, ok := m.report.Individual(who)
	if !ok {
		return "No activities for " + who
	}

	var sections []string
	sections = append(sections, m.renderHeader(a))
	sections = append(sections, m.renderTrainingTime(a))
	sections = append(sections, m.renderZones(a))
	if chart := m.renderCumulative(a); chart != "" {
		sections = append(sections, chart)
	}
	sections = append(sections, m.renderBreakdown(a))
	sections = append(sections, m.renderConsistency(a))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m IndividualModel) renderHeader(a scoring.ParticipantAnalysis) string {
	title := cardTitleStyle.Render(fmt.Sprintf("%s  (%d of %d)", a.Participant, m.selected+1, len(m.participants)))

	row, ok := m.report.Leaderboard.Row(a.Participant)
	if !ok {
		return title
	}
	standing := fmt.Sprintf("%s  ·  %s pts", RenderRank(row.Rank), formatPoints(row.Points))
	if row.PointsBehind > 0 {
		standing += mutedStyle.Render(fmt.Sprintf("  ·  %s behind the leader", formatPoints(row.PointsBehind)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, standing, "")
}

func (m IndividualModel) renderTrainingTime(a scoring.ParticipantAnalysis) string {
	title := sectionStyle.Render("Training Time vs Group Average")

	trend := ""
	if a.GroupAvgDuration > 0 {
		diff := a.PctOfGroupAvg - 100
		if diff >= 0 {
			trend = fmt.Sprintf("+%.0f%%", diff)
		} else {
			trend = fmt.Sprintf("%.0f%%", diff)
		}
	}

	lines := []string{
		title,
		RenderMetric("Total time", formatMinutes(a.TotalDuration), trend),
		RenderMetric("Group average", formatMinutes(a.GroupAvgDuration), ""),
		RenderMetric("Of group average", fmt.Sprintf("%.0f%%", a.PctOfGroupAvg), ""),
		"",
	}
	return strings.Join(lines, "\n")
}

func (m IndividualModel) renderZones(a scoring.ParticipantAnalysis) string {
	title := sectionStyle.Render("Heart Rate Zone Minutes vs Group Average")

	var maxMinutes float64
	for i := range a.Zones {
		maxMinutes = max(maxMinutes, a.Zones[i], a.GroupAvgZones[i])
	}

	lines := []string{title}
	for i := range a.Zones {
		own, avg := 0.0, 0.0
		if maxMinutes > 0 {
			own = a.Zones[i] / maxMinutes
			avg = a.GroupAvgZones[i] / maxMinutes
		}
		lines = append(lines,
			fmt.Sprintf("Zone %d  you  %s %6.0fm", i+1, RenderZoneBar(i, own, 30), a.Zones[i]),
			mutedStyle.Render(fmt.Sprintf("        avg  %s %6.0fm", strings.Repeat("·", int(avg*30))+strings.Repeat(" ", 30-int(avg*30)), a.GroupAvgZones[i])),
		)
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m IndividualModel) renderCumulative(a scoring.ParticipantAnalysis) string {
	if len(a.Cumulative) == 0 {
		return ""
	}
	title := sectionStyle.Render("Cumulative Points by Week")

	var steps []string
	for _, wp := range a.Cumulative {
		steps = append(steps, fmt.Sprintf("W%d %s", wp.Week, formatPoints(wp.Cumulative)))
	}
	summary := mutedStyle.Render(strings.Join(steps, "  →  "))

	if len(a.Cumulative) < 2 {
		return lipgloss.JoinVertical(lipgloss.Left, title, summary, "")
	}

	series := make([]float64, len(a.Cumulative))
	for i, wp := range a.Cumulative {
		series[i] = wp.Cumulative
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(6),
		asciigraph.Width(50),
		asciigraph.Precision(0),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, graph, summary, "")
}

func (m IndividualModel) renderBreakdown(a scoring.ParticipantAnalysis) string {
	title := sectionStyle.Render("Activity Breakdown")

	total := 0
	for _, c := range a.ByTypeCount {
		total += c.Count
	}

	lines := []string{title}
	for _, c := range a.ByTypeCount {
		share := float64(c.Count) / float64(total)
		lines = append(lines, fmt.Sprintf("%-16s %s %3d  (%.0f%%)", truncateName(c.Type, 16), RenderProgressBar(share, 20), c.Count, share*100))
	}

	if len(a.ByTypeDuration) > 0 {
		lines = append(lines, "", mutedStyle.Render("Time by workout type"))
		for _, d := range a.ByTypeDuration {
			lines = append(lines, fmt.Sprintf("%-16s %9s", truncateName(d.Type, 16), formatMinutes(d.Minutes)))
		}
	}
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m IndividualModel) renderConsistency(a scoring.ParticipantAnalysis) string {
	title := sectionStyle.Render("Consistency")
	share := 0.0
	if a.TotalWeeks > 0 {
		share = float64(a.ActiveWeeks) / float64(a.TotalWeeks)
	}
	line := fmt.Sprintf("%s  %d of %d weeks active", RenderProgressBar(share, 30), a.ActiveWeeks, a.TotalWeeks)
	return lipgloss.JoinVertical(lipgloss.Left, title, line)
}
