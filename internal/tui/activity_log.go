package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"scoreboard/internal/scoring"
	"scoreboard/internal/service"
)

// ActivityLogModel is the filterable activity log screen model
type ActivityLogModel struct {
	units        Units
	report       *service.Report
	participants []string

	week        int // 0 = all weeks
	participant int // index into participants, -1 = everyone

	filtered []scoring.ActivityRecord
	cursor   int
	offset   int
	pageSize int
}

// NewActivityLogModel creates a new activity log model
func NewActivityLogModel(units Units) ActivityLogModel {
	return ActivityLogModel{
		units:       units,
		participant: -1,
		pageSize:    15,
	}
}

// Init initializes the activity log screen
func (m ActivityLogModel) Init() tea.Cmd {
	return nil
}

func (m ActivityLogModel) update(msg tea.Msg) (ActivityLogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.err != nil {
			return m, nil
		}
		selected := m.selectedParticipant()
		m.report = msg.report
		m.participants = msg.report.Participants()
		m.participant = indexOf(m.participants, selected)
		if m.week > msg.report.Calendar.TotalWeeks {
			m.week = 0
		}
		m.applyFilter()

	case tea.KeyMsg:
		if m.report == nil {
			return m, nil
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.pageSize {
					m.offset = m.cursor - m.pageSize + 1
				}
			}
		case "pgup":
			m.offset -= m.pageSize
			if m.offset < 0 {
				m.offset = 0
			}
			m.cursor = m.offset
		case "pgdown":
			if m.offset+m.pageSize < len(m.filtered) {
				m.offset += m.pageSize
				m.cursor = m.offset
			}
		case "]":
			m.week = (m.week + 1) % (m.report.Calendar.TotalWeeks + 1)
			m.applyFilter()
		case "[":
			m.week--
			if m.week < 0 {
				m.week = m.report.Calendar.TotalWeeks
			}
			m.applyFilter()
		case "tab":
			m.participant++
			if m.participant >= len(m.participants) {
				m.participant = -1
			}
			m.applyFilter()
		case "shift+tab":
			m.participant--
			if m.participant < -1 {
				m.participant = len(m.participants) - 1
			}
			m.applyFilter()
		case "c":
			m.week = 0
			m.participant = -1
			m.applyFilter()
		}
	}
	return m, nil
}

func (m *ActivityLogModel) applyFilter() {
	m.filtered = m.report.ActivityLog(m.week, m.selectedParticipant())
	m.cursor = 0
	m.offset = 0
}

func (m ActivityLogModel) selectedParticipant() string {
	if m.participant < 0 || m.participant >= len(m.participants) {
		return ""
	}
	return m.participants[m.participant]
}

// View renders the activity log
func (m ActivityLogModel) View() string {
	if m.report == nil {
		return "\n  No data available. Press 'r' to load the scoreboard."
	}

	var sections []string

	who := m.selectedParticipant()
	if who == "" {
		who = "Everyone"
	}
	filter := statusStyle.Render(fmt.Sprintf("[%s]  [%s]", weekLabel(m.week), who))
	title := cardTitleStyle.Render(fmt.Sprintf("Activity Log (%d activities)", len(m.filtered))) + "  " + filter
	sections = append(sections, title)

	if len(m.filtered) == 0 {
		sections = append(sections, "\n  No activities match the current filter.")
		sections = append(sections, statusStyle.Render("\n  [/]: week  tab: participant  c: clear filters"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections, m.renderSummary())

	header := tableHeaderStyle.Render(fmt.Sprintf("   %-10s  %-18s  %-14s  %8s  %9s  %4s %4s %4s %4s %4s  %6s  %4s",
		"Date", "Participant", "Workout", "Time", "Distance", "Z1", "Z2", "Z3", "Z4", "Z5", "Points", "Week"))
	sections = append(sections, header)

	end := m.offset + m.pageSize
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for i := m.offset; i < end; i++ {
		a := m.filtered[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		row := fmt.Sprintf("%s%-10s  %-18s  %-14s  %8s  %9s  %4.0f %4.0f %4.0f %4.0f %4.0f  %6s  %4d",
			cursor,
			a.Date.Format("2006-01-02"),
			truncateName(a.Participant, 18),
			truncateName(a.WorkoutType, 14),
			formatOptionalMinutes(a.TotalDuration),
			m.units.FormatOptionalDistance(a.TotalDistance),
			a.Zones[0], a.Zones[1], a.Zones[2], a.Zones[3], a.Zones[4],
			formatPoints(a.Points),
			a.Week,
		)

		if i == m.cursor {
			sections = append(sections, tableSelectedStyle.Render(row))
		} else {
			sections = append(sections, tableRowStyle.Render(row))
		}
	}

	help := statusStyle.Render(fmt.Sprintf("\n  %d-%d of %d  j/k: navigate  pgup/pgdn: page  [/]: week  tab: participant  c: clear",
		m.offset+1, end, len(m.filtered)))
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSummary totals the filtered activities
func (m ActivityLogModel) renderSummary() string {
	var points, minutes, distance float64
	for _, a := range m.filtered {
		points += a.Points
		minutes += a.Duration()
		distance += a.Distance()
	}
	return mutedStyle.Render(fmt.Sprintf("  %s pts · %s · %s", formatPoints(points), formatMinutes(minutes), m.units.FormatDistance(distance)))
}

func indexOf(items []string, want string) int {
	if want == "" {
		return -1
	}
	for i, item := range items {
		if item == want {
			return i
		}
	}
	return -1
}
