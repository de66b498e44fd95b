package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Keyboard Shortcuts"))

	sections = append(sections, m.renderSection("Navigation", []keyHelp{
		{"1", "Leaderboard"},
		{"2", "Activity log"},
		{"3", "Week-to-date trends"},
		{"4", "Individual analysis"},
		{"r", "Reload the export"},
		{"?", "Help (this screen)"},
		{"esc", "Close help"},
		{"q", "Quit"},
	}))

	sections = append(sections, m.renderSection("Leaderboard", []keyHelp{
		{"h / l", "Previous / next week"},
		{"j / k", "Select participant"},
		{"enter", "Open individual analysis"},
	}))

	sections = append(sections, m.renderSection("Activity Log", []keyHelp{
		{"[ / ]", "Previous / next week filter"},
		{"tab", "Next participant filter"},
		{"c", "Clear filters"},
		{"j / k", "Move cursor"},
		{"pgup / pgdn", "Page"},
	}))

	sections = append(sections, m.renderSection("Individual", []keyHelp{
		{"tab / shift+tab", "Next / previous participant"},
		{"j / k", "Scroll"},
	}))

	sections = append(sections, m.renderScoringHelp())

	return strings.Join(sections, "\n")
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderScoringHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Scoring"))
	lines = append(lines, "")

	rules := []struct {
		name string
		desc string
	}{
		{"Points", "Minutes in zone N earn N points: Z1×1 + Z2×2 + Z3×3 + Z4×4 + Z5×5."},
		{"Weeks", "Week 1 runs from the start date to its configured end; later weeks are 7 days."},
		{"Biggest mover", "Most points scored in the selected week."},
		{"Week to date", "Monday through today compared with the same days of last week."},
		{"Running", "Distance figures count workouts whose type contains the running category."},
	}

	for _, rule := range rules {
		lines = append(lines, "  "+helpKeyStyle.Render(rule.name))
		lines = append(lines, "  "+mutedStyle.Render(rule.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
