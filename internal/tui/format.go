package tui

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"

	"scoreboard/internal/scoring"
)

func itoa(n int) string {
	return strconv.Itoa(n)
}

// formatPoints renders points with thousands separators and no trailing zeros
func formatPoints(p float64) string {
	if p == math.Trunc(p) {
		return humanize.Comma(int64(p))
	}
	return humanize.FormatFloat("#,###.#", p)
}

// formatMinutes renders a minute total as "1h 05m" or "45m"
func formatMinutes(minutes float64) string {
	total := int(math.Round(minutes))
	h := total / 60
	m := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func formatOptionalMinutes(minutes *float64) string {
	if minutes == nil {
		return "-"
	}
	return formatMinutes(*minutes)
}

// formatTrend renders the percentage change of a trend, e.g. "+25%"
func formatTrend(t scoring.Trend) string {
	if !t.Applicable {
		return ""
	}
	switch {
	case t.PctChange > 0:
		return fmt.Sprintf("+%.0f%%", t.PctChange)
	case t.PctChange < 0:
		return fmt.Sprintf("%.0f%%", t.PctChange)
	}
	return "±0%"
}

func truncateName(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
