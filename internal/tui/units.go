package tui

import (
	"fmt"

	"scoreboard/internal/config"
	"scoreboard/internal/scoring"
)

// Units labels distances in the unit the export was recorded in.
// Values are never converted; the export carries no unit of its own.
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// FormatDistance formats a distance with its unit label
func (u Units) FormatDistance(d float64) string {
	return fmt.Sprintf("%.1f %s", d, u.DistanceLabel())
}

// FormatOptionalDistance formats a possibly missing distance
func (u Units) FormatOptionalDistance(d *float64) string {
	if d == nil {
		return "-"
	}
	return u.FormatDistance(*d)
}

// FormatPace formats minutes per unit as m:ss/unit
func (u Units) FormatPace(minutesPerUnit float64) string {
	pace := scoring.FormatPace(minutesPerUnit)
	if minutesPerUnit <= 0 {
		return pace
	}
	return pace + "/" + u.DistanceLabel()
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.cfg.DistanceUnit == "km" {
		return "km"
	}
	return "mi"
}

// DistanceLabelLong returns the long unit label ("miles" or "km")
func (u Units) DistanceLabelLong() string {
	if u.cfg.DistanceUnit == "km" {
		return "km"
	}
	return "miles"
}

// PaceLabel returns the pace unit label ("min/mi" or "min/km")
func (u Units) PaceLabel() string {
	return "min/" + u.DistanceLabel()
}
