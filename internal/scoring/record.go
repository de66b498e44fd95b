package scoring

import "time"

// ActivityRecord is one normalized, scored exercise session
type ActivityRecord struct {
	Date          time.Time  // calendar day, UTC midnight
	Participant   string     // empty when the export had none
	WorkoutType   string
	TotalDuration *float64   // minutes, nil when missing or invalid
	TotalDistance *float64   // nil when missing or invalid
	Zones         [5]float64 // minutes in HR zones 1-5
	Points        float64
	Week          int
}

// Duration returns the duration in minutes, 0 when missing
func (r ActivityRecord) Duration() float64 {
	if r.TotalDuration == nil {
		return 0
	}
	return *r.TotalDuration
}

// Distance returns the distance, 0 when missing
func (r ActivityRecord) Distance() float64 {
	if r.TotalDistance == nil {
		return 0
	}
	return *r.TotalDistance
}

// Diagnostics describes what normalization had to repair or discard
type Diagnostics struct {
	InputRows      int
	DroppedRows    int      // rows without a parseable date
	InvalidNumeric int      // non-blank numeric cells that could not be used
	MissingColumns []string // canonical columns absent from the export
}

// HasColumn reports whether a canonical column was present in the export
func (d Diagnostics) HasColumn(name string) bool {
	for _, c := range d.MissingColumns {
		if c == name {
			return false
		}
	}
	return true
}
