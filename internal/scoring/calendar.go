package scoring

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCalendar is returned when a competition schedule cannot be built
var ErrInvalidCalendar = errors.New("invalid competition calendar")

const (
	daysPerWeek = 7

	// maxWeek1Days bounds the irregular first week; anything longer would swallow week 2
	maxWeek1Days = 2 * daysPerWeek
)

// Calendar is the competition schedule: an irregular first week [Start, Week1End]
// followed by 7-day weeks up to TotalWeeks.
type Calendar struct {
	Start      time.Time
	Week1End   time.Time
	TotalWeeks int
}

// NewCalendar validates and builds a Calendar. Dates are reduced to calendar days.
func NewCalendar(start, week1End time.Time, totalWeeks int) (Calendar, error) {
	if totalWeeks < 1 {
		return Calendar{}, fmt.Errorf("%w: total weeks must be at least 1, got %d", ErrInvalidCalendar, totalWeeks)
	}
	if start.IsZero() || week1End.IsZero() {
		return Calendar{}, fmt.Errorf("%w: start and week 1 end dates are required", ErrInvalidCalendar)
	}

	cal := Calendar{
		Start:      DateOf(start),
		Week1End:   DateOf(week1End),
		TotalWeeks: totalWeeks,
	}
	if cal.Week1End.Before(cal.Start) {
		return Calendar{}, fmt.Errorf("%w: week 1 ends (%s) before the competition starts (%s)",
			ErrInvalidCalendar, cal.Week1End.Format(time.DateOnly), cal.Start.Format(time.DateOnly))
	}
	if days := daysBetween(cal.Start, cal.Week1End) + 1; days >= maxWeek1Days {
		return Calendar{}, fmt.Errorf("%w: week 1 spans %d days, must be shorter than %d",
			ErrInvalidCalendar, days, maxWeek1Days)
	}
	return cal, nil
}

// WeekOf maps a date to its competition week, clamped to [1, TotalWeeks].
// Dates before the start fall into week 1.
func (c Calendar) WeekOf(d time.Time) int {
	d = DateOf(d)
	if !d.After(c.Week1End) {
		return 1
	}

	week2Start := c.Week1End.AddDate(0, 0, 1)
	week := 2 + daysBetween(week2Start, d)/daysPerWeek
	return clampWeek(week, c.TotalWeeks)
}

// Started reports whether the competition has begun on the given day
func (c Calendar) Started(today time.Time) bool {
	return !DateOf(today).Before(c.Start)
}

// CurrentWeek is the week containing today (week 1 before the start)
func (c Calendar) CurrentWeek(today time.Time) int {
	return c.WeekOf(today)
}

// WeekRange returns the inclusive date span of a week
func (c Calendar) WeekRange(week int) (Window, bool) {
	if week < 1 || week > c.TotalWeeks {
		return Window{}, false
	}
	if week == 1 {
		return Window{Start: c.Start, End: c.Week1End}, true
	}
	start := c.Week1End.AddDate(0, 0, 1+daysPerWeek*(week-2))
	return Window{Start: start, End: start.AddDate(0, 0, daysPerWeek-1)}, true
}

// Week2MondayAligned reports whether week 2 starts on a Monday, which the
// week-to-date windows assume. A start date that is itself a Monday with a
// 7-day first week makes every week a plain Monday-Sunday week.
func (c Calendar) Week2MondayAligned() bool {
	return c.Week1End.AddDate(0, 0, 1).Weekday() == time.Monday
}

// Window is an inclusive range of calendar days
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the window
func (w Window) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the number of days covered
func (w Window) Days() int {
	return daysBetween(w.Start, w.End) + 1
}

// WeekToDate returns the current partial week [Monday, today] and the window
// covering the same number of days from the previous Monday.
func WeekToDate(today time.Time) (current, previous Window) {
	today = DateOf(today)
	monday := Monday(today)
	elapsed := daysBetween(monday, today)

	prevMonday := monday.AddDate(0, 0, -daysPerWeek)
	current = Window{Start: monday, End: today}
	previous = Window{Start: prevMonday, End: prevMonday.AddDate(0, 0, elapsed)}
	return current, previous
}

// Monday returns the Monday starting the Monday-Sunday week of d
func Monday(d time.Time) time.Time {
	d = DateOf(d)
	offset := (int(d.Weekday()) + 6) % daysPerWeek // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset)
}

// DateOf reduces a timestamp to its calendar day at UTC midnight,
// keeping the year, month and day as seen in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole days from a to b; both must be UTC midnights
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func clampWeek(week, total int) int {
	if week < 1 {
		return 1
	}
	if week > total {
		return total
	}
	return week
}
