package scheduler

import (
	"time"

	"github.com/alexanderramin/loadboard/internal/domain"
)

// DefaultHorizonDays is the number of calendar days a board shows.
const DefaultHorizonDays = 15

// CalendarDay is one date of the scheduling window.
type CalendarDay struct {
	Date      time.Time
	IsWeekend bool
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// BuildWindow returns n consecutive calendar days starting at today's date.
// n <= 0 falls back to DefaultHorizonDays.
func BuildWindow(today time.Time, n int) []CalendarDay {
	if n <= 0 {
		n = DefaultHorizonDays
	}
	start := domain.DateOf(today)
	days := make([]CalendarDay, n)
	for i := range days {
		d := start.AddDate(0, 0, i)
		days[i] = CalendarDay{Date: d, IsWeekend: IsWeekend(d)}
	}
	return days
}
