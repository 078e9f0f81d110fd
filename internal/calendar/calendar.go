package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Day is one calendar date inside the active month view. ID is the day
// identifier used as the timetable's partition key; it is derived from the
// weekday name plus the day/month numerals and never changes once built.
type Day struct {
	ID      string
	Date    time.Time // midnight in the builder's location
	Weekday time.Weekday
}

// DayID derives the canonical day identifier for a date, e.g. "Monday 1/9".
func DayID(t time.Time) string {
	return fmt.Sprintf("%s %d/%d", t.Weekday().String(), t.Day(), int(t.Month()))
}

// MonthDays enumerates every day of the given month in order, independent of
// any schedule state.
func MonthDays(year int, month time.Month, loc *time.Location) []Day {
	if loc == nil {
		loc = time.Local
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := make([]Day, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, Day{
			ID:      DayID(d),
			Date:    d,
			Weekday: d.Weekday(),
		})
	}
	return days
}

// ParseWeekday maps a weekday name (full or three-letter, any case) to a
// time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := wd.String()
		if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday: %s", name)
}
