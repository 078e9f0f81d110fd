package models

import "time"

// Event is a one-off compulsory commitment pinned to a specific date.
type Event struct {
	ID        string `json:"id"`
	Name      string `json:"event"`
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
	Day       string `json:"day"`        // day identifier within the month view
	Date      string `json:"date"`       // YYYY-MM-DD
}

// RecurringEvent is a weekly commitment (school, work) placed on every
// matching weekday of the generated month.
type RecurringEvent struct {
	Name      string         `json:"name"`
	StartTime string         `json:"start_time"` // HH:MM
	EndTime   string         `json:"end_time"`   // HH:MM
	Weekdays  []time.Weekday `json:"weekdays"`
}

// OnWeekday reports whether the recurring event applies to the given weekday.
func (r RecurringEvent) OnWeekday(wd time.Weekday) bool {
	for _, w := range r.Weekdays {
		if w == wd {
			return true
		}
	}
	return false
}
