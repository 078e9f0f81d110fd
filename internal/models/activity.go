package models

import "fmt"

// Session is one contiguous placed portion of an activity's total required
// duration. Scheduling fields stay empty until the planner places it.
type Session struct {
	ID            string  `json:"session_id"`
	DurationMin   int     `json:"duration_minutes"`
	DurationHours float64 `json:"duration_hours"`
	ScheduledDay  string  `json:"scheduled_day,omitempty"`  // day identifier, e.g. "Monday 1/9"
	ScheduledTime string  `json:"scheduled_time,omitempty"` // HH:MM
	ScheduledDate string  `json:"scheduled_date,omitempty"` // YYYY-MM-DD
	Completed     bool    `json:"is_completed"`
}

// Activity is a flexible commitment with a total-hours budget and a deadline.
// DeadlineDays counts days from "now" each time it is evaluated; it may go
// negative, meaning the activity is overdue. MinSessionMin and MaxSessionMin
// bound the size of a single placed session and must both be multiples of 15
// with MinSessionMin <= MaxSessionMin.
type Activity struct {
	Name          string    `json:"activity"`
	Priority      int       `json:"priority"`
	DeadlineDays  int       `json:"deadline"`
	TimingHours   float64   `json:"timing"`
	MinSessionMin int       `json:"min_session_minutes"`
	MaxSessionMin int       `json:"max_session_minutes"`
	AllowedDays   []string  `json:"allowed_days"` // weekday names; empty means any day
	Sessions      []Session `json:"sessions"`
}

// TimingMinutes returns the total required duration in minutes.
func (a Activity) TimingMinutes() int {
	return int(a.TimingHours * 60)
}

// SessionLabel returns the block label for the n-th session (1-based). The
// first session carries the bare activity name; later ones get a suffix so
// blocks of the same activity stay distinguishable in the timetable.
func (a Activity) SessionLabel(n int) string {
	if n <= 1 {
		return a.Name
	}
	return fmt.Sprintf("%s (Session %d)", a.Name, n)
}

// ExpiredActivity reports an activity whose deadline elapsed before its hours
// were completed, for user disposition.
type ExpiredActivity struct {
	Name           string  `json:"activity"`
	CompletedHours float64 `json:"completed_hours"`
	TotalHours     float64 `json:"total_hours"`
	DeadlineDays   int     `json:"deadline"`
}
