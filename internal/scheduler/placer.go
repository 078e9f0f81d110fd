package scheduler

import (
	"fmt"

	"github.com/tempo-cli/tempo/internal/calendar"
	"github.com/tempo-cli/tempo/internal/constants"
	"github.com/tempo-cli/tempo/internal/models"
	"github.com/tempo-cli/tempo/internal/timetable"
	"github.com/tempo-cli/tempo/internal/utils"
)

// placeFixed writes compulsory and recurring events into the timetable. Fixed
// commitments are inserted without a free check (policy lets them overwrite),
// each followed by the mandatory break when it fits.
func (s *Scheduler) placeFixed(tt *timetable.Timetable, days []calendar.Day, events []models.Event, recurring []models.RecurringEvent) error {
	byDate := make(map[string]calendar.Day, len(days))
	byID := make(map[string]calendar.Day, len(days))
	for _, d := range days {
		byDate[d.Date.Format(constants.DateFormat)] = d
		byID[d.ID] = d
	}

	for _, ev := range events {
		day, ok := byDate[ev.Date]
		if !ok {
			// Fall back to the day identifier for records created against
			// this month view directly.
			if day, ok = byID[ev.Day]; !ok {
				continue // event belongs to another month
			}
		}
		start, err := utils.ToMinutes(ev.StartTime)
		if err != nil {
			return fmt.Errorf("event %q: %w", ev.Name, err)
		}
		end, err := utils.ToMinutes(ev.EndTime)
		if err != nil {
			return fmt.Errorf("event %q: %w", ev.Name, err)
		}
		tt.Insert(day.ID, start, end, ev.Name, models.BlockCompulsory)
		s.tryBreakAfter(tt, day.ID, end)
	}

	for _, r := range recurring {
		start, err := utils.ToMinutes(r.StartTime)
		if err != nil {
			return fmt.Errorf("recurring event %q: %w", r.Name, err)
		}
		end, err := utils.ToMinutes(r.EndTime)
		if err != nil {
			return fmt.Errorf("recurring event %q: %w", r.Name, err)
		}
		for _, d := range days {
			if !r.OnWeekday(d.Weekday) {
				continue
			}
			tt.Insert(d.ID, start, end, r.Name, models.BlockSchool)
			s.tryBreakAfter(tt, d.ID, end)
		}
	}

	return nil
}
