package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tempo-cli/tempo/internal/calendar"
	"github.com/tempo-cli/tempo/internal/constants"
	"github.com/tempo-cli/tempo/internal/logger"
	"github.com/tempo-cli/tempo/internal/models"
	"github.com/tempo-cli/tempo/internal/timetable"
	"github.com/tempo-cli/tempo/internal/utils"
)

// planActivities splits each activity's remaining workload into session-sized
// chunks and slots them into free time. Activities are processed in shuffled
// order so no activity gets a systematic advantage across runs; within one
// run, earlier-processed activities claim slots first. Returns the activity
// list with sessions recorded plus the accumulated placement warnings.
func (s *Scheduler) planActivities(tt *timetable.Timetable, days []calendar.Day, activities []models.Activity) ([]models.Activity, []string) {
	planned := make([]models.Activity, len(activities))
	copy(planned, activities)

	order := s.rng.Perm(len(planned))
	warnings := []string{}

	for _, idx := range order {
		act := &planned[idx]
		// Regeneration replaces the month wholesale; session records from a
		// previous run point at discarded blocks and must not survive into
		// the new plan or the budget doubles on every run.
		act.Sessions = nil
		remaining := act.TimingMinutes()
		if remaining <= 0 {
			continue
		}

		eligible := s.eligibleDays(days, *act)
		if len(eligible) == 0 {
			warnings = append(warnings, fmt.Sprintf(
				"no eligible days for %q before its deadline; nothing scheduled", act.Name))
			continue
		}

		for remaining > 0 {
			chunk := s.chunkSize(remaining, act.MinSessionMin, act.MaxSessionMin)

			day, start, end, ok := s.placeChunk(tt, eligible, chunk)
			if !ok {
				warnings = append(warnings, fmt.Sprintf(
					"could not place a %d-minute session of %q; %d minutes left unscheduled",
					chunk, act.Name, remaining))
				break // keep partial placement, no rollback
			}

			n := len(act.Sessions) + 1
			tt.Insert(day.ID, start, end, act.SessionLabel(n), models.BlockActivity)
			s.tryBreakAfter(tt, day.ID, end)

			act.Sessions = append(act.Sessions, models.Session{
				ID:            uuid.NewString(),
				DurationMin:   chunk,
				DurationHours: float64(chunk) / 60,
				ScheduledDay:  day.ID,
				ScheduledTime: utils.ToTimeString(start),
				ScheduledDate: day.Date.Format(constants.DateFormat),
			})
			remaining -= chunk

			logger.Debug("session placed",
				"activity", act.Name, "day", day.ID,
				"start", utils.ToTimeString(start), "minutes", chunk)
		}
	}

	return planned, warnings
}

// placeChunk tries each eligible day in a fresh random order until the
// free-slot search succeeds, honoring the per-day activity ceiling.
func (s *Scheduler) placeChunk(tt *timetable.Timetable, eligible []calendar.Day, chunk int) (calendar.Day, int, int, bool) {
	for _, i := range s.rng.Perm(len(eligible)) {
		day := eligible[i]
		if tt.DailyActivityMinutes(day.ID)+chunk > s.dailyCap {
			continue
		}
		if start, end, ok := s.FindFreeSlot(tt, day.ID, chunk); ok {
			return day, start, end, true
		}
	}
	return calendar.Day{}, 0, 0, false
}

// chunkSize carves the next session length off the remaining workload.
// A remainder at or below the minimum becomes one final short session.
// Otherwise the size is drawn uniformly from the 15-minute steps in
// [min, min(max, remaining)], except that a draw which would strand a
// leftover smaller than the minimum is forced to consume the remainder.
func (s *Scheduler) chunkSize(remaining, minSession, maxSession int) int {
	if remaining <= minSession {
		return remaining
	}
	upper := maxSession
	if remaining < upper {
		upper = remaining
	}
	steps := (upper-minSession)/constants.GridStepMin + 1
	chunk := minSession + constants.GridStepMin*s.rng.Intn(steps)
	if left := remaining - chunk; left > 0 && left < minSession {
		chunk = remaining
	}
	return chunk
}

// eligibleDays returns the calendar days this activity may be scheduled on:
// inside [today, today+deadline] and on an allowed weekday. An empty
// allowed-days set means any weekday.
func (s *Scheduler) eligibleDays(days []calendar.Day, act models.Activity) []calendar.Day {
	today := utils.Midnight(s.now)
	deadline := today.AddDate(0, 0, act.DeadlineDays)

	allowed := make(map[time.Weekday]bool, len(act.AllowedDays))
	for _, name := range act.AllowedDays {
		wd, err := calendar.ParseWeekday(strings.TrimSpace(name))
		if err != nil {
			continue // validated upstream; skip rather than fail mid-run
		}
		allowed[wd] = true
	}

	var eligible []calendar.Day
	for _, d := range days {
		if d.Date.Before(today) || d.Date.After(deadline) {
			continue
		}
		if len(allowed) > 0 && !allowed[d.Weekday] {
			continue
		}
		eligible = append(eligible, d)
	}
	return eligible
}
