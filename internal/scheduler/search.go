package scheduler

import (
	"github.com/tempo-cli/tempo/internal/constants"
	"github.com/tempo-cli/tempo/internal/timetable"
)

// FindFreeSlot searches a day for a start time that can hold durationMin of
// activity plus its mandatory trailing break. Candidates are enumerated on
// the 15-minute grid across the operating window; a candidate survives only
// if the activity ends by the window close, the break does not cross
// midnight, and the whole of [start, breakEnd) is unoccupied. The break is
// part of the feasibility check so an activity is never placed where its
// gap cannot follow it.
//
// One surviving candidate is returned uniformly at random rather than the
// earliest, so repeated generations do not pile everything at the start of
// the day. ok is false when no candidate survives.
func (s *Scheduler) FindFreeSlot(tt *timetable.Timetable, day string, durationMin int) (startMin, endMin int, ok bool) {
	var candidates []int

	for start := s.windowStart; start+durationMin <= s.windowEnd; start += constants.GridStepMin {
		end := start + durationMin
		breakEnd := end + s.breakMin
		if breakEnd >= constants.MinutesPerDay {
			continue
		}
		if !tt.IsFree(day, start, breakEnd) {
			continue
		}
		candidates = append(candidates, start)
	}

	if len(candidates) == 0 {
		return 0, 0, false
	}

	start := candidates[s.rng.Intn(len(candidates))]
	return start, start + durationMin, true
}
