package validation

import (
	"fmt"
	"time"

	"github.com/tempo-cli/tempo/internal/calendar"
	"github.com/tempo-cli/tempo/internal/constants"
	"github.com/tempo-cli/tempo/internal/models"
	"github.com/tempo-cli/tempo/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateActivityName ConflictType = "duplicate_activity_name"
	ConflictInvalidTime           ConflictType = "invalid_time"
	ConflictInvalidSessionBounds  ConflictType = "invalid_session_bounds"
	ConflictUnknownWeekday        ConflictType = "unknown_weekday"
	ConflictOverlappingEvents     ConflictType = "overlapping_events"
	ConflictOverlappingBlocks     ConflictType = "overlapping_blocks"
	ConflictOvercommitted         ConflictType = "overcommitted"
)

// Conflict represents a detected conflict in activities, events, or a
// generated timetable
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // activity/event names involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates activities, events, and generated timetables
type Validator struct {
	dailyCap int
}

// New creates a Validator that checks commitments against the given per-day
// activity ceiling. A non-positive cap falls back to the default.
func New(dailyActivityCap int) *Validator {
	if dailyActivityCap <= 0 {
		dailyActivityCap = constants.DefaultDailyActivityCap
	}
	return &Validator{dailyCap: dailyActivityCap}
}

// ValidateActivities checks activity definitions for conflicts: duplicate
// names, session bounds that are inverted or off the 15-minute grid, unknown
// weekday names, and workloads that cannot fit inside their deadline window
// even at the daily ceiling.
func (v *Validator) ValidateActivities(activities []models.Activity, now time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	nameCount := make(map[string]int)
	for _, act := range activities {
		if act.Name == "" {
			continue
		}
		nameCount[act.Name]++
	}
	for name, count := range nameCount {
		if count > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateActivityName,
				Description: fmt.Sprintf("Duplicate activity name: %q (%d definitions)", name, count),
				Items:       []string{name},
			})
		}
	}

	for _, act := range activities {
		if act.MinSessionMin > act.MaxSessionMin {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictInvalidSessionBounds,
				Description: fmt.Sprintf("Activity %q has min session %d greater than max session %d",
					act.Name, act.MinSessionMin, act.MaxSessionMin),
				Items: []string{act.Name},
			})
		}
		if act.MinSessionMin%constants.GridStepMin != 0 || act.MaxSessionMin%constants.GridStepMin != 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictInvalidSessionBounds,
				Description: fmt.Sprintf("Activity %q session bounds must be multiples of %d minutes",
					act.Name, constants.GridStepMin),
				Items: []string{act.Name},
			})
		}

		for _, name := range act.AllowedDays {
			if _, err := calendar.ParseWeekday(name); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictUnknownWeekday,
					Description: fmt.Sprintf("Activity %q has unknown weekday %q in allowed days", act.Name, name),
					Items:       []string{act.Name},
				})
			}
		}

		if c, ok := v.checkCommitment(act, now); ok {
			result.Conflicts = append(result.Conflicts, c)
		}
	}

	return result
}

// checkCommitment flags an activity whose total workload exceeds the daily
// activity ceiling times the number of eligible days before its deadline.
// Such an activity is guaranteed to end a generation with warnings.
func (v *Validator) checkCommitment(act models.Activity, now time.Time) (Conflict, bool) {
	if act.TimingHours <= 0 || act.DeadlineDays < 0 {
		return Conflict{}, false
	}

	allowed := make(map[time.Weekday]bool, len(act.AllowedDays))
	for _, name := range act.AllowedDays {
		if wd, err := calendar.ParseWeekday(name); err == nil {
			allowed[wd] = true
		}
	}

	today := utils.Midnight(now)
	eligibleDays := 0
	for i := 0; i <= act.DeadlineDays; i++ {
		d := today.AddDate(0, 0, i)
		if len(allowed) == 0 || allowed[d.Weekday()] {
			eligibleDays++
		}
	}

	capacity := eligibleDays * v.dailyCap
	if act.TimingMinutes() > capacity {
		return Conflict{
			Type: ConflictOvercommitted,
			Description: fmt.Sprintf("Activity %q needs %d minutes but only %d are available before its deadline",
				act.Name, act.TimingMinutes(), capacity),
			Items: []string{act.Name},
		}, true
	}
	return Conflict{}, false
}

// ValidateEvents checks fixed events for malformed times, inverted intervals,
// and same-day overlaps between events.
func (v *Validator) ValidateEvents(events []models.Event) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	type span struct {
		name       string
		start, end int
	}
	byDay := make(map[string][]span)

	for _, ev := range events {
		start, err1 := utils.ToMinutes(ev.StartTime)
		end, err2 := utils.ToMinutes(ev.EndTime)
		if err1 != nil || err2 != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Event %q has a malformed time (%s-%s)", ev.Name, ev.StartTime, ev.EndTime),
				Items:       []string{ev.Name},
			})
			continue
		}
		if start >= end {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Event %q ends at or before it starts (%s-%s)", ev.Name, ev.StartTime, ev.EndTime),
				Items:       []string{ev.Name},
			})
			continue
		}
		key := ev.Date
		if key == "" {
			key = ev.Day
		}
		byDay[key] = append(byDay[key], span{name: ev.Name, start: start, end: end})
	}

	for day, spans := range byDay {
		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans); j++ {
				a, b := spans[i], spans[j]
				if a.start < b.end && b.start < a.end {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type: ConflictOverlappingEvents,
						Description: fmt.Sprintf("Events %q and %q overlap on %s",
							a.name, b.name, day),
						Items: []string{a.name, b.name},
					})
				}
			}
		}
	}

	return result
}

// ValidateTimetable checks a generated timetable for overlapping blocks on
// any day. A clean generation never produces these; a conflict here points at
// corrupted stored state or hand-edited records.
func (v *Validator) ValidateTimetable(days map[string][]models.Block) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for day, blocks := range days {
		for i := 0; i < len(blocks); i++ {
			for j := i + 1; j < len(blocks); j++ {
				as, err1 := utils.ToMinutes(blocks[i].Start)
				ae, err2 := utils.ToMinutes(blocks[i].End)
				bs, err3 := utils.ToMinutes(blocks[j].Start)
				be, err4 := utils.ToMinutes(blocks[j].End)
				if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
					continue
				}
				if as < be && bs < ae {
					result.Conflicts = append(result.Conflicts, Conflict{
						Type: ConflictOverlappingBlocks,
						Description: fmt.Sprintf("Blocks %q and %q overlap on %s",
							blocks[i].Name, blocks[j].Name, day),
						Items: []string{blocks[i].Name, blocks[j].Name},
					})
				}
			}
		}
	}

	return result
}
