package scheduler

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/tempo-cli/tempo/internal/calendar"
	"github.com/tempo-cli/tempo/internal/constants"
	"github.com/tempo-cli/tempo/internal/logger"
	"github.com/tempo-cli/tempo/internal/models"
	"github.com/tempo-cli/tempo/internal/timetable"
	"github.com/tempo-cli/tempo/internal/utils"
)

// Config controls a generation run. Zero values fall back to the defaults in
// constants. Rand is the injected tie-breaking source; passing a seeded
// source makes a run reproducible, which the tests rely on.
type Config struct {
	WindowStart      string // earliest activity start (HH:MM)
	WindowEnd        string // latest activity end (HH:MM)
	BreakMin         int    // mandatory gap after events and sessions
	DailyActivityCap int    // per-day ceiling on ACTIVITY minutes
	Now              time.Time
	Rand             *rand.Rand
}

// Scheduler generates a month timetable: fixed commitments first, then
// activity sessions slotted into the remaining free time. It holds no state
// between runs beyond its configuration.
type Scheduler struct {
	windowStart int
	windowEnd   int
	breakMin    int
	dailyCap    int
	now         time.Time
	rng         *rand.Rand
}

// Result is the output of one generation run: the populated timetable, the
// activity list with sessions recorded on it, and any placement warnings.
// Warnings are best-effort reporting, never failures.
type Result struct {
	Timetable  *timetable.Timetable
	Activities []models.Activity
	Warnings   []string
}

// New builds a Scheduler from the given configuration. It fails only on
// malformed window times, which indicate a caller that skipped validation.
func New(cfg Config) (*Scheduler, error) {
	if cfg.WindowStart == "" {
		cfg.WindowStart = constants.DefaultWindowStart
	}
	if cfg.WindowEnd == "" {
		cfg.WindowEnd = constants.DefaultWindowEnd
	}
	if cfg.BreakMin <= 0 {
		cfg.BreakMin = constants.DefaultBreakMin
	}
	if cfg.DailyActivityCap <= 0 {
		cfg.DailyActivityCap = constants.DefaultDailyActivityCap
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	ws, err := utils.ToMinutes(cfg.WindowStart)
	if err != nil {
		return nil, fmt.Errorf("invalid window start: %w", err)
	}
	we, err := utils.ToMinutes(cfg.WindowEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid window end: %w", err)
	}
	if ws >= we {
		return nil, fmt.Errorf("window start %s must be before window end %s", cfg.WindowStart, cfg.WindowEnd)
	}

	return &Scheduler{
		windowStart: ws,
		windowEnd:   we,
		breakMin:    cfg.BreakMin,
		dailyCap:    cfg.DailyActivityCap,
		now:         cfg.Now,
		rng:         cfg.Rand,
	}, nil
}

// Generate builds the timetable for one month. The previous timetable for
// that month, if any, is discarded entirely; there is no incremental merge.
// Placement failures surface as warnings on the result, never as errors.
func (s *Scheduler) Generate(year int, month time.Month, activities []models.Activity, events []models.Event, recurring []models.RecurringEvent) (Result, error) {
	days := calendar.MonthDays(year, month, s.now.Location())
	tt := timetable.New(days)

	if err := s.placeFixed(tt, days, events, recurring); err != nil {
		return Result{}, err
	}

	planned, warnings := s.planActivities(tt, days, activities)

	logger.Debug("generation complete",
		"month", fmt.Sprintf("%04d-%02d", year, int(month)),
		"days", len(days),
		"activities", len(planned),
		"warnings", len(warnings))

	return Result{
		Timetable:  tt,
		Activities: planned,
		Warnings:   warnings,
	}, nil
}

// tryBreakAfter inserts the mandatory break block starting at endMin if the
// interval is free and does not cross midnight. A missing break is a silent
// no-op, not an error.
func (s *Scheduler) tryBreakAfter(tt *timetable.Timetable, day string, endMin int) {
	breakEnd := endMin + s.breakMin
	if breakEnd >= constants.MinutesPerDay {
		return
	}
	if !tt.IsFree(day, endMin, breakEnd) {
		return
	}
	tt.Insert(day, endMin, breakEnd, constants.BreakLabel, models.BlockBreak)
}
