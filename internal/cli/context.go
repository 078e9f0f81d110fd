package cli

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/tempo-cli/tempo/internal/models"
	"github.com/tempo-cli/tempo/internal/scheduler"
	"github.com/tempo-cli/tempo/internal/storage"
	"github.com/tempo-cli/tempo/internal/utils"
)

type Context struct {
	Store storage.Provider

	// Seed pins the scheduler's random source when non-zero, for
	// reproducible generations (mainly tooling and tests).
	Seed int64
}

// NewScheduler builds a scheduler from the stored settings.
func (c *Context) NewScheduler() (*scheduler.Scheduler, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return nil, err
	}

	cfg := scheduler.Config{
		WindowStart:      settings.WindowStart,
		WindowEnd:        settings.WindowEnd,
		BreakMin:         settings.BreakMin,
		DailyActivityCap: settings.DailyActivityCap,
		Now:              now,
	}
	if c.Seed != 0 {
		cfg.Rand = rand.New(rand.NewSource(c.Seed))
	}
	return scheduler.New(cfg)
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// BlockDuration returns the duration of a block in minutes.
// Returns 0 if the time format is invalid (which the caller should check).
func BlockDuration(b models.Block) int {
	start, err := utils.ToMinutes(b.Start)
	if err != nil {
		return 0
	}
	end, err := utils.ToMinutes(b.End)
	if err != nil {
		return 0
	}
	return end - start
}
