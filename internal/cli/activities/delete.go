package activities

import (
	"fmt"
	"time"

	"github.com/tempo-cli/tempo/internal/calendar"
	"github.com/tempo-cli/tempo/internal/cli"
	"github.com/tempo-cli/tempo/internal/constants"
	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/logger"
	"github.com/tempo-cli/tempo/internal/timetable"
)

type DeleteCmd struct {
	Name  string `arg:"" help:"Activity name."`
	Month string `help:"Month timetable to purge blocks from (YYYY-MM, defaults to the current month)."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetActivity(c.Name); err != nil {
		return err
	}

	if err := ctx.Store.DeleteActivity(c.Name); err != nil {
		return err
	}

	monthKey := c.Month
	if monthKey == "" {
		monthKey = time.Now().Format(constants.MonthKeyFormat)
	}
	removed, err := purgeBlocks(ctx, monthKey, c.Name)
	if err != nil && !errors.IsNotFound(err) {
		// The activity itself is gone; a failed purge only leaves stale
		// blocks in the stored timetable.
		logger.Warn("failed to purge timetable blocks", "activity", c.Name, "error", err)
	}

	fmt.Printf("Deleted activity %q (%d timetable blocks removed)\n", c.Name, removed)
	return nil
}

// purgeBlocks removes the activity's blocks from a stored month timetable by
// name-prefix match and saves the result.
func purgeBlocks(ctx *cli.Context, monthKey, name string) (int, error) {
	stored, err := ctx.Store.GetTimetable(monthKey)
	if err != nil {
		return 0, err
	}
	monthStart, err := time.Parse(constants.MonthKeyFormat, monthKey)
	if err != nil {
		return 0, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", monthKey, err)
	}

	days := calendar.MonthDays(monthStart.Year(), monthStart.Month(), time.Local)
	tt := timetable.FromMap(days, stored)
	removed := tt.RemoveByName(name)
	if removed == 0 {
		return 0, nil
	}
	return removed, ctx.Store.SaveTimetable(monthKey, tt.Map())
}
