package system

import (
	"fmt"

	"github.com/tempo-cli/tempo/internal/cli"
	"github.com/tempo-cli/tempo/internal/constants"
	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/utils"
	"github.com/tempo-cli/tempo/internal/validation"
)

type ValidateCmd struct {
	Month string `help:"Also check the stored timetable for this month (YYYY-MM)."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}

	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}

	validator := validation.New(settings.DailyActivityCap)
	result := validator.ValidateActivities(activities, now)
	eventResult := validator.ValidateEvents(events)
	result.Conflicts = append(result.Conflicts, eventResult.Conflicts...)

	monthKey := c.Month
	if monthKey == "" {
		monthKey = now.Format(constants.MonthKeyFormat)
	}
	if stored, err := ctx.Store.GetTimetable(monthKey); err == nil {
		ttResult := validator.ValidateTimetable(stored)
		result.Conflicts = append(result.Conflicts, ttResult.Conflicts...)
	} else if !errors.IsNotFound(err) {
		return err
	}

	fmt.Print(result.FormatReport())
	if result.HasConflicts() {
		fmt.Printf("\n%d conflict(s) found.\n", len(result.Conflicts))
	}
	return nil
}
