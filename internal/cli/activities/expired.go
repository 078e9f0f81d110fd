package activities

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/tempo-cli/tempo/internal/cli"
	"github.com/tempo-cli/tempo/internal/constants"
	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/expiry"
	"github.com/tempo-cli/tempo/internal/logger"
	"github.com/tempo-cli/tempo/internal/models"
	"github.com/tempo-cli/tempo/internal/utils"
)

type ExpiredCmd struct {
	List bool `short:"l" help:"Only list expired activities, without prompting for disposition."`
}

func (c *ExpiredCmd) Run(ctx *cli.Context) error {
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
	progress, err := ctx.Store.GetProgress()
	if err != nil {
		return fmt.Errorf("failed to get progress: %w", err)
	}
	pending, err := ctx.Store.GetPending()
	if err != nil {
		return fmt.Errorf("failed to get pending set: %w", err)
	}

	newlyExpired := expiry.Check(activities, progress, pending, now)
	for _, exp := range newlyExpired {
		if err := ctx.Store.SetPending(exp.Name, true); err != nil {
			logger.Warn("failed to persist pending flag", "activity", exp.Name, "error", err)
		}
	}

	// Everything pending needs disposition, whether it expired just now or
	// on an earlier check the user walked away from.
	var due []models.ExpiredActivity
	for _, act := range activities {
		if pending[act.Name] {
			due = append(due, models.ExpiredActivity{
				Name:           act.Name,
				CompletedHours: progress[act.Name],
				TotalHours:     act.TimingHours,
				DeadlineDays:   act.DeadlineDays,
			})
		}
	}

	if len(due) == 0 {
		fmt.Println("No expired activities. 🎉")
		return nil
	}

	for _, exp := range due {
		fmt.Printf("%s  %.1f/%.1f hours done, deadline offset %d days\n",
			exp.Name, exp.CompletedHours, exp.TotalHours, exp.DeadlineDays)
	}
	if c.List {
		return nil
	}

	for _, exp := range due {
		if err := c.dispose(ctx, exp); err != nil {
			return err
		}
	}
	return nil
}

func (c *ExpiredCmd) dispose(ctx *cli.Context, exp models.ExpiredActivity) error {
	var choice string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("%q expired with %.1f/%.1f hours done. What now?",
					exp.Name, exp.CompletedHours, exp.TotalHours)).
				Options(
					huh.NewOption("Mark complete (remove it)", "complete"),
					huh.NewOption(fmt.Sprintf("Extend deadline by %d days", constants.RecalibrateDeadlineDays), "extend"),
					huh.NewOption("Decide later", "later"),
				).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}

	switch choice {
	case "complete":
		if err := ctx.Store.DeleteActivity(exp.Name); err != nil {
			return err
		}
		monthKey := time.Now().Format(constants.MonthKeyFormat)
		if _, err := purgeBlocks(ctx, monthKey, exp.Name); err != nil && !errors.IsNotFound(err) {
			logger.Warn("failed to purge timetable blocks", "activity", exp.Name, "error", err)
		}
		fmt.Printf("  ✅ %q completed and removed\n", exp.Name)

	case "extend":
		act, err := ctx.Store.GetActivity(exp.Name)
		if err != nil {
			return err
		}
		act.DeadlineDays = constants.RecalibrateDeadlineDays
		act.Sessions = []models.Session{}
		if err := ctx.Store.UpdateActivity(act); err != nil {
			return err
		}
		if err := ctx.Store.SetPending(exp.Name, false); err != nil {
			return err
		}
		monthKey := time.Now().Format(constants.MonthKeyFormat)
		if _, err := purgeBlocks(ctx, monthKey, exp.Name); err != nil && !errors.IsNotFound(err) {
			logger.Warn("failed to purge timetable blocks", "activity", exp.Name, "error", err)
		}
		fmt.Printf("  🔄 %q deadline reset to %d days; regenerate to reschedule\n",
			exp.Name, constants.RecalibrateDeadlineDays)

	case "later":
		fmt.Printf("  ⏭️  %q left pending\n", exp.Name)
	}
	return nil
}
