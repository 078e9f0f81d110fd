package plans

import (
	"fmt"
	"time"

	"github.com/tempo-cli/tempo/internal/cli"
	"github.com/tempo-cli/tempo/internal/logger"
)

type GenerateCmd struct {
	Year  int  `help:"Year to generate (defaults to the current year)." default:"0"`
	Month int  `help:"Month to generate, 1-12 (defaults to the current month)." default:"0"`
	Quiet bool `short:"q" help:"Only print warnings, not the full timetable."`
}

func (c *GenerateCmd) Validate() error {
	if c.Month < 0 || c.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	return nil
}

func (c *GenerateCmd) Run(ctx *cli.Context) error {
	sched, err := ctx.NewScheduler()
	if err != nil {
		return err
	}

	now := time.Now()
	year, month := c.Year, time.Month(c.Month)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}

	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	recurring, err := ctx.Store.GetRecurring()
	if err != nil {
		return fmt.Errorf("failed to get recurring schedule: %w", err)
	}

	result, err := sched.Generate(year, month, activities, events, recurring)
	if err != nil {
		return err
	}

	// Persist the result. A failed save does not invalidate the in-memory
	// timetable; report it and keep going so the user still sees the plan.
	monthKey := fmt.Sprintf("%04d-%02d", year, int(month))
	if err := ctx.Store.SaveTimetable(monthKey, result.Timetable.Map()); err != nil {
		logger.Error("failed to save timetable", "month", monthKey, "error", err)
		fmt.Printf("⚠️  Could not save the timetable: %v\n", err)
	}
	for _, act := range result.Activities {
		if err := ctx.Store.UpdateActivity(act); err != nil {
			logger.Error("failed to save activity sessions", "activity", act.Name, "error", err)
			fmt.Printf("⚠️  Could not save sessions for %q: %v\n", act.Name, err)
		}
	}

	if !c.Quiet {
		fmt.Printf("Timetable for %s %d:\n\n", month.String(), year)
		for _, day := range result.Timetable.Days() {
			blocks := result.Timetable.Blocks(day)
			if len(blocks) == 0 {
				continue
			}
			fmt.Print(cli.RenderDay(day, blocks))
		}
	}

	if out := cli.RenderWarnings(result.Warnings); out != "" {
		fmt.Print(out)
	} else {
		fmt.Println("\n✨ All activities placed without warnings.")
	}

	return nil
}
