package activities

import (
	"fmt"
	"sort"

	"github.com/tempo-cli/tempo/internal/cli"
)

type ProgressLogCmd struct {
	Name  string  `arg:"" help:"Activity name."`
	Hours float64 `arg:"" help:"Total hours completed so far."`
}

func (c *ProgressLogCmd) Validate() error {
	if c.Hours < 0 {
		return fmt.Errorf("hours cannot be negative")
	}
	return nil
}

func (c *ProgressLogCmd) Run(ctx *cli.Context) error {
	act, err := ctx.Store.GetActivity(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.SetProgress(c.Name, c.Hours); err != nil {
		return err
	}
	fmt.Printf("Logged %.1f/%.1f hours for %q\n", c.Hours, act.TimingHours, act.Name)
	return nil
}

type ProgressShowCmd struct{}

func (c *ProgressShowCmd) Run(ctx *cli.Context) error {
	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}
	progress, err := ctx.Store.GetProgress()
	if err != nil {
		return fmt.Errorf("failed to get progress: %w", err)
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Name < activities[j].Name
	})

	for _, act := range activities {
		done := progress[act.Name]
		marker := ""
		if done >= act.TimingHours {
			marker = "  ✓ complete"
		}
		fmt.Printf("%s  %.1f/%.1f hours%s\n", act.Name, done, act.TimingHours, marker)
	}
	return nil
}
