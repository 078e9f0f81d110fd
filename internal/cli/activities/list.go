package activities

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tempo-cli/tempo/internal/cli"
)

type ListCmd struct {
	Sessions bool `short:"s" help:"Show scheduled sessions for each activity."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}
	if len(activities) == 0 {
		fmt.Println("No activities defined. Add one with 'tempo activity add'.")
		return nil
	}

	sort.Slice(activities, func(i, j int) bool {
		if activities[i].Priority != activities[j].Priority {
			return activities[i].Priority < activities[j].Priority
		}
		return activities[i].Name < activities[j].Name
	})

	for _, act := range activities {
		days := "any day"
		if len(act.AllowedDays) > 0 {
			days = strings.Join(act.AllowedDays, ", ")
		}
		fmt.Printf("%s  %.1fh, due in %d days, sessions %d-%d min, on %s (priority %d)\n",
			act.Name, act.TimingHours, act.DeadlineDays, act.MinSessionMin, act.MaxSessionMin, days, act.Priority)

		if c.Sessions {
			if len(act.Sessions) == 0 {
				fmt.Println("    no sessions scheduled")
				continue
			}
			for i, sess := range act.Sessions {
				status := " "
				if sess.Completed {
					status = "✓"
				}
				fmt.Printf("    [%s] session %d: %d min on %s at %s\n",
					status, i+1, sess.DurationMin, sess.ScheduledDay, sess.ScheduledTime)
			}
		}
	}
	return nil
}
