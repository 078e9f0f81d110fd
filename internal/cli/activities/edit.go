package activities

import (
	"fmt"

	"github.com/tempo-cli/tempo/internal/cli"
	"github.com/tempo-cli/tempo/internal/constants"
)

type EditCmd struct {
	Name       string  `arg:"" help:"Activity name."`
	Hours      float64 `short:"H" help:"New total required hours." default:"-1"`
	Deadline   *int    `short:"d" help:"New deadline in days from today."`
	MinSession int     `help:"New minimum session length in minutes." default:"-1"`
	MaxSession int     `help:"New maximum session length in minutes." default:"-1"`
	Days       *string `short:"w" help:"New comma-separated allowed weekdays ('' = any day)."`
	Priority   int     `short:"p" help:"New priority (1-5)." default:"-1"`
}

func (c *EditCmd) Run(ctx *cli.Context) error {
	act, err := ctx.Store.GetActivity(c.Name)
	if err != nil {
		return err
	}

	if c.Hours >= 0 {
		act.TimingHours = c.Hours
	}
	if c.Deadline != nil {
		act.DeadlineDays = *c.Deadline
	}
	if c.MinSession >= 0 {
		act.MinSessionMin = c.MinSession
	}
	if c.MaxSession >= 0 {
		act.MaxSessionMin = c.MaxSession
	}
	if c.Priority >= 1 {
		act.Priority = c.Priority
	}
	if c.Days != nil {
		act.AllowedDays = nil
		if *c.Days != "" {
			weekdays, err := cli.ParseWeekdays(*c.Days)
			if err != nil {
				return err
			}
			for _, wd := range weekdays {
				act.AllowedDays = append(act.AllowedDays, wd.String())
			}
		}
	}

	if act.MinSessionMin > act.MaxSessionMin {
		return fmt.Errorf("minimum session length cannot exceed the maximum")
	}
	if act.MinSessionMin%constants.GridStepMin != 0 || act.MaxSessionMin%constants.GridStepMin != 0 {
		return fmt.Errorf("session lengths must be multiples of %d minutes", constants.GridStepMin)
	}

	if err := ctx.Store.UpdateActivity(act); err != nil {
		return err
	}
	fmt.Printf("Updated activity %q\n", act.Name)
	return nil
}
