package activities

import (
	"fmt"
	"strings"

	"github.com/tempo-cli/tempo/internal/cli"
	"github.com/tempo-cli/tempo/internal/constants"
	"github.com/tempo-cli/tempo/internal/models"
)

type AddCmd struct {
	Name       string  `arg:"" help:"Activity name."`
	Hours      float64 `short:"H" help:"Total required hours." required:""`
	Deadline   int     `short:"d" help:"Deadline in days from today." required:""`
	MinSession int     `help:"Minimum session length in minutes (multiple of 15)." default:"30"`
	MaxSession int     `help:"Maximum session length in minutes (multiple of 15)." default:"120"`
	Days       string  `short:"w" help:"Comma-separated allowed weekdays (empty = any day)."`
	Priority   int     `short:"p" help:"Priority (1-5, lower is higher priority)." default:"3"`
}

func (c *AddCmd) Validate() error {
	if c.Hours <= 0 {
		return fmt.Errorf("hours must be greater than zero")
	}
	if c.Priority < 1 || c.Priority > 5 {
		return fmt.Errorf("priority must be between 1 and 5")
	}
	if c.MinSession <= 0 || c.MaxSession <= 0 {
		return fmt.Errorf("session lengths must be greater than zero")
	}
	if c.MinSession > c.MaxSession {
		return fmt.Errorf("minimum session length cannot exceed the maximum")
	}
	if c.MinSession%constants.GridStepMin != 0 || c.MaxSession%constants.GridStepMin != 0 {
		return fmt.Errorf("session lengths must be multiples of %d minutes", constants.GridStepMin)
	}
	if c.Days != "" {
		if _, err := cli.ParseWeekdays(c.Days); err != nil {
			return err
		}
	}
	return nil
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	var allowed []string
	if c.Days != "" {
		weekdays, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		for _, wd := range weekdays {
			allowed = append(allowed, wd.String())
		}
	}

	act := models.Activity{
		Name:          strings.TrimSpace(c.Name),
		Priority:      c.Priority,
		DeadlineDays:  c.Deadline,
		TimingHours:   c.Hours,
		MinSessionMin: c.MinSession,
		MaxSessionMin: c.MaxSession,
		AllowedDays:   allowed,
		Sessions:      []models.Session{},
	}
	if err := ctx.Store.AddActivity(act); err != nil {
		return err
	}

	fmt.Printf("Added activity %q: %.1fh due in %d days (sessions %d-%d min)\n",
		act.Name, act.TimingHours, act.DeadlineDays, act.MinSessionMin, act.MaxSessionMin)
	return nil
}
