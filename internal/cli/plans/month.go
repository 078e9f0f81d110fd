package plans

import (
	"fmt"
	"time"

	"github.com/tempo-cli/tempo/internal/calendar"
	"github.com/tempo-cli/tempo/internal/cli"
	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/utils"
)

type MonthCmd struct {
	Year     int  `help:"Year to show (defaults to the current year)." default:"0"`
	Month    int  `help:"Month to show, 1-12 (defaults to the current month)." default:"0"`
	ShowFree bool `help:"Include days with no blocks."`
}

func (c *MonthCmd) Validate() error {
	if c.Month < 0 || c.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	return nil
}

func (c *MonthCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return err
	}

	now := time.Now().In(loc)
	year, month := c.Year, time.Month(c.Month)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}

	monthKey := fmt.Sprintf("%04d-%02d", year, int(month))
	stored, err := ctx.Store.GetTimetable(monthKey)
	if err != nil {
		if errors.IsNotFound(err) {
			fmt.Printf("No timetable generated for %s yet. Run 'tempo generate' first.\n", monthKey)
			return nil
		}
		return err
	}

	fmt.Printf("Timetable for %s %d:\n\n", month.String(), year)
	for _, day := range calendar.MonthDays(year, month, loc) {
		blocks := stored[day.ID]
		if len(blocks) == 0 && !c.ShowFree {
			continue
		}
		fmt.Print(cli.RenderDay(day.ID, blocks))
	}
	return nil
}
