package plans

import (
	"fmt"
	"time"

	"github.com/tempo-cli/tempo/internal/calendar"
	"github.com/tempo-cli/tempo/internal/cli"
	"github.com/tempo-cli/tempo/internal/constants"
	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/utils"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return err
	}

	var date time.Time
	if c.Date == "today" {
		date = utils.Midnight(time.Now().In(loc))
	} else {
		date, err = utils.ParseDateInLocation(c.Date, loc)
		if err != nil {
			return err
		}
	}

	monthKey := date.Format(constants.MonthKeyFormat)
	days, err := ctx.Store.GetTimetable(monthKey)
	if err != nil {
		if errors.IsNotFound(err) {
			fmt.Printf("No timetable generated for %s yet. Run 'tempo generate' first.\n", monthKey)
			return nil
		}
		return err
	}

	dayID := calendar.DayID(date)
	fmt.Print(cli.RenderDay(dayID, days[dayID]))
	return nil
}
