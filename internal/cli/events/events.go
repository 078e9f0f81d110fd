package events

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tempo-cli/tempo/internal/calendar"
	"github.com/tempo-cli/tempo/internal/cli"
	"github.com/tempo-cli/tempo/internal/models"
	"github.com/tempo-cli/tempo/internal/utils"
)

type AddCmd struct {
	Name  string `arg:"" help:"Event name."`
	Date  string `arg:"" help:"Event date (YYYY-MM-DD)."`
	Start string `short:"s" help:"Start time (HH:MM)." required:""`
	End   string `short:"e" help:"End time (HH:MM)." required:""`
}

func (c *AddCmd) Validate() error {
	if !utils.ValidateTimeFormat(c.Start) {
		return fmt.Errorf("invalid start time format (expected HH:MM): %s", c.Start)
	}
	if !utils.ValidateTimeFormat(c.End) {
		return fmt.Errorf("invalid end time format (expected HH:MM): %s", c.End)
	}
	start, _ := utils.ToMinutes(c.Start)
	end, _ := utils.ToMinutes(c.End)
	if start >= end {
		return fmt.Errorf("event must end after it starts")
	}
	return nil
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return err
	}
	date, err := utils.ParseDateInLocation(c.Date, loc)
	if err != nil {
		return err
	}

	ev := models.Event{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(c.Name),
		StartTime: c.Start,
		EndTime:   c.End,
		Day:       calendar.DayID(date),
		Date:      c.Date,
	}
	if err := ctx.Store.AddEvent(ev); err != nil {
		return err
	}
	fmt.Printf("Added event %q on %s, %s–%s (id %s)\n", ev.Name, ev.Day, ev.StartTime, ev.EndTime, ev.ID)
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	events, err := ctx.Store.GetAllEvents()
	if err != nil {
		return fmt.Errorf("failed to get events: %w", err)
	}
	if len(events) == 0 {
		fmt.Println("No events defined. Add one with 'tempo event add'.")
		return nil
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].StartTime < events[j].StartTime
	})

	for _, ev := range events {
		fmt.Printf("%s  %s–%s  %s  (id %s)\n", ev.Date, ev.StartTime, ev.EndTime, ev.Name, ev.ID)
	}
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Event id."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteEvent(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted event %s\n", c.ID)
	return nil
}

type RecurringSetCmd struct {
	Name     string `arg:"" help:"Commitment name (e.g. 'School')."`
	Weekdays string `short:"w" help:"Comma-separated weekdays." required:""`
	Start    string `short:"s" help:"Start time (HH:MM)." required:""`
	End      string `short:"e" help:"End time (HH:MM)." required:""`
}

func (c *RecurringSetCmd) Validate() error {
	if !utils.ValidateTimeFormat(c.Start) {
		return fmt.Errorf("invalid start time format (expected HH:MM): %s", c.Start)
	}
	if !utils.ValidateTimeFormat(c.End) {
		return fmt.Errorf("invalid end time format (expected HH:MM): %s", c.End)
	}
	start, _ := utils.ToMinutes(c.Start)
	end, _ := utils.ToMinutes(c.End)
	if start >= end {
		return fmt.Errorf("commitment must end after it starts")
	}
	if _, err := cli.ParseWeekdays(c.Weekdays); err != nil {
		return err
	}
	return nil
}

func (c *RecurringSetCmd) Run(ctx *cli.Context) error {
	weekdays, err := cli.ParseWeekdays(c.Weekdays)
	if err != nil {
		return err
	}

	recurring, err := ctx.Store.GetRecurring()
	if err != nil {
		return fmt.Errorf("failed to get recurring schedule: %w", err)
	}

	entry := models.RecurringEvent{
		Name:      strings.TrimSpace(c.Name),
		StartTime: c.Start,
		EndTime:   c.End,
		Weekdays:  weekdays,
	}

	replaced := false
	for i, r := range recurring {
		if r.Name == entry.Name {
			recurring[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		recurring = append(recurring, entry)
	}

	if err := ctx.Store.SaveRecurring(recurring); err != nil {
		return err
	}
	fmt.Printf("Set recurring commitment %q on %s, %s–%s\n",
		entry.Name, formatWeekdays(weekdays), entry.StartTime, entry.EndTime)
	return nil
}

type RecurringListCmd struct{}

func (c *RecurringListCmd) Run(ctx *cli.Context) error {
	recurring, err := ctx.Store.GetRecurring()
	if err != nil {
		return fmt.Errorf("failed to get recurring schedule: %w", err)
	}
	if len(recurring) == 0 {
		fmt.Println("No recurring commitments. Add one with 'tempo recurring set'.")
		return nil
	}
	for _, r := range recurring {
		fmt.Printf("%s  %s–%s on %s\n", r.Name, r.StartTime, r.EndTime, formatWeekdays(r.Weekdays))
	}
	return nil
}

type RecurringClearCmd struct {
	Name string `arg:"" help:"Commitment name to remove."`
}

func (c *RecurringClearCmd) Run(ctx *cli.Context) error {
	recurring, err := ctx.Store.GetRecurring()
	if err != nil {
		return fmt.Errorf("failed to get recurring schedule: %w", err)
	}

	kept := recurring[:0]
	found := false
	for _, r := range recurring {
		if r.Name == c.Name {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return fmt.Errorf("recurring commitment not found: %s", c.Name)
	}

	if err := ctx.Store.SaveRecurring(kept); err != nil {
		return err
	}
	fmt.Printf("Removed recurring commitment %q\n", c.Name)
	return nil
}

func formatWeekdays(weekdays []time.Weekday) string {
	var names []string
	for _, wd := range weekdays {
		names = append(names, wd.String()[:3])
	}
	return strings.Join(names, ",")
}
