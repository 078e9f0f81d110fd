package system

import (
	"fmt"

	"github.com/tempo-cli/tempo/internal/cli"
	"github.com/tempo-cli/tempo/internal/keyring"
	"github.com/tempo-cli/tempo/internal/utils"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	fmt.Printf("window_start        %s\n", settings.WindowStart)
	fmt.Printf("window_end          %s\n", settings.WindowEnd)
	fmt.Printf("break_min           %d\n", settings.BreakMin)
	fmt.Printf("daily_activity_cap  %d\n", settings.DailyActivityCap)
	fmt.Printf("timezone            %s\n", settings.Timezone)
	return nil
}

type SettingsSetCmd struct {
	WindowStart string `help:"Earliest activity start (HH:MM)."`
	WindowEnd   string `help:"Latest activity end (HH:MM)."`
	BreakMin    int    `help:"Mandatory break length in minutes." default:"-1"`
	DailyCap    int    `help:"Per-day activity ceiling in minutes." default:"-1"`
	Timezone    string `help:"IANA timezone name, or 'Local'."`

	ConnectionString string `help:"Store a PostgreSQL connection string in the OS keyring."`
}

func (c *SettingsSetCmd) Validate() error {
	if c.WindowStart != "" && !utils.ValidateTimeFormat(c.WindowStart) {
		return fmt.Errorf("invalid window start (expected HH:MM): %s", c.WindowStart)
	}
	if c.WindowEnd != "" && !utils.ValidateTimeFormat(c.WindowEnd) {
		return fmt.Errorf("invalid window end (expected HH:MM): %s", c.WindowEnd)
	}
	if c.Timezone != "" && !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone: %s", c.Timezone)
	}
	return nil
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	if c.ConnectionString != "" {
		if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
			return err
		}
		fmt.Println("Stored connection string in the OS keyring.")
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	changed := false
	if c.WindowStart != "" {
		settings.WindowStart = c.WindowStart
		changed = true
	}
	if c.WindowEnd != "" {
		settings.WindowEnd = c.WindowEnd
		changed = true
	}
	if c.BreakMin >= 0 {
		settings.BreakMin = c.BreakMin
		changed = true
	}
	if c.DailyCap >= 0 {
		settings.DailyActivityCap = c.DailyCap
		changed = true
	}
	if c.Timezone != "" {
		settings.Timezone = c.Timezone
		changed = true
	}

	if !changed {
		if c.ConnectionString == "" {
			fmt.Println("Nothing to change.")
		}
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}
	fmt.Println("Settings updated.")
	return nil
}
