package constants

const (
	AppName            = "tempo"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tempo/tempo.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MonthKeyFormat identifies one generated timetable (YYYY-MM)
	MonthKeyFormat = "2006-01"
)

const (
	// MinutesPerDay is the number of minutes in a calendar day.
	MinutesPerDay = 1440

	// EndOfDayMin is the last representable minute of a day (23:59).
	// Placement never wraps past midnight; end times are clamped here.
	EndOfDayMin = 1439

	// GridStepMin is the granularity of the free-slot search grid and the
	// unit all session lengths are expressed in.
	GridStepMin = 15

	// BreakLabel is the label used for the mandatory gap block placed after
	// scheduled events and activity sessions.
	BreakLabel = "Break"
)

const (
	// Default settings values
	DefaultWindowStart      = "06:00"
	DefaultWindowEnd        = "22:00"
	DefaultBreakMin         = 120
	DefaultDailyActivityCap = 360
	DefaultTimezone         = "Local"

	// RecalibrateDeadlineDays is the fresh deadline granted when an expired
	// activity is recalibrated instead of completed.
	RecalibrateDeadlineDays = 7
)
