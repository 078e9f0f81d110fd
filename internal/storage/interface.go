package storage

import "github.com/tempo-cli/tempo/internal/models"

// Provider persists activities, events, generated timetables, and the
// bookkeeping around them. The scheduling core never retries a failed
// Provider call; the in-memory generation result stays valid either way and
// the caller decides whether to retry or warn the user.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Activities
	AddActivity(models.Activity) error
	GetActivity(name string) (models.Activity, error)
	GetAllActivities() ([]models.Activity, error)
	UpdateActivity(models.Activity) error
	DeleteActivity(name string) error

	// Compulsory events
	AddEvent(models.Event) error
	GetAllEvents() ([]models.Event, error)
	DeleteEvent(id string) error

	// Recurring weekly schedule
	GetRecurring() ([]models.RecurringEvent, error)
	SaveRecurring([]models.RecurringEvent) error

	// Generated timetables, keyed by month (YYYY-MM). Saving replaces the
	// month's previous timetable wholesale.
	SaveTimetable(monthKey string, days map[string][]models.Block) error
	GetTimetable(monthKey string) (map[string][]models.Block, error)

	// Hours of completed work per activity name
	GetProgress() (map[string]float64, error)
	SetProgress(activity string, hours float64) error

	// Pending-verification set for expired activities
	GetPending() (map[string]bool, error)
	SetPending(activity string, pending bool) error

	// Utils
	GetConfigPath() string
}
