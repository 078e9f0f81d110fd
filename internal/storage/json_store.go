package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tempo-cli/tempo/internal/constants"
	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/models"
)

// Store is the on-disk shape of the JSON backend.
type Store struct {
	Version    int                                 `json:"version"`
	Settings   models.Settings                     `json:"settings"`
	Activities map[string]models.Activity          `json:"activities"`
	Events     map[string]models.Event             `json:"events"`
	Recurring  []models.RecurringEvent             `json:"recurring"`
	Timetables map[string]map[string][]models.Block `json:"timetables"` // month -> day -> blocks
	Progress   map[string]float64                  `json:"progress"`
	Pending    map[string]bool                     `json:"pending"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func DefaultSettings() models.Settings {
	return models.Settings{
		WindowStart:      constants.DefaultWindowStart,
		WindowEnd:        constants.DefaultWindowEnd,
		BreakMin:         constants.DefaultBreakMin,
		DailyActivityCap: constants.DefaultDailyActivityCap,
		Timezone:         constants.DefaultTimezone,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:    1,
		Settings:   DefaultSettings(),
		Activities: make(map[string]models.Activity),
		Events:     make(map[string]models.Event),
		Timetables: make(map[string]map[string][]models.Block),
		Progress:   make(map[string]float64),
		Pending:    make(map[string]bool),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tempo init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Activities == nil {
		s.store.Activities = make(map[string]models.Activity)
	}
	if s.store.Events == nil {
		s.store.Events = make(map[string]models.Event)
	}
	if s.store.Timetables == nil {
		s.store.Timetables = make(map[string]map[string][]models.Block)
	}
	if s.store.Progress == nil {
		s.store.Progress = make(map[string]float64)
	}
	if s.store.Pending == nil {
		s.store.Pending = make(map[string]bool)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddActivity(act models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, exists := s.store.Activities[act.Name]; exists {
		return fmt.Errorf("activity already exists: %s", act.Name)
	}
	s.store.Activities[act.Name] = act
	return s.save()
}

func (s *JSONStore) GetActivity(name string) (models.Activity, error) {
	if s.store == nil {
		return models.Activity{}, fmt.Errorf("storage not loaded")
	}
	act, ok := s.store.Activities[name]
	if !ok {
		return models.Activity{}, errors.NotFound("activity", name)
	}
	return act, nil
}

func (s *JSONStore) GetAllActivities() ([]models.Activity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	activities := make([]models.Activity, 0, len(s.store.Activities))
	for _, act := range s.store.Activities {
		activities = append(activities, act)
	}
	return activities, nil
}

func (s *JSONStore) UpdateActivity(act models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Activities[act.Name]; !ok {
		return errors.NotFound("activity", act.Name)
	}
	s.store.Activities[act.Name] = act
	return s.save()
}

func (s *JSONStore) DeleteActivity(name string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Activities[name]; !ok {
		return errors.NotFound("activity", name)
	}
	delete(s.store.Activities, name)
	delete(s.store.Progress, name)
	delete(s.store.Pending, name)
	return s.save()
}

func (s *JSONStore) AddEvent(ev models.Event) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Events[ev.ID] = ev
	return s.save()
}

func (s *JSONStore) GetAllEvents() ([]models.Event, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	events := make([]models.Event, 0, len(s.store.Events))
	for _, ev := range s.store.Events {
		events = append(events, ev)
	}
	return events, nil
}

func (s *JSONStore) DeleteEvent(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Events[id]; !ok {
		return errors.NotFound("event", id)
	}
	delete(s.store.Events, id)
	return s.save()
}

func (s *JSONStore) GetRecurring() ([]models.RecurringEvent, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.store.Recurring, nil
}

func (s *JSONStore) SaveRecurring(recurring []models.RecurringEvent) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Recurring = recurring
	return s.save()
}

func (s *JSONStore) SaveTimetable(monthKey string, days map[string][]models.Block) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Timetables[monthKey] = days
	return s.save()
}

func (s *JSONStore) GetTimetable(monthKey string) (map[string][]models.Block, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	days, ok := s.store.Timetables[monthKey]
	if !ok {
		return nil, errors.NotFound("timetable", monthKey)
	}
	return days, nil
}

func (s *JSONStore) GetProgress() (map[string]float64, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	progress := make(map[string]float64, len(s.store.Progress))
	for name, hours := range s.store.Progress {
		progress[name] = hours
	}
	return progress, nil
}

func (s *JSONStore) SetProgress(activity string, hours float64) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Progress[activity] = hours
	return s.save()
}

func (s *JSONStore) GetPending() (map[string]bool, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	pending := make(map[string]bool, len(s.store.Pending))
	for name, p := range s.store.Pending {
		if p {
			pending[name] = true
		}
	}
	return pending, nil
}

func (s *JSONStore) SetPending(activity string, pending bool) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if pending {
		s.store.Pending[activity] = true
	} else {
		delete(s.store.Pending, activity)
	}
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
