package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/models"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	window_start TEXT NOT NULL,
	window_end TEXT NOT NULL,
	break_min INTEGER NOT NULL,
	daily_activity_cap INTEGER NOT NULL,
	timezone TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activities (
	name TEXT PRIMARY KEY,
	priority INTEGER NOT NULL,
	deadline_days INTEGER NOT NULL,
	timing_hours REAL NOT NULL,
	min_session_min INTEGER NOT NULL,
	max_session_min INTEGER NOT NULL,
	allowed_days TEXT NOT NULL,
	sessions TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	day TEXT NOT NULL,
	date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS recurring (
	name TEXT PRIMARY KEY,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	weekdays TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS timetables (
	month TEXT PRIMARY KEY,
	payload TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS progress (
	activity TEXT PRIMARY KEY,
	hours REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS pending (
	activity TEXT PRIMARY KEY
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tempo init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	var settings models.Settings
	err := s.db.QueryRow(`SELECT window_start, window_end, break_min, daily_activity_cap, timezone FROM settings WHERE id = 1`).
		Scan(&settings.WindowStart, &settings.WindowEnd, &settings.BreakMin, &settings.DailyActivityCap, &settings.Timezone)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, window_start, window_end, break_min, daily_activity_cap, timezone)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			window_start = excluded.window_start,
			window_end = excluded.window_end,
			break_min = excluded.break_min,
			daily_activity_cap = excluded.daily_activity_cap,
			timezone = excluded.timezone`,
		settings.WindowStart, settings.WindowEnd, settings.BreakMin, settings.DailyActivityCap, settings.Timezone)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddActivity(act models.Activity) error {
	allowedDays, err := json.Marshal(act.AllowedDays)
	if err != nil {
		return fmt.Errorf("failed to serialize allowed days: %w", err)
	}
	sessions, err := json.Marshal(act.Sessions)
	if err != nil {
		return fmt.Errorf("failed to serialize sessions: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO activities (name, priority, deadline_days, timing_hours, min_session_min, max_session_min, allowed_days, sessions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		act.Name, act.Priority, act.DeadlineDays, act.TimingHours, act.MinSessionMin, act.MaxSessionMin, string(allowedDays), string(sessions))
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}
	return nil
}

func (s *SQLiteStore) scanActivity(row *sql.Row) (models.Activity, error) {
	var act models.Activity
	var allowedDays, sessions string
	err := row.Scan(&act.Name, &act.Priority, &act.DeadlineDays, &act.TimingHours,
		&act.MinSessionMin, &act.MaxSessionMin, &allowedDays, &sessions)
	if err != nil {
		return models.Activity{}, err
	}
	if err := json.Unmarshal([]byte(allowedDays), &act.AllowedDays); err != nil {
		return models.Activity{}, fmt.Errorf("failed to parse allowed days: %w", err)
	}
	if err := json.Unmarshal([]byte(sessions), &act.Sessions); err != nil {
		return models.Activity{}, fmt.Errorf("failed to parse sessions: %w", err)
	}
	return act, nil
}

func (s *SQLiteStore) GetActivity(name string) (models.Activity, error) {
	row := s.db.QueryRow(`
		SELECT name, priority, deadline_days, timing_hours, min_session_min, max_session_min, allowed_days, sessions
		FROM activities WHERE name = ?`, name)
	act, err := s.scanActivity(row)
	if err == sql.ErrNoRows {
		return models.Activity{}, errors.NotFound("activity", name)
	}
	if err != nil {
		return models.Activity{}, fmt.Errorf("failed to get activity: %w", err)
	}
	return act, nil
}

func (s *SQLiteStore) GetAllActivities() ([]models.Activity, error) {
	rows, err := s.db.Query(`
		SELECT name, priority, deadline_days, timing_hours, min_session_min, max_session_min, allowed_days, sessions
		FROM activities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var act models.Activity
		var allowedDays, sessions string
		if err := rows.Scan(&act.Name, &act.Priority, &act.DeadlineDays, &act.TimingHours,
			&act.MinSessionMin, &act.MaxSessionMin, &allowedDays, &sessions); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if err := json.Unmarshal([]byte(allowedDays), &act.AllowedDays); err != nil {
			return nil, fmt.Errorf("failed to parse allowed days: %w", err)
		}
		if err := json.Unmarshal([]byte(sessions), &act.Sessions); err != nil {
			return nil, fmt.Errorf("failed to parse sessions: %w", err)
		}
		activities = append(activities, act)
	}
	return activities, rows.Err()
}

func (s *SQLiteStore) UpdateActivity(act models.Activity) error {
	allowedDays, err := json.Marshal(act.AllowedDays)
	if err != nil {
		return fmt.Errorf("failed to serialize allowed days: %w", err)
	}
	sessions, err := json.Marshal(act.Sessions)
	if err != nil {
		return fmt.Errorf("failed to serialize sessions: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE activities SET priority = ?, deadline_days = ?, timing_hours = ?,
			min_session_min = ?, max_session_min = ?, allowed_days = ?, sessions = ?
		WHERE name = ?`,
		act.Priority, act.DeadlineDays, act.TimingHours, act.MinSessionMin, act.MaxSessionMin,
		string(allowedDays), string(sessions), act.Name)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("activity", act.Name)
	}
	return nil
}

func (s *SQLiteStore) DeleteActivity(name string) error {
	res, err := s.db.Exec(`DELETE FROM activities WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("activity", name)
	}
	if _, err := s.db.Exec(`DELETE FROM progress WHERE activity = ?`, name); err != nil {
		return fmt.Errorf("failed to delete activity progress: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM pending WHERE activity = ?`, name); err != nil {
		return fmt.Errorf("failed to delete pending flag: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddEvent(ev models.Event) error {
	_, err := s.db.Exec(`
		INSERT INTO events (id, name, start_time, end_time, day, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Name, ev.StartTime, ev.EndTime, ev.Day, ev.Date)
	if err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetAllEvents() ([]models.Event, error) {
	rows, err := s.db.Query(`SELECT id, name, start_time, end_time, day, date FROM events ORDER BY date, start_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var ev models.Event
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.StartTime, &ev.EndTime, &ev.Day, &ev.Date); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *SQLiteStore) DeleteEvent(id string) error {
	res, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("event", id)
	}
	return nil
}

func (s *SQLiteStore) GetRecurring() ([]models.RecurringEvent, error) {
	rows, err := s.db.Query(`SELECT name, start_time, end_time, weekdays FROM recurring ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recurring events: %w", err)
	}
	defer rows.Close()

	var recurring []models.RecurringEvent
	for rows.Next() {
		var r models.RecurringEvent
		var weekdays string
		if err := rows.Scan(&r.Name, &r.StartTime, &r.EndTime, &weekdays); err != nil {
			return nil, fmt.Errorf("failed to scan recurring event: %w", err)
		}
		if err := json.Unmarshal([]byte(weekdays), &r.Weekdays); err != nil {
			return nil, fmt.Errorf("failed to parse weekdays: %w", err)
		}
		recurring = append(recurring, r)
	}
	return recurring, rows.Err()
}

func (s *SQLiteStore) SaveRecurring(recurring []models.RecurringEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM recurring`); err != nil {
		return fmt.Errorf("failed to clear recurring events: %w", err)
	}
	for _, r := range recurring {
		weekdays, err := json.Marshal(r.Weekdays)
		if err != nil {
			return fmt.Errorf("failed to serialize weekdays: %w", err)
		}
		if _, err := tx.Exec(`
			INSERT INTO recurring (name, start_time, end_time, weekdays)
			VALUES (?, ?, ?, ?)`,
			r.Name, r.StartTime, r.EndTime, string(weekdays)); err != nil {
			return fmt.Errorf("failed to insert recurring event: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) SaveTimetable(monthKey string, days map[string][]models.Block) error {
	payload, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("failed to serialize timetable: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO timetables (month, payload) VALUES (?, ?)
		ON CONFLICT (month) DO UPDATE SET payload = excluded.payload`,
		monthKey, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save timetable: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetTimetable(monthKey string) (map[string][]models.Block, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM timetables WHERE month = ?`, monthKey).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("timetable", monthKey)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get timetable: %w", err)
	}
	var days map[string][]models.Block
	if err := json.Unmarshal([]byte(payload), &days); err != nil {
		return nil, fmt.Errorf("failed to parse timetable: %w", err)
	}
	return days, nil
}

func (s *SQLiteStore) GetProgress() (map[string]float64, error) {
	rows, err := s.db.Query(`SELECT activity, hours FROM progress`)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	progress := make(map[string]float64)
	for rows.Next() {
		var name string
		var hours float64
		if err := rows.Scan(&name, &hours); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		progress[name] = hours
	}
	return progress, rows.Err()
}

func (s *SQLiteStore) SetProgress(activity string, hours float64) error {
	_, err := s.db.Exec(`
		INSERT INTO progress (activity, hours) VALUES (?, ?)
		ON CONFLICT (activity) DO UPDATE SET hours = excluded.hours`,
		activity, hours)
	if err != nil {
		return fmt.Errorf("failed to set progress: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetPending() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT activity FROM pending`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending set: %w", err)
	}
	defer rows.Close()

	pending := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan pending entry: %w", err)
		}
		pending[name] = true
	}
	return pending, rows.Err()
}

func (s *SQLiteStore) SetPending(activity string, pending bool) error {
	if pending {
		_, err := s.db.Exec(`INSERT INTO pending (activity) VALUES (?) ON CONFLICT (activity) DO NOTHING`, activity)
		if err != nil {
			return fmt.Errorf("failed to add pending entry: %w", err)
		}
		return nil
	}
	if _, err := s.db.Exec(`DELETE FROM pending WHERE activity = ?`, activity); err != nil {
		return fmt.Errorf("failed to remove pending entry: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
