package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/tempo-cli/tempo/internal/errors"
	"github.com/tempo-cli/tempo/internal/models"
)

const postgresSchema = `
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
	timing_hours DOUBLE PRECISION NOT NULL,
	min_session_min INTEGER NOT NULL,
	max_session_min INTEGER NOT NULL,
	allowed_days JSONB NOT NULL,
	sessions JSONB NOT NULL
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
	weekdays JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS timetables (
	month TEXT PRIMARY KEY,
	payload JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS progress (
	activity TEXT PRIMARY KEY,
	hours DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS pending (
	activity TEXT PRIMARY KEY
);
`

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

func (s *PostgresStore) open() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}
	return s.open()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetSettings() (models.Settings, error) {
	var settings models.Settings
	err := s.db.QueryRow(`SELECT window_start, window_end, break_min, daily_activity_cap, timezone FROM settings WHERE id = 1`).
		Scan(&settings.WindowStart, &settings.WindowEnd, &settings.BreakMin, &settings.DailyActivityCap, &settings.Timezone)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, window_start, window_end, break_min, daily_activity_cap, timezone)
		VALUES (1, $1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			window_start = EXCLUDED.window_start,
			window_end = EXCLUDED.window_end,
			break_min = EXCLUDED.break_min,
			daily_activity_cap = EXCLUDED.daily_activity_cap,
			timezone = EXCLUDED.timezone`,
		settings.WindowStart, settings.WindowEnd, settings.BreakMin, settings.DailyActivityCap, settings.Timezone)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *PostgresStore) AddActivity(act models.Activity) error {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		act.Name, act.Priority, act.DeadlineDays, act.TimingHours, act.MinSessionMin, act.MaxSessionMin, string(allowedDays), string(sessions))
	if err != nil {
		return fmt.Errorf("failed to add activity: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetActivity(name string) (models.Activity, error) {
	var act models.Activity
	var allowedDays, sessions string
	err := s.db.QueryRow(`
		SELECT name, priority, deadline_days, timing_hours, min_session_min, max_session_min, allowed_days, sessions
		FROM activities WHERE name = $1`, name).
		Scan(&act.Name, &act.Priority, &act.DeadlineDays, &act.TimingHours,
			&act.MinSessionMin, &act.MaxSessionMin, &allowedDays, &sessions)
	if err == sql.ErrNoRows {
		return models.Activity{}, errors.NotFound("activity", name)
	}
	if err != nil {
		return models.Activity{}, fmt.Errorf("failed to get activity: %w", err)
	}
	if err := json.Unmarshal([]byte(allowedDays), &act.AllowedDays); err != nil {
		return models.Activity{}, fmt.Errorf("failed to parse allowed days: %w", err)
	}
	if err := json.Unmarshal([]byte(sessions), &act.Sessions); err != nil {
		return models.Activity{}, fmt.Errorf("failed to parse sessions: %w", err)
	}
	return act, nil
}

func (s *PostgresStore) GetAllActivities() ([]models.Activity, error) {
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

func (s *PostgresStore) UpdateActivity(act models.Activity) error {
	allowedDays, err := json.Marshal(act.AllowedDays)
	if err != nil {
		return fmt.Errorf("failed to serialize allowed days: %w", err)
	}
	sessions, err := json.Marshal(act.Sessions)
	if err != nil {
		return fmt.Errorf("failed to serialize sessions: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE activities SET priority = $1, deadline_days = $2, timing_hours = $3,
			min_session_min = $4, max_session_min = $5, allowed_days = $6, sessions = $7
		WHERE name = $8`,
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

func (s *PostgresStore) DeleteActivity(name string) error {
	res, err := s.db.Exec(`DELETE FROM activities WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("activity", name)
	}
	if _, err := s.db.Exec(`DELETE FROM progress WHERE activity = $1`, name); err != nil {
		return fmt.Errorf("failed to delete activity progress: %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM pending WHERE activity = $1`, name); err != nil {
		return fmt.Errorf("failed to delete pending flag: %w", err)
	}
	return nil
}

func (s *PostgresStore) AddEvent(ev models.Event) error {
	_, err := s.db.Exec(`
		INSERT INTO events (id, name, start_time, end_time, day, date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ev.ID, ev.Name, ev.StartTime, ev.EndTime, ev.Day, ev.Date)
	if err != nil {
		return fmt.Errorf("failed to add event: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAllEvents() ([]models.Event, error) {
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

func (s *PostgresStore) DeleteEvent(id string) error {
	res, err := s.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("event", id)
	}
	return nil
}

func (s *PostgresStore) GetRecurring() ([]models.RecurringEvent, error) {
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

func (s *PostgresStore) SaveRecurring(recurring []models.RecurringEvent) error {
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
			VALUES ($1, $2, $3, $4)`,
			r.Name, r.StartTime, r.EndTime, string(weekdays)); err != nil {
			return fmt.Errorf("failed to insert recurring event: %w", err)
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) SaveTimetable(monthKey string, days map[string][]models.Block) error {
	payload, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("failed to serialize timetable: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO timetables (month, payload) VALUES ($1, $2)
		ON CONFLICT (month) DO UPDATE SET payload = EXCLUDED.payload`,
		monthKey, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save timetable: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetTimetable(monthKey string) (map[string][]models.Block, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM timetables WHERE month = $1`, monthKey).Scan(&payload)
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

func (s *PostgresStore) GetProgress() (map[string]float64, error) {
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

func (s *PostgresStore) SetProgress(activity string, hours float64) error {
	_, err := s.db.Exec(`
		INSERT INTO progress (activity, hours) VALUES ($1, $2)
		ON CONFLICT (activity) DO UPDATE SET hours = EXCLUDED.hours`,
		activity, hours)
	if err != nil {
		return fmt.Errorf("failed to set progress: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetPending() (map[string]bool, error) {
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

func (s *PostgresStore) SetPending(activity string, pending bool) error {
	if pending {
		_, err := s.db.Exec(`INSERT INTO pending (activity) VALUES ($1) ON CONFLICT (activity) DO NOTHING`, activity)
		if err != nil {
			return fmt.Errorf("failed to add pending entry: %w", err)
		}
		return nil
	}
	if _, err := s.db.Exec(`DELETE FROM pending WHERE activity = $1`, activity); err != nil {
		return fmt.Errorf("failed to remove pending entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}
