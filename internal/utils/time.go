package utils

import (
	"fmt"
	"time"

	"github.com/tempo-cli/tempo/internal/constants"
)

// ToMinutes parses a time string in the standard format (HH:MM) and returns
// the number of minutes from midnight. Input is not sanitized beyond the
// format check; callers must validate user input before handing times to the
// scheduling core.
func ToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM): %w", timeStr, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ToTimeString converts minutes from midnight into a zero-padded HH:MM string.
func ToTimeString(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClampMinutes clamps a minutes-from-midnight value into [0, 23:59]. A span
// that would reach or cross midnight is cut at 23:59; nothing ever wraps to
// the next day.
func ClampMinutes(minutes int) int {
	if minutes < 0 {
		return 0
	}
	if minutes >= constants.MinutesPerDay {
		return constants.EndOfDayMin
	}
	return minutes
}

// AddMinutes adds delta minutes to an HH:MM time string, clamping the result
// at 23:59.
func AddMinutes(timeStr string, delta int) (string, error) {
	m, err := ToMinutes(timeStr)
	if err != nil {
		return "", err
	}
	return ToTimeString(ClampMinutes(m + delta)), nil
}

// RoundTo15 rounds a minute count to a multiple of 15 with a +7 offset, so
// values land on the nearest grid step (7 rounds down, 8 rounds up).
func RoundTo15(minutes int) int {
	return ((minutes + 7) / 15) * 15
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// Midnight normalizes a time to 00:00 on the same date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) at midnight in the
// specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
