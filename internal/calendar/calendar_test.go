package calendar

import (
	"testing"
	"time"
)

func TestMonthDays(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		wantDays int
	}{
		{
			name:     "September has 30 days",
			year:     2026,
			month:    time.September,
			wantDays: 30,
		},
		{
			name:     "January has 31 days",
			year:     2026,
			month:    time.January,
			wantDays: 31,
		},
		{
			name:     "February in a leap year",
			year:     2028,
			month:    time.February,
			wantDays: 29,
		},
		{
			name:     "February in a common year",
			year:     2026,
			month:    time.February,
			wantDays: 28,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := MonthDays(tt.year, tt.month, time.UTC)
			if len(days) != tt.wantDays {
				t.Fatalf("MonthDays(%d, %v) returned %d days, want %d", tt.year, tt.month, len(days), tt.wantDays)
			}
			for i, d := range days {
				if d.Date.Day() != i+1 {
					t.Errorf("day %d has date %v", i, d.Date)
				}
				if d.Weekday != d.Date.Weekday() {
					t.Errorf("day %s weekday mismatch", d.ID)
				}
			}
		})
	}
}

func TestDayID(t *testing.T) {
	// 2026-09-01 is a Tuesday
	d := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	if got := DayID(d); got != "Tuesday 1/9" {
		t.Errorf("DayID = %q, want %q", got, "Tuesday 1/9")
	}
}

func TestDayIDsUnique(t *testing.T) {
	days := MonthDays(2026, time.September, time.UTC)
	seen := make(map[string]bool)
	for _, d := range days {
		if seen[d.ID] {
			t.Fatalf("duplicate day identifier %q", d.ID)
		}
		seen[d.ID] = true
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Weekday
		wantErr bool
	}{
		{
			name:  "full name",
			input: "Monday",
			want:  time.Monday,
		},
		{
			name:  "lowercase",
			input: "saturday",
			want:  time.Saturday,
		},
		{
			name:  "three-letter abbreviation",
			input: "wed",
			want:  time.Wednesday,
		},
		{
			name:    "unknown name",
			input:   "Funday",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseWeekday(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseWeekday(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
