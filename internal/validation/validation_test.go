package validation

import (
	"testing"
	"time"

	"github.com/tempo-cli/tempo/internal/models"
)

var now = time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)

func conflictTypes(r ValidationResult) []ConflictType {
	types := make([]ConflictType, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		types = append(types, c.Type)
	}
	return types
}

func TestValidateActivities(t *testing.T) {
	tests := []struct {
		name string
		acts []models.Activity
		want []ConflictType
	}{
		{
			name: "clean",
			acts: []models.Activity{{
				Name: "Guitar", TimingHours: 3, DeadlineDays: 5,
				MinSessionMin: 30, MaxSessionMin: 120,
			}},
			want: nil,
		},
		{
			name: "duplicate names",
			acts: []models.Activity{
				{Name: "Guitar", TimingHours: 1, DeadlineDays: 5, MinSessionMin: 30, MaxSessionMin: 60},
				{Name: "Guitar", TimingHours: 2, DeadlineDays: 5, MinSessionMin: 30, MaxSessionMin: 60},
			},
			want: []ConflictType{ConflictDuplicateActivityName},
		},
		{
			name: "inverted session bounds",
			acts: []models.Activity{{
				Name: "Guitar", TimingHours: 1, DeadlineDays: 5,
				MinSessionMin: 120, MaxSessionMin: 30,
			}},
			want: []ConflictType{ConflictInvalidSessionBounds},
		},
		{
			name: "off-grid session bounds",
			acts: []models.Activity{{
				Name: "Guitar", TimingHours: 1, DeadlineDays: 5,
				MinSessionMin: 20, MaxSessionMin: 60,
			}},
			want: []ConflictType{ConflictInvalidSessionBounds},
		},
		{
			name: "unknown weekday",
			acts: []models.Activity{{
				Name: "Guitar", TimingHours: 1, DeadlineDays: 5,
				MinSessionMin: 30, MaxSessionMin: 60,
				AllowedDays: []string{"Funday"},
			}},
			want: []ConflictType{ConflictUnknownWeekday},
		},
		{
			name: "overcommitted against the daily ceiling",
			acts: []models.Activity{{
				// 20 hours due today: only 360 minutes fit in one day.
				Name: "Thesis", TimingHours: 20, DeadlineDays: 0,
				MinSessionMin: 30, MaxSessionMin: 120,
			}},
			want: []ConflictType{ConflictOvercommitted},
		},
		{
			name: "allowed days shrink capacity",
			acts: []models.Activity{{
				// Sep 1-8 2026 holds a single Monday (Sep 7); 12 hours do
				// not fit in one capped day.
				Name: "Thesis", TimingHours: 12, DeadlineDays: 7,
				MinSessionMin: 30, MaxSessionMin: 120,
				AllowedDays: []string{"Monday"},
			}},
			want: []ConflictType{ConflictOvercommitted},
		},
		{
			name: "overdue activity is not checked for capacity",
			acts: []models.Activity{{
				Name: "Guitar", TimingHours: 3, DeadlineDays: -2,
				MinSessionMin: 30, MaxSessionMin: 60,
			}},
			want: nil,
		},
	}

	v := New(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateActivities(tt.acts, now)
			if len(got.Conflicts) != len(tt.want) {
				t.Fatalf("got %d conflicts %v, want %d", len(got.Conflicts), conflictTypes(got), len(tt.want))
			}
			for i, want := range tt.want {
				if got.Conflicts[i].Type != want {
					t.Errorf("conflict[%d].Type = %s, want %s", i, got.Conflicts[i].Type, want)
				}
			}
		})
	}
}

func TestValidateActivitiesHonorsConfiguredCap(t *testing.T) {
	// 4 hours due today fit under the default 360-minute ceiling but not
	// under a lowered one.
	act := models.Activity{
		Name: "Thesis", TimingHours: 4, DeadlineDays: 0,
		MinSessionMin: 30, MaxSessionMin: 120,
	}

	if got := New(0).ValidateActivities([]models.Activity{act}, now); got.HasConflicts() {
		t.Errorf("default cap should accept 240 minutes in a day: %v", got.Conflicts)
	}

	got := New(120).ValidateActivities([]models.Activity{act}, now)
	if len(got.Conflicts) != 1 || got.Conflicts[0].Type != ConflictOvercommitted {
		t.Fatalf("lowered cap should flag overcommitment, got %v", got.Conflicts)
	}
}

func TestValidateEvents(t *testing.T) {
	tests := []struct {
		name   string
		events []models.Event
		want   []ConflictType
	}{
		{
			name: "clean",
			events: []models.Event{
				{Name: "Dentist", StartTime: "09:00", EndTime: "10:00", Date: "2026-09-03"},
				{Name: "Dinner", StartTime: "19:00", EndTime: "21:00", Date: "2026-09-03"},
			},
			want: nil,
		},
		{
			name: "malformed time",
			events: []models.Event{
				{Name: "Dentist", StartTime: "9am", EndTime: "10:00", Date: "2026-09-03"},
			},
			want: []ConflictType{ConflictInvalidTime},
		},
		{
			name: "inverted interval",
			events: []models.Event{
				{Name: "Dentist", StartTime: "10:00", EndTime: "09:00", Date: "2026-09-03"},
			},
			want: []ConflictType{ConflictInvalidTime},
		},
		{
			name: "same-day overlap",
			events: []models.Event{
				{Name: "Dentist", StartTime: "09:00", EndTime: "10:30", Date: "2026-09-03"},
				{Name: "Meeting", StartTime: "10:00", EndTime: "11:00", Date: "2026-09-03"},
			},
			want: []ConflictType{ConflictOverlappingEvents},
		},
		{
			name: "same times on different days do not overlap",
			events: []models.Event{
				{Name: "Dentist", StartTime: "09:00", EndTime: "10:00", Date: "2026-09-03"},
				{Name: "Meeting", StartTime: "09:00", EndTime: "10:00", Date: "2026-09-04"},
			},
			want: nil,
		},
		{
			name: "adjacent events do not overlap",
			events: []models.Event{
				{Name: "Dentist", StartTime: "09:00", EndTime: "10:00", Date: "2026-09-03"},
				{Name: "Meeting", StartTime: "10:00", EndTime: "11:00", Date: "2026-09-03"},
			},
			want: nil,
		},
	}

	v := New(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.ValidateEvents(tt.events)
			if len(got.Conflicts) != len(tt.want) {
				t.Fatalf("got %d conflicts %v, want %d", len(got.Conflicts), conflictTypes(got), len(tt.want))
			}
			for i, want := range tt.want {
				if got.Conflicts[i].Type != want {
					t.Errorf("conflict[%d].Type = %s, want %s", i, got.Conflicts[i].Type, want)
				}
			}
		})
	}
}

func TestValidateTimetable(t *testing.T) {
	v := New(0)

	t.Run("clean day", func(t *testing.T) {
		days := map[string][]models.Block{
			"Tuesday 1/9": {
				{Start: "09:00", End: "10:00", Name: "Dentist", Kind: models.BlockCompulsory},
				{Start: "10:00", End: "12:00", Name: "Break", Kind: models.BlockBreak},
			},
		}
		if got := v.ValidateTimetable(days); got.HasConflicts() {
			t.Errorf("unexpected conflicts: %v", got.Conflicts)
		}
	})

	t.Run("overlapping blocks", func(t *testing.T) {
		days := map[string][]models.Block{
			"Tuesday 1/9": {
				{Start: "09:00", End: "11:00", Name: "Dentist", Kind: models.BlockCompulsory},
				{Start: "10:00", End: "12:00", Name: "Guitar", Kind: models.BlockActivity},
			},
		}
		got := v.ValidateTimetable(days)
		if len(got.Conflicts) != 1 || got.Conflicts[0].Type != ConflictOverlappingBlocks {
			t.Fatalf("expected one overlapping_blocks conflict, got %v", got.Conflicts)
		}
	})
}

func TestFormatReport(t *testing.T) {
	clean := ValidationResult{}
	if got := clean.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport = %q", got)
	}

	r := ValidationResult{Conflicts: []Conflict{{
		Type:        ConflictDuplicateActivityName,
		Description: "Duplicate activity name: \"Guitar\" (2 definitions)",
	}}}
	got := r.FormatReport()
	if got == "" || got == "No conflicts detected." {
		t.Errorf("FormatReport = %q", got)
	}
}
