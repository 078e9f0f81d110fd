package scheduler

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tempo-cli/tempo/internal/calendar"
	"github.com/tempo-cli/tempo/internal/models"
	"github.com/tempo-cli/tempo/internal/timetable"
	"github.com/tempo-cli/tempo/internal/utils"
)

// 2026-09-01 is a Tuesday.
var testNow = time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)

func newTestScheduler(t *testing.T, seed int64) *Scheduler {
	t.Helper()
	s, err := New(Config{
		Now:  testNow,
		Rand: rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func activityMinutes(tt *timetable.Timetable) int {
	total := 0
	for _, day := range tt.Days() {
		total += tt.DailyActivityMinutes(day)
	}
	return total
}

func assertNoOverlap(t *testing.T, tt *timetable.Timetable) {
	t.Helper()
	for _, day := range tt.Days() {
		blocks := tt.Blocks(day)
		for i := 0; i < len(blocks); i++ {
			for j := i + 1; j < len(blocks); j++ {
				as, _ := utils.ToMinutes(blocks[i].Start)
				ae, _ := utils.ToMinutes(blocks[i].End)
				bs, _ := utils.ToMinutes(blocks[j].Start)
				be, _ := utils.ToMinutes(blocks[j].End)
				if as < be && bs < ae {
					t.Errorf("overlap on %s: %+v and %+v", day, blocks[i], blocks[j])
				}
			}
		}
	}
}

func TestNewRejectsBadWindow(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"malformed start", "6am", "22:00"},
		{"malformed end", "06:00", "22h"},
		{"inverted window", "22:00", "06:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Config{WindowStart: tt.start, WindowEnd: tt.end})
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPlaceFixedEventWithBreak(t *testing.T) {
	s := newTestScheduler(t, 1)

	events := []models.Event{{
		ID:        "ev1",
		Name:      "Dentist",
		StartTime: "09:00",
		EndTime:   "10:00",
		Date:      "2026-09-03",
	}}

	result, err := s.Generate(2026, time.September, nil, events, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	day := calendar.DayID(time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC))
	blocks := result.Timetable.Blocks(day)
	if len(blocks) != 2 {
		t.Fatalf("expected event + break, got %d blocks: %v", len(blocks), blocks)
	}
	if blocks[0].Kind != models.BlockCompulsory || blocks[0].Start != "09:00" || blocks[0].End != "10:00" {
		t.Errorf("unexpected event block: %+v", blocks[0])
	}
	if blocks[1].Kind != models.BlockBreak || blocks[1].Start != "10:00" || blocks[1].End != "12:00" {
		t.Errorf("unexpected break block: %+v", blocks[1])
	}
}

func TestPlaceFixedBreakSkippedAtMidnight(t *testing.T) {
	s := newTestScheduler(t, 1)

	events := []models.Event{{
		ID:        "ev1",
		Name:      "Late show",
		StartTime: "21:30",
		EndTime:   "23:00",
		Date:      "2026-09-03",
	}}

	result, err := s.Generate(2026, time.September, nil, events, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	day := calendar.DayID(time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC))
	blocks := result.Timetable.Blocks(day)
	if len(blocks) != 1 {
		t.Fatalf("break crossing midnight should be skipped, got %v", blocks)
	}
}

func TestPlaceRecurringSchedule(t *testing.T) {
	s := newTestScheduler(t, 1)

	recurring := []models.RecurringEvent{{
		Name:      "School",
		StartTime: "08:00",
		EndTime:   "14:00",
		Weekdays:  []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
	}}

	result, err := s.Generate(2026, time.September, nil, nil, recurring)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	schoolDays := 0
	for _, day := range result.Timetable.Days() {
		for _, b := range result.Timetable.Blocks(day) {
			if b.Kind == models.BlockSchool {
				schoolDays++
				if b.Start != "08:00" || b.End != "14:00" {
					t.Errorf("unexpected school block %+v on %s", b, day)
				}
			}
		}
	}
	// September 2026 has 22 weekdays.
	if schoolDays != 22 {
		t.Errorf("school placed on %d days, want 22", schoolDays)
	}
	assertNoOverlap(t, result.Timetable)
}

func TestFindFreeSlot(t *testing.T) {
	s := newTestScheduler(t, 7)
	days := calendar.MonthDays(2026, time.September, time.UTC)
	tt := timetable.New(days)
	day := days[0].ID

	start, end, ok := s.FindFreeSlot(tt, day, 60)
	if !ok {
		t.Fatal("expected a slot on an empty day")
	}
	if end-start != 60 {
		t.Errorf("slot length %d, want 60", end-start)
	}
	if start%15 != 0 {
		t.Errorf("start %d not grid-aligned", start)
	}
	if start < s.windowStart || end > s.windowEnd {
		t.Errorf("slot [%d,%d) outside window [%d,%d)", start, end, s.windowStart, s.windowEnd)
	}
}

func TestFindFreeSlotRespectsBreakBuffer(t *testing.T) {
	s := newTestScheduler(t, 7)
	days := calendar.MonthDays(2026, time.September, time.UTC)
	tt := timetable.New(days)
	day := days[0].ID

	// Occupy everything except 10:00-13:00. A 60-minute activity needs its
	// 120-minute break too, so only a 10:00 start survives.
	tt.Insert(day, 0, 600, "Busy", models.BlockCompulsory)
	tt.Insert(day, 780, 1439, "Busy", models.BlockCompulsory)

	for i := 0; i < 20; i++ {
		start, _, ok := s.FindFreeSlot(tt, day, 60)
		if !ok {
			t.Fatal("expected the single feasible slot to be found")
		}
		if start != 600 {
			t.Fatalf("start = %d, want 600: the trailing break must fit inside the gap", start)
		}
	}
}

func TestFindFreeSlotNoRoom(t *testing.T) {
	s := newTestScheduler(t, 7)
	days := calendar.MonthDays(2026, time.September, time.UTC)
	tt := timetable.New(days)
	day := days[0].ID

	tt.Insert(day, 0, 1439, "Busy", models.BlockCompulsory)
	if _, _, ok := s.FindFreeSlot(tt, day, 30); ok {
		t.Error("fully occupied day should yield no slot")
	}
}

func TestFindFreeSlotTooLongForWindow(t *testing.T) {
	s := newTestScheduler(t, 7)
	days := calendar.MonthDays(2026, time.September, time.UTC)
	tt := timetable.New(days)

	// Window is 06:00-22:00 = 960 minutes; nothing longer can fit.
	if _, _, ok := s.FindFreeSlot(tt, days[0].ID, 990); ok {
		t.Error("activity longer than the window should yield no slot")
	}
}

func TestGeneratePlacesFullWorkload(t *testing.T) {
	s := newTestScheduler(t, 42)

	activities := []models.Activity{{
		Name:          "Guitar",
		TimingHours:   3,
		DeadlineDays:  2,
		MinSessionMin: 30,
		MaxSessionMin: 120,
	}}

	result, err := s.Generate(2026, time.September, activities, nil, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", result.Warnings)
	}
	if got := activityMinutes(result.Timetable); got != 180 {
		t.Errorf("placed %d activity minutes, want 180", got)
	}

	// Every session block must be followed by its break.
	for _, day := range result.Timetable.Days() {
		blocks := result.Timetable.Blocks(day)
		for i, b := range blocks {
			if b.Kind != models.BlockActivity {
				continue
			}
			if i+1 >= len(blocks) || blocks[i+1].Kind != models.BlockBreak || blocks[i+1].Start != b.End {
				t.Errorf("session %+v on %s has no trailing break", b, day)
			}
		}
	}
	assertNoOverlap(t, result.Timetable)

	// Sessions are recorded on the returned activity and sum to the workload.
	sessions := result.Activities[0].Sessions
	total := 0
	for _, sess := range sessions {
		total += sess.DurationMin
		if sess.DurationMin < 30 && total != 180 {
			t.Errorf("session below the minimum: %+v", sess)
		}
		if sess.ScheduledDay == "" || sess.ScheduledTime == "" || sess.ScheduledDate == "" {
			t.Errorf("session missing scheduling fields: %+v", sess)
		}
		if sess.ID == "" {
			t.Error("session missing id")
		}
	}
	if total != 180 {
		t.Errorf("sessions sum to %d minutes, want 180", total)
	}
}

func TestGenerateNoEligibleDays(t *testing.T) {
	s := newTestScheduler(t, 3)

	// Sep 1-3 2026 are Tue/Wed/Thu; a Monday-only activity with a 2-day
	// deadline has no eligible day.
	activities := []models.Activity{{
		Name:          "Swimming",
		TimingHours:   2,
		DeadlineDays:  2,
		MinSessionMin: 30,
		MaxSessionMin: 60,
		AllowedDays:   []string{"Monday"},
	}}

	result, err := s.Generate(2026, time.September, activities, nil, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("expected exactly one warning, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "Swimming") {
		t.Errorf("warning should name the activity: %q", result.Warnings[0])
	}
	if got := activityMinutes(result.Timetable); got != 0 {
		t.Errorf("placed %d activity minutes, want 0", got)
	}
	if len(result.Activities[0].Sessions) != 0 {
		t.Error("no sessions should be recorded")
	}
}

func TestGenerateHonorsDailyCap(t *testing.T) {
	s := newTestScheduler(t, 11)

	// 10 hours due today cannot fit under the 360-minute daily ceiling, so
	// the shortfall must surface as a warning and no day may exceed the cap.
	activities := []models.Activity{{
		Name:          "Thesis",
		TimingHours:   10,
		DeadlineDays:  0,
		MinSessionMin: 120,
		MaxSessionMin: 120,
	}}

	result, err := s.Generate(2026, time.September, activities, nil, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, day := range result.Timetable.Days() {
		if got := result.Timetable.DailyActivityMinutes(day); got > 360 {
			t.Errorf("%s carries %d activity minutes, cap is 360", day, got)
		}
	}
	if got := activityMinutes(result.Timetable); got == 0 || got >= 600 {
		t.Errorf("placed %d activity minutes, want a partial placement below 600", got)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one warning, got %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "Thesis") {
		t.Errorf("warning should name the activity: %q", result.Warnings[0])
	}
	assertNoOverlap(t, result.Timetable)
}

func TestGenerateSessionLabels(t *testing.T) {
	s := newTestScheduler(t, 5)

	activities := []models.Activity{{
		Name:          "Reading",
		TimingHours:   4,
		DeadlineDays:  6,
		MinSessionMin: 60,
		MaxSessionMin: 60,
	}}

	result, err := s.Generate(2026, time.September, activities, nil, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}

	labels := make(map[string]int)
	for _, day := range result.Timetable.Days() {
		for _, b := range result.Timetable.Blocks(day) {
			if b.Kind == models.BlockActivity {
				labels[b.Name]++
			}
		}
	}
	for _, want := range []string{"Reading", "Reading (Session 2)", "Reading (Session 3)", "Reading (Session 4)"} {
		if labels[want] != 1 {
			t.Errorf("missing session label %q in %v", want, labels)
		}
	}
}

func TestGenerateAroundFixedCommitments(t *testing.T) {
	s := newTestScheduler(t, 9)

	recurring := []models.RecurringEvent{{
		Name:      "Work",
		StartTime: "09:00",
		EndTime:   "17:00",
		Weekdays:  []time.Weekday{time.Tuesday, time.Wednesday, time.Thursday},
	}}
	activities := []models.Activity{{
		Name:          "Gym",
		TimingHours:   2,
		DeadlineDays:  2,
		MinSessionMin: 60,
		MaxSessionMin: 120,
	}}

	result, err := s.Generate(2026, time.September, activities, nil, recurring)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
	if got := activityMinutes(result.Timetable); got != 120 {
		t.Errorf("placed %d activity minutes, want 120", got)
	}
	assertNoOverlap(t, result.Timetable)
}

func TestRegenerateReplacesSessions(t *testing.T) {
	activities := []models.Activity{{
		Name:          "Guitar",
		TimingHours:   3,
		DeadlineDays:  2,
		MinSessionMin: 30,
		MaxSessionMin: 120,
	}}

	first, err := newTestScheduler(t, 42).Generate(2026, time.September, activities, nil, nil)
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}

	// The second run receives the first run's activities, sessions and all,
	// the way the CLI feeds persisted state back in.
	second, err := newTestScheduler(t, 43).Generate(2026, time.September, first.Activities, nil, nil)
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if len(second.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", second.Warnings)
	}

	total := 0
	for _, sess := range second.Activities[0].Sessions {
		total += sess.DurationMin
	}
	if total != 180 {
		t.Errorf("sessions after regeneration total %d minutes, want exactly the 180-minute budget", total)
	}
	if got := activityMinutes(second.Timetable); got != 180 {
		t.Errorf("regenerated timetable carries %d activity minutes, want 180", got)
	}

	// Labels restart from the bare name; no leftover numbering from run one.
	labels := make(map[string]bool)
	blocks := 0
	for _, day := range second.Timetable.Days() {
		for _, b := range second.Timetable.Blocks(day) {
			if b.Kind == models.BlockActivity {
				labels[b.Name] = true
				blocks++
			}
		}
	}
	if !labels["Guitar"] {
		t.Errorf("first session should carry the bare activity name, got labels %v", labels)
	}
	if n := len(second.Activities[0].Sessions); blocks != n {
		t.Errorf("%d activity blocks for %d recorded sessions", blocks, n)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	activities := []models.Activity{
		{Name: "Guitar", TimingHours: 3, DeadlineDays: 10, MinSessionMin: 30, MaxSessionMin: 120},
		{Name: "Spanish", TimingHours: 5, DeadlineDays: 14, MinSessionMin: 60, MaxSessionMin: 90},
	}

	run := func() map[string][]models.Block {
		s := newTestScheduler(t, 99)
		result, err := s.Generate(2026, time.September, activities, nil, nil)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		m := result.Timetable.Map()
		// Session ids differ between runs; compare placement only.
		return m
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Error("same seed should produce the same timetable")
	}
}

func TestChunkSize(t *testing.T) {
	s := newTestScheduler(t, 13)

	t.Run("remainder at or below minimum", func(t *testing.T) {
		if got := s.chunkSize(20, 30, 120); got != 20 {
			t.Errorf("chunkSize = %d, want the full remainder 20", got)
		}
		if got := s.chunkSize(30, 30, 120); got != 30 {
			t.Errorf("chunkSize = %d, want 30", got)
		}
	})

	t.Run("bounds and sliver prevention", func(t *testing.T) {
		for i := 0; i < 500; i++ {
			remaining := 180
			chunk := s.chunkSize(remaining, 30, 120)
			if chunk%15 != 0 {
				t.Fatalf("chunk %d not a multiple of 15", chunk)
			}
			if chunk < 30 && chunk != remaining {
				t.Fatalf("chunk %d below the minimum", chunk)
			}
			if left := remaining - chunk; left > 0 && left < 30 {
				t.Fatalf("chunk %d leaves a %d-minute sliver", chunk, left)
			}
		}
	})

	t.Run("degenerate equal bounds", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			if got := s.chunkSize(240, 60, 60); got != 60 {
				t.Fatalf("chunkSize = %d, want 60", got)
			}
		}
	})
}

func TestEligibleDays(t *testing.T) {
	s := newTestScheduler(t, 1)
	days := calendar.MonthDays(2026, time.September, time.UTC)

	tests := []struct {
		name string
		act  models.Activity
		want int
	}{
		{
			name: "deadline window only",
			act:  models.Activity{DeadlineDays: 2},
			want: 3, // Sep 1, 2, 3
		},
		{
			name: "weekday filter",
			act:  models.Activity{DeadlineDays: 6, AllowedDays: []string{"Saturday", "Sunday"}},
			want: 2, // Sep 5, 6
		},
		{
			name: "deadline past the month end is truncated",
			act:  models.Activity{DeadlineDays: 60},
			want: 30,
		},
		{
			name: "zero deadline means today only",
			act:  models.Activity{DeadlineDays: 0},
			want: 1,
		},
		{
			name: "negative deadline yields nothing",
			act:  models.Activity{DeadlineDays: -1},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.eligibleDays(days, tt.act)
			if len(got) != tt.want {
				t.Errorf("eligibleDays returned %d days, want %d", len(got), tt.want)
			}
		})
	}
}
