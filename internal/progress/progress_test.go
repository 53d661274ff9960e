package progress

import (
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/scheduler"
	"github.com/julianstephens/habitlit/internal/utils"
)

func dates(ss ...string) []utils.Date {
	out := make([]utils.Date, 0, len(ss))
	for _, s := range ss {
		out = append(out, utils.MustParseDate(s))
	}
	return out
}

func sampleHabits() []models.Habit {
	return []models.Habit{
		{
			ID:             "water",
			Frequency:      models.FrequencyDaily,
			CompletedDates: dates("2024-01-01", "2024-01-02"),
		},
		{
			ID:             "gym",
			Frequency:      models.FrequencyWeekly,
			WeeklyDays:     []time.Weekday{time.Monday, time.Wednesday, time.Friday},
			CompletedDates: dates("2024-01-03"),
		},
		{
			ID:          "rent",
			Frequency:   models.FrequencyMonthly,
			MonthlyDays: []int{1},
		},
		{
			ID:             "dentist",
			Frequency:      models.FrequencyCustom,
			CustomDates:    dates("2024-01-02"),
			CompletedDates: dates("2024-01-02"),
		},
	}
}

func TestForDay(t *testing.T) {
	habits := sampleHabits()

	tests := []struct {
		date      string
		total     int
		completed int
	}{
		{"2024-01-01", 3, 1}, // water, gym, rent
		{"2024-01-02", 2, 2}, // water, dentist
		{"2024-01-03", 2, 1}, // water, gym
		{"2024-01-04", 1, 0}, // water
	}

	for _, tt := range tests {
		p := ForDay(habits, utils.MustParseDate(tt.date))
		if p.Date != tt.date {
			t.Errorf("Date = %s, want %s", p.Date, tt.date)
		}
		if p.TotalHabits != tt.total || p.CompletedHabits != tt.completed {
			t.Errorf("%s: got %d/%d, want %d/%d", tt.date, p.CompletedHabits, p.TotalHabits, tt.completed, tt.total)
		}
		if len(p.Habits) != p.TotalHabits {
			t.Errorf("%s: %d habit entries for %d due habits", tt.date, len(p.Habits), p.TotalHabits)
		}
	}
}

func TestForDay_EntriesFollowCollectionOrder(t *testing.T) {
	p := ForDay(sampleHabits(), utils.MustParseDate("2024-01-01"))

	want := []models.HabitCompletion{
		{HabitID: "water", Completed: true},
		{HabitID: "gym", Completed: false},
		{HabitID: "rent", Completed: false},
	}
	if len(p.Habits) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(p.Habits))
	}
	for i := range want {
		if p.Habits[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, p.Habits[i], want[i])
		}
	}
}

func TestForDay_TotalMatchesDueCount(t *testing.T) {
	habits := sampleHabits()
	start := utils.MustParseDate("2023-12-01")
	for i := 0; i < 120; i++ {
		d := start.AddDays(i)
		if got, want := ForDay(habits, d).TotalHabits, len(scheduler.DueHabits(habits, d)); got != want {
			t.Errorf("%s: TotalHabits = %d, due count = %d", d, got, want)
		}
	}
}

func TestForDay_CompletionOnUndueDateIgnored(t *testing.T) {
	habits := []models.Habit{{
		ID:             "gym",
		Frequency:      models.FrequencyWeekly,
		WeeklyDays:     []time.Weekday{time.Monday},
		CompletedDates: dates("2024-01-02"), // Tuesday
	}}

	p := ForDay(habits, utils.MustParseDate("2024-01-02"))
	if p.TotalHabits != 0 || p.CompletedHabits != 0 {
		t.Errorf("expected no due habits, got %d/%d", p.CompletedHabits, p.TotalHabits)
	}
	if p.Habits == nil {
		t.Error("expected empty non-nil habits list")
	}
}

func TestForMonth_DayCount(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		got := ForMonth(sampleHabits(), tt.year, tt.month)
		if len(got) != tt.want {
			t.Errorf("ForMonth(%d, %s) has %d entries, want %d", tt.year, tt.month, len(got), tt.want)
		}
	}
}

func TestForMonth_KeysAndValues(t *testing.T) {
	month := ForMonth(sampleHabits(), 2024, time.January)

	for _, key := range []string{"2024-01-01", "2024-01-31"} {
		if _, ok := month[key]; !ok {
			t.Errorf("missing entry for %s", key)
		}
	}
	if _, ok := month["2024-02-01"]; ok {
		t.Error("unexpected entry from the following month")
	}

	jan2 := month["2024-01-02"]
	if jan2.TotalHabits != 2 || jan2.CompletedHabits != 2 {
		t.Errorf("2024-01-02 = %d/%d, want 2/2", jan2.CompletedHabits, jan2.TotalHabits)
	}
}

func TestForMonth_NormalizesOutOfRangeMonth(t *testing.T) {
	tests := []struct {
		year    int
		month   time.Month
		first   string
		last    string
		entries int
	}{
		{2024, 13, "2025-01-01", "2025-01-31", 31},
		{2024, 0, "2023-12-01", "2023-12-31", 31},
		{2023, 14, "2024-02-01", "2024-02-29", 29},
	}

	for _, tt := range tests {
		got := ForMonth(sampleHabits(), tt.year, tt.month)
		if len(got) != tt.entries {
			t.Errorf("ForMonth(%d, %d) has %d entries, want %d", tt.year, tt.month, len(got), tt.entries)
		}
		for _, key := range []string{tt.first, tt.last} {
			if _, ok := got[key]; !ok {
				t.Errorf("ForMonth(%d, %d) missing %s", tt.year, tt.month, key)
			}
		}
		for key := range got {
			if _, err := utils.ParseDate(key); err != nil {
				t.Errorf("ForMonth(%d, %d) produced invalid key %q", tt.year, tt.month, key)
			}
		}
	}
}

func TestForMonth_NoHabits(t *testing.T) {
	month := ForMonth(nil, 2024, time.February)
	if len(month) != 29 {
		t.Fatalf("expected 29 entries, got %d", len(month))
	}
	for key, p := range month {
		if p.TotalHabits != 0 {
			t.Errorf("%s: expected no due habits", key)
		}
	}
}

func TestStreak(t *testing.T) {
	today := utils.MustParseDate("2024-03-10")

	tests := []struct {
		name      string
		completed []utils.Date
		want      int
	}{
		{"no completions", nil, 0},
		{"today not completed", dates("2024-03-09", "2024-03-08"), 0},
		{"only today", dates("2024-03-10"), 1},
		{"three days", dates("2024-03-10", "2024-03-09", "2024-03-08"), 3},
		{"gap stops streak", dates("2024-03-10", "2024-03-09", "2024-03-07"), 2},
		{"order irrelevant", dates("2024-03-08", "2024-03-10", "2024-03-09"), 3},
		{"future completions ignored", dates("2024-03-11", "2024-03-10"), 1},
		{"across leap day", dates("2024-03-10", "2024-03-09", "2024-03-08", "2024-03-07", "2024-03-06",
			"2024-03-05", "2024-03-04", "2024-03-03", "2024-03-02", "2024-03-01", "2024-02-29", "2024-02-28"), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := models.Habit{Frequency: models.FrequencyDaily, CompletedDates: tt.completed}
			if got := Streak(h, today); got != tt.want {
				t.Errorf("Streak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreak_CappedAtWindow(t *testing.T) {
	today := utils.MustParseDate("2024-12-31")

	var completed []utils.Date
	for i := 0; i < 500; i++ {
		completed = append(completed, today.AddDays(-i))
	}
	h := models.Habit{Frequency: models.FrequencyDaily, CompletedDates: completed}

	if got := Streak(h, today); got != 365 {
		t.Errorf("Streak() = %d, want 365", got)
	}

	// Exactly the last 365 days inclusive
	h.CompletedDates = completed[:365]
	if got := Streak(h, today); got != 365 {
		t.Errorf("Streak() over exactly 365 days = %d, want 365", got)
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		completed, total int
		want             Band
	}{
		{0, 0, BandEmpty},
		{0, 3, BandNone},
		{1, 3, BandLow},
		{1, 2, BandHigh},
		{2, 3, BandHigh},
		{3, 3, BandFull},
	}

	for _, tt := range tests {
		p := models.DayProgress{TotalHabits: tt.total, CompletedHabits: tt.completed}
		if got := BandFor(p); got != tt.want {
			t.Errorf("BandFor(%d/%d) = %s, want %s", tt.completed, tt.total, got, tt.want)
		}
	}
}
