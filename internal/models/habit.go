package models

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/habitlit/internal/utils"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

// Frequencies lists every supported frequency in display order.
var Frequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom}

func (f Frequency) Label() string {
	switch f {
	case FrequencyDaily:
		return "Daily"
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyMonthly:
		return "Monthly"
	case FrequencyCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

type Category string

const (
	CategoryHealth    Category = "health"
	CategoryExercise  Category = "exercise"
	CategoryStudy     Category = "study"
	CategoryLifestyle Category = "lifestyle"
	CategoryWork      Category = "work"
	CategoryOther     Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryHealth, CategoryExercise, CategoryStudy,
	CategoryLifestyle, CategoryWork, CategoryOther,
}

// Emoji returns the default icon for the category.
func (c Category) Emoji() string {
	switch c {
	case CategoryHealth:
		return "🍎"
	case CategoryExercise:
		return "🏃"
	case CategoryStudy:
		return "📚"
	case CategoryLifestyle:
		return "🏠"
	case CategoryWork:
		return "💼"
	default:
		return "⭐"
	}
}

// Color returns the hex colour used when rendering the category.
func (c Category) Color() string {
	switch c {
	case CategoryHealth:
		return "#4CAF50"
	case CategoryExercise:
		return "#FF5722"
	case CategoryStudy:
		return "#2196F3"
	case CategoryLifestyle:
		return "#9C27B0"
	case CategoryWork:
		return "#FF9800"
	default:
		return "#607D8B"
	}
}

// Habit represents a recurring practice to track.
// Only the schedule field matching Frequency is consulted:
// WeeklyDays for weekly, MonthlyDays for monthly, CustomDates for custom.
type Habit struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Frequency      Frequency      `json:"frequency"`
	WeeklyDays     []time.Weekday `json:"weeklyDays,omitempty"`
	MonthlyDays    []int          `json:"monthlyDays,omitempty"`
	CustomDates    []utils.Date   `json:"customDates,omitempty"`
	Category       Category       `json:"category"`
	Emoji          string         `json:"emoji,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	CompletedDates []utils.Date   `json:"completedDates"`

	// Carried for per-occurrence quantity tracking; not evaluated by the engine.
	TargetCount  *int   `json:"targetCount,omitempty"`
	CurrentCount *int   `json:"currentCount,omitempty"`
	Unit         string `json:"unit,omitempty"`
	Time         string `json:"time,omitempty"` // HH:MM format
}

// UnmarshalJSON accepts the legacy "customDays" field name for weekly days.
func (h *Habit) UnmarshalJSON(data []byte) error {
	type habitAlias Habit
	aux := struct {
		*habitAlias
		LegacyWeeklyDays []time.Weekday `json:"customDays,omitempty"`
	}{habitAlias: (*habitAlias)(h)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(h.WeeklyDays) == 0 && len(aux.LegacyWeeklyDays) > 0 {
		h.WeeklyDays = aux.LegacyWeeklyDays
	}
	if h.CompletedDates == nil {
		h.CompletedDates = []utils.Date{}
	}
	return nil
}

// IsCompletedOn reports whether the habit was marked done on date.
func (h Habit) IsCompletedOn(date utils.Date) bool {
	return slices.Contains(h.CompletedDates, date)
}

// Clone returns a deep copy so snapshots never share slices with live state.
func (h Habit) Clone() Habit {
	c := h
	c.WeeklyDays = slices.Clone(h.WeeklyDays)
	c.MonthlyDays = slices.Clone(h.MonthlyDays)
	c.CustomDates = slices.Clone(h.CustomDates)
	c.CompletedDates = slices.Clone(h.CompletedDates)
	if c.CompletedDates == nil {
		c.CompletedDates = []utils.Date{}
	}
	if h.TargetCount != nil {
		v := *h.TargetCount
		c.TargetCount = &v
	}
	if h.CurrentCount != nil {
		v := *h.CurrentCount
		c.CurrentCount = &v
	}
	return c
}

// ScheduleLabel describes when the habit is due, e.g. "Weekly: Mon, Wed".
func (h Habit) ScheduleLabel() string {
	switch h.Frequency {
	case FrequencyWeekly:
		days := make([]string, len(h.WeeklyDays))
		for i, wd := range h.WeeklyDays {
			days[i] = wd.String()[:3]
		}
		return h.Frequency.Label() + ": " + strings.Join(days, ", ")
	case FrequencyMonthly:
		days := make([]string, len(h.MonthlyDays))
		for i, d := range h.MonthlyDays {
			days[i] = strconv.Itoa(d)
		}
		return h.Frequency.Label() + ": " + strings.Join(days, ", ")
	case FrequencyCustom:
		dates := make([]string, len(h.CustomDates))
		for i, d := range h.CustomDates {
			dates[i] = d.String()
		}
		return h.Frequency.Label() + ": " + strings.Join(dates, ", ")
	default:
		return h.Frequency.Label()
	}
}

// HabitInput is the caller-supplied data for a new habit. The store assigns
// the id, creation timestamp and empty completion set.
type HabitInput struct {
	Name         string         `json:"name" validate:"required,notblank,max=100"`
	Frequency    Frequency      `json:"frequency" validate:"required,oneof=daily weekly monthly custom"`
	WeeklyDays   []time.Weekday `json:"weeklyDays,omitempty" validate:"dive,min=0,max=6"`
	MonthlyDays  []int          `json:"monthlyDays,omitempty" validate:"dive,min=1,max=31"`
	CustomDates  []utils.Date   `json:"customDates,omitempty"`
	Category     Category       `json:"category" validate:"required,oneof=health exercise study lifestyle work other"`
	Emoji        string         `json:"emoji,omitempty"`
	TargetCount  *int           `json:"targetCount,omitempty" validate:"omitempty,min=1"`
	CurrentCount *int           `json:"currentCount,omitempty" validate:"omitempty,min=0"`
	Unit         string         `json:"unit,omitempty" validate:"max=20"`
	Time         string         `json:"time,omitempty" validate:"omitempty,hhmm"`
}

// InputOf returns the editable fields of h as an input, so an edited habit
// can be validated the same way as a new one.
func InputOf(h Habit) HabitInput {
	return HabitInput{
		Name:         h.Name,
		Frequency:    h.Frequency,
		WeeklyDays:   h.WeeklyDays,
		MonthlyDays:  h.MonthlyDays,
		CustomDates:  h.CustomDates,
		Category:     h.Category,
		Emoji:        h.Emoji,
		TargetCount:  h.TargetCount,
		CurrentCount: h.CurrentCount,
		Unit:         h.Unit,
		Time:         h.Time,
	}
}

// HabitPatch holds the editable fields of a habit; nil fields are left unchanged.
// id, createdAt and completedDates are deliberately absent.
type HabitPatch struct {
	Name         *string
	Frequency    *Frequency
	WeeklyDays   []time.Weekday
	MonthlyDays  []int
	CustomDates  []utils.Date
	Category     *Category
	Emoji        *string
	TargetCount  *int
	CurrentCount *int
	Unit         *string
	Time         *string
}

// IsEmpty reports whether the patch changes nothing.
func (p HabitPatch) IsEmpty() bool {
	return p.Name == nil && p.Frequency == nil && p.WeeklyDays == nil &&
		p.MonthlyDays == nil && p.CustomDates == nil && p.Category == nil &&
		p.Emoji == nil && p.TargetCount == nil && p.CurrentCount == nil &&
		p.Unit == nil && p.Time == nil
}

// Apply merges the patch into h and returns the result.
func (p HabitPatch) Apply(h Habit) Habit {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Frequency != nil {
		h.Frequency = *p.Frequency
	}
	if p.WeeklyDays != nil {
		h.WeeklyDays = slices.Clone(p.WeeklyDays)
	}
	if p.MonthlyDays != nil {
		h.MonthlyDays = slices.Clone(p.MonthlyDays)
	}
	if p.CustomDates != nil {
		h.CustomDates = slices.Clone(p.CustomDates)
	}
	if p.Category != nil {
		h.Category = *p.Category
	}
	if p.Emoji != nil {
		h.Emoji = *p.Emoji
	}
	if p.TargetCount != nil {
		v := *p.TargetCount
		h.TargetCount = &v
	}
	if p.CurrentCount != nil {
		v := *p.CurrentCount
		h.CurrentCount = &v
	}
	if p.Unit != nil {
		h.Unit = *p.Unit
	}
	if p.Time != nil {
		h.Time = *p.Time
	}
	return h
}
