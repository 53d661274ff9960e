package scheduler

import (
	"slices"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

// IsDue determines if a habit is scheduled on the given date based on its
// frequency. This logic is shared between progress aggregation, the CLI and
// the TUI so all views agree on what is due.
func IsDue(habit models.Habit, date utils.Date) bool {
	switch habit.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		return slices.Contains(habit.WeeklyDays, date.Weekday())
	case models.FrequencyMonthly:
		// Days that do not exist in the month (e.g. 31 in April) never match
		return slices.Contains(habit.MonthlyDays, date.Day)
	case models.FrequencyCustom:
		return slices.Contains(habit.CustomDates, date)
	default:
		return false
	}
}

// DueHabits returns the habits due on date, preserving collection order.
func DueHabits(habits []models.Habit, date utils.Date) []models.Habit {
	due := []models.Habit{}
	for _, h := range habits {
		if IsDue(h, date) {
			due = append(due, h)
		}
	}
	return due
}
