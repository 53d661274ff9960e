// Package progress derives completion statistics and streaks from a habit
// collection. Nothing here is persisted.
package progress

import (
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/scheduler"
	"github.com/julianstephens/habitlit/internal/utils"
)

// ForDay computes the progress of the habits due on date.
func ForDay(habits []models.Habit, date utils.Date) models.DayProgress {
	p := models.DayProgress{
		Date:   date.String(),
		Habits: []models.HabitCompletion{},
	}

	for _, h := range habits {
		if !scheduler.IsDue(h, date) {
			continue
		}
		completed := h.IsCompletedOn(date)
		p.TotalHabits++
		if completed {
			p.CompletedHabits++
		}
		p.Habits = append(p.Habits, models.HabitCompletion{HabitID: h.ID, Completed: completed})
	}

	return p
}
