package models

// HabitCompletion is the per-habit entry of a DayProgress.
type HabitCompletion struct {
	HabitID   string `json:"habitId"`
	Completed bool   `json:"completed"`
}

// DayProgress summarizes the habits due on one date. It is derived on demand
// and never persisted.
type DayProgress struct {
	Date            string            `json:"date"` // YYYY-MM-DD format
	TotalHabits     int               `json:"totalHabits"`
	CompletedHabits int               `json:"completedHabits"`
	Habits          []HabitCompletion `json:"habits"`
}

// Rate returns CompletedHabits/TotalHabits, or 0 when nothing is due.
func (p DayProgress) Rate() float64 {
	if p.TotalHabits == 0 {
		return 0
	}
	return float64(p.CompletedHabits) / float64(p.TotalHabits)
}

// MonthlyProgress maps each date of a month (YYYY-MM-DD) to its progress.
type MonthlyProgress map[string]DayProgress
