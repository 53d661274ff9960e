package progress

import (
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

// Streak counts consecutive completed days ending at today (inclusive).
// At most constants.StreakWindowDays days are examined.
func Streak(habit models.Habit, today utils.Date) int {
	if len(habit.CompletedDates) == 0 {
		return 0
	}

	completed := make(map[utils.Date]struct{}, len(habit.CompletedDates))
	for _, d := range habit.CompletedDates {
		completed[d] = struct{}{}
	}

	streak := 0
	for i := 0; i < constants.StreakWindowDays; i++ {
		if _, ok := completed[today.AddDays(-i)]; !ok {
			break
		}
		streak++
	}
	return streak
}
