package progress

import (
	"time"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

// ForMonth computes day progress for every calendar day of the month.
// Out-of-range months roll over the way time.Date does, so month 13 is
// January of the following year.
func ForMonth(habits []models.Habit, year int, month time.Month) models.MonthlyProgress {
	first := utils.NewDate(year, month, 1)
	year, month = first.Year, first.Month
	days := utils.DaysInMonth(year, month)
	result := make(models.MonthlyProgress, days)
	for day := 1; day <= days; day++ {
		date := utils.Date{Year: year, Month: month, Day: day}
		result[date.String()] = ForDay(habits, date)
	}
	return result
}
