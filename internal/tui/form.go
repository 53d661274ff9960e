package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
)

func newHabitForm(fm *HabitFormModel) *huh.Form {
	frequencies := make([]huh.Option[string], len(models.Frequencies))
	for i, f := range models.Frequencies {
		frequencies[i] = huh.NewOption(f.Label(), string(f))
	}
	categories := make([]huh.Option[string], len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = huh.NewOption(c.Emoji()+" "+string(c), string(c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(frequencies...).
				Value(&fm.Frequency),
			huh.NewInput().
				Title("Schedule").
				Description("Weekly: mon,wed,fri  Monthly: 1,15  Custom: 2024-03-10,2024-04-01").
				Value(&fm.Schedule),
			huh.NewSelect[string]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Emoji").
				Description("Leave empty for the category default").
				Value(&fm.Emoji),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&fm.Time).
				Validate(func(s string) error {
					if s != "" && !utils.ValidateTimeFormat(s) {
						return fmt.Errorf("time must be in HH:MM format")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// toInput converts the form values to a habit input, parsing the schedule
// for the chosen frequency.
func (fm *HabitFormModel) toInput() (models.HabitInput, error) {
	in := models.HabitInput{
		Name:      fm.Name,
		Frequency: models.Frequency(fm.Frequency),
		Category:  models.Category(fm.Category),
		Emoji:     strings.TrimSpace(fm.Emoji),
		Time:      strings.TrimSpace(fm.Time),
	}

	var err error
	switch in.Frequency {
	case models.FrequencyWeekly:
		in.WeeklyDays, err = utils.ParseWeekdays(fm.Schedule)
	case models.FrequencyMonthly:
		in.MonthlyDays, err = utils.ParseMonthDays(fm.Schedule)
	case models.FrequencyCustom:
		in.CustomDates, err = utils.ParseDates(fm.Schedule)
	}
	return in, err
}
