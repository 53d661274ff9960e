package habits

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/utils"
	"github.com/julianstephens/habitlit/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	Done   HabitDoneCmd   `cmd:"" help:"Toggle a habit's completion for a day."`
	List   HabitListCmd   `cmd:"" help:"List all habits."`
	Today  HabitTodayCmd  `cmd:"" help:"Show habits due on a day." default:"1"`
	Streak HabitStreakCmd `cmd:"" help:"Show current streaks."`
	Month  HabitMonthCmd  `cmd:"" help:"Show a month of progress as a calendar."`
	Clear  HabitClearCmd  `cmd:"" help:"Delete every habit (a backup is taken first)."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Habit name."`
	Frequency string `short:"f" help:"Frequency (daily|weekly|monthly|custom)." enum:"daily,weekly,monthly,custom" default:"daily"`
	Days      string `short:"d" help:"Weekdays (mon,wed), month days (1,15) or dates (2024-03-10) for the frequency."`
	Category  string `short:"c" help:"Category (health|exercise|study|lifestyle|work|other)." enum:"health,exercise,study,lifestyle,work,other" default:"other"`
	Emoji     string `short:"e" help:"Emoji; defaults to the category's."`
	Time      string `short:"t" help:"Time of day (HH:MM)."`
	Target    int    `help:"Target count per occurrence."`
	Unit      string `help:"Unit for the target count."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireLoaded(); err != nil {
		return err
	}
	in := models.HabitInput{
		Name:      c.Name,
		Frequency: models.Frequency(c.Frequency),
		Category:  models.Category(c.Category),
		Emoji:     c.Emoji,
		Time:      c.Time,
		Unit:      c.Unit,
	}
	if c.Target > 0 {
		target := c.Target
		in.TargetCount = &target
	}
	if err := applySchedule(&in.WeeklyDays, &in.MonthlyDays, &in.CustomDates, in.Frequency, c.Days); err != nil {
		return err
	}

	if err := validation.ValidateInput(in); err != nil {
		return err
	}

	habit, err := ctx.Store.Add(ctx.Background(), in)
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s %s (ID: %s)\n", habit.Emoji, habit.Name, habit.ID)
	return nil
}

// applySchedule parses days into the schedule field for freq.
func applySchedule(weekly *[]time.Weekday, monthly *[]int, custom *[]utils.Date, freq models.Frequency, days string) error {
	if strings.TrimSpace(days) == "" {
		return nil
	}
	var err error
	switch freq {
	case models.FrequencyWeekly:
		*weekly, err = utils.ParseWeekdays(days)
	case models.FrequencyMonthly:
		*monthly, err = utils.ParseMonthDays(days)
	case models.FrequencyCustom:
		*custom, err = utils.ParseDates(days)
	default:
		return fmt.Errorf("--days is not used by %s habits", freq)
	}
	return err
}
