package habits

import (
	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/utils"
)

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits := ctx.Store.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits found")
		return nil
	}

	ctx.Println("Habits:")
	for _, h := range habits {
		ctx.Printf("  %s %s [%s] - %s\n", h.Emoji, h.Name, h.Category, h.ScheduleLabel())
		if h.Time != "" {
			ctx.Printf("      At: %s\n", h.Time)
		}
		if h.TargetCount != nil {
			ctx.Printf("      Target: %d %s\n", *h.TargetCount, h.Unit)
		}
		ctx.Printf("      ID: %s\n", h.ID)
	}
	return nil
}

type HabitTodayCmd struct {
	Date string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	date, err := utils.ResolveDate(c.Date, ctx.Store.Today())
	if err != nil {
		return err
	}

	p := ctx.Store.DayProgress(date)
	ctx.Printf("Habits for %s (%d/%d done):\n\n", p.Date, p.CompletedHabits, p.TotalHabits)

	due := ctx.Store.HabitsForDate(date)
	if len(due) == 0 {
		ctx.Println("  Nothing due")
		return nil
	}
	for _, h := range due {
		mark := "○"
		if h.IsCompletedOn(date) {
			mark = "✓"
		}
		ctx.Printf("  %s %s %s\n", mark, h.Emoji, h.Name)
	}
	return nil
}

type HabitStreakCmd struct {
	Habit string `arg:"" optional:"" help:"Habit id or name; all habits when omitted."`
}

func (c *HabitStreakCmd) Run(ctx *cli.Context) error {
	if c.Habit != "" {
		habit, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		ctx.Printf("%s: %d day streak\n", habit.Name, ctx.Store.Streak(habit.ID))
		return nil
	}

	habits := ctx.Store.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits found")
		return nil
	}
	for _, h := range habits {
		ctx.Printf("  %-30s %3d\n", h.Name, ctx.Store.Streak(h.ID))
	}
	return nil
}
