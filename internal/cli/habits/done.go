package habits

import (
	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/scheduler"
	"github.com/julianstephens/habitlit/internal/utils"
)

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `help:"Day to toggle (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
}

func (c *HabitDoneCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireLoaded(); err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	date, err := utils.ResolveDate(c.Date, ctx.Store.Today())
	if err != nil {
		return err
	}

	completed, err := ctx.Store.ToggleCompletion(ctx.Background(), habit.ID, date)
	if err != nil {
		return err
	}

	if completed {
		ctx.Printf("✓ %s done on %s\n", habit.Name, date)
	} else {
		ctx.Printf("○ %s unmarked on %s\n", habit.Name, date)
	}
	if !scheduler.IsDue(habit, date) {
		ctx.Printf("  Note: %s is not scheduled on %s\n", habit.Name, date)
	}
	return nil
}
