package habits

import (
	"fmt"

	"github.com/julianstephens/habitlit/internal/cli"
)

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Yes   bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireLoaded(); err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete %q and its %d completions?", habit.Name, len(habit.CompletedDates)))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Delete(ctx.Background(), habit.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireLoaded(); err != nil {
		return err
	}
	count := len(ctx.Store.Habits())
	if count == 0 {
		ctx.Println("No habits to clear.")
		return nil
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete all %d habits?", count))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Clear cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	ctx.Store.ClearAll(ctx.Background())

	// ClearAll only logs failures; the collection is untouched when it fails
	if remaining := len(ctx.Store.Habits()); remaining > 0 {
		return fmt.Errorf("failed to clear habits; %d habits remain (see log)", remaining)
	}
	ctx.Printf("Cleared %d habits.\n", count)
	return nil
}
