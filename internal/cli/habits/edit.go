package habits

import (
	"fmt"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/validation"
)

type HabitEditCmd struct {
	Habit     string `arg:"" help:"Habit id or name."`
	Name      string `help:"New name."`
	Frequency string `short:"f" help:"New frequency (daily|weekly|monthly|custom)."`
	Days      string `short:"d" help:"New schedule for the frequency."`
	Category  string `short:"c" help:"New category."`
	Emoji     string `short:"e" help:"New emoji."`
	Time      string `short:"t" help:"New time of day (HH:MM)."`
	Target    int    `help:"New target count."`
	Unit      string `help:"New unit."`
}

func (c *HabitEditCmd) patch(current models.Habit) (models.HabitPatch, error) {
	var p models.HabitPatch
	if c.Name != "" {
		p.Name = &c.Name
	}
	freq := current.Frequency
	if c.Frequency != "" {
		f := models.Frequency(c.Frequency)
		p.Frequency = &f
		freq = f
	}
	if err := applySchedule(&p.WeeklyDays, &p.MonthlyDays, &p.CustomDates, freq, c.Days); err != nil {
		return p, err
	}
	if c.Category != "" {
		cat := models.Category(c.Category)
		p.Category = &cat
	}
	if c.Emoji != "" {
		p.Emoji = &c.Emoji
	}
	if c.Time != "" {
		p.Time = &c.Time
	}
	if c.Target > 0 {
		p.TargetCount = &c.Target
	}
	if c.Unit != "" {
		p.Unit = &c.Unit
	}
	return p, nil
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireLoaded(); err != nil {
		return err
	}
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}

	p, err := c.patch(habit)
	if err != nil {
		return err
	}
	if p.IsEmpty() {
		return fmt.Errorf("nothing to change; pass at least one flag")
	}
	if err := validation.ValidatePatch(habit, p); err != nil {
		return err
	}

	updated, err := ctx.Store.Update(ctx.Background(), habit.ID, p)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s (%s)\n", updated.Name, updated.ScheduleLabel())
	return nil
}
