package habits

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/tui/components/calendar"
)

type HabitMonthCmd struct {
	Month string `arg:"" optional:"" help:"Month to show (YYYY-MM); the current month when omitted."`
}

func (c *HabitMonthCmd) Run(ctx *cli.Context) error {
	today := ctx.Store.Today()
	year, month := today.Year, today.Month
	if c.Month != "" {
		t, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM): %w", c.Month, err)
		}
		year, month = t.Year(), t.Month()
	}

	days := ctx.Store.MonthlyProgress(year, month)
	ctx.Println(calendar.Render(year, month, days, today))
	ctx.Println(calendar.Legend())

	var due, done int
	for _, p := range days {
		due += p.TotalHabits
		done += p.CompletedHabits
	}
	if due > 0 {
		ctx.Printf("\n%d of %d scheduled completions (%.0f%%)\n", done, due, float64(done)/float64(due)*100)
	}
	return nil
}
