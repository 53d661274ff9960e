package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/utils"
)

type DebugCmd struct {
	DBPath    *DebugDBPathCmd    `cmd:"" help:"Show storage location."`
	DumpAll   *DebugDumpAllCmd   `cmd:"" help:"Dump every habit as JSON."`
	DumpHabit *DebugDumpHabitCmd `cmd:"" help:"Dump one habit as JSON."`
	DumpDay   *DebugDumpDayCmd   `cmd:"" help:"Dump day progress as JSON."`
}

func printJSON(ctx *cli.Context, v any, what string) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", what, err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{"path": ctx.Provider.GetConfigPath()}, "output")
}

type DebugDumpAllCmd struct{}

func (cmd *DebugDumpAllCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.LoadErr(); err != nil {
		return err
	}
	return printJSON(ctx, ctx.Store.Habits(), "habits")
}

type DebugDumpHabitCmd struct {
	ID string `arg:"" help:"ID or name of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.ResolveHabit(cmd.ID)
	if err != nil {
		return err
	}
	return printJSON(ctx, habit, "habit")
}

type DebugDumpDayCmd struct {
	Date string `arg:"" optional:"" help:"Date to dump (YYYY-MM-DD, 'today' or 'yesterday')."`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := utils.ResolveDate(cmd.Date, ctx.Store.Today())
	if err != nil {
		return err
	}
	return printJSON(ctx, ctx.Store.DayProgress(date), "day progress")
}
