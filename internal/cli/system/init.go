package system

import (
	"fmt"

	"github.com/julianstephens/habitlit/internal/backup"
	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/models"
)

type InitCmd struct {
	Import string `help:"JSON file holding a habit array to import after initialization." type:"existingfile"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// Parse the import first so a bad file leaves storage untouched
	var imported []models.Habit
	if c.Import != "" {
		habits, err := backup.ReadBackup(c.Import)
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
		imported = habits
	}

	if err := ctx.Provider.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized storage at: %s\n", ctx.Provider.GetConfigPath())

	if c.Import == "" {
		return nil
	}

	ctx.Store.Load(ctx.Background())
	if err := ctx.RequireLoaded(); err != nil {
		return err
	}
	if err := ctx.Store.Replace(ctx.Background(), imported); err != nil {
		return fmt.Errorf("failed to import habits: %w", err)
	}
	ctx.Printf("Imported %d habits from %s\n", len(imported), c.Import)
	return nil
}
