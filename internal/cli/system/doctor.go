package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	fail := func(name string, err error) {
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	}
	skip := func(name string) {
		ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", name)
	}

	// Check 1: Storage reachable
	reachable := true
	if err := checkStorageReachable(ctx); err != nil {
		fail("Storage reachable", err)
		reachable = false
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
	}

	// Check 2: Schema version (SQL backends only)
	if reachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fail("Schema version", err)
		} else {
			ctx.Printf("✓ Schema version: OK\n")
		}
	} else {
		skip("Schema version")
	}

	// Check 3: Stored habits decode
	if reachable {
		if err := ctx.Store.LoadErr(); err != nil {
			fail("Habits readable", err)
		} else {
			ctx.Printf("✓ Habits readable: OK (%d habits)\n", len(ctx.Store.Habits()))
		}
	} else {
		skip("Habits readable")
	}

	// Check 4: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		ctx.Printf("⚠ Backups present: WARNING\n")
		ctx.Printf("   %v\n", err)
	} else {
		ctx.Printf("✓ Backups present: OK\n")
	}

	// Check 5: Data validation. Invalid habits fail, other findings warn.
	if reachable {
		result := validation.ValidateHabits(ctx.Store.Habits(), ctx.Store.Today())
		switch {
		case !result.HasConflicts():
			ctx.Printf("✓ Data validation: OK\n")
		case hasInvalidHabit(result):
			ctx.Printf("❌ Data validation: FAIL\n")
			printReport(ctx, result)
			hasError = true
		default:
			ctx.Printf("⚠ Data validation: WARNING\n")
			printReport(ctx, result)
		}
	} else {
		skip("Data validation")
	}

	// Check 6: Clock/timezone sanity
	if err := checkClockTimezone(time.Now()); err != nil {
		fail("Clock/timezone", err)
	} else {
		ctx.Printf("✓ Clock/timezone: OK\n")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if ctx.Provider == nil {
		return errors.New("no storage configured")
	}
	_, err := ctx.Provider.Get(ctx.Background(), constants.StorageKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to read from %s: %w", ctx.Provider.GetConfigPath(), err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	reporter, ok := ctx.Provider.(storage.SchemaReporter)
	if !ok {
		// JSON, memory and redis storage are schemaless
		return nil
	}

	current, latest, err := reporter.SchemaVersion(ctx.Background())
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: database at version %d, latest is %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func hasInvalidHabit(result validation.ValidationResult) bool {
	for _, c := range result.Conflicts {
		if c.Type == validation.ConflictInvalidHabit {
			return true
		}
	}
	return false
}

func printReport(ctx *cli.Context, result validation.ValidationResult) {
	for _, line := range strings.Split(strings.TrimRight(result.FormatReport(), "\n"), "\n") {
		ctx.Printf("   %s\n", line)
	}
}
