package system

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage/sqlite"
)

func TestDoctorCmd_HealthyStore(t *testing.T) {
	ctx, _, out := setupMemoryContext(t)
	addDaily(t, ctx, "Water")

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed on a healthy store: %v\n%s", err, out)
	}

	got := out.String()
	for _, want := range []string{
		"✓ Storage reachable: OK",
		"✓ Schema version: OK",
		"✓ Habits readable: OK (1 habits)",
		"✓ Data validation: OK",
		"All diagnostics passed!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestDoctorCmd_MissingBackupsIsWarning(t *testing.T) {
	ctx, _, out := setupMemoryContext(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor should not fail on missing backups: %v", err)
	}
	if !strings.Contains(out.String(), "⚠ Backups present: WARNING") {
		t.Errorf("expected backup warning, got:\n%s", out)
	}

	ctx.PerformAutomaticBackup()
	out.Reset()
	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "✓ Backups present: OK") {
		t.Errorf("expected backups OK after a backup, got:\n%s", out)
	}
}

func TestDoctorCmd_UnreachableStorage(t *testing.T) {
	ctx, mem, out := setupMemoryContext(t)
	mem.GetErr = errors.New("connection refused")

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail when storage is unreachable")
	}

	got := out.String()
	if !strings.Contains(got, "❌ Storage reachable: FAIL") {
		t.Errorf("expected storage failure, got:\n%s", got)
	}
	if !strings.Contains(got, "⊘ Data validation: SKIPPED") {
		t.Errorf("expected validation to be skipped, got:\n%s", got)
	}
}

func TestDoctorCmd_UnreadableHabits(t *testing.T) {
	ctx, mem, out := setupMemoryContext(t)
	if err := mem.Set(ctx.Ctx, constants.StorageKey, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	ctx.Store.Load(ctx.Ctx)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail on a corrupt collection")
	}
	if !strings.Contains(out.String(), "❌ Habits readable: FAIL") {
		t.Errorf("expected habits failure, got:\n%s", out)
	}
}

func TestDoctorCmd_InvalidHabitFails(t *testing.T) {
	ctx, _, out := setupMemoryContext(t)
	// The store trusts its input, so a weekly habit without days can be stored
	if _, err := ctx.Store.Add(ctx.Ctx, models.HabitInput{
		Name:      "Gym",
		Frequency: models.FrequencyWeekly,
		Category:  models.CategoryExercise,
	}); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("expected doctor to fail on an invalid habit")
	}
	got := out.String()
	if !strings.Contains(got, "❌ Data validation: FAIL") || !strings.Contains(got, `Habit "Gym" is invalid`) {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestDoctorCmd_DuplicateNamesWarn(t *testing.T) {
	ctx, _, out := setupMemoryContext(t)
	addDaily(t, ctx, "Read")
	addDaily(t, ctx, "read")

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("duplicate names should only warn: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "⚠ Data validation: WARNING") || !strings.Contains(got, "Duplicate habit name") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestDoctorCmd_SQLiteSchema(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitlit.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	defer store.Close()

	ctx, out := newContext(t, store)
	ctx.Store.Load(ctx.Ctx)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed on a fresh database: %v\n%s", err, out)
	}
	if !strings.Contains(out.String(), "✓ Schema version: OK") {
		t.Errorf("expected schema OK, got:\n%s", out)
	}
}

func TestCheckClockTimezone(t *testing.T) {
	tests := []struct {
		now     time.Time
		wantErr bool
	}{
		{time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), false},
		{time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2200, 1, 1, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		if err := checkClockTimezone(tt.now); (err != nil) != tt.wantErr {
			t.Errorf("checkClockTimezone(%s) error = %v, wantErr %v", tt.now, err, tt.wantErr)
		}
	}
}
