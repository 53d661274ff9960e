package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/habitlit/internal/habitstore"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	mem := storage.NewMemoryStore()
	if err := mem.Init(); err != nil {
		t.Fatal(err)
	}
	store := habitstore.New(mem)
	store.Load(context.Background())
	return &Context{
		Store:     store,
		Provider:  mem,
		ConfigDir: t.TempDir(),
		Out:       &bytes.Buffer{},
	}
}

func add(t *testing.T, ctx *Context, name string) models.Habit {
	t.Helper()
	h, err := ctx.Store.Add(context.Background(), models.HabitInput{
		Name: name, Frequency: models.FrequencyDaily, Category: models.CategoryOther,
	})
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func TestResolveHabit(t *testing.T) {
	ctx := newTestContext(t)
	read := add(t, ctx, "Read")
	add(t, ctx, "Walk")
	add(t, ctx, "walk")

	if h, err := ctx.ResolveHabit(read.ID); err != nil || h.ID != read.ID {
		t.Errorf("by id: %v %v", h.ID, err)
	}
	if h, err := ctx.ResolveHabit("read"); err != nil || h.ID != read.ID {
		t.Errorf("by name: %v %v", h.ID, err)
	}
	if _, err := ctx.ResolveHabit("Walk"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("expected ambiguity error, got %v", err)
	}
	if _, err := ctx.ResolveHabit("Swim"); !errors.Is(err, habitstore.ErrHabitNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		ctx := newTestContext(t)
		ctx.In = strings.NewReader(tt.input)
		got, err := ctx.Confirm("Continue?")
		if err != nil {
			t.Fatalf("Confirm(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPerformAutomaticBackup(t *testing.T) {
	ctx := newTestContext(t)
	add(t, ctx, "Read")

	ctx.PerformAutomaticBackup()

	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}
