package system

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/habitstore"
	"github.com/julianstephens/habitlit/internal/models"
	"github.com/julianstephens/habitlit/internal/storage"
)

var fixedNow = time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)

func newContext(t *testing.T, provider storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := habitstore.New(provider, habitstore.WithClock(func() time.Time { return fixedNow }))
	out := &bytes.Buffer{}
	return &cli.Context{
		Ctx:       context.Background(),
		Store:     store,
		Provider:  provider,
		ConfigDir: t.TempDir(),
		Out:       out,
	}, out
}

func setupMemoryContext(t *testing.T) (*cli.Context, *storage.MemoryStore, *bytes.Buffer) {
	t.Helper()
	mem := storage.NewMemoryStore()
	if err := mem.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	ctx, out := newContext(t, mem)
	ctx.Store.Load(ctx.Ctx)
	return ctx, mem, out
}

func addDaily(t *testing.T, ctx *cli.Context, name string) models.Habit {
	t.Helper()
	h, err := ctx.Store.Add(ctx.Ctx, models.HabitInput{
		Name:      name,
		Frequency: models.FrequencyDaily,
		Category:  models.CategoryHealth,
	})
	if err != nil {
		t.Fatalf("add %q failed: %v", name, err)
	}
	return h
}
