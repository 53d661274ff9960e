// Package storagetest holds the behaviour every storage.Provider must share.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/julianstephens/habitlit/internal/storage"
)

// RunProviderTests exercises Get/Set/Remove on an initialized provider.
// newProvider must return a provider on which Init or Load has succeeded.
func RunProviderTests(t *testing.T, newProvider func(t *testing.T) storage.Provider) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		p := newProvider(t)
		if _, err := p.Get(ctx, "absent"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get(absent) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		p := newProvider(t)
		value := []byte(`[{"id":"a","name":"Read"}]`)
		if err := p.Set(ctx, "habits_v3", value); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := p.Get(ctx, "habits_v3")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != string(value) {
			t.Errorf("Get() = %s, want %s", got, value)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		p := newProvider(t)
		if err := p.Set(ctx, "k", []byte(`[1]`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := p.Set(ctx, "k", []byte(`[2]`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := p.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != `[2]` {
			t.Errorf("Get() = %s, want [2]", got)
		}
	})

	t.Run("remove", func(t *testing.T) {
		p := newProvider(t)
		if err := p.Set(ctx, "k", []byte(`[]`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := p.Remove(ctx, "k"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if _, err := p.Get(ctx, "k"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Get after Remove error = %v, want ErrNotFound", err)
		}
		if err := p.Remove(ctx, "k"); err != nil {
			t.Errorf("Remove of absent key returned %v", err)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		p := newProvider(t)
		if err := p.Set(ctx, "a", []byte(`"one"`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := p.Set(ctx, "b", []byte(`"two"`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := p.Remove(ctx, "a"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		got, err := p.Get(ctx, "b")
		if err != nil || string(got) != `"two"` {
			t.Errorf("Get(b) = %s, %v", got, err)
		}
	})

	t.Run("config path", func(t *testing.T) {
		p := newProvider(t)
		if p.GetConfigPath() == "" {
			t.Error("GetConfigPath() returned empty string")
		}
	})
}
