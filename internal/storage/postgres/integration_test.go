package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/storage/storagetest"
)

// TestStore_Integration tests the PostgreSQL store with a real database
// Set POSTGRES_TEST_URL environment variable to run this test
// Example: POSTGRES_TEST_URL="postgres://habitlit_user@localhost:5432/habitlit_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	storagetest.RunProviderTests(t, func(t *testing.T) storage.Provider {
		store := New(connStr)
		if err := store.Init(); err != nil {
			t.Fatalf("Failed to initialize store: %v", err)
		}
		t.Cleanup(func() {
			for _, key := range []string{"habits_v3", "k", "a", "b"} {
				_ = store.Remove(context.Background(), key)
			}
			store.Close()
		})
		return store
	})

	t.Run("Load after Init", func(t *testing.T) {
		store := New(connStr)
		if err := store.Load(); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		defer store.Close()
	})
}
