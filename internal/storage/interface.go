package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no blob is stored under the key.
	ErrNotFound = errors.New("key not found")
	// ErrNotLoaded is returned when a provider is used before Init or Load.
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider is a key-value blob store. Values are opaque serialized documents;
// callers own their encoding.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blobs
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes the blob under key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// GetConfigPath returns a non-sensitive identifier for the storage location.
	GetConfigPath() string
}

// SchemaReporter is implemented by providers backed by a migrated SQL schema.
type SchemaReporter interface {
	SchemaVersion(ctx context.Context) (current, latest int, err error)
}
