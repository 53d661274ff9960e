package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Provider. Failures can be injected per
// operation to exercise callers' error paths.
type MemoryStore struct {
	mu     sync.Mutex
	blobs  map[string][]byte
	loaded bool

	// GetErr, SetErr and RemoveErr, when non-nil, are returned by the
	// corresponding operation instead of touching the data.
	GetErr    error
	SetErr    error
	RemoveErr error

	// SetCalls counts Set invocations, failed ones included.
	SetCalls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	return nil
}

func (s *MemoryStore) Load() error {
	return s.Init()
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	v, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SetCalls++
	if !s.loaded {
		return ErrNotLoaded
	}
	if s.SetErr != nil {
		return s.SetErr
	}
	s.blobs[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	delete(s.blobs, key)
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return "memory"
}
