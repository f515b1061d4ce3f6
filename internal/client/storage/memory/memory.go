// Package memory provides an in-process credential store.
// Used in tests and for ephemeral sessions that must not touch disk.
package memory

import (
	"context"
	"sync"

	"github.com/iudanet/vocab/internal/client/storage"
)

// Storage keeps credentials in a map guarded by a mutex
type Storage struct {
	values map[string]string
	mu     sync.RWMutex
}

var _ storage.CredentialStore = (*Storage)(nil)

// New creates an empty in-memory store
func New() *Storage {
	return &Storage{values: make(map[string]string)}
}

// Get returns the value stored under key
func (s *Storage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", storage.ErrCredentialNotFound
	}
	return value, nil
}

// Set stores value under key
func (s *Storage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete removes key
func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Snapshot returns a copy of all stored values
func (s *Storage) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
