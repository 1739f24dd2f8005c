// internal/store/memory.go
//
// Score store interface and its in-memory implementation.
// The game keeps exactly one persisted value (the high score) but the
// store is a small get/set capability over named integers so the round
// controller never touches storage directly.
//
// Characteristics of the memory store:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; used in tests and when no
//     database path is configured.

package store

import (
	"context"
	"errors"
	"sync"
)

// HighScoreKey is the name under which the high score is persisted.
const HighScoreKey = "highScore"

// ErrNegative is returned when a negative value is written.
var ErrNegative = errors.New("store: negative value")

// Store defines the persistence interface for named scalar values.
// Implementations may be backed by memory (this file) or SQLite.
type Store interface {
	// Get returns the stored value, or 0 if the key was never written.
	Get(ctx context.Context, key string) (int, error)

	// Set persists value under key, replacing any previous value.
	Set(ctx context.Context, key string, value int) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex   // guards values
	values map[string]int // keyed by name
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{values: make(map[string]int)}
}

// Get looks up a value; absent keys read as 0.
func (m *memory) Get(ctx context.Context, key string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

// Set adds or replaces the value.
func (m *memory) Set(ctx context.Context, key string, value int) error {
	if value < 0 {
		return ErrNegative
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
