package state

import (
	"sync"
)

// MemoryStore is an in-memory Store implementation.
//
// A single RWMutex guards the whole map: writers are serialized, readers
// proceed concurrently, and no operation holds the lock for longer than
// one map access. Construct one instance at process start and hand it to
// every consumer by reference; tests construct their own isolated instance.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore creates a new empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]string),
	}
}

// Get retrieves the value for a key. Returns ("", false) on a missing key.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	value, ok := s.entries[key]
	s.mu.RUnlock()
	return value, ok
}

// Set stores a value, replacing any previous value for the key.
// Returns ErrInvalidKey or ErrKeyTooLong for disallowed keys, in which
// case the store is unchanged.
func (s *MemoryStore) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries[key] = value
	s.mu.Unlock()
	return nil
}

// Delete removes a key. Idempotent - no error on a missing key.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Snapshot returns a point-in-time copy of all entries.
func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
