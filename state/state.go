package state

import (
	"errors"
	"strings"
)

// MaxKeyLength is the maximum allowed length for a state key.
const MaxKeyLength = 512

// Sentinel errors for store operations.
var (
	ErrNilStore   = errors.New("state: store is nil")
	ErrInvalidKey = errors.New("state: key is invalid")
	ErrKeyTooLong = errors.New("state: key exceeds max length")
)

// Store is the interface for process-wide shared state.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Atomicity: a Set is atomic with respect to all other Set/Get calls;
//     readers never observe a torn value.
//   - Errors: Get never errors; it returns ("", false) on a missing key.
type Store interface {
	// Get retrieves the value for a key. Returns ("", false) on a missing key.
	Get(key string) (string, bool)

	// Set stores a value, replacing any previous value for the key.
	// Rejects invalid keys; the store is unchanged on error.
	Set(key, value string) error

	// Delete removes a key. Idempotent - no error on a missing key.
	Delete(key string)

	// Snapshot returns a point-in-time copy of all entries. The returned
	// map is detached from internal storage; later writes do not affect it.
	Snapshot() map[string]string

	// Len returns the number of stored entries.
	Len() int
}

// ValidateKey checks if a key is valid for storage.
func ValidateKey(key string) error {
	if key == "" || strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	// Reject keys with newlines or carriage returns
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
