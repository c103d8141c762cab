package state

import (
	"strings"
	"testing"
)

// TestStateKey_Validation tests key validation rules.
func TestStateKey_Validation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"empty key", "", ErrInvalidKey},
		{"valid key", "db:pool:active", nil},
		{"too long", strings.Repeat("x", MaxKeyLength+1), ErrKeyTooLong},
		{"contains newline", "key\nwith\nnewlines", ErrInvalidKey},
		{"contains carriage return", "key\rwith\rreturns", ErrInvalidKey},
		{"whitespace only", "   ", ErrInvalidKey},
		{"max length exactly", strings.Repeat("x", MaxKeyLength), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateKey(%q) = %v, want nil", tt.key, err)
				}
			} else {
				if err != tt.wantErr {
					t.Errorf("ValidateKey(%q) = %v, want %v", tt.key, err, tt.wantErr)
				}
			}
		})
	}
}

// TestStoreInterface_CompileCheck verifies the Store interface contract.
// This is a compile-time check enforced by implementing a mock.
func TestStoreInterface_CompileCheck(t *testing.T) {
	var _ Store = (*mockStore)(nil)
}

// mockStore is a test double that implements the Store interface.
type mockStore struct{}

func (m *mockStore) Get(key string) (string, bool) { return "", false }
func (m *mockStore) Set(key, value string) error   { return nil }
func (m *mockStore) Delete(key string)             {}
func (m *mockStore) Snapshot() map[string]string   { return nil }
func (m *mockStore) Len() int                      { return 0 }
