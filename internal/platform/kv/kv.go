// Package kv provides the key-value persistence port used by the console.
// Collections are stored as JSON blobs under fixed string keys; callers keep
// their in-memory state authoritative and mirror writes through the port.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store abstracts JSON blob persistence by string key.
type Store interface {
	// Get returns the raw value for key. The second return reports whether
	// the key was present; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the raw value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}

// GetJSON loads and decodes the value stored under key into dest. It reports
// whether a decodable value was found.
func GetJSON(ctx context.Context, store Store, key string, dest any) (bool, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("kv: get %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("kv: decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, store Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv: encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("kv: set %s: %w", key, err)
	}
	return nil
}
