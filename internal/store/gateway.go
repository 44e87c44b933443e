package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Gateway keys.
const (
	KeyProfile  = "preference-profile"
	KeyStats    = "session-stats"
	KeyUnlocked = "unlocked-id-list"

	// Reserved for daily content resets. Nothing reads or writes them yet.
	KeyLastReset = "last-reset-date"
	KeyLastQuest = "last-quest-date"
)

// ErrNotFound is returned by Gateway.Get when a key has never been set.
var ErrNotFound = errors.New("key not found")

// Gateway stores JSON blobs by key.
type Gateway interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// GetJSON reads key and decodes it into v.
func GetJSON(ctx context.Context, gw Gateway, key string, v any) error {
	data, err := gw.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and writes it under key.
func SetJSON(ctx context.Context, gw Gateway, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return gw.Set(ctx, key, data)
}
