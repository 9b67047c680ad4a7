package settings

import (
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"
)

// snapshot holds the in-memory platform settings values.
type snapshot struct {
	updatedAt time.Time
	values    map[string]json.RawMessage
}

// globalSnapshot stores the latest snapshot atomically.
var globalSnapshot atomic.Value // stores snapshot

// init seeds the global settings snapshot.
func init() {
	globalSnapshot.Store(snapshot{values: map[string]json.RawMessage{}})
}

// StoreSnapshot replaces the in-memory snapshot of DB-backed settings.
func StoreSnapshot(updatedAt time.Time, values map[string]json.RawMessage) {
	next := make(map[string]json.RawMessage, len(values))
	for k, v := range values {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		if v == nil {
			next[key] = nil
			continue
		}
		copied := make([]byte, len(v))
		copy(copied, v)
		next[key] = copied
	}

	globalSnapshot.Store(snapshot{
		updatedAt: updatedAt.UTC(),
		values:    next,
	})
}

// UpdatedAt returns the last update timestamp of the snapshot.
func UpdatedAt() time.Time {
	return loadSnapshot().updatedAt
}

// Value returns a copy of the raw setting value for a key.
func Value(key string) (json.RawMessage, bool) {
	snap := loadSnapshot()
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}
	val, ok := snap.values[key]
	if !ok {
		return nil, false
	}
	if val == nil {
		return nil, true
	}
	copied := make([]byte, len(val))
	copy(copied, val)
	return copied, true
}

// StringValue decodes a setting as a string, returning fallback when the
// key is absent or malformed. Bare (unquoted) values are accepted too.
func StringValue(key, fallback string) string {
	raw, ok := Value(key)
	if !ok || len(raw) == 0 {
		return fallback
	}
	var s string
	if errDecode := json.Unmarshal(raw, &s); errDecode == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

// IntValue decodes a setting as an integer, returning fallback otherwise.
func IntValue(key string, fallback int) int {
	raw, ok := Value(key)
	if !ok || len(raw) == 0 {
		return fallback
	}
	var n int
	if errDecode := json.Unmarshal(raw, &n); errDecode == nil {
		return n
	}
	return fallback
}

// loadSnapshot returns the current snapshot with safe defaults.
func loadSnapshot() snapshot {
	v := globalSnapshot.Load()
	snap, ok := v.(snapshot)
	if !ok {
		return snapshot{values: map[string]json.RawMessage{}}
	}
	if snap.values == nil {
		return snapshot{updatedAt: snap.updatedAt, values: map[string]json.RawMessage{}}
	}
	return snap
}
