// Package cache provides the time-bounded result cache shared by every
// content provider. Each provider owns its TTL and key prefix; the backend
// (in-process memory or Redis) is chosen once at startup and injected.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Entry is one memoized result set. Entries are immutable once stored; a
// refetch after expiry supersedes the entry rather than mutating it.
type Entry struct {
	Payload   json.RawMessage `json:"payload"`
	StoredAt  time.Time       `json:"storedAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

// Fresh reports whether the entry is still within its TTL at the given time.
func (e Entry) Fresh(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// ResultCache is the storage contract providers consult before every outbound
// call and populate after every successful one. Lookup must behave as a miss
// for stale entries.
type ResultCache interface {
	Lookup(ctx context.Context, key string) (Entry, bool, error)
	Store(ctx context.Context, key string, entry Entry) error
	Clear(ctx context.Context, prefix string) error
	Size(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}

// Fetch decodes a cached result set into T. The second return value is false
// on a miss, a stale entry, or a cache error; providers treat all three as a
// plain miss and refetch.
func Fetch[T any](ctx context.Context, c ResultCache, key string) (T, bool) {
	var zero T
	entry, ok, err := c.Lookup(ctx, key)
	if err != nil || !ok {
		return zero, false
	}
	var value T
	if err := json.Unmarshal(entry.Payload, &value); err != nil {
		return zero, false
	}
	return value, true
}

// Save encodes a result set and stores it with the provider's TTL.
func Save[T any](ctx context.Context, c ResultCache, key string, value T, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: encode payload: %w", err)
	}
	now := time.Now().UTC()
	return c.Store(ctx, key, Entry{
		Payload:   payload,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	})
}
