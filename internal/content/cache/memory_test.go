package cache

import (
	"context"
	"testing"
	"time"
)

func entryWithTTL(payload string, ttl time.Duration) Entry {
	now := time.Now().UTC()
	return Entry{Payload: []byte(payload), StoredAt: now, ExpiresAt: now.Add(ttl)}
}

func TestMemoryStoreLookup(t *testing.T) {
	c := NewMemory(8)
	ctx := context.Background()

	if err := c.Store(ctx, "trivia:questions:abc", entryWithTTL(`["q"]`, time.Minute)); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, ok, err := c.Lookup(ctx, "trivia:questions:abc")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatalf("expected cache hit")
	}
	if string(got.Payload) != `["q"]` {
		t.Fatalf("unexpected payload: %s", got.Payload)
	}

	size, err := c.Size(ctx)
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if size != 1 {
		t.Fatalf("expected size 1, got %d", size)
	}

	if err := c.Clear(ctx, "trivia:"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := c.Lookup(ctx, "trivia:questions:abc"); ok {
		t.Fatalf("expected clear to remove provider keys")
	}

	if err := c.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestMemoryExpiry(t *testing.T) {
	c := NewMemory(8)
	ctx := context.Background()

	if err := c.Store(ctx, "key", entryWithTTL(`1`, 10*time.Millisecond)); err != nil {
		t.Fatalf("store: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok, _ := c.Lookup(ctx, "key"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestMemoryRefetchSupersedesEntry(t *testing.T) {
	c := NewMemory(8)
	ctx := context.Background()

	first := entryWithTTL(`"old"`, time.Minute)
	first.StoredAt = first.StoredAt.Add(-time.Hour)
	if err := c.Store(ctx, "key", first); err != nil {
		t.Fatalf("store first: %v", err)
	}
	if err := c.Store(ctx, "key", entryWithTTL(`"new"`, time.Minute)); err != nil {
		t.Fatalf("store second: %v", err)
	}

	got, ok, _ := c.Lookup(ctx, "key")
	if !ok {
		t.Fatalf("expected hit")
	}
	if string(got.Payload) != `"new"` {
		t.Fatalf("expected superseding entry, got %s", got.Payload)
	}
	if !got.StoredAt.After(first.StoredAt) {
		t.Fatalf("expected newer StoredAt after refetch")
	}
}

func TestMemoryBoundEvictsExpiredFirst(t *testing.T) {
	c := NewMemory(2)
	ctx := context.Background()

	if err := c.Store(ctx, "stale", entryWithTTL(`1`, -time.Minute)); err != nil {
		t.Fatalf("store stale: %v", err)
	}
	if err := c.Store(ctx, "fresh", entryWithTTL(`2`, time.Minute)); err != nil {
		t.Fatalf("store fresh: %v", err)
	}
	if err := c.Store(ctx, "extra", entryWithTTL(`3`, time.Minute)); err != nil {
		t.Fatalf("store extra: %v", err)
	}

	if _, ok, _ := c.Lookup(ctx, "fresh"); !ok {
		t.Fatalf("fresh entry should survive eviction")
	}
	if _, ok, _ := c.Lookup(ctx, "extra"); !ok {
		t.Fatalf("new entry should be present")
	}
	if _, ok, _ := c.Lookup(ctx, "stale"); ok {
		t.Fatalf("stale entry should have been evicted")
	}
}

func TestMemoryBoundEvictsOldest(t *testing.T) {
	c := NewMemory(2)
	ctx := context.Background()

	oldest := entryWithTTL(`1`, time.Hour)
	oldest.StoredAt = oldest.StoredAt.Add(-time.Minute)
	if err := c.Store(ctx, "oldest", oldest); err != nil {
		t.Fatalf("store oldest: %v", err)
	}
	if err := c.Store(ctx, "newer", entryWithTTL(`2`, time.Hour)); err != nil {
		t.Fatalf("store newer: %v", err)
	}
	if err := c.Store(ctx, "extra", entryWithTTL(`3`, time.Hour)); err != nil {
		t.Fatalf("store extra: %v", err)
	}

	size, _ := c.Size(ctx)
	if size != 2 {
		t.Fatalf("expected bounded size 2, got %d", size)
	}
	if _, ok, _ := c.Lookup(ctx, "oldest"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
}
