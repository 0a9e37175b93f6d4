package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/studykit/contentd/internal/config"
	"github.com/studykit/contentd/internal/content/cache"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func roundTrip(t *testing.T, store cache.ResultCache) {
	t.Helper()
	ctx := context.Background()
	entry := cache.Entry{
		Payload:   json.RawMessage(`{"probe": true}`),
		StoredAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, store.Store(ctx, "probe:key", entry))
	got, ok, err := store.Lookup(ctx, "probe:key")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"probe": true}`, string(got.Payload))
}

func TestBuildResultCache(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(t *testing.T) config.CacheConfig
	}{
		{
			name: "defaults to memory",
			cfg: func(t *testing.T) config.CacheConfig {
				return config.CacheConfig{}
			},
		},
		{
			name: "unknown backend falls back to memory",
			cfg: func(t *testing.T) config.CacheConfig {
				return config.CacheConfig{Backend: "etched-stone"}
			},
		},
		{
			name: "constructs redis cache",
			cfg: func(t *testing.T) config.CacheConfig {
				server, err := miniredis.Run()
				if err != nil {
					if strings.Contains(err.Error(), "operation not permitted") {
						t.Skip("miniredis unavailable in sandbox")
					}
					require.NoError(t, err)
				}
				t.Cleanup(server.Close)
				return config.CacheConfig{
					Backend: "redis",
					Redis:   config.RedisCacheConfig{Address: server.Addr()},
				}
			},
		},
		{
			name: "unreachable redis falls back to memory",
			cfg: func(t *testing.T) config.CacheConfig {
				return config.CacheConfig{
					Backend: "redis",
					Redis:   config.RedisCacheConfig{Address: "127.0.0.1:1"},
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := buildResultCache(newTestLogger(), tc.cfg(t))
			require.NotNil(t, store)
			t.Cleanup(func() { _ = store.Close(context.Background()) })
			roundTrip(t, store)
		})
	}
}
