// Package khan serves a curated study catalog in the shape of the Khan
// Academy API. The catalog is bundled with the binary, so every operation
// succeeds; results still pass through the shared cache so assembled topic
// views are memoized like the live providers.
package khan

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/studykit/contentd/internal/content"
	"github.com/studykit/contentd/internal/content/cache"
	"github.com/studykit/contentd/internal/metrics"
)

// ProviderName keys cache entries and metric labels for this adapter.
const ProviderName = "khan"

const defaultTTL = 10 * time.Minute

// Topic groups videos under one study subject.
type Topic struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	VideoCount  int    `json:"videoCount"`
}

// Video is one catalog entry. YoutubeID points at the hosted recording.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	YoutubeID   string `json:"youtube_id"`
	Duration    int    `json:"duration"`
	Thumbnail   string `json:"thumbnail"`
	TopicSlug   string `json:"topic_slug"`
	DomainSlug  string `json:"domain_slug"`
	SubjectSlug string `json:"subject_slug"`
}

// Config carries the provider settings resolved at startup.
type Config struct {
	TTL time.Duration
}

// Service is the curated catalog adapter.
type Service struct {
	cfg    Config
	store  cache.ResultCache
	logger *slog.Logger
	rec    *metrics.Recorder
	group  singleflight.Group

	mu     sync.RWMutex
	topics []Topic
	videos []Video
}

// New wires the adapter with its cache backend and the bundled catalog.
func New(cfg Config, store cache.ResultCache, logger *slog.Logger, rec *metrics.Recorder) *Service {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if store == nil {
		store = cache.NewMemory(0)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		cfg:    cfg,
		store:  store,
		logger: logger.With(slog.String("provider", ProviderName)),
		rec:    rec,
		topics: builtinTopics(),
		videos: builtinVideos(),
	}
	s.refreshTopicCounts()
	return s
}

// Topics lists the catalog subjects with their video counts.
func (s *Service) Topics(ctx context.Context) []Topic {
	key := cache.Descriptor{Provider: ProviderName, Operation: "topics"}.Key()
	return memoized(ctx, s, "topics", key, func() []Topic {
		s.mu.RLock()
		defer s.mu.RUnlock()
		topics := make([]Topic, len(s.topics))
		copy(topics, s.topics)
		return topics
	})
}

// VideosByTopic returns the videos filed under the given topic slug. An
// unknown slug yields an empty list, not an error.
func (s *Service) VideosByTopic(ctx context.Context, slug string) []Video {
	key := cache.Descriptor{
		Provider:  ProviderName,
		Operation: "topicVideos",
		Params:    map[string]string{"topic": slug},
	}.Key()
	return memoized(ctx, s, "topicVideos", key, func() []Video {
		s.mu.RLock()
		defer s.mu.RUnlock()
		videos := make([]Video, 0)
		for _, v := range s.videos {
			if v.TopicSlug == slug {
				videos = append(videos, v)
			}
		}
		return videos
	})
}

// AllVideos returns the full catalog.
func (s *Service) AllVideos(ctx context.Context) []Video {
	key := cache.Descriptor{Provider: ProviderName, Operation: "allVideos"}.Key()
	return memoized(ctx, s, "allVideos", key, func() []Video {
		s.mu.RLock()
		defer s.mu.RUnlock()
		videos := make([]Video, len(s.videos))
		copy(videos, s.videos)
		return videos
	})
}

// SearchVideos filters the catalog by a case-insensitive substring match on
// title, description, and topic slug. An empty query returns everything.
func (s *Service) SearchVideos(ctx context.Context, query string) []Video {
	key := cache.Descriptor{
		Provider:  ProviderName,
		Operation: "search",
		Params:    map[string]string{"q": query},
	}.Key()
	return memoized(ctx, s, "search", key, func() []Video {
		s.mu.RLock()
		defer s.mu.RUnlock()
		videos := make([]Video, 0)
		for _, v := range s.videos {
			if content.MatchesQuery(query, v.Title, v.Description, v.TopicSlug) {
				videos = append(videos, v)
			}
		}
		return videos
	})
}

// EmbedURL builds the embeddable player URL for a catalog video.
func EmbedURL(v Video) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s", v.YoutubeID)
}

// HighQualityThumbnail returns the best thumbnail for a video, deriving one
// from the recording when the catalog carries none.
func HighQualityThumbnail(v Video) string {
	if v.Thumbnail != "" {
		return v.Thumbnail
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", v.YoutubeID)
}

// FormatDuration renders a duration in seconds as M:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// CachePrefix exposes the provider's cache keyspace for invalidation.
func (s *Service) CachePrefix() string {
	return cache.Prefix(ProviderName)
}

// SetCatalog replaces the bundled topics and videos, recomputing topic
// counts. Cached views are cleared so stale assemblies cannot outlive the
// swap.
func (s *Service) SetCatalog(ctx context.Context, topics []Topic, videos []Video) {
	if len(topics) == 0 && len(videos) == 0 {
		return
	}
	s.mu.Lock()
	if len(topics) > 0 {
		s.topics = topics
	}
	if len(videos) > 0 {
		s.videos = videos
	}
	s.mu.Unlock()
	s.refreshTopicCounts()
	if err := s.store.Clear(ctx, s.CachePrefix()); err != nil {
		s.logger.Warn("cache clear failed after catalog swap", slog.Any("error", err))
	}
}

func (s *Service) refreshTopicCounts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int, len(s.topics))
	for _, v := range s.videos {
		counts[v.TopicSlug]++
	}
	for i := range s.topics {
		s.topics[i].VideoCount = counts[s.topics[i].Slug]
	}
}

// memoized serves a catalog view through the shared cache, rebuilding and
// storing it on a miss. The build runs under singleflight so concurrent misses
// assemble the view once.
func memoized[T any](ctx context.Context, s *Service, operation, key string, build func() T) T {
	start := time.Now()

	lookupStart := time.Now()
	if value, ok := cache.Fetch[T](ctx, s.store, key); ok {
		s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupHit, time.Since(lookupStart))
		s.rec.ObserveRequest(ProviderName, operation, metrics.SourceCache, time.Since(start))
		return value
	}
	s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupMiss, time.Since(lookupStart))

	result, _, _ := s.group.Do(key, func() (any, error) {
		value := build()
		storeStart := time.Now()
		if err := cache.Save(ctx, s.store, key, value, s.cfg.TTL); err != nil {
			s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreError, time.Since(storeStart))
			s.logger.Warn("cache store failed", slog.Any("error", err))
		} else {
			s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreStored, time.Since(storeStart))
		}
		return value, nil
	})

	s.rec.ObserveRequest(ProviderName, operation, metrics.SourceLive, time.Since(start))
	return result.(T)
}
