// Package youtube adapts the YouTube Data API into the normalized video shape
// the rest of the application consumes. Results are memoized per request
// fingerprint; on any upstream failure the provider serves its fallback
// catalog instead of surfacing an error.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/studykit/contentd/internal/content"
	"github.com/studykit/contentd/internal/content/cache"
	"github.com/studykit/contentd/internal/metrics"
)

// ProviderName keys cache entries and metric labels for this adapter.
const ProviderName = "youtube"

const (
	defaultBaseURL    = "https://www.googleapis.com/youtube/v3"
	defaultTTL        = 10 * time.Minute
	defaultMaxResults = 20

	// Appended to every free-text search to bias relevance toward
	// instructional material.
	educationalBias = "tutorial course lesson"
)

// Thumbnail carries the upstream thumbnail ladder. Standard and maxres are
// not present for every video.
type Thumbnail struct {
	Default  string `json:"default"`
	Medium   string `json:"medium"`
	High     string `json:"high"`
	Standard string `json:"standard,omitempty"`
	Maxres   string `json:"maxres,omitempty"`
}

// Video is the normalized record emitted to callers, identical in shape
// whether it came from a live fetch, the cache, or the fallback catalog.
type Video struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Thumbnail    Thumbnail `json:"thumbnail"`
	VideoID      string    `json:"videoId"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	PublishedAt  string    `json:"publishedAt"`
}

// Playlist describes one curated educational playlist.
type Playlist struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Thumbnail        string `json:"thumbnail"`
	Category         string `json:"category"`
	Difficulty       string `json:"difficulty"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
	VideoCount       int    `json:"videoCount"`
	ChannelTitle     string `json:"channelTitle"`
	Subject          string `json:"subject"`
}

// Config carries the provider settings resolved at startup.
type Config struct {
	APIKey  string
	BaseURL string
	TTL     time.Duration
}

// Service is the video search adapter. It owns its cache keyspace and TTL;
// concurrent identical requests share one outbound fetch.
type Service struct {
	cfg    Config
	client content.Doer
	store  cache.ResultCache
	logger *slog.Logger
	rec    *metrics.Recorder
	group  singleflight.Group

	mu             sync.RWMutex
	fallbackVideos []Video
	playlists      []Playlist
}

// New wires the adapter. The cache backend is injected so one process can
// point every provider at the same store while each keeps its own keyspace.
func New(cfg Config, client content.Doer, store cache.ResultCache, logger *slog.Logger, rec *metrics.Recorder) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if store == nil {
		store = cache.NewMemory(0)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		cfg:            cfg,
		client:         client,
		store:          store,
		logger:         logger.With(slog.String("provider", ProviderName)),
		rec:            rec,
		fallbackVideos: builtinFallbackVideos(),
		playlists:      builtinPlaylists(),
	}
}

// KeyConfigured reports whether a usable API key is present. Placeholder or
// obviously truncated keys count as absent.
func (s *Service) KeyConfigured() bool {
	return s.cfg.APIKey != "" && s.cfg.APIKey != "YOUR_API_KEY_HERE" && len(s.cfg.APIKey) > 10
}

// SearchVideos finds educational videos for a free-text query. It never
// returns an error: upstream failures degrade to the fallback catalog
// filtered by the query.
func (s *Service) SearchVideos(ctx context.Context, query string, maxResults int) []Video {
	start := time.Now()
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	if !s.KeyConfigured() {
		s.logger.Warn("api key not configured, serving fallback catalog", slog.String("operation", "search"))
		videos := s.FallbackVideos(query)
		s.rec.ObserveRequest(ProviderName, "search", metrics.SourceFallback, time.Since(start))
		return videos
	}

	key := cache.Descriptor{
		Provider:  ProviderName,
		Operation: "search",
		Params:    map[string]string{"q": query, "max": strconv.Itoa(maxResults)},
	}.Key()

	if videos, ok := s.lookup(ctx, key); ok {
		s.rec.ObserveRequest(ProviderName, "search", metrics.SourceCache, time.Since(start))
		return videos
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		biased := query + " " + educationalBias
		params := url.Values{
			"part":            {"snippet"},
			"maxResults":      {strconv.Itoa(maxResults)},
			"q":               {biased},
			"type":            {"video"},
			"videoDuration":   {"medium"},
			"videoDefinition": {"high"},
			"order":           {"relevance"},
			"key":             {s.cfg.APIKey},
		}
		var payload searchResponse
		if err := s.getJSON(ctx, s.cfg.BaseURL+"/search?"+params.Encode(), &payload); err != nil {
			return nil, err
		}
		videos := make([]Video, 0, len(payload.Items))
		for _, item := range payload.Items {
			videos = append(videos, Video{
				ID:           item.ID.VideoID,
				Title:        item.Snippet.Title,
				Description:  item.Snippet.Description,
				Thumbnail:    item.Snippet.Thumbnails.normalize(),
				VideoID:      item.ID.VideoID,
				ChannelID:    item.Snippet.ChannelID,
				ChannelTitle: item.Snippet.ChannelTitle,
				PublishedAt:  item.Snippet.PublishedAt,
			})
		}
		s.save(ctx, key, videos)
		return videos, nil
	})
	if err != nil {
		s.logger.Warn("search failed, serving fallback catalog", slog.String("query", query), slog.Any("error", err))
		videos := s.FallbackVideos(query)
		s.rec.ObserveRequest(ProviderName, "search", metrics.SourceFallback, time.Since(start))
		return videos
	}

	s.rec.ObserveRequest(ProviderName, "search", metrics.SourceLive, time.Since(start))
	return result.([]Video)
}

// PlaylistVideos lists the videos of one playlist.
func (s *Service) PlaylistVideos(ctx context.Context, playlistID string, maxResults int) []Video {
	start := time.Now()
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	key := cache.Descriptor{
		Provider:  ProviderName,
		Operation: "playlist",
		Params:    map[string]string{"id": playlistID, "max": strconv.Itoa(maxResults)},
	}.Key()

	if videos, ok := s.lookup(ctx, key); ok {
		s.rec.ObserveRequest(ProviderName, "playlist", metrics.SourceCache, time.Since(start))
		return videos
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		params := url.Values{
			"part":       {"snippet"},
			"maxResults": {strconv.Itoa(maxResults)},
			"playlistId": {playlistID},
			"key":        {s.cfg.APIKey},
		}
		var payload playlistItemsResponse
		if err := s.getJSON(ctx, s.cfg.BaseURL+"/playlistItems?"+params.Encode(), &payload); err != nil {
			return nil, err
		}
		videos := make([]Video, 0, len(payload.Items))
		for _, item := range payload.Items {
			videos = append(videos, Video{
				ID:           item.ID,
				Title:        item.Snippet.Title,
				Description:  item.Snippet.Description,
				Thumbnail:    item.Snippet.Thumbnails.normalize(),
				VideoID:      item.Snippet.ResourceID.VideoID,
				ChannelID:    item.Snippet.ChannelID,
				ChannelTitle: item.Snippet.ChannelTitle,
				PublishedAt:  item.Snippet.PublishedAt,
			})
		}
		s.save(ctx, key, videos)
		return videos, nil
	})
	if err != nil {
		s.logger.Warn("playlist fetch failed, serving fallback catalog", slog.String("playlist", playlistID), slog.Any("error", err))
		videos := s.FallbackVideos("")
		s.rec.ObserveRequest(ProviderName, "playlist", metrics.SourceFallback, time.Since(start))
		return videos
	}

	s.rec.ObserveRequest(ProviderName, "playlist", metrics.SourceLive, time.Since(start))
	return result.([]Video)
}

// categoryQueries maps coarse category slugs to the search terms that stand
// in for them upstream.
var categoryQueries = map[string]string{
	"mathematics": "mathematics algebra calculus geometry",
	"programming": "programming javascript python java",
	"science":     "physics chemistry biology science",
	"technology":  "technology computing algorithms",
	"general":     "education teaching lesson tutorial",
}

// VideosByCategory searches for videos in one coarse educational category.
// An empty category widens to a general educational search.
func (s *Service) VideosByCategory(ctx context.Context, category string) []Video {
	if !s.KeyConfigured() {
		start := time.Now()
		s.logger.Warn("api key not configured, serving fallback catalog filtered by category",
			slog.String("category", category))
		videos := s.fallbackByCategory(category)
		s.rec.ObserveRequest(ProviderName, "category", metrics.SourceFallback, time.Since(start))
		return videos
	}

	if strings.TrimSpace(category) == "" {
		return s.SearchVideos(ctx, "education programming mathematics science technology", 30)
	}

	query, ok := categoryQueries[category]
	if !ok {
		query = categoryQueries["general"]
	}
	return s.SearchVideos(ctx, query, defaultMaxResults)
}

// Playlists returns the curated educational playlist set.
func (s *Service) Playlists(ctx context.Context) []Playlist {
	start := time.Now()
	key := cache.Descriptor{Provider: ProviderName, Operation: "playlists"}.Key()

	lookupStart := time.Now()
	if playlists, ok := cache.Fetch[[]Playlist](ctx, s.store, key); ok {
		s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupHit, time.Since(lookupStart))
		s.rec.ObserveRequest(ProviderName, "playlists", metrics.SourceCache, time.Since(start))
		return playlists
	}
	s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupMiss, time.Since(lookupStart))

	s.mu.RLock()
	playlists := make([]Playlist, len(s.playlists))
	copy(playlists, s.playlists)
	s.mu.RUnlock()

	storeStart := time.Now()
	if err := cache.Save(ctx, s.store, key, playlists, s.cfg.TTL); err != nil {
		s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreError, time.Since(storeStart))
		s.logger.Warn("cache store failed", slog.Any("error", err))
	} else {
		s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreStored, time.Since(storeStart))
	}

	s.rec.ObserveRequest(ProviderName, "playlists", metrics.SourceLive, time.Since(start))
	return playlists
}

// EmbedURL builds the embeddable player reference for a video identifier.
func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}

// HighQualityThumbnail builds the maxres thumbnail URL for a video identifier.
func HighQualityThumbnail(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
}

var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// FormatDuration converts an ISO 8601 duration (PT1H2M3S) into a display
// string: H:MM:SS with hours, M:SS without. Unparseable input yields "0:00".
func FormatDuration(isoDuration string) string {
	match := isoDurationPattern.FindStringSubmatch(isoDuration)
	if match == nil {
		return "0:00"
	}
	hours, _ := strconv.Atoi(zeroIfEmpty(match[1]))
	minutes, _ := strconv.Atoi(zeroIfEmpty(match[2]))
	seconds, _ := strconv.Atoi(zeroIfEmpty(match[3]))

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// CachePrefix exposes the provider's cache keyspace for invalidation.
func (s *Service) CachePrefix() string {
	return cache.Prefix(ProviderName)
}

// SetFallback swaps the fallback video catalog, used when an operator
// provides an override document.
func (s *Service) SetFallback(videos []Video) {
	if len(videos) == 0 {
		return
	}
	s.mu.Lock()
	s.fallbackVideos = videos
	s.mu.Unlock()
}

// SetPlaylists swaps the curated playlist catalog.
func (s *Service) SetPlaylists(playlists []Playlist) {
	if len(playlists) == 0 {
		return
	}
	s.mu.Lock()
	s.playlists = playlists
	s.mu.Unlock()
}

// FallbackVideos returns the static catalog filtered by query. An empty query
// returns the whole set.
func (s *Service) FallbackVideos(query string) []Video {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]Video, 0, len(s.fallbackVideos))
	for _, video := range s.fallbackVideos {
		if content.MatchesQuery(query, video.Title, video.Description, video.ChannelTitle) {
			matched = append(matched, video)
		}
	}
	return matched
}

// fallbackCategoryKeywords filters the static catalog when no API key is
// available for a category search.
var fallbackCategoryKeywords = map[string][]string{
	"mathematics": {"math", "algebra", "calculus"},
	"programming": {"programming", "javascript", "python", "code"},
	"science":     {"physics", "chemistry", "science", "quantum"},
	"technology":  {"technology", "algorithm", "intelligence", "machine"},
}

func (s *Service) fallbackByCategory(category string) []Video {
	all := s.FallbackVideos("")
	if strings.TrimSpace(category) == "" || category == "general" {
		return all
	}
	keywords, ok := fallbackCategoryKeywords[category]
	if !ok {
		return all
	}
	matched := make([]Video, 0, len(all))
	for _, video := range all {
		for _, keyword := range keywords {
			if content.MatchesQuery(keyword, video.Title, video.Description, video.ChannelTitle) {
				matched = append(matched, video)
				break
			}
		}
	}
	return matched
}

func (s *Service) lookup(ctx context.Context, key string) ([]Video, bool) {
	start := time.Now()
	videos, ok := cache.Fetch[[]Video](ctx, s.store, key)
	if ok {
		s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupHit, time.Since(start))
	} else {
		s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupMiss, time.Since(start))
	}
	return videos, ok
}

func (s *Service) save(ctx context.Context, key string, videos []Video) {
	start := time.Now()
	if err := cache.Save(ctx, s.store, key, videos, s.cfg.TTL); err != nil {
		s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreError, time.Since(start))
		s.logger.Warn("cache store failed", slog.Any("error", err))
		return
	}
	s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreStored, time.Since(start))
}

func (s *Service) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("youtube: build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("youtube: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("youtube: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("youtube: read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("youtube: decode response: %w", err)
	}
	return nil
}

type thumbnailRef struct {
	URL string `json:"url"`
}

type thumbnailSet struct {
	Default  *thumbnailRef `json:"default"`
	Medium   *thumbnailRef `json:"medium"`
	High     *thumbnailRef `json:"high"`
	Standard *thumbnailRef `json:"standard"`
	Maxres   *thumbnailRef `json:"maxres"`
}

func (t thumbnailSet) normalize() Thumbnail {
	out := Thumbnail{}
	if t.Default != nil {
		out.Default = t.Default.URL
	}
	if t.Medium != nil {
		out.Medium = t.Medium.URL
	}
	if t.High != nil {
		out.High = t.High.URL
	}
	if t.Standard != nil {
		out.Standard = t.Standard.URL
	}
	if t.Maxres != nil {
		out.Maxres = t.Maxres.URL
	}
	return out
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string       `json:"title"`
			Description  string       `json:"description"`
			Thumbnails   thumbnailSet `json:"thumbnails"`
			ChannelID    string       `json:"channelId"`
			ChannelTitle string       `json:"channelTitle"`
			PublishedAt  string       `json:"publishedAt"`
		} `json:"snippet"`
	} `json:"items"`
}

type playlistItemsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string       `json:"title"`
			Description  string       `json:"description"`
			Thumbnails   thumbnailSet `json:"thumbnails"`
			ResourceID   struct {
				VideoID string `json:"videoId"`
			} `json:"resourceId"`
			ChannelID    string `json:"channelId"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
		} `json:"snippet"`
	} `json:"items"`
}
