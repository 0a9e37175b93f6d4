// Package wikipedia adapts the Wikipedia REST and action APIs into the
// normalized article shape. Search results are enriched with a heuristic
// category, difficulty, and reading-time estimate derived from the extract.
package wikipedia

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
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/studykit/contentd/internal/content"
	"github.com/studykit/contentd/internal/content/cache"
	"github.com/studykit/contentd/internal/metrics"
)

// ProviderName keys cache entries and metric labels for this adapter.
const ProviderName = "wikipedia"

const (
	defaultBaseURL   = "https://en.wikipedia.org/api/rest_v1"
	defaultSearchURL = "https://en.wikipedia.org/w/api.php"
	defaultTTL       = 15 * time.Minute
	defaultLimit     = 10

	articlesPerTopic    = 3
	articlesPerCategory = 12
)

// Page is the raw page summary returned by the REST API.
type Page struct {
	PageID    int    `json:"pageid"`
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Lang      string `json:"lang"`
	Timestamp string `json:"timestamp"`
	Thumbnail *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Article is the normalized record emitted to callers.
type Article struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Summary        string     `json:"summary"`
	URL            string     `json:"url"`
	Thumbnail      string     `json:"thumbnail,omitempty"`
	Category       string     `json:"category"`
	Difficulty     Difficulty `json:"difficulty"`
	ReadingMinutes int        `json:"readingMinutes"`
	Source         string     `json:"source"`
	CreatedAt      string     `json:"createdAt"`
	Language       string     `json:"language"`
}

// Config carries the provider settings resolved at startup.
type Config struct {
	BaseURL   string
	SearchURL string
	TTL       time.Duration
}

// Service is the encyclopedia adapter.
type Service struct {
	cfg    Config
	client content.Doer
	store  cache.ResultCache
	logger *slog.Logger
	rec    *metrics.Recorder
	group  singleflight.Group

	mu       sync.RWMutex
	fallback []Article
}

// New wires the adapter with its cache backend and HTTP client.
func New(cfg Config, client content.Doer, store cache.ResultCache, logger *slog.Logger, rec *metrics.Recorder) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.SearchURL == "" {
		cfg.SearchURL = defaultSearchURL
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
		cfg:      cfg,
		client:   client,
		store:    store,
		logger:   logger.With(slog.String("provider", ProviderName)),
		rec:      rec,
		fallback: builtinFallbackArticles(),
	}
}

// PageSummary looks up one page by exact title. A missing page yields
// (nil, nil); callers must handle absence explicitly. This is the one method
// whose failures are not covered by fallback data.
func (s *Service) PageSummary(ctx context.Context, title string) (*Page, error) {
	start := time.Now()
	key := cache.Descriptor{
		Provider:  ProviderName,
		Operation: "page",
		Params:    map[string]string{"title": title},
	}.Key()

	lookupStart := time.Now()
	if page, ok := cache.Fetch[*Page](ctx, s.store, key); ok {
		s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupHit, time.Since(lookupStart))
		s.rec.ObserveRequest(ProviderName, "page", metrics.SourceCache, time.Since(start))
		return page, nil
	}
	s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupMiss, time.Since(lookupStart))

	result, err, _ := s.group.Do(key, func() (any, error) {
		endpoint := s.cfg.BaseURL + "/page/summary/" + url.PathEscape(title)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("wikipedia: build request: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("wikipedia: request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			s.logger.Warn("page not found", slog.String("title", title))
			return (*Page)(nil), nil
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("wikipedia: unexpected status %d", resp.StatusCode)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("wikipedia: read response: %w", err)
		}
		var page Page
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("wikipedia: decode response: %w", err)
		}
		s.savePage(ctx, key, &page)
		return &page, nil
	})
	if err != nil {
		s.logger.Warn("page summary fetch failed", slog.String("title", title), slog.Any("error", err))
		s.rec.ObserveRequest(ProviderName, "page", metrics.SourceLive, time.Since(start))
		return nil, err
	}

	s.rec.ObserveRequest(ProviderName, "page", metrics.SourceLive, time.Since(start))
	return result.(*Page), nil
}

// SearchArticles finds articles for a free-text query and normalizes each hit
// through its page summary. Upstream failure degrades to the fallback
// catalog filtered by the query; it never returns an error.
func (s *Service) SearchArticles(ctx context.Context, query string, limit int) []Article {
	start := time.Now()
	if limit <= 0 {
		limit = defaultLimit
	}

	key := cache.Descriptor{
		Provider:  ProviderName,
		Operation: "search",
		Params:    map[string]string{"q": query, "limit": strconv.Itoa(limit)},
	}.Key()

	lookupStart := time.Now()
	if articles, ok := cache.Fetch[[]Article](ctx, s.store, key); ok {
		s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupHit, time.Since(lookupStart))
		s.rec.ObserveRequest(ProviderName, "search", metrics.SourceCache, time.Since(start))
		return articles
	}
	s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupMiss, time.Since(lookupStart))

	result, err, _ := s.group.Do(key, func() (any, error) {
		params := url.Values{
			"action":   {"query"},
			"format":   {"json"},
			"list":     {"search"},
			"srsearch": {query},
			"srlimit":  {strconv.Itoa(limit)},
			"srprop":   {"snippet|titlesnippet|size|timestamp"},
			"origin":   {"*"},
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.SearchURL+"?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("wikipedia: build request: %w", err)
		}
		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("wikipedia: request: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("wikipedia: unexpected status %d", resp.StatusCode)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("wikipedia: read response: %w", err)
		}
		var payload searchResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("wikipedia: decode response: %w", err)
		}

		articles := make([]Article, 0, len(payload.Query.Search))
		for _, hit := range payload.Query.Search {
			page, err := s.PageSummary(ctx, hit.Title)
			if err != nil || page == nil {
				// A single broken summary drops that hit, not the search.
				continue
			}
			summary := page.Extract
			if summary == "" {
				summary = stripTags(hit.Snippet)
			}
			article := Article{
				ID:             fmt.Sprintf("wiki_%d", hit.PageID),
				Title:          hit.Title,
				Summary:        summary,
				URL:            page.ContentURLs.Desktop.Page,
				Category:       CategorizeTitle(hit.Title),
				Difficulty:     EstimateDifficulty(page.Extract),
				ReadingMinutes: EstimateReadingTime(page.Extract),
				Source:         "wikipedia",
				CreatedAt:      hit.Timestamp,
				Language:       "en",
			}
			if page.Thumbnail != nil {
				article.Thumbnail = page.Thumbnail.Source
			}
			articles = append(articles, article)
		}
		s.saveArticles(ctx, key, articles)
		return articles, nil
	})
	if err != nil {
		s.logger.Warn("search failed, serving fallback catalog", slog.String("query", query), slog.Any("error", err))
		articles := s.FallbackArticles(query)
		s.rec.ObserveRequest(ProviderName, "search", metrics.SourceFallback, time.Since(start))
		return articles
	}

	s.rec.ObserveRequest(ProviderName, "search", metrics.SourceLive, time.Since(start))
	return result.([]Article)
}

// categoryTopics maps coarse categories to the encyclopedia topics queried
// for them.
var categoryTopics = map[string][]string{
	"mathematics": {"Algebra", "Calculus", "Statistics", "Geometry"},
	"programming": {"Algorithm", "Data structure", "Software engineering", "Programming language"},
	"science":     {"Physics", "Chemistry", "Biology", "Scientific method"},
	"technology":  {"Artificial intelligence", "Machine learning", "Computer science", "Software development"},
	"general":     {"Education", "Learning theory", "Knowledge", "Research"},
}

// EducationalContent aggregates a few articles per topic of one category,
// capped at a page worth of results.
func (s *Service) EducationalContent(ctx context.Context, category string) []Article {
	topics, ok := categoryTopics[category]
	if !ok {
		topics = categoryTopics["general"]
	}

	articles := make([]Article, 0, articlesPerCategory)
	for _, topic := range topics {
		articles = append(articles, s.SearchArticles(ctx, topic, articlesPerTopic)...)
	}
	if len(articles) > articlesPerCategory {
		articles = articles[:articlesPerCategory]
	}
	return articles
}

// Normalize converts a raw page into the article shape with a caller-chosen
// category.
func Normalize(page Page, category string) Article {
	if category == "" {
		category = "general"
	}
	article := Article{
		ID:             fmt.Sprintf("wiki_%d", page.PageID),
		Title:          page.Title,
		Summary:        page.Extract,
		URL:            page.ContentURLs.Desktop.Page,
		Category:       category,
		Difficulty:     EstimateDifficulty(page.Extract),
		ReadingMinutes: EstimateReadingTime(page.Extract),
		Source:         "wikipedia",
		CreatedAt:      page.Timestamp,
		Language:       page.Lang,
	}
	if page.Thumbnail != nil {
		article.Thumbnail = page.Thumbnail.Source
	}
	return article
}

// CachePrefix exposes the provider's cache keyspace for invalidation.
func (s *Service) CachePrefix() string {
	return cache.Prefix(ProviderName)
}

// SetFallback swaps the fallback article catalog.
func (s *Service) SetFallback(articles []Article) {
	if len(articles) == 0 {
		return
	}
	s.mu.Lock()
	s.fallback = articles
	s.mu.Unlock()
}

// FallbackArticles returns the static catalog filtered by query.
func (s *Service) FallbackArticles(query string) []Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := make([]Article, 0, len(s.fallback))
	for _, article := range s.fallback {
		if content.MatchesQuery(query, article.Title, article.Summary) {
			matched = append(matched, article)
		}
	}
	return matched
}

func (s *Service) savePage(ctx context.Context, key string, page *Page) {
	start := time.Now()
	if err := cache.Save(ctx, s.store, key, page, s.cfg.TTL); err != nil {
		s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreError, time.Since(start))
		s.logger.Warn("cache store failed", slog.Any("error", err))
		return
	}
	s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreStored, time.Since(start))
}

func (s *Service) saveArticles(ctx context.Context, key string, articles []Article) {
	start := time.Now()
	if err := cache.Save(ctx, s.store, key, articles, s.cfg.TTL); err != nil {
		s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreError, time.Since(start))
		s.logger.Warn("cache store failed", slog.Any("error", err))
		return
	}
	s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreStored, time.Since(start))
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripTags(snippet string) string {
	return tagPattern.ReplaceAllString(snippet, "")
}

type searchResponse struct {
	Query struct {
		Search []struct {
			PageID    int    `json:"pageid"`
			Title     string `json:"title"`
			Snippet   string `json:"snippet"`
			Timestamp string `json:"timestamp"`
		} `json:"search"`
	} `json:"query"`
}
