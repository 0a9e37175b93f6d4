// Package trivia adapts the Open Trivia Database into the normalized question
// shape. Upstream text arrives HTML-escaped; it is decoded before caching so
// every consumer sees plain text.
package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/studykit/contentd/internal/content"
	"github.com/studykit/contentd/internal/content/cache"
	"github.com/studykit/contentd/internal/metrics"
)

// ProviderName keys cache entries and metric labels for this adapter.
const ProviderName = "trivia"

const (
	defaultBaseURL       = "https://opentdb.com/api.php"
	defaultCategoriesURL = "https://opentdb.com/api_category.php"
	defaultTTL           = 5 * time.Minute
	defaultAmount        = 10
	defaultType          = "multiple"
)

// Category is one upstream question category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Question is the normalized record emitted to callers. Text fields are
// HTML-decoded.
type Question struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correctAnswer"`
	IncorrectAnswers []string `json:"incorrectAnswers"`
}

// Request selects the question set to fetch. Zero values fall back to the
// upstream defaults: ten multiple-choice questions from any category.
type Request struct {
	Amount     int
	Category   int
	Difficulty string
	Type       string
}

// Config carries the provider settings resolved at startup.
type Config struct {
	BaseURL       string
	CategoriesURL string
	TTL           time.Duration
}

// Service is the quiz adapter.
type Service struct {
	cfg    Config
	client content.Doer
	store  cache.ResultCache
	logger *slog.Logger
	rec    *metrics.Recorder
	group  singleflight.Group

	mu                 sync.RWMutex
	fallbackQuestions  []Question
	fallbackCategories []Category
}

// New wires the adapter with its cache backend and HTTP client.
func New(cfg Config, client content.Doer, store cache.ResultCache, logger *slog.Logger, rec *metrics.Recorder) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.CategoriesURL == "" {
		cfg.CategoriesURL = defaultCategoriesURL
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
		cfg:                cfg,
		client:             client,
		store:              store,
		logger:             logger.With(slog.String("provider", ProviderName)),
		rec:                rec,
		fallbackQuestions:  builtinFallbackQuestions(),
		fallbackCategories: builtinFallbackCategories(),
	}
}

// Categories lists the upstream question categories, degrading to a fixed
// set of popular ones on failure.
func (s *Service) Categories(ctx context.Context) []Category {
	start := time.Now()
	key := cache.Descriptor{Provider: ProviderName, Operation: "categories"}.Key()

	lookupStart := time.Now()
	if categories, ok := cache.Fetch[[]Category](ctx, s.store, key); ok {
		s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupHit, time.Since(lookupStart))
		s.rec.ObserveRequest(ProviderName, "categories", metrics.SourceCache, time.Since(start))
		return categories
	}
	s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupMiss, time.Since(lookupStart))

	result, err, _ := s.group.Do(key, func() (any, error) {
		var payload categoriesResponse
		if err := s.getJSON(ctx, s.cfg.CategoriesURL, &payload); err != nil {
			return nil, err
		}
		s.save(ctx, key, payload.TriviaCategories)
		return payload.TriviaCategories, nil
	})
	if err != nil {
		s.logger.Warn("categories fetch failed, serving fallback set", slog.Any("error", err))
		s.mu.RLock()
		categories := make([]Category, len(s.fallbackCategories))
		copy(categories, s.fallbackCategories)
		s.mu.RUnlock()
		s.rec.ObserveRequest(ProviderName, "categories", metrics.SourceFallback, time.Since(start))
		return categories
	}

	s.rec.ObserveRequest(ProviderName, "categories", metrics.SourceLive, time.Since(start))
	return result.([]Category)
}

// Questions fetches a question set. Text is HTML-decoded before caching.
// Upstream failure (including a non-zero response code) degrades to the
// fallback question set; it never returns an error.
func (s *Service) Questions(ctx context.Context, req Request) []Question {
	start := time.Now()
	if req.Amount <= 0 {
		req.Amount = defaultAmount
	}
	if req.Type == "" {
		req.Type = defaultType
	}

	params := map[string]string{
		"amount": strconv.Itoa(req.Amount),
		"type":   req.Type,
	}
	if req.Category > 0 {
		params["category"] = strconv.Itoa(req.Category)
	}
	if req.Difficulty != "" {
		params["difficulty"] = req.Difficulty
	}
	key := cache.Descriptor{Provider: ProviderName, Operation: "questions", Params: params}.Key()

	lookupStart := time.Now()
	if questions, ok := cache.Fetch[[]Question](ctx, s.store, key); ok {
		s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupHit, time.Since(lookupStart))
		s.rec.ObserveRequest(ProviderName, "questions", metrics.SourceCache, time.Since(start))
		return questions
	}
	s.rec.ObserveCacheLookup(ProviderName, metrics.CacheLookupMiss, time.Since(lookupStart))

	result, err, _ := s.group.Do(key, func() (any, error) {
		values := url.Values{}
		for name, value := range params {
			values.Set(name, value)
		}
		var payload questionsResponse
		if err := s.getJSON(ctx, s.cfg.BaseURL+"?"+values.Encode(), &payload); err != nil {
			return nil, err
		}
		if payload.ResponseCode != 0 {
			return nil, fmt.Errorf("trivia: upstream error code %d", payload.ResponseCode)
		}

		questions := make([]Question, 0, len(payload.Results))
		for _, q := range payload.Results {
			decoded := Question{
				Category:         q.Category,
				Type:             q.Type,
				Difficulty:       q.Difficulty,
				Question:         DecodeHTML(q.Question),
				CorrectAnswer:    DecodeHTML(q.CorrectAnswer),
				IncorrectAnswers: make([]string, len(q.IncorrectAnswers)),
			}
			for i, answer := range q.IncorrectAnswers {
				decoded.IncorrectAnswers[i] = DecodeHTML(answer)
			}
			questions = append(questions, decoded)
		}
		s.save(ctx, key, questions)
		return questions, nil
	})
	if err != nil {
		s.logger.Warn("questions fetch failed, serving fallback set", slog.Any("error", err))
		s.mu.RLock()
		questions := make([]Question, len(s.fallbackQuestions))
		copy(questions, s.fallbackQuestions)
		s.mu.RUnlock()
		s.rec.ObserveRequest(ProviderName, "questions", metrics.SourceFallback, time.Since(start))
		return questions
	}

	s.rec.ObserveRequest(ProviderName, "questions", metrics.SourceLive, time.Since(start))
	return result.([]Question)
}

// DecodeHTML resolves HTML entities (&amp;, &#039;, &quot;, ...) into their
// plain characters.
func DecodeHTML(s string) string {
	return html.UnescapeString(s)
}

// ShuffleAnswers returns the correct and incorrect answers of a question in
// uniformly random order.
func ShuffleAnswers(q Question) []string {
	answers := make([]string, 0, 1+len(q.IncorrectAnswers))
	answers = append(answers, q.CorrectAnswer)
	answers = append(answers, q.IncorrectAnswers...)
	rand.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	return answers
}

// CheckAnswer reports whether the selected answer is the correct one.
func CheckAnswer(q Question, selected string) bool {
	return q.CorrectAnswer == selected
}

// Score returns the points awarded for a correctly answered question.
// Unrecognized difficulties score like easy ones.
func Score(difficulty string) int {
	switch difficulty {
	case "easy":
		return 10
	case "medium":
		return 20
	case "hard":
		return 30
	default:
		return 10
	}
}

// CachePrefix exposes the provider's cache keyspace for invalidation.
func (s *Service) CachePrefix() string {
	return cache.Prefix(ProviderName)
}

// SetFallback swaps the fallback question catalog.
func (s *Service) SetFallback(questions []Question) {
	if len(questions) == 0 {
		return
	}
	s.mu.Lock()
	s.fallbackQuestions = questions
	s.mu.Unlock()
}

// SetCategories swaps the fallback category set.
func (s *Service) SetCategories(categories []Category) {
	if len(categories) == 0 {
		return
	}
	s.mu.Lock()
	s.fallbackCategories = categories
	s.mu.Unlock()
}

func (s *Service) save(ctx context.Context, key string, value any) {
	start := time.Now()
	if err := cache.Save(ctx, s.store, key, value, s.cfg.TTL); err != nil {
		s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreError, time.Since(start))
		s.logger.Warn("cache store failed", slog.Any("error", err))
		return
	}
	s.rec.ObserveCacheStore(ProviderName, metrics.CacheStoreStored, time.Since(start))
}

func (s *Service) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("trivia: build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("trivia: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("trivia: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("trivia: read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("trivia: decode response: %w", err)
	}
	return nil
}

type categoriesResponse struct {
	TriviaCategories []Category `json:"trivia_categories"`
}

type questionsResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Category         string   `json:"category"`
		Type             string   `json:"type"`
		Difficulty       string   `json:"difficulty"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}
