package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/studykit/contentd/internal/content/khan"
	"github.com/studykit/contentd/internal/content/trivia"
	"github.com/studykit/contentd/internal/content/wikipedia"
	"github.com/studykit/contentd/internal/content/youtube"
)

// VideoProvider is the surface the router needs from the video adapter.
type VideoProvider interface {
	SearchVideos(ctx context.Context, query string, maxResults int) []youtube.Video
	PlaylistVideos(ctx context.Context, playlistID string, maxResults int) []youtube.Video
	VideosByCategory(ctx context.Context, category string) []youtube.Video
	Playlists(ctx context.Context) []youtube.Playlist
}

// ArticleProvider is the surface the router needs from the article adapter.
type ArticleProvider interface {
	SearchArticles(ctx context.Context, query string, limit int) []wikipedia.Article
	PageSummary(ctx context.Context, title string) (*wikipedia.Page, error)
	EducationalContent(ctx context.Context, category string) []wikipedia.Article
}

// QuizProvider is the surface the router needs from the trivia adapter.
type QuizProvider interface {
	Categories(ctx context.Context) []trivia.Category
	Questions(ctx context.Context, req trivia.Request) []trivia.Question
}

// TopicProvider is the surface the router needs from the curated catalog.
type TopicProvider interface {
	Topics(ctx context.Context) []khan.Topic
	VideosByTopic(ctx context.Context, slug string) []khan.Video
	SearchVideos(ctx context.Context, query string) []khan.Video
}

// Providers bundles the adapters behind the content API. Nil entries answer
// their routes with 503.
type Providers struct {
	Videos   VideoProvider
	Articles ArticleProvider
	Quiz     QuizProvider
	Topics   TopicProvider
}

func (p Providers) names() []string {
	names := make([]string, 0, 4)
	if p.Videos != nil {
		names = append(names, "videos")
	}
	if p.Articles != nil {
		names = append(names, "articles")
	}
	if p.Quiz != nil {
		names = append(names, "trivia")
	}
	if p.Topics != nil {
		names = append(names, "topics")
	}
	return names
}

// CacheReporter is the result cache surface the health endpoint reports on.
type CacheReporter interface {
	Size(ctx context.Context) (int64, error)
}

// NewHandler wires the content API routes onto a mux. Extra routes (such as a
// metrics endpoint) can be registered on the returned mux by the caller. A nil
// store leaves the cache entry count at zero in the health payload.
func NewHandler(p Providers, store CacheReporter, logger *slog.Logger) *http.ServeMux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	h := &handler{providers: p, store: store, logger: logger.With(slog.String("agent", "router"))}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /videos/search", h.searchVideos)
	mux.HandleFunc("GET /videos/playlist/{id}", h.playlistVideos)
	mux.HandleFunc("GET /videos/category/{category}", h.videosByCategory)
	mux.HandleFunc("GET /playlists", h.playlists)
	mux.HandleFunc("GET /articles/search", h.searchArticles)
	mux.HandleFunc("GET /articles/page/{title}", h.pageSummary)
	mux.HandleFunc("GET /articles/category/{category}", h.articlesByCategory)
	mux.HandleFunc("GET /trivia/categories", h.triviaCategories)
	mux.HandleFunc("GET /trivia/questions", h.triviaQuestions)
	mux.HandleFunc("GET /topics", h.topics)
	mux.HandleFunc("GET /topics/search", h.searchTopicVideos)
	mux.HandleFunc("GET /topics/{slug}/videos", h.topicVideos)
	mux.HandleFunc("GET /healthz", h.health)
	return mux
}

type handler struct {
	providers Providers
	store     CacheReporter
	logger    *slog.Logger
}

func (h *handler) searchVideos(w http.ResponseWriter, r *http.Request) {
	if h.providers.Videos == nil {
		writeError(w, http.StatusServiceUnavailable, "video provider unavailable")
		return
	}
	query := r.URL.Query().Get("q")
	maxResults := queryInt(r, "max", 0)
	writeJSON(w, http.StatusOK, h.providers.Videos.SearchVideos(r.Context(), query, maxResults))
}

func (h *handler) playlistVideos(w http.ResponseWriter, r *http.Request) {
	if h.providers.Videos == nil {
		writeError(w, http.StatusServiceUnavailable, "video provider unavailable")
		return
	}
	maxResults := queryInt(r, "max", 0)
	writeJSON(w, http.StatusOK, h.providers.Videos.PlaylistVideos(r.Context(), r.PathValue("id"), maxResults))
}

func (h *handler) videosByCategory(w http.ResponseWriter, r *http.Request) {
	if h.providers.Videos == nil {
		writeError(w, http.StatusServiceUnavailable, "video provider unavailable")
		return
	}
	writeJSON(w, http.StatusOK, h.providers.Videos.VideosByCategory(r.Context(), r.PathValue("category")))
}

func (h *handler) playlists(w http.ResponseWriter, r *http.Request) {
	if h.providers.Videos == nil {
		writeError(w, http.StatusServiceUnavailable, "video provider unavailable")
		return
	}
	writeJSON(w, http.StatusOK, h.providers.Videos.Playlists(r.Context()))
}

func (h *handler) searchArticles(w http.ResponseWriter, r *http.Request) {
	if h.providers.Articles == nil {
		writeError(w, http.StatusServiceUnavailable, "article provider unavailable")
		return
	}
	query := r.URL.Query().Get("q")
	limit := queryInt(r, "limit", 0)
	writeJSON(w, http.StatusOK, h.providers.Articles.SearchArticles(r.Context(), query, limit))
}

func (h *handler) pageSummary(w http.ResponseWriter, r *http.Request) {
	if h.providers.Articles == nil {
		writeError(w, http.StatusServiceUnavailable, "article provider unavailable")
		return
	}
	title := r.PathValue("title")
	page, err := h.providers.Articles.PageSummary(r.Context(), title)
	if err != nil {
		h.logger.Error("page summary failed", slog.String("title", title), slog.Any("error", err))
		writeError(w, http.StatusBadGateway, "article lookup failed")
		return
	}
	if page == nil {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *handler) articlesByCategory(w http.ResponseWriter, r *http.Request) {
	if h.providers.Articles == nil {
		writeError(w, http.StatusServiceUnavailable, "article provider unavailable")
		return
	}
	writeJSON(w, http.StatusOK, h.providers.Articles.EducationalContent(r.Context(), r.PathValue("category")))
}

func (h *handler) triviaCategories(w http.ResponseWriter, r *http.Request) {
	if h.providers.Quiz == nil {
		writeError(w, http.StatusServiceUnavailable, "quiz provider unavailable")
		return
	}
	writeJSON(w, http.StatusOK, h.providers.Quiz.Categories(r.Context()))
}

func (h *handler) triviaQuestions(w http.ResponseWriter, r *http.Request) {
	if h.providers.Quiz == nil {
		writeError(w, http.StatusServiceUnavailable, "quiz provider unavailable")
		return
	}
	req := trivia.Request{
		Amount:     queryInt(r, "amount", 0),
		Category:   queryInt(r, "category", 0),
		Difficulty: r.URL.Query().Get("difficulty"),
		Type:       r.URL.Query().Get("type"),
	}
	writeJSON(w, http.StatusOK, h.providers.Quiz.Questions(r.Context(), req))
}

func (h *handler) topics(w http.ResponseWriter, r *http.Request) {
	if h.providers.Topics == nil {
		writeError(w, http.StatusServiceUnavailable, "topic provider unavailable")
		return
	}
	writeJSON(w, http.StatusOK, h.providers.Topics.Topics(r.Context()))
}

func (h *handler) topicVideos(w http.ResponseWriter, r *http.Request) {
	if h.providers.Topics == nil {
		writeError(w, http.StatusServiceUnavailable, "topic provider unavailable")
		return
	}
	writeJSON(w, http.StatusOK, h.providers.Topics.VideosByTopic(r.Context(), r.PathValue("slug")))
}

func (h *handler) searchTopicVideos(w http.ResponseWriter, r *http.Request) {
	if h.providers.Topics == nil {
		writeError(w, http.StatusServiceUnavailable, "topic provider unavailable")
		return
	}
	writeJSON(w, http.StatusOK, h.providers.Topics.SearchVideos(r.Context(), r.URL.Query().Get("q")))
}

type healthResponse struct {
	Status       string   `json:"status"`
	CacheEntries int64    `json:"cacheEntries"`
	Providers    []string `json:"providers"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	body := healthResponse{Status: "ok", Providers: h.providers.names()}
	if h.store != nil {
		entries, err := h.store.Size(r.Context())
		if err != nil {
			h.logger.Warn("cache size probe failed", slog.Any("error", err))
			body.Status = "degraded"
		} else {
			body.CacheEntries = entries
		}
	}
	writeJSON(w, http.StatusOK, body)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
