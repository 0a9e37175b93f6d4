package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gavv/httpexpect/v2"

	"github.com/studykit/contentd/internal/content/khan"
	"github.com/studykit/contentd/internal/content/trivia"
	"github.com/studykit/contentd/internal/content/wikipedia"
	"github.com/studykit/contentd/internal/content/youtube"
)

type stubVideos struct {
	lastQuery    string
	lastPlaylist string
	lastCategory string
	lastMax      int
}

func (s *stubVideos) SearchVideos(_ context.Context, query string, maxResults int) []youtube.Video {
	s.lastQuery = query
	s.lastMax = maxResults
	return []youtube.Video{{ID: "v1", Title: "Intro to Algebra"}}
}

func (s *stubVideos) PlaylistVideos(_ context.Context, playlistID string, maxResults int) []youtube.Video {
	s.lastPlaylist = playlistID
	s.lastMax = maxResults
	return []youtube.Video{{ID: "v2", Title: "Playlist Entry"}}
}

func (s *stubVideos) VideosByCategory(_ context.Context, category string) []youtube.Video {
	s.lastCategory = category
	return []youtube.Video{{ID: "v3", Title: "Category Entry"}}
}

func (s *stubVideos) Playlists(context.Context) []youtube.Playlist {
	return []youtube.Playlist{{ID: "p1", Title: "Math Foundations"}}
}

type stubArticles struct {
	page    *wikipedia.Page
	pageErr error
}

func (s *stubArticles) SearchArticles(_ context.Context, query string, limit int) []wikipedia.Article {
	return []wikipedia.Article{{Title: "Algebra", Category: "mathematics"}}
}

func (s *stubArticles) PageSummary(context.Context, string) (*wikipedia.Page, error) {
	return s.page, s.pageErr
}

func (s *stubArticles) EducationalContent(_ context.Context, category string) []wikipedia.Article {
	return []wikipedia.Article{{Title: "Physics", Category: category}}
}

type stubQuiz struct {
	lastRequest trivia.Request
}

func (s *stubQuiz) Categories(context.Context) []trivia.Category {
	return []trivia.Category{{ID: 9, Name: "General Knowledge"}}
}

func (s *stubQuiz) Questions(_ context.Context, req trivia.Request) []trivia.Question {
	s.lastRequest = req
	return []trivia.Question{{Question: "What is 2 + 2?", CorrectAnswer: "4"}}
}

type stubTopics struct{}

func (stubTopics) Topics(context.Context) []khan.Topic {
	return []khan.Topic{{Slug: "math-basics", Title: "Math Basics"}}
}

func (stubTopics) VideosByTopic(_ context.Context, slug string) []khan.Video {
	if slug != "math-basics" {
		return []khan.Video{}
	}
	return []khan.Video{{ID: "k1", Title: "Introduction to Fractions"}}
}

func (stubTopics) SearchVideos(_ context.Context, query string) []khan.Video {
	if query == "" {
		return []khan.Video{}
	}
	return []khan.Video{{ID: "k2", Title: "Intro to Algorithms"}}
}

type stubSizer struct {
	size int64
	err  error
}

func (s stubSizer) Size(context.Context) (int64, error) {
	return s.size, s.err
}

func newTestClient(t *testing.T, p Providers) *httpexpect.Expect {
	t.Helper()
	return newTestClientWithStore(t, p, nil)
}

func newTestClientWithStore(t *testing.T, p Providers, store CacheReporter) *httpexpect.Expect {
	t.Helper()
	srv := httptest.NewServer(NewHandler(p, store, nil))
	t.Cleanup(srv.Close)
	return httpexpect.Default(t, srv.URL)
}

func allProviders() (Providers, *stubVideos, *stubArticles, *stubQuiz) {
	videos := &stubVideos{}
	articles := &stubArticles{page: &wikipedia.Page{Title: "Algebra"}}
	quiz := &stubQuiz{}
	return Providers{
		Videos:   videos,
		Articles: articles,
		Quiz:     quiz,
		Topics:   stubTopics{},
	}, videos, articles, quiz
}

func TestVideoRoutes(t *testing.T) {
	providers, videos, _, _ := allProviders()
	client := newTestClient(t, providers)

	client.GET("/videos/search").WithQuery("q", "algebra").WithQuery("max", 5).
		Expect().Status(http.StatusOK).
		JSON().Array().Length().IsEqual(1)
	if videos.lastQuery != "algebra" || videos.lastMax != 5 {
		t.Fatalf("search forwarded (%q, %d)", videos.lastQuery, videos.lastMax)
	}

	client.GET("/videos/playlist/PL123").Expect().Status(http.StatusOK).
		JSON().Array().Value(0).Object().HasValue("title", "Playlist Entry")
	if videos.lastPlaylist != "PL123" {
		t.Fatalf("playlist id forwarded %q", videos.lastPlaylist)
	}

	client.GET("/videos/category/mathematics").Expect().Status(http.StatusOK)
	if videos.lastCategory != "mathematics" {
		t.Fatalf("category forwarded %q", videos.lastCategory)
	}

	client.GET("/playlists").Expect().Status(http.StatusOK).
		JSON().Array().Value(0).Object().HasValue("title", "Math Foundations")
}

func TestArticleRoutes(t *testing.T) {
	providers, _, _, _ := allProviders()
	client := newTestClient(t, providers)

	client.GET("/articles/search").WithQuery("q", "algebra").
		Expect().Status(http.StatusOK).
		JSON().Array().Value(0).Object().HasValue("title", "Algebra")

	client.GET("/articles/page/Algebra").Expect().Status(http.StatusOK).
		JSON().Object().HasValue("title", "Algebra")

	client.GET("/articles/category/physics").Expect().Status(http.StatusOK).
		JSON().Array().Value(0).Object().HasValue("category", "physics")
}

func TestMissingArticleIs404(t *testing.T) {
	providers, _, articles, _ := allProviders()
	articles.page = nil
	client := newTestClient(t, providers)

	client.GET("/articles/page/No_Such_Page").Expect().Status(http.StatusNotFound).
		JSON().Object().ContainsKey("error")
}

func TestArticleLookupFailureIs502(t *testing.T) {
	providers, _, articles, _ := allProviders()
	articles.page = nil
	articles.pageErr = errors.New("upstream exploded")
	client := newTestClient(t, providers)

	client.GET("/articles/page/Algebra").Expect().Status(http.StatusBadGateway)
}

func TestTriviaRoutes(t *testing.T) {
	providers, _, _, quiz := allProviders()
	client := newTestClient(t, providers)

	client.GET("/trivia/categories").Expect().Status(http.StatusOK).
		JSON().Array().Value(0).Object().HasValue("name", "General Knowledge")

	client.GET("/trivia/questions").
		WithQuery("amount", 5).WithQuery("category", 18).
		WithQuery("difficulty", "easy").WithQuery("type", "boolean").
		Expect().Status(http.StatusOK).
		JSON().Array().Length().IsEqual(1)

	want := trivia.Request{Amount: 5, Category: 18, Difficulty: "easy", Type: "boolean"}
	if quiz.lastRequest != want {
		t.Fatalf("trivia request forwarded %+v", quiz.lastRequest)
	}
}

func TestTopicRoutes(t *testing.T) {
	providers, _, _, _ := allProviders()
	client := newTestClient(t, providers)

	client.GET("/topics").Expect().Status(http.StatusOK).
		JSON().Array().Value(0).Object().HasValue("slug", "math-basics")

	client.GET("/topics/math-basics/videos").Expect().Status(http.StatusOK).
		JSON().Array().Length().IsEqual(1)

	client.GET("/topics/unknown/videos").Expect().Status(http.StatusOK).
		JSON().Array().IsEmpty()

	client.GET("/topics/search").WithQuery("q", "algorithms").
		Expect().Status(http.StatusOK).
		JSON().Array().Length().IsEqual(1)
}

func TestHealthRoute(t *testing.T) {
	providers, _, _, _ := allProviders()
	client := newTestClientWithStore(t, providers, stubSizer{size: 17})

	body := client.GET("/healthz").Expect().Status(http.StatusOK).JSON().Object()
	body.HasValue("status", "ok")
	body.HasValue("cacheEntries", 17)
	body.Value("providers").Array().
		ContainsAll("videos", "articles", "trivia", "topics").Length().IsEqual(4)
}

func TestHealthRouteReportsConfiguredProvidersOnly(t *testing.T) {
	quiz := &stubQuiz{}
	client := newTestClient(t, Providers{Quiz: quiz})

	body := client.GET("/healthz").Expect().Status(http.StatusOK).JSON().Object()
	body.HasValue("status", "ok")
	body.HasValue("cacheEntries", 0)
	body.Value("providers").Array().ContainsOnly("trivia")
}

func TestHealthRouteDegradesOnCacheProbeFailure(t *testing.T) {
	providers, _, _, _ := allProviders()
	client := newTestClientWithStore(t, providers, stubSizer{err: errors.New("backend gone")})

	client.GET("/healthz").Expect().Status(http.StatusOK).
		JSON().Object().HasValue("status", "degraded")
}

func TestNilProviderAnswers503(t *testing.T) {
	client := newTestClient(t, Providers{})

	client.GET("/videos/search").Expect().Status(http.StatusServiceUnavailable)
	client.GET("/articles/search").Expect().Status(http.StatusServiceUnavailable)
	client.GET("/trivia/questions").Expect().Status(http.StatusServiceUnavailable)
	client.GET("/topics").Expect().Status(http.StatusServiceUnavailable)
}

func TestUnknownRouteIs404(t *testing.T) {
	providers, _, _, _ := allProviders()
	client := newTestClient(t, providers)

	client.GET("/nope").Expect().Status(http.StatusNotFound)
}
