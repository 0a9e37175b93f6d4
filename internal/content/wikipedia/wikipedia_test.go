package wikipedia

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// routingDoer answers the action-API search endpoint and the REST summary
// endpoint from canned payloads so one stub can back a whole search flow.
type routingDoer struct {
	searchCalls  atomic.Int64
	summaryCalls atomic.Int64
	searchBody   string
	searchStatus int
	summaries    map[string]string
	failAll      bool
}

func (d *routingDoer) Do(req *http.Request) (*http.Response, error) {
	if d.failAll {
		return nil, io.ErrUnexpectedEOF
	}
	if strings.Contains(req.URL.Path, "api.php") {
		d.searchCalls.Add(1)
		status := d.searchStatus
		if status == 0 {
			status = http.StatusOK
		}
		return jsonResponse(status, d.searchBody), nil
	}
	d.summaryCalls.Add(1)
	title := req.URL.Path[strings.LastIndex(req.URL.Path, "/")+1:]
	body, ok := d.summaries[title]
	if !ok {
		return jsonResponse(http.StatusNotFound, `{"title": "Not found."}`), nil
	}
	return jsonResponse(http.StatusOK, body), nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func summaryPayload(pageID int, title, extract string) string {
	return fmt.Sprintf(`{
		"pageid": %d,
		"title": %q,
		"extract": %q,
		"lang": "en",
		"timestamp": "2024-03-01T00:00:00Z",
		"thumbnail": {"source": "https://upload.wikimedia.org/thumb.jpg"},
		"content_urls": {"desktop": {"page": "https://en.wikipedia.org/wiki/%s"}}
	}`, pageID, title, extract, title)
}

const algebraSearchBody = `{
	"query": {
		"search": [
			{"pageid": 18831, "title": "Algebra", "snippet": "<span>Algebra</span> is a branch", "timestamp": "2024-01-15T00:00:00Z"},
			{"pageid": 99999, "title": "Missing_Page", "snippet": "gone", "timestamp": "2024-01-15T00:00:00Z"}
		]
	}
}`

func newSearchDoer() *routingDoer {
	return &routingDoer{
		searchBody: algebraSearchBody,
		summaries: map[string]string{
			"Algebra": summaryPayload(18831, "Algebra", "Algebra is a basic branch of mathematics, a simple introduction to symbols."),
		},
	}
}

func TestPageSummaryNormalizesAndCaches(t *testing.T) {
	doer := newSearchDoer()
	svc := New(Config{}, doer, nil, nil, nil)
	ctx := context.Background()

	page, err := svc.PageSummary(ctx, "Algebra")
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, 18831, page.PageID)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Algebra", page.ContentURLs.Desktop.Page)

	again, err := svc.PageSummary(ctx, "Algebra")
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, int64(1), doer.summaryCalls.Load())
}

func TestPageSummaryMissingPageIsNilNil(t *testing.T) {
	doer := newSearchDoer()
	svc := New(Config{}, doer, nil, nil, nil)

	page, err := svc.PageSummary(context.Background(), "No_Such_Page")
	require.NoError(t, err)
	assert.Nil(t, page)
}

func TestPageSummaryMissingPageIsNotCached(t *testing.T) {
	doer := newSearchDoer()
	svc := New(Config{}, doer, nil, nil, nil)
	ctx := context.Background()

	_, _ = svc.PageSummary(ctx, "No_Such_Page")
	_, _ = svc.PageSummary(ctx, "No_Such_Page")
	assert.Equal(t, int64(2), doer.summaryCalls.Load())
}

func TestPageSummaryTransportFailureReturnsError(t *testing.T) {
	doer := &routingDoer{failAll: true}
	svc := New(Config{}, doer, nil, nil, nil)

	page, err := svc.PageSummary(context.Background(), "Algebra")
	require.Error(t, err)
	assert.Nil(t, page)
}

func TestSearchArticlesEnrichesHits(t *testing.T) {
	doer := newSearchDoer()
	svc := New(Config{}, doer, nil, nil, nil)

	articles := svc.SearchArticles(context.Background(), "algebra", 5)
	require.Len(t, articles, 1, "the hit without a summary is dropped")

	got := articles[0]
	assert.Equal(t, "wiki_18831", got.ID)
	assert.Equal(t, "Algebra", got.Title)
	assert.Equal(t, "mathematics", got.Category)
	assert.Equal(t, DifficultyEasy, got.Difficulty)
	assert.Equal(t, 1, got.ReadingMinutes)
	assert.Equal(t, "wikipedia", got.Source)
	assert.Equal(t, "https://upload.wikimedia.org/thumb.jpg", got.Thumbnail)
}

func TestSearchArticlesMemoizesPerFingerprint(t *testing.T) {
	doer := newSearchDoer()
	svc := New(Config{}, doer, nil, nil, nil)
	ctx := context.Background()

	svc.SearchArticles(ctx, "algebra", 5)
	svc.SearchArticles(ctx, "algebra", 5)
	assert.Equal(t, int64(1), doer.searchCalls.Load())

	svc.SearchArticles(ctx, "algebra", 7)
	assert.Equal(t, int64(2), doer.searchCalls.Load())
}

func TestSearchArticlesFailureServesFilteredFallback(t *testing.T) {
	doer := &routingDoer{searchStatus: http.StatusServiceUnavailable}
	svc := New(Config{}, doer, nil, nil, nil)

	articles := svc.SearchArticles(context.Background(), "programming", 5)
	require.NotEmpty(t, articles)
	for _, a := range articles {
		assert.True(t, strings.Contains(strings.ToLower(a.Title+a.Summary), "programming"))
	}
}

func TestEducationalContentUnknownCategoryUsesGeneralTopics(t *testing.T) {
	doer := &routingDoer{
		searchBody: `{"query": {"search": []}}`,
	}
	svc := New(Config{}, doer, nil, nil, nil)

	svc.EducationalContent(context.Background(), "knitting")
	assert.Equal(t, int64(len(categoryTopics["general"])), doer.searchCalls.Load())
}

func TestNormalizeDefaultsCategory(t *testing.T) {
	page := Page{PageID: 7, Title: "Knowledge", Extract: "Knowledge is a basic simple notion.", Lang: "en"}
	article := Normalize(page, "")
	assert.Equal(t, "general", article.Category)
	assert.Equal(t, "wiki_7", article.ID)
	assert.Equal(t, DifficultyEasy, article.Difficulty)
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Algebra is a branch", stripTags(`<span class="hit">Algebra</span> is a branch`))
}
