package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

const youtubeCatalogYAML = `youtube:
  videos:
    - id: vid-1
      title: Intro to Algebra
      description: Equations from scratch.
      videoId: NybHckSEQBI
      channelTitle: Study Channel
`

const triviaCatalogJSON = `{
  "trivia": {
    "categories": [{"id": 42, "name": "Local Quiz"}],
    "questions": [
      {
        "category": "Local Quiz",
        "type": "multiple",
        "difficulty": "easy",
        "question": "Which planet is closest to the sun?",
        "correctAnswer": "Mercury",
        "incorrectAnswers": ["Venus", "Mars", "Jupiter"]
      }
    ]
  }
}`

func TestLoadMergesDocumentsAcrossFormats(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "videos.yaml", youtubeCatalogYAML)
	writeCatalogFile(t, dir, "quiz.json", triviaCatalogJSON)
	writeCatalogFile(t, dir, "notes.txt", "not a catalog")

	doc, err := Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, doc.YouTube.Videos, 1)
	assert.Equal(t, "Intro to Algebra", doc.YouTube.Videos[0].Title)
	require.Len(t, doc.Trivia.Questions, 1)
	assert.Equal(t, "Mercury", doc.Trivia.Questions[0].CorrectAnswer)
	require.Len(t, doc.Trivia.Categories, 1)
	assert.Len(t, doc.Sources, 2)
}

func TestLoadMissingFolderIsEmpty(t *testing.T) {
	doc, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.True(t, doc.Empty())
}

func TestLoadNoFolderConfigured(t *testing.T) {
	doc, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, doc.Empty())
}

func TestLoadRejectsMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "broken.yaml", "youtube: [not: valid")

	_, err := Load(context.Background(), dir)
	require.Error(t, err)
}

func TestWatchDeliversInitialAndUpdatedDocuments(t *testing.T) {
	dir := t.TempDir()
	writeCatalogFile(t, dir, "videos.yaml", youtubeCatalogYAML)

	updates := make(chan Document, 8)
	watcher, err := Watch(context.Background(), dir, func(doc Document) {
		updates <- doc
	}, func(err error) { t.Logf("watch error: %v", err) })
	require.NoError(t, err)
	defer watcher.Stop()

	select {
	case doc := <-updates:
		require.Len(t, doc.YouTube.Videos, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("initial catalog never delivered")
	}

	writeCatalogFile(t, dir, "quiz.json", triviaCatalogJSON)

	deadline := time.After(5 * time.Second)
	for {
		select {
		case doc := <-updates:
			if len(doc.Trivia.Questions) == 1 {
				return
			}
		case <-deadline:
			t.Fatal("updated catalog never delivered")
		}
	}
}

func TestWatchReloadsWhenSubdirectoryVanishes(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "extra")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeCatalogFile(t, sub, "videos.yaml", youtubeCatalogYAML)

	updates := make(chan Document, 8)
	watcher, err := Watch(context.Background(), root, func(doc Document) {
		updates <- doc
	}, func(err error) { t.Logf("watch error: %v", err) })
	require.NoError(t, err)
	defer watcher.Stop()

	select {
	case doc := <-updates:
		require.Len(t, doc.YouTube.Videos, 1)
	case <-time.After(2 * time.Second):
		t.Fatal("initial catalog never delivered")
	}

	// Moving the directory out of the tree emits a single rename event for
	// the directory itself, with no per-file events.
	require.NoError(t, os.Rename(sub, filepath.Join(t.TempDir(), "extra")))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case doc := <-updates:
			if len(doc.YouTube.Videos) == 0 {
				return
			}
		case <-deadline:
			t.Fatal("catalog not reloaded after directory removal")
		}
	}
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	watcher, err := Watch(context.Background(), dir, func(Document) {}, nil)
	require.NoError(t, err)
	watcher.Stop()
	watcher.Stop()
}
