package catalog

import (
	"context"

	"github.com/studykit/contentd/internal/content/khan"
	"github.com/studykit/contentd/internal/content/trivia"
	"github.com/studykit/contentd/internal/content/wikipedia"
	"github.com/studykit/contentd/internal/content/youtube"
)

// Providers collects the adapters a catalog document can feed. Nil entries
// are skipped.
type Providers struct {
	YouTube   *youtube.Service
	Wikipedia *wikipedia.Service
	Trivia    *trivia.Service
	Khan      *khan.Service
}

// Apply swaps the fallback datasets of every configured provider for the
// ones carried by the document. Sections the document leaves empty keep the
// current data.
func Apply(ctx context.Context, doc Document, p Providers) {
	if p.YouTube != nil {
		p.YouTube.SetFallback(doc.YouTube.Videos)
		p.YouTube.SetPlaylists(doc.YouTube.Playlists)
	}
	if p.Wikipedia != nil {
		p.Wikipedia.SetFallback(doc.Wikipedia.Articles)
	}
	if p.Trivia != nil {
		p.Trivia.SetFallback(doc.Trivia.Questions)
		p.Trivia.SetCategories(doc.Trivia.Categories)
	}
	if p.Khan != nil {
		p.Khan.SetCatalog(ctx, doc.Khan.Topics, doc.Khan.Videos)
	}
}
