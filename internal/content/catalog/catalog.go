// Package catalog loads operator-supplied fallback datasets from a folder of
// YAML/JSON/TOML documents. Documents are merged in path order and replace
// the built-in fallback sets of each provider adapter.
package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/studykit/contentd/internal/content/khan"
	"github.com/studykit/contentd/internal/content/trivia"
	"github.com/studykit/contentd/internal/content/wikipedia"
	"github.com/studykit/contentd/internal/content/youtube"
)

// Document is the merged fallback catalog across all providers. Empty
// sections leave the corresponding built-in set untouched.
type Document struct {
	YouTube struct {
		Videos    []youtube.Video    `json:"videos"`
		Playlists []youtube.Playlist `json:"playlists"`
	} `json:"youtube"`
	Wikipedia struct {
		Articles []wikipedia.Article `json:"articles"`
	} `json:"wikipedia"`
	Trivia struct {
		Categories []trivia.Category `json:"categories"`
		Questions  []trivia.Question `json:"questions"`
	} `json:"trivia"`
	Khan struct {
		Topics []khan.Topic `json:"topics"`
		Videos []khan.Video `json:"videos"`
	} `json:"khan"`
	Sources []string `json:"-"`
}

// Load reads and merges every supported catalog file under folder. A missing
// or empty folder yields an empty document, not an error.
func Load(ctx context.Context, folder string) (Document, error) {
	var doc Document
	if folder == "" {
		return doc, nil
	}
	stat, err := os.Stat(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return Document{}, fmt.Errorf("catalog: folder %s: %w", folder, err)
	}
	if !stat.IsDir() {
		return Document{}, fmt.Errorf("catalog: folder %s is not a directory", folder)
	}

	files, err := collectSources(folder)
	if err != nil {
		return Document{}, err
	}
	for _, path := range files {
		select {
		case <-ctx.Done():
			return Document{}, ctx.Err()
		default:
		}
		part, err := loadDocument(path)
		if err != nil {
			return Document{}, err
		}
		doc.merge(part)
		doc.Sources = append(doc.Sources, path)
	}
	sort.Strings(doc.Sources)
	return doc, nil
}

// Empty reports whether the document carries no fallback data at all.
func (d Document) Empty() bool {
	return len(d.YouTube.Videos) == 0 && len(d.YouTube.Playlists) == 0 &&
		len(d.Wikipedia.Articles) == 0 &&
		len(d.Trivia.Categories) == 0 && len(d.Trivia.Questions) == 0 &&
		len(d.Khan.Topics) == 0 && len(d.Khan.Videos) == 0
}

func (d *Document) merge(part Document) {
	d.YouTube.Videos = append(d.YouTube.Videos, part.YouTube.Videos...)
	d.YouTube.Playlists = append(d.YouTube.Playlists, part.YouTube.Playlists...)
	d.Wikipedia.Articles = append(d.Wikipedia.Articles, part.Wikipedia.Articles...)
	d.Trivia.Categories = append(d.Trivia.Categories, part.Trivia.Categories...)
	d.Trivia.Questions = append(d.Trivia.Questions, part.Trivia.Questions...)
	d.Khan.Topics = append(d.Khan.Topics, part.Khan.Topics...)
	d.Khan.Videos = append(d.Khan.Videos, part.Khan.Videos...)
}

func collectSources(folder string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(folder, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isSupportedCatalogFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: walk folder %s: %w", folder, err)
	}
	sort.Strings(files)
	return files, nil
}

func loadDocument(path string) (Document, error) {
	parser, err := parserFor(path)
	if err != nil {
		return Document{}, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return Document{}, fmt.Errorf("catalog: load %s: %w", path, err)
	}
	var doc Document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return Document{}, fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	return doc, nil
}

func parserFor(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return kjson.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, fmt.Errorf("catalog: unsupported file extension %s", ext)
	}
}

func isSupportedCatalogFile(path string) bool {
	_, err := parserFor(path)
	return err == nil
}
