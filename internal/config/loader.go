package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Loader hydrates the runtime configuration while respecting env > file >
// default precedence.
type Loader struct {
	envPrefix string
	files     []string
}

// NewLoader prepares a config hydrator that honors the env-first contract
// before touching files or defaults.
func NewLoader(envPrefix string, files ...string) *Loader {
	return &Loader{
		envPrefix: envPrefix,
		files:     files,
	}
}

// Load assembles the effective configuration snapshot using the documented
// precedence rules. Config file format follows the file extension; yaml, json,
// and toml are accepted.
func (l *Loader) Load(ctx context.Context) (Config, error) {
	defaultCfg := DefaultConfig()
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(structToMap(defaultCfg), "."), nil); err != nil {
		return Config{}, fmt.Errorf("config: load defaults: %w", err)
	}

	for _, path := range l.files {
		if path == "" {
			continue
		}
		select {
		case <-ctx.Done():
			return Config{}, ctx.Err()
		default:
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("config: file %s not found", path)
			}
			return Config{}, fmt.Errorf("config: stat %s: %w", path, err)
		}
		parser, err := parserForFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return Config{}, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	if l.envPrefix != "" {
		canonical := map[string]string{
			"server.cache.maxentries":        "server.cache.maxEntries",
			"server.cache.redis.tls.cafile":  "server.cache.redis.tls.caFile",
			"providers.youtube.apikey":       "providers.youtube.apiKey",
			"providers.youtube.baseurl":      "providers.youtube.baseUrl",
			"providers.youtube.ttlseconds":   "providers.youtube.ttlSeconds",
			"providers.wikipedia.baseurl":    "providers.wikipedia.baseUrl",
			"providers.wikipedia.searchurl":  "providers.wikipedia.searchUrl",
			"providers.wikipedia.ttlseconds": "providers.wikipedia.ttlSeconds",
			"providers.trivia.baseurl":       "providers.trivia.baseUrl",
			"providers.trivia.categoriesurl": "providers.trivia.categoriesUrl",
			"providers.trivia.ttlseconds":    "providers.trivia.ttlSeconds",
			"providers.khan.ttlseconds":      "providers.khan.ttlSeconds",
		}
		transform := func(s string) string {
			// Double underscores signal a nested path
			// (SERVER__LISTEN__PORT -> server.listen.port).
			key := strings.TrimPrefix(s, l.envPrefix+"_")
			key = strings.ReplaceAll(key, "__", ".")
			lower := strings.ToLower(key)
			if mapped, ok := canonical[lower]; ok {
				return mapped
			}
			// Single underscores are removed so LISTEN_PORT collapses into
			// listenport when callers skip double underscores for nesting.
			key = strings.ReplaceAll(key, "_", "")
			return strings.ToLower(key)
		}
		if err := k.Load(env.Provider(l.envPrefix, ".", transform), nil); err != nil {
			return Config{}, fmt.Errorf("config: load env: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parserForFile(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return kjson.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, fmt.Errorf("config: unsupported file format %s", filepath.Ext(path))
	}
}

// structToMap converts DefaultConfig into a map for the koanf confmap provider.
func structToMap(cfg Config) map[string]any {
	return map[string]any{
		"server": map[string]any{
			"listen": map[string]any{
				"address": cfg.Server.Listen.Address,
				"port":    cfg.Server.Listen.Port,
			},
			"logging": map[string]any{
				"level":  cfg.Server.Logging.Level,
				"format": cfg.Server.Logging.Format,
			},
			"cache": map[string]any{
				"backend":    cfg.Server.Cache.Backend,
				"maxEntries": cfg.Server.Cache.MaxEntries,
				"redis": map[string]any{
					"address":  cfg.Server.Cache.Redis.Address,
					"username": cfg.Server.Cache.Redis.Username,
					"password": cfg.Server.Cache.Redis.Password,
					"db":       cfg.Server.Cache.Redis.DB,
					"tls": map[string]any{
						"enabled": cfg.Server.Cache.Redis.TLS.Enabled,
						"caFile":  cfg.Server.Cache.Redis.TLS.CAFile,
					},
				},
			},
			"fallback": map[string]any{
				"folder": cfg.Server.Fallback.Folder,
			},
		},
		"providers": map[string]any{
			"youtube": map[string]any{
				"apiKey":     cfg.Providers.YouTube.APIKey,
				"baseUrl":    cfg.Providers.YouTube.BaseURL,
				"ttlSeconds": cfg.Providers.YouTube.TTLSeconds,
			},
			"wikipedia": map[string]any{
				"baseUrl":    cfg.Providers.Wikipedia.BaseURL,
				"searchUrl":  cfg.Providers.Wikipedia.SearchURL,
				"ttlSeconds": cfg.Providers.Wikipedia.TTLSeconds,
			},
			"trivia": map[string]any{
				"baseUrl":       cfg.Providers.Trivia.BaseURL,
				"categoriesUrl": cfg.Providers.Trivia.CategoriesURL,
				"ttlSeconds":    cfg.Providers.Trivia.TTLSeconds,
			},
			"khan": map[string]any{
				"ttlSeconds": cfg.Providers.Khan.TTLSeconds,
			},
		},
	}
}
