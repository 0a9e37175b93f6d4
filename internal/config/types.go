package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds every server-level option plus the per-provider settings.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Providers ProvidersConfig `koanf:"providers"`
}

// ServerConfig collects the bootstrap knobs: listener, logging, cache backend,
// and the optional fallback catalog folder.
type ServerConfig struct {
	Listen   ListenConfig   `koanf:"listen"`
	Logging  LoggingConfig  `koanf:"logging"`
	Cache    CacheConfig    `koanf:"cache"`
	Fallback FallbackConfig `koanf:"fallback"`
}

// ListenConfig instructs the HTTP listener about bind address and port.
type ListenConfig struct {
	Address string `koanf:"address"`
	Port    int    `koanf:"port"`
}

// LoggingConfig expresses log level and format.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// CacheConfig selects the result cache backend shared by the providers.
type CacheConfig struct {
	Backend    string           `koanf:"backend"`
	MaxEntries int              `koanf:"maxEntries"`
	Redis      RedisCacheConfig `koanf:"redis"`
}

type RedisCacheConfig struct {
	Address  string              `koanf:"address"`
	Username string              `koanf:"username"`
	Password string              `koanf:"password"`
	DB       int                 `koanf:"db"`
	TLS      RedisTLSCacheConfig `koanf:"tls"`
}

type RedisTLSCacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	CAFile  string `koanf:"caFile"`
}

// FallbackConfig points at a folder of catalog documents that override the
// built-in fallback data. Empty means built-ins only.
type FallbackConfig struct {
	Folder string `koanf:"folder"`
}

// ProvidersConfig groups the settings of the four content providers.
type ProvidersConfig struct {
	YouTube   YouTubeConfig   `koanf:"youtube"`
	Wikipedia WikipediaConfig `koanf:"wikipedia"`
	Trivia    TriviaConfig    `koanf:"trivia"`
	Khan      KhanConfig      `koanf:"khan"`
}

// YouTubeConfig configures the video search provider. The API key is required
// for live traffic; without it the provider serves its fallback catalog.
type YouTubeConfig struct {
	APIKey     string `koanf:"apiKey"`
	BaseURL    string `koanf:"baseUrl"`
	TTLSeconds int    `koanf:"ttlSeconds"`
}

// WikipediaConfig configures the encyclopedia provider.
type WikipediaConfig struct {
	BaseURL    string `koanf:"baseUrl"`
	SearchURL  string `koanf:"searchUrl"`
	TTLSeconds int    `koanf:"ttlSeconds"`
}

// TriviaConfig configures the quiz provider.
type TriviaConfig struct {
	BaseURL       string `koanf:"baseUrl"`
	CategoriesURL string `koanf:"categoriesUrl"`
	TTLSeconds    int    `koanf:"ttlSeconds"`
}

// KhanConfig configures the curated topic provider.
type KhanConfig struct {
	TTLSeconds int `koanf:"ttlSeconds"`
}

// TTL converts the configured seconds into a duration.
func (c YouTubeConfig) TTL() time.Duration { return time.Duration(c.TTLSeconds) * time.Second }

// TTL converts the configured seconds into a duration.
func (c WikipediaConfig) TTL() time.Duration { return time.Duration(c.TTLSeconds) * time.Second }

// TTL converts the configured seconds into a duration.
func (c TriviaConfig) TTL() time.Duration { return time.Duration(c.TTLSeconds) * time.Second }

// TTL converts the configured seconds into a duration.
func (c KhanConfig) TTL() time.Duration { return time.Duration(c.TTLSeconds) * time.Second }

// DefaultConfig returns the baseline every load starts from. The per-provider
// TTLs mirror how volatile each upstream is: quiz pools rotate fastest,
// encyclopedia summaries barely change.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Listen:  ListenConfig{Address: "0.0.0.0", Port: 8080},
			Logging: LoggingConfig{Level: "info", Format: "json"},
			Cache:   CacheConfig{Backend: "memory", MaxEntries: 512},
		},
		Providers: ProvidersConfig{
			YouTube: YouTubeConfig{
				BaseURL:    "https://www.googleapis.com/youtube/v3",
				TTLSeconds: 600,
			},
			Wikipedia: WikipediaConfig{
				BaseURL:    "https://en.wikipedia.org/api/rest_v1",
				SearchURL:  "https://en.wikipedia.org/w/api.php",
				TTLSeconds: 900,
			},
			Trivia: TriviaConfig{
				BaseURL:       "https://opentdb.com/api.php",
				CategoriesURL: "https://opentdb.com/api_category.php",
				TTLSeconds:    300,
			},
			Khan: KhanConfig{TTLSeconds: 600},
		},
	}
}

// Validate rejects configurations the runtime cannot act on.
func (c Config) Validate() error {
	if c.Server.Listen.Port <= 0 || c.Server.Listen.Port > 65535 {
		return fmt.Errorf("config: listen port %d out of range", c.Server.Listen.Port)
	}
	switch strings.ToLower(strings.TrimSpace(c.Server.Cache.Backend)) {
	case "", "memory":
	case "redis":
		if strings.TrimSpace(c.Server.Cache.Redis.Address) == "" {
			return fmt.Errorf("config: redis cache backend requires an address")
		}
	default:
		return fmt.Errorf("config: unsupported cache backend %q", c.Server.Cache.Backend)
	}
	if c.Server.Cache.MaxEntries < 0 {
		return fmt.Errorf("config: cache maxEntries must not be negative")
	}
	for name, ttl := range map[string]int{
		"youtube":   c.Providers.YouTube.TTLSeconds,
		"wikipedia": c.Providers.Wikipedia.TTLSeconds,
		"trivia":    c.Providers.Trivia.TTLSeconds,
		"khan":      c.Providers.Khan.TTLSeconds,
	} {
		if ttl <= 0 {
			return fmt.Errorf("config: provider %s ttlSeconds must be positive", name)
		}
	}
	return nil
}
