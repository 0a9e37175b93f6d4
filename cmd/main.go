package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/studykit/contentd/internal/config"
	"github.com/studykit/contentd/internal/content/cache"
	"github.com/studykit/contentd/internal/content/catalog"
	"github.com/studykit/contentd/internal/content/khan"
	"github.com/studykit/contentd/internal/content/trivia"
	"github.com/studykit/contentd/internal/content/wikipedia"
	"github.com/studykit/contentd/internal/content/youtube"
	"github.com/studykit/contentd/internal/logging"
	"github.com/studykit/contentd/internal/metrics"
	"github.com/studykit/contentd/internal/server"
)

func main() {
	var (
		configFile = flag.String("config", "", "path to server configuration file")
		envPrefix  = flag.String("env-prefix", "CONTENTD", "environment variable prefix")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := config.NewLoader(*envPrefix, *configFile)
	cfg, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Server.Logging)
	if err != nil {
		log.Fatalf("failed to configure logger: %v", err)
	}

	cacheLogger := logger.With(slog.String("agent", "cache_factory"))
	resultCache := buildResultCache(cacheLogger, cfg.Server.Cache)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := resultCache.Close(shutdownCtx); err != nil {
			logger.Error("cache shutdown failed", slog.Any("error", err))
		}
	}()

	promRegistry := prometheus.NewRegistry()
	metricsRecorder := metrics.NewRecorder(promRegistry)

	httpClient := &http.Client{Timeout: 15 * time.Second}

	providers := catalog.Providers{
		YouTube: youtube.New(youtube.Config{
			APIKey:  cfg.Providers.YouTube.APIKey,
			BaseURL: cfg.Providers.YouTube.BaseURL,
			TTL:     cfg.Providers.YouTube.TTL(),
		}, httpClient, resultCache, logger, metricsRecorder),
		Wikipedia: wikipedia.New(wikipedia.Config{
			BaseURL:   cfg.Providers.Wikipedia.BaseURL,
			SearchURL: cfg.Providers.Wikipedia.SearchURL,
			TTL:       cfg.Providers.Wikipedia.TTL(),
		}, httpClient, resultCache, logger, metricsRecorder),
		Trivia: trivia.New(trivia.Config{
			BaseURL:       cfg.Providers.Trivia.BaseURL,
			CategoriesURL: cfg.Providers.Trivia.CategoriesURL,
			TTL:           cfg.Providers.Trivia.TTL(),
		}, httpClient, resultCache, logger, metricsRecorder),
		Khan: khan.New(khan.Config{
			TTL: cfg.Providers.Khan.TTL(),
		}, resultCache, logger, metricsRecorder),
	}

	var catalogWatcher *catalog.Watcher
	if folder := strings.TrimSpace(cfg.Server.Fallback.Folder); folder != "" {
		watcher, err := catalog.Watch(ctx, folder, func(doc catalog.Document) {
			catalog.Apply(ctx, doc, providers)
			logger.Info("fallback catalog applied", slog.Int("sources", len(doc.Sources)))
		}, func(err error) {
			if err != nil {
				logger.Error("fallback catalog watcher error", slog.Any("error", err))
			}
		})
		if err != nil {
			logger.Error("fallback catalog watcher setup failed", slog.Any("error", err))
		} else {
			catalogWatcher = watcher
			defer catalogWatcher.Stop()
		}
	}

	mux := server.NewHandler(server.Providers{
		Videos:   providers.YouTube,
		Articles: providers.Wikipedia,
		Quiz:     providers.Trivia,
		Topics:   providers.Khan,
	}, resultCache, logger)
	mux.Handle("GET /metrics", metricsRecorder.Handler())

	srv, err := server.New(cfg.Server.Listen, logger, mux)
	if err != nil {
		logger.Error("unable to construct server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server terminated unexpectedly", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}

func buildResultCache(logger *slog.Logger, cfg config.CacheConfig) cache.ResultCache {
	backend := strings.TrimSpace(strings.ToLower(cfg.Backend))
	switch backend {
	case "", "memory":
		if logger != nil {
			logger.Info("using memory result cache", slog.Int("max_entries", cfg.MaxEntries))
		}
		return cache.NewMemory(cfg.MaxEntries)
	case "redis":
		redisCache, err := cache.NewRedis(cache.RedisConfig{
			Address:  cfg.Redis.Address,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TLS: cache.RedisTLSConfig{
				Enabled: cfg.Redis.TLS.Enabled,
				CAFile:  cfg.Redis.TLS.CAFile,
			},
		})
		if err != nil {
			if logger != nil {
				logger.Error("redis result cache unavailable, falling back to memory",
					slog.String("address", cfg.Redis.Address), slog.Any("error", err))
			}
			return cache.NewMemory(cfg.MaxEntries)
		}
		if logger != nil {
			logger.Info("using redis result cache", slog.String("address", cfg.Redis.Address))
		}
		return redisCache
	default:
		if logger != nil {
			logger.Warn("unknown cache backend, using memory", slog.String("backend", cfg.Backend))
		}
		return cache.NewMemory(cfg.MaxEntries)
	}
}
