package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reelworks/reelgate/internal/api/handler"
	"github.com/reelworks/reelgate/internal/api/middleware"
	"github.com/reelworks/reelgate/internal/config"
	"github.com/reelworks/reelgate/internal/domain/repository"
	"github.com/reelworks/reelgate/internal/infrastructure/cache"
	"github.com/reelworks/reelgate/internal/infrastructure/postgres"
	"github.com/reelworks/reelgate/internal/infrastructure/queue"
	"github.com/reelworks/reelgate/internal/infrastructure/tmdb"
	"github.com/reelworks/reelgate/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// The cache degrades to no-op when unreachable, so a failed ping is a
	// warning, not a startup failure.
	redisCfg := cache.DefaultRedisConfig(cfg.Redis.Addr())
	redisCfg.Password = cfg.Redis.Password
	redisCfg.DB = cfg.Redis.DB
	store := cache.NewRedisStore(redisCfg)
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		logger.Warn("redis unreachable at startup, serving without cache", slog.String("error", err.Error()))
	} else {
		logger.Info("connected to Redis")
	}

	// Analytics is optional: without Postgres the search path simply
	// skips recording.
	var analytics repository.SearchAnalyticsRepository
	if cfg.Database.Enabled() {
		pgClient, err := postgres.NewClient(ctx, postgres.DefaultClientConfig(cfg.Database.DSN()))
		if err != nil {
			logger.Warn("postgres unavailable, search analytics disabled", slog.String("error", err.Error()))
		} else {
			defer pgClient.Close()
			analytics = postgres.NewSearchAnalyticsRepository(pgClient.Pool())
			logger.Info("connected to PostgreSQL")
		}
	}

	tmdbCfg := tmdb.DefaultClientConfig(cfg.TMDB.BaseURL, cfg.TMDB.Token)
	tmdbCfg.Timeout = cfg.TMDB.Timeout
	tmdbCfg.MinInterval = cfg.TMDB.MinInterval
	tmdbCfg.MaxRetries = cfg.TMDB.MaxRetries
	upstream := tmdb.NewClient(tmdbCfg)

	ttl := cache.Policy{
		Trending:          cfg.TTL.Trending,
		Popular:           cfg.TTL.Popular,
		TopRated:          cfg.TTL.TopRated,
		ContentDetails:    cfg.TTL.ContentDetails,
		Credits:           cfg.TTL.Credits,
		Similar:           cfg.TTL.Similar,
		Recommendations:   cfg.TTL.Recommendations,
		SearchResults:     cfg.TTL.SearchResults,
		SearchSuggestions: cfg.TTL.SearchSuggestions,
		Genres:            cfg.TTL.Genres,
		StreamSources:     cfg.TTL.StreamSources,
	}

	fetcher := usecase.NewFetcher(store)
	contentSvc := usecase.NewContentService(fetcher, upstream, ttl)
	searchSvc := usecase.NewSearchService(fetcher, upstream, ttl, analytics)

	// Out-of-band administrative invalidation: consume glob patterns from
	// the queue and drop matching cache entries.
	if cfg.RabbitMQ.Enabled() {
		queueClient, err := queue.NewClient(ctx, queue.DefaultClientConfig(cfg.RabbitMQ.URL()))
		if err != nil {
			logger.Warn("rabbitmq unavailable, cache invalidation disabled", slog.String("error", err.Error()))
		} else {
			defer queueClient.Close()
			logger.Info("connected to RabbitMQ")
			go func() {
				err := queueClient.ConsumeInvalidations(ctx, func(req repository.InvalidationRequest) error {
					removed, _ := store.DeleteMatching(ctx, req.Pattern)
					logger.Info("applied cache invalidation",
						slog.String("pattern", req.Pattern),
						slog.String("requested_by", req.RequestedBy),
						slog.Int("removed", removed),
					)
					return nil
				})
				if err != nil && ctx.Err() == nil {
					logger.Error("invalidation consumer stopped", slog.String("error", err.Error()))
				}
			}()
		}
	}

	r := setupRouter(logger, cfg, store, contentSvc, searchSvc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupRouter(
	logger *slog.Logger,
	cfg *config.Config,
	store *cache.RedisStore,
	contentSvc usecase.ContentService,
	searchSvc usecase.SearchService,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	r.Get("/health", handler.Health(store))
	r.Handle("/metrics", promhttp.Handler())

	contentHandler := handler.NewContentHandler(contentSvc)
	searchHandler := handler.NewSearchHandler(searchSvc)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window))

		r.Route("/content", func(r chi.Router) {
			r.Get("/trending", contentHandler.Trending)
			r.Get("/{type}/popular", contentHandler.Popular)
			r.Get("/{type}/top-rated", contentHandler.TopRated)
			r.Get("/{type}/genres", contentHandler.Genres)
			r.Get("/{type}/{id}", contentHandler.Details)
			r.Get("/{type}/{id}/similar", contentHandler.Similar)
			r.Get("/{type}/{id}/recommendations", contentHandler.Recommendations)
			r.Get("/{type}/{id}/credits", contentHandler.Credits)
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/", searchHandler.Search)
			r.Get("/movies", searchHandler.SearchMovies)
			r.Get("/tv", searchHandler.SearchTV)
			r.Get("/suggestions", searchHandler.Suggestions)
			r.Get("/advanced", searchHandler.Advanced)
		})
	})

	return r
}
