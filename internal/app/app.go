package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"NewsTimeline/internal/config"
	"NewsTimeline/internal/handler"
	"NewsTimeline/internal/infrastructure/extractor"
	"NewsTimeline/internal/infrastructure/parser"
	"NewsTimeline/internal/infrastructure/scheduler"
	"NewsTimeline/internal/infrastructure/storage"
	"NewsTimeline/internal/logging"
	"NewsTimeline/internal/ports"
	"NewsTimeline/internal/scanner"
	"NewsTimeline/internal/summarize"
	"NewsTimeline/internal/timeline"
	"NewsTimeline/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
	server    *http.Server
	db        *sql.DB
}

// New builds the application. A cache that cannot be opened is logged and
// skipped; searches then always go upstream.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	httpCfg := parser.HTTPConfig{
		Client:    &http.Client{Timeout: cfg.Providers.Timeout},
		UserAgent: cfg.Providers.UserAgent,
		Retry:     cfg.Providers.Retry,
	}
	registry := scanner.NewRegistry(
		parser.NewRSSScanner(httpCfg),
		parser.NewHTMLScanner(httpCfg, nil),
	)
	baseLogger.Debug("news scanners registered", "scanners", registry.Names())
	for _, src := range cfg.Providers.Sources {
		if _, err := registry.Resolve(src.Scanner); err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name, err)
		}
	}

	var source ports.NewsSource = parser.NewStrategySource(registry, cfg.Providers, baseLogger.With("component", "source"))

	application := &Application{cfg: cfg, logger: baseLogger}

	var cache ports.FetchCache
	if cfg.Cache.Enabled {
		sqlCache, db, err := openCache(ctx, cfg.Cache)
		if err != nil {
			baseLogger.Warn("fetch cache disabled", "driver", cfg.Cache.Driver, "error", err)
		} else {
			application.db = db
			cache = sqlCache
			scope := strings.ToLower(cfg.Providers.Language + "-" + cfg.Providers.Country)
			source = storage.NewCachedSource(source, sqlCache, cfg.Cache.TTL, scope, baseLogger.With("component", "cache"))
		}
	}

	var contentExtractor ports.ContentExtractor
	if cfg.Extraction.Enabled {
		contentExtractor = extractor.NewReadabilityExtractor(nil, cfg.Extraction.Timeout, cfg.Providers.UserAgent, cfg.Extraction.MaxChars)
	}

	application.pipeline = usecase.NewPipeline(usecase.PipelineDeps{
		Source:    source,
		Extractor: contentExtractor,
		Summarizer: summarize.New(summarize.Options{
			Sentences:           cfg.Summary.Sentences,
			KeyTopics:           cfg.Summary.KeyTopics,
			MinWordLength:       cfg.Summary.MinWordLength,
			MinSentenceChars:    cfg.Summary.MinSentenceChars,
			RedundancyThreshold: cfg.Summary.RedundancyThreshold,
			StopWords:           summarize.DefaultStopWords().With(cfg.Summary.ExtraStopWords...),
		}),
		Timeline: timeline.New(timeline.Options{
			Location:         cfg.Timeline.Location(),
			DenseMaxDays:     cfg.Timeline.DenseMaxDays,
			EventArticles:    cfg.Timeline.EventArticles,
			MinEventArticles: cfg.Timeline.MinEventArticles,
		}),
		Logger: baseLogger.With("component", "pipeline"),
		Limits: usecase.Limits{
			DefaultDaysBack:    cfg.Search.DefaultDaysBack,
			MinDaysBack:        cfg.Search.MinDaysBack,
			MaxDaysBack:        cfg.Search.MaxDaysBack,
			DefaultMaxArticles: cfg.Search.DefaultMaxArticles,
			MinMaxArticles:     cfg.Search.MinMaxArticles,
			MaxMaxArticles:     cfg.Search.MaxMaxArticles,
		},
		ArticleSentences: cfg.Extraction.ArticleSentences,
		ExtractMaxChars:  cfg.Extraction.MaxChars,
	})

	if cache != nil {
		application.scheduler = usecase.NewScheduler(
			scheduler.NewCronScheduler(cfg.Cache.PurgeCron, cfg.Timeline.Location(), true),
			cache,
			baseLogger.With("component", "scheduler"),
		)
	}

	gin.SetMode(gin.ReleaseMode)
	application.server = &http.Server{
		Addr: cfg.Server.Addr,
		Handler: handler.NewRouter(handler.RouterDeps{
			Searcher:       application.pipeline,
			Logger:         baseLogger,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	return application, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

// Run serves HTTP and the purge schedule until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if a.scheduler != nil {
		if err := a.scheduler.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout())
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("http shutdown", "error", err)
	}
	if a.scheduler != nil {
		if err := a.scheduler.Stop(shutdownCtx); err != nil {
			a.logger.Warn("scheduler shutdown", "error", err)
		}
	}
	if err := a.Close(); err != nil {
		a.logger.Warn("close cache", "error", err)
	}

	a.logger.Info("shutdown complete")
	return runErr
}

// Close releases the cache database.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *Application) shutdownTimeout() time.Duration {
	if a.cfg.Server.ShutdownTimeout > 0 {
		return a.cfg.Server.ShutdownTimeout
	}
	return 10 * time.Second
}

func openCache(ctx context.Context, cfg config.CacheConfig) (*storage.SQLCache, *sql.DB, error) {
	db, err := storage.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	cache := storage.NewSQLCache(db, cfg.Driver)
	if err := cache.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return cache, db, nil
}
