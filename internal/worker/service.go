// Package worker provides the HTTP service wrapping the dedup engine.
package worker

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	gormdb "github.com/thebtf/relic/internal/db/gorm"
	"github.com/thebtf/relic/pkg/dedupe"
)

// Service exposes asset ingestion, deduplication runs, suggestions, and
// review decisions over HTTP. The engine itself stays pure; the service owns
// all I/O around it.
type Service struct {
	version string
	listen  string

	store   *gormdb.Store
	assets  *gormdb.AssetStore
	reviews *gormdb.ReviewStore

	// Engine options can be hot-reloaded from config; guard with mu.
	mu     sync.RWMutex
	engine *dedupe.Engine

	router    chi.Router
	startTime time.Time
}

// New creates a Service around an opened store.
func New(store *gormdb.Store, engineOpts dedupe.Options, listen, version string) *Service {
	s := &Service{
		version:   version,
		listen:    listen,
		store:     store,
		assets:    gormdb.NewAssetStore(store),
		reviews:   gormdb.NewReviewStore(store),
		engine:    dedupe.New(engineOpts),
		router:    chi.NewRouter(),
		startTime: time.Now(),
	}
	s.setupRoutes()
	return s
}

// ReloadEngine swaps the engine for one built from the given options.
// Safe to call while requests are in flight.
func (s *Service) ReloadEngine(opts dedupe.Options) {
	engine := dedupe.New(opts)
	s.mu.Lock()
	s.engine = engine
	s.mu.Unlock()
	log.Info().
		Float64("cluster_threshold", engine.Options().ClusterThreshold).
		Float64("suggestion_threshold", engine.Options().SuggestionThreshold).
		Str("policy", string(engine.Options().Policy)).
		Msg("Engine options reloaded")
}

// Engine returns the current engine instance.
func (s *Service) Engine() *dedupe.Engine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

func (s *Service) setupRoutes() {
	s.router.Use(requestLogger)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/assets", s.handleIngestAssets)
		r.Get("/assets", s.handleListAssets)
		r.Get("/assets/{id}", s.handleGetAsset)
		r.Delete("/assets/{id}", s.handleDeleteAsset)
		r.Post("/dedupe", s.handleDedupe)
		r.Post("/suggestions", s.handleSuggestions)
		r.Post("/reviews", s.handleRecordReview)
		r.Get("/reviews", s.handleListReviews)
	})
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("listen", s.listen).Str("version", s.version).Msg("Starting relic service")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// requestLogger logs each request with method, path, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("Request")
	})
}
