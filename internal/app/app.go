// Package app wires the travel calendar together: storage backend, store,
// services, planner controller and HTTP router. Both binaries (cmd/api and
// cmd/travelcal) build on it so they share one startup path.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/travel-calendar/internal/config"
	"github.com/pkordes/travel-calendar/internal/handler"
	"github.com/pkordes/travel-calendar/internal/middleware"
	"github.com/pkordes/travel-calendar/internal/planner"
	"github.com/pkordes/travel-calendar/internal/repo"
	"github.com/pkordes/travel-calendar/internal/service"
	"github.com/pkordes/travel-calendar/internal/store"
	"github.com/pkordes/travel-calendar/migrations"
)

// App holds the long-lived components. Close releases the storage backend.
type App struct {
	Config  config.Config
	Store   *store.Store
	Travels *service.TravelService
	Export  *service.ExportService
	Planner *planner.Controller

	log   *slog.Logger
	close func()
}

// Options overrides defaults of Open; used by tests.
type Options struct {
	// KV replaces the configured backend.
	KV    repo.KV
	Clock func() time.Time
}

// Open connects the configured storage backend and loads the collection.
// A malformed stored collection fails with domain.ErrParse; the stored value
// is left as it is.
func Open(ctx context.Context, cfg config.Config, log *slog.Logger, opts Options) (*App, error) {
	a := &App{Config: cfg, log: log, close: func() {}}

	kv := opts.KV
	if kv == nil {
		var err error
		if kv, err = a.openKV(ctx); err != nil {
			return nil, err
		}
	}

	a.Store = store.New(kv, cfg.StorageKey, log)
	if err := a.Store.Load(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("app.Open: %w", err)
	}

	a.Travels = service.NewTravelService(a.Store)
	a.Export = service.NewExportService(a.Travels)
	a.Planner = planner.New(a.Travels, planner.Options{
		Clock:        opts.Clock,
		CalendarBase: cfg.CalendarBaseURL,
		Logger:       log,
	})
	return a, nil
}

func (a *App) openKV(ctx context.Context) (repo.KV, error) {
	switch a.Config.StorageBackend {
	case config.BackendMemory:
		a.log.WarnContext(ctx, "using in-memory storage; travels are lost on exit")
		return repo.NewMemoryKV(), nil

	case config.BackendPostgres:
		n, err := migrations.Up(ctx, a.Config.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("app.Open: %w", err)
		}
		a.log.InfoContext(ctx, "migrations applied", "count", n)

		// pgxpool manages a pool of Postgres connections.
		// New() does not open connections immediately; the first query does.
		pool, err := pgxpool.New(ctx, a.Config.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("app.Open: create pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("app.Open: connect: %w", err)
		}
		a.close = pool.Close
		a.log.InfoContext(ctx, "database connection established")
		return repo.NewPostgresKV(pool), nil

	default:
		a.log.InfoContext(ctx, "using file storage", "dir", a.Config.DataDir)
		return repo.NewFileKV(a.Config.DataDir), nil
	}
}

// Close releases the storage backend.
func (a *App) Close() {
	a.close()
}

// Router builds the HTTP handler with the full middleware stack.
func (a *App) Router() http.Handler {
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(a.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(a.Config.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(a.Config.MaxBodyBytes))

	var protect func(http.Handler) http.Handler
	if a.Config.AuthEnabled() {
		protect = middleware.NewBasicAuth(a.Config.AuthUser, a.Config.AuthHash, "Travel Calendar", a.log)
	} else {
		a.log.Warn("no AUTH_USER/AUTH_HASH set; editing is open to anyone who can reach the server")
	}

	srv := handler.NewServer(a.Travels, a.Export, a.Planner, handler.Options{
		CalendarBase: a.Config.CalendarBaseURL,
		Protect:      protect,
		Logger:       a.log,
	})
	r.Mount("/", srv.Routes())
	return r
}

// Serve runs the HTTP server until ctx is cancelled, then gives in-flight
// requests up to 15 seconds to complete.
func (a *App) Serve(ctx context.Context) error {
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + a.Config.Port,
		Handler:      a.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err, failed := <-errc:
		if failed {
			return fmt.Errorf("app.Serve: %w", err)
		}
	case <-ctx.Done():
	}
	a.log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app.Serve: shutdown: %w", err)
	}
	a.log.Info("server stopped")
	return nil
}
