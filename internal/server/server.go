// Package server exposes the leveling pipeline over HTTP.
//
// Routes:
//
//	POST /v1/levels   graph document in, leveled nodes and heights out
//	POST /v1/render   graph document in, node-link diagram out
//	GET  /healthz     liveness
//	GET  /metrics     Prometheus exposition (when metrics are enabled)
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/trophic/pkg/buildinfo"
	"github.com/matzehuels/trophic/pkg/observability"
	"github.com/matzehuels/trophic/pkg/pipeline"
)

// Defaults for Config.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 8 << 20
	shutdownTimeout     = 30 * time.Second
)

// Config holds server settings.
type Config struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`

	// Options are the per-request defaults that query parameters override.
	// Nil selects pipeline.DefaultOptions.
	Options *pipeline.Options `toml:"-"`
}

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	metrics *observability.Metrics
	logger  *log.Logger
	cfg     Config
}

// New creates a server. metrics may be nil, in which case /metrics is not
// mounted.
func New(runner *pipeline.Runner, metrics *observability.Metrics, logger *log.Logger, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Options == nil {
		opts := pipeline.DefaultOptions()
		cfg.Options = &opts
	}
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, metrics: metrics, logger: logger, cfg: cfg}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/levels", s.handleLevels)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr, "version", buildinfo.Version)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// observe logs each request and reports it to the HTTP hooks, labelled by
// route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", d,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
