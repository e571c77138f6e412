// Package server exposes isomer counts and partition listings over HTTP.
//
// Routes (all GET, JSON responses):
//
//	/healthz                 liveness probe
//	/version                 build information
//	/trees/{vertices}        unrooted count; ?degree=4
//	/rooted/{vertices}       rooted count; ?branching=3
//	/partitions/{sum}        partition listing; ?parts=&max=&limit=
//	/table                   count table; ?max=20&degrees=1,2,3,4
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with the machine-readable code from pkg/errors.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/isomers/pkg/buildinfo"
	"github.com/matzehuels/isomers/pkg/service"
)

// Options configures a Server.
type Options struct {
	// Workers > 1 runs unrooted counts in parallel.
	Workers int

	// RequestTimeout bounds each request. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration
}

// DefaultRequestTimeout bounds a request when Options leaves it unset.
const DefaultRequestTimeout = 60 * time.Second

// Server is the HTTP API.
type Server struct {
	runner *service.Runner
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a server backed by runner.
func New(runner *service.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	s := &Server{runner: runner, logger: logger, opts: opts}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/trees/{vertices}", s.handleTrees)
	r.Get("/rooted/{vertices}", s.handleRooted)
	r.Get("/partitions/{sum}", s.handlePartitions)
	r.Get("/table", s.handleTable)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, errorBody(r, "NOT_FOUND", "no route for "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusMethodNotAllowed, errorBody(r, "METHOD_NOT_ALLOWED", r.Method+" not allowed"))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, giving in-flight requests a few seconds to finish.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// Health and version

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, buildinfo.Get())
}

