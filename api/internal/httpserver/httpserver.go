// Package httpserver wires the HTTP surface: routes, CORS, request ids,
// access logging and metrics.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"proofreader/api/internal/handle"
)

type Options struct {
	CORSOrigins []string
	Logger      *slog.Logger
}

// NewRouter mounts the handlers. Middleware order: CORS → RequestID → Logging → Metrics → routes.
func NewRouter(h *handle.Handle, opt Options) http.Handler {
	log := opt.Logger
	if log == nil {
		log = slog.Default()
	}
	origins := opt.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Timeout", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(RequestID)
	r.Use(Logging(log))
	r.Use(Metrics)

	r.Get("/healthz", h.Healthz)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/proofread", h.Proofread)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/proofread", h.Proofread)
		r.Get("/schema", h.Schema)
		r.Get("/engines", h.Engines)
	})
	return r
}

// Serve runs srv until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, log *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	return <-errc
}
