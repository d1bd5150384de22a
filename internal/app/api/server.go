// Package api serves stored layouts over HTTP. It validates documents on
// the way in and never holds a live engine.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/dockyard/internal/application/port"
	"github.com/bnema/dockyard/internal/application/usecase"
	"github.com/bnema/dockyard/internal/logging"
)

// Config configures the HTTP API.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// MaxDocumentBytes caps PUT bodies.
	MaxDocumentBytes int64

	SaveLayout   *usecase.SaveLayoutUseCase
	LoadLayout   *usecase.LoadLayoutUseCase
	ListLayouts  *usecase.ListLayoutsUseCase
	DeleteLayout *usecase.DeleteLayoutUseCase
	Codec        port.LayoutCodec
}

// Server is the layout HTTP API.
type Server struct {
	cfg     Config
	handler http.Handler
}

// NewServer builds the routes.
func NewServer(cfg Config) *Server {
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = 1 << 20
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/layouts", s.handleList)
	mux.HandleFunc("GET /api/layouts/{session}", s.handleGet)
	mux.HandleFunc("PUT /api/layouts/{session}", s.handlePut)
	mux.HandleFunc("DELETE /api/layouts/{session}", s.handleDelete)
	mux.HandleFunc("GET /api/schema/layout", s.handleSchema)
	s.handler = mux
	return s
}

// Handler returns the routes wrapped with request logging.
func (s *Server) Handler(ctx context.Context) http.Handler {
	return withLogging(logging.FromContext(ctx), s.handler)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	log := logging.FromContext(ctx)

	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(ctx),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("layout API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	log.Info().Msg("shutting down layout API")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(log *zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logging.WithContext(r.Context(), *log)))

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request served")
	})
}
