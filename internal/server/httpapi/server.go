package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/medassist/symptomchecker/internal/logging"
	"github.com/medassist/symptomchecker/internal/server/config"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address        string
	handler        http.Handler
	logger         logging.Logger
	requestTimeout time.Duration
}

func NewServer(cfg *config.Config, handler http.Handler, logger logging.Logger) *Server {
	return &Server{
		address:        cfg.EndpointAddrHTTP,
		handler:        handler,
		logger:         logger.With("module", "http_server"),
		requestTimeout: cfg.RequestTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully. The write
// timeout covers the full analysis retry budget, so slow provider calls do
// not sever in-flight submissions.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.requestTimeout,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error during shutdown", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
