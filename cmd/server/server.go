package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf-api/internal/config"
)

type server struct {
	http            *http.Server
	log             *slog.Logger
	shutdownTimeout time.Duration
}

func newServer(cfg *config.Config, router *gin.Engine, log *slog.Logger) *server {
	return &server{
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			IdleTimeout:       time.Minute,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
		},
		log:             log,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most shutdownTimeout.
func (s *server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)

	go func() {
		s.log.Info("server starting", "address", s.http.Addr)
		serveErr <- s.http.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server", "timeout", s.shutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.log.Info("server stopped", "address", s.http.Addr)
	return nil
}
