package main

// @title           Bookshelf API
// @version         1.0
// @description     CRUD API for book records.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf-api/internal/config"
	"github.com/snnyvrz/bookshelf-api/internal/logging"
	"github.com/snnyvrz/bookshelf-api/internal/tracing"
)

const appVersion = "0.1.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg)
	slog.SetDefault(log)

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.ServiceName, appVersion, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", "error", err)
		}
	}()

	srv, cleanup, err := initializeServer(ctx, cfg, log, buildInfo{
		Version:   appVersion,
		StartTime: startTime,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	return srv.Run(ctx)
}
