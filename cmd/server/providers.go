package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/snnyvrz/bookshelf-api/internal/config"
	"github.com/snnyvrz/bookshelf-api/internal/db"
	"github.com/snnyvrz/bookshelf-api/internal/handler"
	"github.com/snnyvrz/bookshelf-api/internal/middleware"
	"gorm.io/gorm"
)

type buildInfo struct {
	Version   string
	StartTime time.Time
}

// provideDB connects, creates the books table if needed and hands back a
// cleanup that closes the pool.
func provideDB(ctx context.Context, cfg *config.Config, log *slog.Logger) (*gorm.DB, func(), error) {
	database, err := db.ConnectWithRetry(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	if err := db.Migrate(database); err != nil {
		_ = db.Close(database)
		return nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(database); err != nil {
			log.Warn("closing database failed", "error", err)
			return
		}
		log.Info("database closed")
	}

	return database, cleanup, nil
}

func provideHealthHandler(database *gorm.DB, info buildInfo) *handler.HealthHandler {
	return handler.NewHealthHandler(database, info.StartTime, info.Version)
}

// provideRateLimiter returns nil when rate limiting is off.
func provideRateLimiter(ctx context.Context, cfg *config.Config) *middleware.RateLimiter {
	if !cfg.RateLimitEnabled {
		return nil
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Cleanup(ctx)

	return limiter
}
