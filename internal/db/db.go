package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/snnyvrz/bookshelf-api/internal/config"
	"github.com/snnyvrz/bookshelf-api/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnsupportedURL = errors.New("unsupported DATABASE_URL scheme")

// Dialector picks the gorm driver for a DATABASE_URL. Postgres URLs and
// key=value DSNs go to postgres; sqlite://, file: and :memory: go to sqlite.
func Dialector(databaseURL string) (gorm.Dialector, error) {
	url := strings.TrimSpace(databaseURL)

	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://")), nil
	case strings.HasPrefix(url, "file:"), url == ":memory:":
		return sqlite.Open(url), nil
	case strings.Contains(url, "host=") || strings.Contains(url, "dbname="):
		return postgres.Open(url), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, redact(url))
}

func Open(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(log, cfg.LogLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	return db, nil
}

// newGormLogger routes SQL logging through the process logger. Lookups that
// find nothing are an expected outcome and are not logged.
func newGormLogger(log *slog.Logger, logLevel string) logger.Interface {
	level := logger.Warn
	if logLevel == "debug" {
		level = logger.Info
	}

	return logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// ConnectWithRetry opens the pool and pings it until the database answers,
// giving up after cfg.DBConnectAttempts tries or when ctx is done.
func ConnectWithRetry(ctx context.Context, cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	var err error

	for attempt := 1; attempt <= cfg.DBConnectAttempts; attempt++ {
		var db *gorm.DB
		db, err = Open(cfg, log)
		if err == nil {
			err = ping(ctx, db)
			if err == nil {
				log.Info("database connected", "attempt", attempt)
				return db, nil
			}
			_ = Close(db)
		}

		log.Warn("db not ready",
			"attempt", attempt,
			"max_attempts", cfg.DBConnectAttempts,
			"error", err,
		)

		if attempt == cfg.DBConnectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBConnectDelay):
		}
	}

	return nil, fmt.Errorf("could not connect to db after %d attempts: %w", cfg.DBConnectAttempts, err)
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Migrate creates or updates the books table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Book{})
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func redact(url string) string {
	if i := strings.Index(url, "@"); i >= 0 {
		if j := strings.Index(url, "://"); j >= 0 && j < i {
			return url[:j+3] + "***" + url[i:]
		}
	}
	return url
}
