//go:build wireinject
// +build wireinject

package main

import (
	"context"
	"log/slog"

	"github.com/google/wire"
	"github.com/snnyvrz/bookshelf-api/internal/config"
	"github.com/snnyvrz/bookshelf-api/internal/handler"
	"github.com/snnyvrz/bookshelf-api/internal/repository"
	"github.com/snnyvrz/bookshelf-api/internal/service"
)

var storeSet = wire.NewSet(
	provideDB,
	repository.NewGormBookRepository,
	wire.Bind(new(repository.BookRepository), new(*repository.GormBookRepository)),
)

var serviceSet = wire.NewSet(
	service.NewBookService,
	wire.Bind(new(handler.BookService), new(*service.BookService)),
)

var httpSet = wire.NewSet(
	handler.NewBookHandler,
	provideHealthHandler,
	provideRateLimiter,
	newRouter,
	newServer,
)

func initializeServer(ctx context.Context, cfg *config.Config, log *slog.Logger, info buildInfo) (*server, func(), error) {
	wire.Build(
		storeSet,
		serviceSet,
		httpSet,
	)
	return nil, nil, nil
}
