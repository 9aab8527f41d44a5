package main

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/snnyvrz/bookshelf-api/internal/config"
	docs "github.com/snnyvrz/bookshelf-api/internal/docs"
	"github.com/snnyvrz/bookshelf-api/internal/handler"
	"github.com/snnyvrz/bookshelf-api/internal/middleware"
	"github.com/snnyvrz/bookshelf-api/internal/validation"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const apiPrefix = "/api/v1"

func newRouter(
	cfg *config.Config,
	log *slog.Logger,
	books *handler.BookHandler,
	health *handler.HealthHandler,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	validation.Register()

	e := gin.New()
	e.HandleMethodNotAllowed = true

	e.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
	})

	e.Use(middleware.RequestID())
	if cfg.TracingEnabled() {
		e.Use(middleware.Tracing())
	}
	e.Use(
		middleware.Logger(log),
		middleware.Metrics(),
		middleware.Recovery(log),
	)

	health.RegisterRoutes(e)

	e.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs.SwaggerInfo.BasePath = apiPrefix
	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	e.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, validation.ErrorResponse{
			Detail: "Not Found",
			Code:   "ROUTE_NOT_FOUND",
		})
	})
	e.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, validation.ErrorResponse{
			Detail: "Method Not Allowed",
			Code:   "METHOD_NOT_ALLOWED",
		})
	})

	api := e.Group(apiPrefix)
	if limiter != nil {
		api.Use(limiter.Middleware())
	}
	books.RegisterRoutes(api)

	return e
}
