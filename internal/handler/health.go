package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf-api/internal/model"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db        *gorm.DB
	startTime time.Time
	version   string
}

func NewHealthHandler(db *gorm.DB, startTime time.Time, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: startTime,
		version:   version,
	}
}

func (h *HealthHandler) RegisterRoutes(e *gin.Engine) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
		"uptime":  h.uptimeSeconds(),
	})
}

// Ready reports ready once the database answers and the books table has been
// created. Until then the service cannot serve any book route.
func (h *HealthHandler) Ready(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	sqlDB, err := db.DB()
	if err != nil {
		h.notReady(c, "database handle unavailable", gin.H{"status": "error"})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		h.notReady(c, "database unavailable", gin.H{
			"status": "down",
			"error":  err.Error(),
		})
		return
	}

	book := model.Book{}
	if !db.Migrator().HasTable(&book) {
		h.notReady(c, "schema not migrated", gin.H{
			"status": "up",
			"schema": gin.H{
				"table":    book.TableName(),
				"migrated": false,
			},
		})
		return
	}

	stats := sqlDB.Stats()

	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"version": h.version,
		"uptime":  h.uptimeSeconds(),
		"db": gin.H{
			"status":           "up",
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"schema": gin.H{
				"table":    book.TableName(),
				"migrated": true,
			},
		},
	})
}

func (h *HealthHandler) notReady(c *gin.Context, detail string, db gin.H) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status": "unhealthy",
		"detail": detail,
		"db":     db,
	})
}

func (h *HealthHandler) uptimeSeconds() int64 {
	return int64(time.Since(h.startTime).Seconds())
}
