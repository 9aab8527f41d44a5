package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf-api/internal/validation"
)

// Recovery turns a panic in a handler into a JSON 500 and keeps serving.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered",
					"error", fmt.Sprint(rec),
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
					"stack", string(debug.Stack()),
				)

				c.Header("Connection", "close")
				c.AbortWithStatusJSON(http.StatusInternalServerError, validation.ErrorResponse{
					Detail: "Internal server error",
					Code:   "INTERNAL_ERROR",
				})
			}
		}()

		c.Next()
	}
}
