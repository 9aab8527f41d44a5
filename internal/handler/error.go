package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/bookshelf-api/internal/validation"
)

func writeError(c *gin.Context, status int, code, detail string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Detail: detail,
		Code:   code,
	})
}
