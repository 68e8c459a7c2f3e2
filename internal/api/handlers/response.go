package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ytgate/ytgate/internal/utils"
)

// errorResponse writes the structured error envelope shared by every
// endpoint: {"error": ..., "message": ..., "code": ..., "request_id": ...}.
func errorResponse(c *gin.Context, err *utils.AppError) {
	body := gin.H{
		"error":      err.Message,
		"code":       err.Code,
		"request_id": c.GetString("request_id"),
		"timestamp":  time.Now().Format(time.RFC3339),
	}
	if err.Detail != "" {
		body["message"] = err.Detail
	}
	c.JSON(err.StatusCode, body)
}
