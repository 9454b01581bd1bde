package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kisanmitra/farm-analytics-api/internal/services"
	"github.com/kisanmitra/farm-analytics-api/pkg/logger"
)

// respondError maps service errors onto HTTP statuses. Unexpected errors are
// logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrUnsupportedFormat), errors.Is(err, services.ErrInvalidProfile):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, services.ErrQueueUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Error("[HTTP] Request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// farmerIDParam parses :farmer_id, answering 400 when it is not a number
func farmerIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("farmer_id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid farmer ID"})
		return 0, false
	}
	return uint(id), true
}

// requestContext carries the caller's address for audit entries
func requestContext(c *gin.Context) context.Context {
	return services.WithRequestMeta(c.Request.Context(), services.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}
