package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sfsergim/CivicReport/internal/logging"
	"github.com/sfsergim/CivicReport/internal/redisclient"
	"github.com/sfsergim/CivicReport/internal/utils"
	"go.uber.org/zap"
)

// Pinger is anything whose reachability can be checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers reports the state of the store and Redis
type HealthHandlers struct {
	logger *logging.SafeLogger
	store  Pinger
	redis  *redisclient.Client
}

// NewHealthHandlers creates a health handler. redis may be nil when the
// service runs without it.
func NewHealthHandlers(logger *logging.SafeLogger, store Pinger, redis *redisclient.Client) *HealthHandlers {
	return &HealthHandlers{logger: logger, store: store, redis: redis}
}

// HealthCheck godoc
// @Summary Health check
// @Description Checks the report store and Redis. Redis is optional: when it is down OTP rate limiting runs in-process and the service stays healthy.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Failure 503 {object} HealthResponse "The report store is unavailable"
// @Router /health [get]
func (h *HealthHandlers) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	ctx, span, done := utils.TraceBusinessLogic(ctx, "health_check")
	defer done()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Services:  make(map[string]string),
	}

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Error("store health check failed", zap.Error(err))
		utils.RecordErrorInSpan(span, err, nil)
		health.Status = "unhealthy"
		health.Services["store"] = "unhealthy"
	} else {
		health.Services["store"] = "healthy"
	}

	switch {
	case h.redis == nil:
		health.Services["redis"] = "disabled"
	default:
		if err := h.redis.Ping(ctx).Err(); err != nil {
			h.logger.Warn("redis health check failed", zap.Error(err))
			health.Services["redis"] = "unhealthy"
		} else {
			health.Services["redis"] = "healthy"
		}
	}

	if health.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}
