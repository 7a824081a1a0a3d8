package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthService interface {
	CheckBroker(ctx context.Context) error
}

type HealthHandler struct {
	log *zap.Logger
	svc HealthService
}

func NewHealthHandler(log *zap.Logger, svc HealthService) *HealthHandler {
	return &HealthHandler{
		log: log,
		svc: svc,
	}
}

// Ping
// @Summary Service liveness.
// @Description Returns "pong".
// @Tags Health
// @Produce json
// @Success 200 {object} ResponseWithMessage "Success"
// @Router /health/ping [get]
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, ResponseWithMessage{
		Status:  StatusSuccess,
		Message: "pong",
	})
}

// Health
// @Summary Broker reachability.
// @Description Refreshes the metadata of the applications topic.
// @Tags Health
// @Produce json
// @Success 200 {object} ResponseWithMessage "Broker reachable"
// @Failure 503 {object} ResponseWithMessage "Broker unreachable"
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.svc.CheckBroker(c.Request.Context()); err != nil {
		h.log.Warn("broker health check failed", zap.Error(err))

		c.JSON(http.StatusServiceUnavailable, ResponseWithMessage{
			Status:  StatusNotAvailable,
			Message: err.Error(),
		})

		return
	}

	c.JSON(http.StatusOK, ResponseWithMessage{
		Status:  StatusSuccess,
		Message: "broker reachable",
	})
}
