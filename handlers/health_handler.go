package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nivela-brasil/intake-backend/services"
	"github.com/nivela-brasil/intake-backend/types"
)

// HealthHandler serves the health endpoint used by uptime probes.
type HealthHandler struct {
	service *services.HealthService
}

func NewHealthHandler(service *services.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// GetHealth handles GET /api/health. A DOWN pipeline answers 503 so load
// balancers stop routing to it; DEGRADED still answers 200 because the intake
// endpoints may remain usable.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	health := h.service.CheckHealth(c.Request.Context())

	status := http.StatusOK
	if health.Status == types.HealthStatusDown {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}
