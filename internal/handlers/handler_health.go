package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/penger_ledger/internal/core/ports/services"
	"github.com/SscSPs/penger_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type healthHandler struct {
	healthService portssvc.HealthSvc
}

func registerHealthRoutes(r *gin.Engine, healthService portssvc.HealthSvc) {
	h := &healthHandler{healthService: healthService}
	r.GET("/health", h.liveness)
	r.GET("/health/detailed", h.detailed)
}

// liveness godoc
// @Summary Liveness probe
// @Tags health
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *healthHandler) liveness(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Timestamp: time.Now().UTC()})
}

// detailed godoc
// @Summary Readiness probe including the backing store
// @Tags health
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health/detailed [get]
func (h *healthHandler) detailed(c *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Timestamp: time.Now().UTC(), Checks: map[string]string{"storage": "ok"}}
	status := http.StatusOK
	if err := h.healthService.CheckStorage(c.Request.Context()); err != nil {
		resp.Status = "degraded"
		resp.Checks["storage"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
