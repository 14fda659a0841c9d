package handlers

import (
	"net/http"
	"time"

	"p2p-volume-tracker/internal/application/dto"
)

// HealthHandler maneja el endpoint de health check
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler crea una nueva instancia del health handler
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		now: time.Now,
	}
}

// Health godoc
// @Summary Basic health check
// @Description Verifies that the service is running. Does not call any exchange.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is running"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, dto.NewHealthResponse(h.now()))
}
