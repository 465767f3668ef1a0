package handlers

import (
	"net/http"
	"time"

	"github.com/buildcore/vendor-intake/internal/api/middleware"
	"github.com/buildcore/vendor-intake/internal/config"
)

type HealthHandler struct {
	cfg config.Config
}

func NewHealthHandler(cfg config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"status":           "healthy",
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
		"environment":      h.cfg.Environment,
		"monday_connected": h.cfg.MondayConfigured(),
		"board_configured": h.cfg.BoardConfigured(),
	})
}
