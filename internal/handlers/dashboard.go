// internal/handlers/dashboard.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/wsvendas/motostock/internal/core/ports"
)

// DashboardHandler serves inventory totals for the admin home screen
type DashboardHandler struct {
	responder
	dashboard ports.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard ports.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		responder: responder{logger: logger.With(slog.String("handler", "dashboard"))},
		dashboard: dashboard,
	}
}

// GetDashboard handles GET /api/v1/admin/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load dashboard", slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}
	h.respondJSON(w, http.StatusOK, stats)
}
