package httpapi

import (
	"net/http"

	"imovelhub-api/internal/service"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboard service.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// Metrics GET /api/v1/dashboard
func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session := SessionFrom(r.Context())
	m, err := h.dashboard.GetMetrics(r.Context(), session.CompanyID)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail("failed to load dashboard metrics"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(m))
}
