package handlers

import (
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics for the store overview
// @Tags metrics
// @Produce json
// @Success 200 {object} repo.Metrics
// @Failure 500 {string} string "Internal error"
// @Router /metrics/dashboard [get]
func (s *Server) GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, "fetch metrics", err)
		return
	}
	respond(w, http.StatusOK, m)
}
