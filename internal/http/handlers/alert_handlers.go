package handlers

import (
	"net/http"
	"strconv"
)

const defaultAlertLimit = 20

// GetLowStockAlertsHandler godoc
// @Summary Recent low stock alerts
// @Tags alerts
// @Produce json
// @Param limit query int false "Number of alerts, newest first (default 20)"
// @Success 200 {array} alerts.Alert
// @Failure 400 {string} string "Invalid limit"
// @Failure 500 {string} string "Internal error"
// @Router /alerts/low-stock [get]
func (s *Server) GetLowStockAlertsHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultAlertLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	recent, err := s.alerts.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, "read alerts", err)
		return
	}
	respond(w, http.StatusOK, recent)
}
