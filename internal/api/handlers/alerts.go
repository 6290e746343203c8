package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"redflag-lab/internal/domain/models"
	"redflag-lab/internal/domain/services/detection"
	"redflag-lab/pkg/logger"
)

// AlertsHandler handles alert history endpoints
type AlertsHandler struct {
	detector *detection.Service
	logger   *logger.Logger
}

// NewAlertsHandler creates a new alerts handler
func NewAlertsHandler(detector *detection.Service, log *logger.Logger) *AlertsHandler {
	return &AlertsHandler{
		detector: detector,
		logger:   log.WithComponent("alerts-handler"),
	}
}

// AlertsResponse is the response body for alert listings
type AlertsResponse struct {
	Alerts []models.Alert `json:"alerts"`
	Count  int            `json:"count"`
}

// List handles GET /api/v1/alerts?limit=N - returns recorded alerts, most
// recent first
func (h *AlertsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = n
	}

	alerts := h.detector.Alerts(limit)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AlertsResponse{
		Alerts: alerts,
		Count:  len(alerts),
	})
}
