package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"redflag-lab/internal/domain/models"
	"redflag-lab/internal/domain/services/detection"
	"redflag-lab/pkg/logger"
)

// MessagesHandler handles message classification endpoints
type MessagesHandler struct {
	detector *detection.Service
	logger   *logger.Logger
}

// NewMessagesHandler creates a new messages handler
func NewMessagesHandler(detector *detection.Service, log *logger.Logger) *MessagesHandler {
	return &MessagesHandler{
		detector: detector,
		logger:   log.WithComponent("messages-handler"),
	}
}

// AnalyzeRequest is the request body for message classification
type AnalyzeRequest struct {
	Sender    string    `json:"sender,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ReportResponse is the response body for classify-and-record requests
type ReportResponse struct {
	Result models.ClassificationResult `json:"result"`
	Alert  *models.Alert               `json:"alert,omitempty"`
}

// Analyze handles POST /api/v1/messages/analyze - classifies a message
// without recording anything
func (h *MessagesHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.detector.Classify(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, detection.ErrEmptyMessage) {
			http.Error(w, "Message text is required", http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Msg("failed to classify message")
		http.Error(w, "Classification failed", http.StatusInternalServerError)
		return
	}

	h.logger.Info().
		Str("risk_level", string(result.RiskLevel)).
		Int("flags", len(result.RedFlags)).
		Msg("Message analyzed")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Report handles POST /api/v1/messages/report - classifies a message and
// records an alert when it is flagged
func (h *MessagesHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("invalid request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, alert, err := h.detector.ClassifyAndRecord(r.Context(), req.Sender, req.Message, req.Timestamp)
	if err != nil {
		if errors.Is(err, detection.ErrEmptyMessage) {
			http.Error(w, "Message text is required", http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Msg("failed to classify message")
		http.Error(w, "Classification failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ReportResponse{Result: result, Alert: alert})
}
