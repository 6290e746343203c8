package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"redflag-lab/internal/domain/services/detection"
	"redflag-lab/pkg/logger"
)

// DemoHandler seeds the alert history with sample flagged messages so
// dashboards have something to render before real traffic arrives.
type DemoHandler struct {
	detector *detection.Service
	logger   *logger.Logger
}

// NewDemoHandler creates a new demo handler
func NewDemoHandler(detector *detection.Service, log *logger.Logger) *DemoHandler {
	return &DemoHandler{
		detector: detector,
		logger:   log.WithComponent("demo-handler"),
	}
}

type demoMessage struct {
	sender  string
	message string
	age     time.Duration
}

var demoMessages = []demoMessage{
	{
		sender:  "@love_bomber_user",
		message: "Hey gorgeous! You're absolutely perfect and I think we're soulmates. I've never felt this way about anyone before!",
		age:     2 * time.Hour,
	},
	{
		sender:  "@financial_scammer",
		message: "I need financial help for an emergency. Can you send me $500 on Venmo?",
		age:     time.Hour,
	},
	{
		sender:  "@boundary_violator",
		message: "Why aren't you responding? You don't care about me. Answer me right now!",
		age:     0,
	},
}

// GenerateResponse is the response body for demo data generation
type GenerateResponse struct {
	Generated int `json:"generated"`
}

// Generate handles POST /api/v1/demo/generate - runs the sample messages
// through the classifier and records the resulting alerts
func (h *DemoHandler) Generate(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	generated := 0

	for _, m := range demoMessages {
		_, alert, err := h.detector.ClassifyAndRecord(r.Context(), m.sender, m.message, now.Add(-m.age))
		if err != nil {
			h.logger.Error().Err(err).Str("sender", m.sender).Msg("failed to seed demo alert")
			continue
		}
		if alert != nil {
			generated++
		}
	}

	h.logger.Info().Int("generated", generated).Msg("Demo data created")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GenerateResponse{Generated: generated})
}
