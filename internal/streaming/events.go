package streaming

import (
	"time"

	"github.com/google/uuid"

	"redflag-lab/internal/domain/models"
)

// EventType represents the type of streamed event
type EventType string

const (
	EventTypeNewAlert EventType = "new_alert"
)

// AlertEvent is the real-time payload pushed to WebSocket subscribers when
// a message is flagged.
type AlertEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	// Alert details
	AlertID         string             `json:"alert_id"`
	Sender          string             `json:"sender"`
	Message         string             `json:"message"`
	RiskLevel       models.RiskLevel   `json:"risk_level"`
	RedFlags        []models.FlagMatch `json:"red_flags"`
	Recommendations []string           `json:"recommendations"`
}

// NewAlertEvent creates an event from a recorded alert.
func NewAlertEvent(alert models.Alert) *AlertEvent {
	return &AlertEvent{
		ID:              uuid.New().String(),
		Type:            EventTypeNewAlert,
		Timestamp:       time.Now().UTC(),
		AlertID:         alert.ID.String(),
		Sender:          alert.Sender,
		Message:         alert.Message,
		RiskLevel:       alert.RiskLevel,
		RedFlags:        alert.RedFlags,
		Recommendations: alert.Recommendations,
	}
}

// Subscription represents a client's subscription preferences
type Subscription struct {
	// Filter by risk level (empty = all)
	MinRiskLevel models.RiskLevel `json:"min_risk_level,omitempty"`

	// Filter by flag categories (empty = all)
	Categories []string `json:"categories,omitempty"`

	// Filter by sender (empty = all)
	Senders []string `json:"senders,omitempty"`
}

// Matches checks if an event matches the subscription filters
func (s *Subscription) Matches(event *AlertEvent) bool {
	if s.MinRiskLevel != "" && !event.RiskLevel.AtLeast(s.MinRiskLevel) {
		return false
	}

	if len(s.Categories) > 0 {
		found := false
		for _, c := range s.Categories {
			for _, f := range event.RedFlags {
				if f.Category == c {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}

	if len(s.Senders) > 0 {
		found := false
		for _, sender := range s.Senders {
			if sender == event.Sender {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}
