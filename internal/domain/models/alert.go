package models

import (
	"time"

	"github.com/google/uuid"
)

// Alert is a recorded classification tied to a sender and timestamp.
// Alerts are what the dashboard lists; ad-hoc test probes never become one.
type Alert struct {
	ID              uuid.UUID   `json:"id"`
	Sender          string      `json:"sender"`
	Timestamp       time.Time   `json:"timestamp"`
	Message         string      `json:"message"`
	RiskLevel       RiskLevel   `json:"risk_level"`
	RedFlags        []FlagMatch `json:"red_flags"`
	Recommendations []string    `json:"recommendations"`
}

// NewAlert wraps a classification result into an alert record.
func NewAlert(sender string, at time.Time, result ClassificationResult) Alert {
	return Alert{
		ID:              uuid.New(),
		Sender:          sender,
		Timestamp:       at,
		Message:         result.Message,
		RiskLevel:       result.RiskLevel,
		RedFlags:        result.RedFlags,
		Recommendations: result.Recommendations,
	}
}

// StatsSnapshot is a point-in-time view of alert counters.
// Counters are cumulative: they keep counting even after old alerts
// are evicted from a bounded store.
type StatsSnapshot struct {
	TotalAlerts     int64     `json:"total_alerts"`
	CriticalCount   int64     `json:"critical_count"`
	HighCount       int64     `json:"high_count"`
	MediumCount     int64     `json:"medium_count"`
	LowCount        int64     `json:"low_count"`
	MessagesScanned int64     `json:"messages_scanned"`
	LastUpdated     time.Time `json:"last_updated"`
}

// InboundMessage is a DM observed by a monitored account, as delivered
// by a message source connector.
type InboundMessage struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id,omitempty"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
