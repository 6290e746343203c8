package streaming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"redflag-lab/internal/domain/models"
)

func testEvent() *AlertEvent {
	alert := models.NewAlert("@scammer_99", time.Now().UTC(), models.ClassificationResult{
		Message:   "I need emergency money right away",
		RiskLevel: models.RiskLevelCritical,
		RedFlags: []models.FlagMatch{
			{Category: "financial_scam", Explanation: "Requests for money", Severity: models.RiskLevelCritical},
		},
		Recommendations: []string{"Never send money to someone you have not met in person"},
	})
	return NewAlertEvent(alert)
}

func TestNewAlertEventCopiesAlertFields(t *testing.T) {
	event := testEvent()

	assert.Equal(t, EventTypeNewAlert, event.Type)
	assert.NotEmpty(t, event.ID)
	assert.NotEmpty(t, event.AlertID)
	assert.Equal(t, "@scammer_99", event.Sender)
	assert.Equal(t, models.RiskLevelCritical, event.RiskLevel)
	assert.Len(t, event.RedFlags, 1)
}

func TestSubscriptionMatchesAllByDefault(t *testing.T) {
	sub := &Subscription{}
	assert.True(t, sub.Matches(testEvent()))
}

func TestSubscriptionMinRiskLevel(t *testing.T) {
	event := testEvent()

	sub := &Subscription{MinRiskLevel: models.RiskLevelHigh}
	assert.True(t, sub.Matches(event))

	event.RiskLevel = models.RiskLevelMedium
	assert.False(t, sub.Matches(event))
}

func TestSubscriptionCategoryFilter(t *testing.T) {
	event := testEvent()

	sub := &Subscription{Categories: []string{"financial_scam"}}
	assert.True(t, sub.Matches(event))

	sub = &Subscription{Categories: []string{"love_bombing"}}
	assert.False(t, sub.Matches(event))
}

func TestSubscriptionSenderFilter(t *testing.T) {
	event := testEvent()

	sub := &Subscription{Senders: []string{"@scammer_99", "@other"}}
	assert.True(t, sub.Matches(event))

	sub = &Subscription{Senders: []string{"@someone_else"}}
	assert.False(t, sub.Matches(event))
}
