package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redflag-lab/internal/domain/models"
	"redflag-lab/internal/domain/services/alerts"
	"redflag-lab/internal/domain/services/detection"
	"redflag-lab/pkg/logger"
)

type fakeSource struct {
	batches [][]models.InboundMessage
	calls   int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchMessages(ctx context.Context) ([]models.InboundMessage, error) {
	if f.calls >= len(f.batches) {
		return nil, nil
	}
	batch := f.batches[f.calls]
	f.calls++
	return batch, nil
}

func newTestDetector(t *testing.T) *detection.Service {
	t.Helper()
	catalog, err := detection.NewCatalog(detection.DefaultCategories())
	require.NoError(t, err)
	return detection.NewService(logger.NewDefault(), catalog, alerts.NewStore(0), nil)
}

func TestPollRecordsFlaggedMessages(t *testing.T) {
	detector := newTestDetector(t)
	now := time.Now().UTC()

	source := &fakeSource{batches: [][]models.InboundMessage{{
		{ID: "m1", Sender: "@ok", Text: "Hey, how was your week?", Timestamp: now},
		{ID: "m2", Sender: "@scam", Text: "Send me money on venmo, I promise I'll pay you back", Timestamp: now},
	}}}

	mon := New(logger.NewDefault(), source, detector, time.Second)
	require.NoError(t, mon.Poll(context.Background()))

	assert.Equal(t, 2, mon.ProcessedCount())

	recorded := detector.Alerts(0)
	require.Len(t, recorded, 1)
	assert.Equal(t, "@scam", recorded[0].Sender)
	assert.Equal(t, models.RiskLevelCritical, recorded[0].RiskLevel)

	stats := detector.Stats()
	assert.Equal(t, int64(2), stats.MessagesScanned)
}

func TestPollSkipsAlreadySeenMessages(t *testing.T) {
	detector := newTestDetector(t)
	now := time.Now().UTC()
	msg := models.InboundMessage{ID: "dup", Sender: "@scam", Text: "bitcoin investment opportunity, guaranteed returns", Timestamp: now}

	source := &fakeSource{batches: [][]models.InboundMessage{
		{msg},
		{msg},
	}}

	mon := New(logger.NewDefault(), source, detector, time.Second)
	require.NoError(t, mon.Poll(context.Background()))
	require.NoError(t, mon.Poll(context.Background()))

	assert.Equal(t, 1, mon.ProcessedCount())
	assert.Len(t, detector.Alerts(0), 1)
}

func TestSimulatedSourceCycles(t *testing.T) {
	source := NewSimulatedSource()
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 10; i++ {
		msgs, err := source.FetchMessages(ctx)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.NotEmpty(t, msgs[0].ID)
		assert.NotEmpty(t, msgs[0].Text)
		_, dup := seen[msgs[0].ID]
		assert.False(t, dup, "replayed messages must carry fresh IDs")
		seen[msgs[0].ID] = struct{}{}
	}
}
