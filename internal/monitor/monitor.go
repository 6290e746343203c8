package monitor

import (
	"context"
	"sync"
	"time"

	"redflag-lab/internal/domain/models"
	"redflag-lab/internal/domain/services/detection"
	"redflag-lab/pkg/logger"
)

// Monitor polls a message source on an interval, classifies every new
// message, and records alerts for flagged ones. Messages already seen are
// skipped by ID.
type Monitor struct {
	logger   *logger.Logger
	source   MessageSource
	detector *detection.Service
	interval time.Duration

	mu        sync.Mutex
	processed map[string]struct{}
}

// New creates a monitor over the given source and detection service.
func New(log *logger.Logger, source MessageSource, detector *detection.Service, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Monitor{
		logger:    log.WithComponent("monitor"),
		source:    source,
		detector:  detector,
		interval:  interval,
		processed: make(map[string]struct{}),
	}
}

// Run polls until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info().
		Str("source", m.source.Name()).
		Dur("interval", m.interval).
		Msg("monitor started")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info().Msg("monitor stopping")
			return ctx.Err()
		case <-ticker.C:
			if err := m.Poll(ctx); err != nil {
				m.logger.Error().Err(err).Msg("poll failed")
			}
		}
	}
}

// Poll fetches one batch from the source and processes every message not
// seen before. It returns the first fetch error; classification errors are
// logged per message and do not abort the batch.
func (m *Monitor) Poll(ctx context.Context) error {
	messages, err := m.source.FetchMessages(ctx)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if !m.markProcessed(msg.ID) {
			continue
		}
		m.process(ctx, msg)
	}

	return nil
}

// markProcessed records the ID and reports whether it was new.
func (m *Monitor) markProcessed(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, seen := m.processed[id]; seen {
		return false
	}
	m.processed[id] = struct{}{}
	return true
}

// ProcessedCount returns how many distinct messages have been handled.
func (m *Monitor) ProcessedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.processed)
}

func (m *Monitor) process(ctx context.Context, msg models.InboundMessage) {
	result, alert, err := m.detector.ClassifyAndRecord(ctx, msg.Sender, msg.Text, msg.Timestamp)
	if err != nil {
		m.logger.Warn().Err(err).Str("sender", msg.Sender).Msg("failed to classify message")
		return
	}

	if alert == nil {
		m.logger.Debug().Str("sender", msg.Sender).Msg("message clean")
		return
	}

	event := m.logger.Info()
	if result.RiskLevel.AtLeast(models.RiskLevelHigh) {
		event = m.logger.Warn()
	}
	event.
		Str("alert_id", alert.ID.String()).
		Str("sender", msg.Sender).
		Str("risk_level", string(result.RiskLevel)).
		Int("flags", len(result.RedFlags)).
		Msg("flagged message detected")

	// Surface the protective guidance for anything medium or above.
	if result.RiskLevel.AtLeast(models.RiskLevelMedium) {
		for _, rec := range result.Recommendations {
			m.logger.Info().Str("sender", msg.Sender).Msg(rec)
		}
	}
}
