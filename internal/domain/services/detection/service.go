package detection

import (
	"context"
	"errors"
	"strings"
	"time"

	"redflag-lab/internal/domain/models"
	"redflag-lab/internal/domain/services/alerts"
	"redflag-lab/pkg/logger"
)

// ErrEmptyMessage is returned when a classification request carries no
// message text.
var ErrEmptyMessage = errors.New("message text is required")

// AlertPublisher pushes newly recorded alerts to live subscribers. The
// streaming hub implements it; a nil publisher disables broadcasting.
type AlertPublisher interface {
	PublishAlert(alert models.Alert)
}

// Service ties the rule catalog, risk aggregation, and alert history
// together behind the operations the API and monitor expose.
type Service struct {
	logger    *logger.Logger
	catalog   *Catalog
	store     *alerts.Store
	publisher AlertPublisher
}

// NewService creates a detection service over the given catalog and alert
// store. publisher may be nil.
func NewService(log *logger.Logger, catalog *Catalog, store *alerts.Store, publisher AlertPublisher) *Service {
	return &Service{
		logger:    log.WithComponent("detection"),
		catalog:   catalog,
		store:     store,
		publisher: publisher,
	}
}

// Catalog exposes the rule table the service classifies with.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Classify runs a single message through the catalog and returns the full
// classification: matched flags, aggregated risk level, and guidance. It is
// read-only; nothing is recorded.
func (s *Service) Classify(ctx context.Context, message string) (models.ClassificationResult, error) {
	if strings.TrimSpace(message) == "" {
		return models.ClassificationResult{}, ErrEmptyMessage
	}

	flags := s.catalog.MatchFlags(message)
	level := AggregateRisk(flags)

	result := models.ClassificationResult{
		Message:         message,
		RiskLevel:       level,
		RedFlags:        flags,
		Recommendations: Recommend(level, flags),
	}

	s.logger.Debug().
		Str("risk_level", string(level)).
		Int("flags", len(flags)).
		Msg("Message classified")

	return result, nil
}

// ClassifyAndRecord classifies a message and, when any flag matched,
// records an alert attributed to sender. A zero timestamp defaults to the
// current time. The returned alert pointer is nil for clean messages.
func (s *Service) ClassifyAndRecord(ctx context.Context, sender, message string, at time.Time) (models.ClassificationResult, *models.Alert, error) {
	result, err := s.Classify(ctx, message)
	if err != nil {
		return models.ClassificationResult{}, nil, err
	}

	s.store.NoteScanned()

	if len(result.RedFlags) == 0 {
		return result, nil, nil
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}
	alert := models.NewAlert(sender, at, result)
	s.store.Record(alert)

	if s.publisher != nil {
		s.publisher.PublishAlert(alert)
	}

	s.logger.Info().
		Str("alert_id", alert.ID.String()).
		Str("sender", sender).
		Str("risk_level", string(result.RiskLevel)).
		Int("flags", len(result.RedFlags)).
		Msg("Alert recorded")

	return result, &alert, nil
}

// Alerts returns up to limit recorded alerts, most recent first.
func (s *Service) Alerts(limit int) []models.Alert {
	return s.store.List(limit)
}

// Stats returns the cumulative detection counters.
func (s *Service) Stats() models.StatsSnapshot {
	return s.store.Snapshot()
}
