package alerts

import (
	"sync"
	"time"

	"redflag-lab/internal/domain/models"
)

// DefaultCapacity bounds the in-memory alert history when no explicit
// capacity is configured.
const DefaultCapacity = 500

// Store is an in-memory alert history with cumulative counters. Old alerts
// are evicted once capacity is reached; the counters keep counting past
// eviction so stats reflect everything ever recorded.
type Store struct {
	mu       sync.RWMutex
	alerts   []models.Alert
	capacity int
	stats    models.StatsSnapshot
}

// NewStore creates a store bounded to capacity alerts. A capacity of 0
// keeps the full history.
func NewStore(capacity int) *Store {
	if capacity < 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		alerts:   make([]models.Alert, 0, min(capacity, 64)),
		capacity: capacity,
	}
}

// Record appends an alert and bumps the counters. The alert is stored as
// given; callers are expected to have filled every field.
func (s *Store) Record(alert models.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = append(s.alerts, alert)
	if s.capacity > 0 && len(s.alerts) > s.capacity {
		// Drop the oldest. Copy down instead of reslicing so evicted
		// entries do not pin the backing array.
		n := copy(s.alerts, s.alerts[len(s.alerts)-s.capacity:])
		s.alerts = s.alerts[:n]
	}

	s.stats.TotalAlerts++
	switch alert.RiskLevel {
	case models.RiskLevelCritical:
		s.stats.CriticalCount++
	case models.RiskLevelHigh:
		s.stats.HighCount++
	case models.RiskLevelMedium:
		s.stats.MediumCount++
	default:
		s.stats.LowCount++
	}
	s.stats.LastUpdated = alert.Timestamp
}

// NoteScanned bumps the messages-scanned counter without recording an
// alert. Used for messages that classified clean.
func (s *Store) NoteScanned() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.MessagesScanned++
	s.stats.LastUpdated = time.Now().UTC()
}

// List returns up to limit alerts, most recent first. A limit of 0 returns
// everything currently held.
func (s *Store) List(limit int) []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.alerts)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.Alert, n)
	for i := 0; i < n; i++ {
		out[i] = s.alerts[len(s.alerts)-1-i]
	}
	return out
}

// Len returns the number of alerts currently held (not the cumulative
// total, which survives eviction).
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alerts)
}

// Snapshot returns a consistent copy of the cumulative counters.
func (s *Store) Snapshot() models.StatsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}
