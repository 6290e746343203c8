package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"redflag-lab/internal/domain/models"
	"redflag-lab/internal/domain/services/detection"
	"redflag-lab/internal/infrastructure/cache"
	"redflag-lab/pkg/logger"
)

// StatsHandler handles the detection stats endpoint
type StatsHandler struct {
	detector *detection.Service
	cache    *cache.RedisCache
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(detector *detection.Service, c *cache.RedisCache, cacheTTL time.Duration, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		detector: detector,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   log.WithComponent("stats-handler"),
	}
}

// Get handles GET /api/v1/stats - returns cumulative detection counters.
// Snapshots are served from Redis for a short TTL when a cache is wired.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.cache != nil && h.cacheTTL > 0 {
		var cached models.StatsSnapshot
		if err := h.cache.GetCachedStats(r.Context(), &cached); err == nil {
			json.NewEncoder(w).Encode(cached)
			return
		}
	}

	stats := h.detector.Stats()

	if h.cache != nil && h.cacheTTL > 0 {
		if err := h.cache.CacheStats(r.Context(), stats, h.cacheTTL); err != nil {
			h.logger.Debug().Err(err).Msg("failed to cache stats")
		}
	}

	json.NewEncoder(w).Encode(stats)
}
