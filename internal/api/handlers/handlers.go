package handlers

import (
	"redflag-lab/internal/config"
	"redflag-lab/internal/domain/services/detection"
	"redflag-lab/internal/infrastructure/cache"
	"redflag-lab/internal/streaming"
	"redflag-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health    *HealthHandler
	Messages  *MessagesHandler
	Alerts    *AlertsHandler
	Stats     *StatsHandler
	Demo      *DemoHandler
	Streaming *StreamingHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Detection *detection.Service
	Cache     *cache.RedisCache
	Hub       *streaming.WebSocketHub
	Config    *config.Config
	Logger    *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:    NewHealthHandler(deps.Cache, deps.Logger),
		Messages:  NewMessagesHandler(deps.Detection, deps.Logger),
		Alerts:    NewAlertsHandler(deps.Detection, deps.Logger),
		Stats:     NewStatsHandler(deps.Detection, deps.Cache, deps.Config.Detection.StatsCacheTTL, deps.Logger),
		Demo:      NewDemoHandler(deps.Detection, deps.Logger),
		Streaming: NewStreamingHandler(deps.Hub, deps.Logger),
	}
}
