package streaming

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redflag-lab/internal/domain/models"
	"redflag-lab/pkg/logger"
)

func newTestClient(hub *WebSocketHub) *WebSocketClient {
	return &WebSocketClient{
		hub:    hub,
		send:   make(chan []byte, 256),
		logger: hub.logger,
	}
}

func TestBroadcastRespectsSubscriptionFilter(t *testing.T) {
	hub := NewWebSocketHub(logger.NewDefault())
	client := newTestClient(hub)
	hub.registerClient(client)
	defer hub.unregisterClient(client)

	require.Equal(t, 1, hub.ClientCount())

	// No subscription: everything is delivered.
	hub.broadcastEvent(testEvent())
	require.Len(t, client.send, 1)
	<-client.send

	// Sender filter that does not match suppresses delivery.
	client.setSubscription(&Subscription{Senders: []string{"@someone_else"}})
	hub.broadcastEvent(testEvent())
	assert.Empty(t, client.send)

	// Matching min risk level delivers again.
	client.setSubscription(&Subscription{MinRiskLevel: models.RiskLevelHigh})
	hub.broadcastEvent(testEvent())
	assert.Len(t, client.send, 1)
}

func TestSubscriptionUpdateDuringBroadcast(t *testing.T) {
	hub := NewWebSocketHub(logger.NewDefault())
	client := newTestClient(hub)
	hub.registerClient(client)
	defer hub.unregisterClient(client)

	event := testEvent()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			client.setSubscription(&Subscription{MinRiskLevel: models.RiskLevelMedium})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			hub.broadcastEvent(event)
			// Drain so the buffered channel never blocks delivery checks.
			for len(client.send) > 0 {
				<-client.send
			}
		}
	}()
	wg.Wait()

	assert.Equal(t, 1, hub.ClientCount())
}
