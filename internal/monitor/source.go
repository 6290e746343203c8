package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"redflag-lab/internal/domain/models"
)

// MessageSource supplies batches of inbound direct messages for scanning.
// Implementations wrap a platform inbox; FetchMessages may return messages
// it has returned before, the monitor deduplicates by ID.
type MessageSource interface {
	Name() string
	FetchMessages(ctx context.Context) ([]models.InboundMessage, error)
}

// SimulatedSource is a demo message source that replays a scripted
// conversation mix, one message per fetch. It stands in for a real
// platform inbox during development.
type SimulatedSource struct {
	mu     sync.Mutex
	script []models.InboundMessage
	next   int
}

// NewSimulatedSource creates a source seeded with a scripted mix of clean
// and flagged messages.
func NewSimulatedSource() *SimulatedSource {
	script := []struct {
		sender string
		text   string
	}{
		{"@coffee_date", "Hey! Really enjoyed chatting yesterday. Coffee this weekend?"},
		{"@love_bomber_user", "You're perfect, we're soulmates, I've never felt this way before!"},
		{"@friendly_match", "Haha that meme was great. What shows are you watching lately?"},
		{"@financial_scammer", "I'm stranded abroad and need money for a ticket home. Can you send $300 on Zelle? I promise I'll pay you back."},
		{"@boundary_violator", "Hello??? Why aren't you responding? Answer me."},
		{"@info_fisher", "What's your address? I want to send you flowers. And give me your number."},
	}

	msgs := make([]models.InboundMessage, len(script))
	for i, s := range script {
		msgs[i] = models.InboundMessage{
			ID:     uuid.New().String(),
			Sender: s.sender,
			Text:   s.text,
		}
	}

	return &SimulatedSource{script: msgs}
}

// Name identifies the source in logs.
func (s *SimulatedSource) Name() string {
	return "simulated"
}

// FetchMessages returns the next scripted message, cycling with fresh IDs
// once the script is exhausted.
func (s *SimulatedSource) FetchMessages(ctx context.Context) ([]models.InboundMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := s.script[s.next%len(s.script)]
	if s.next >= len(s.script) {
		// Replays get a new identity so the monitor treats them as new traffic.
		msg.ID = uuid.New().String()
	}
	msg.Timestamp = time.Now().UTC()
	s.next++

	return []models.InboundMessage{msg}, nil
}
