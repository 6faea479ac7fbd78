// Package server exposes the assistant over HTTP/JSON with an SSE stream
// for live event notifications.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/assistant"
	"github.com/giubellucas/calendario-inteligente/internal/events"
	"github.com/giubellucas/calendario-inteligente/internal/reminder"
	"github.com/giubellucas/calendario-inteligente/internal/store"
)

// CalendarServer serves the HTTP API.
type CalendarServer struct {
	store     store.Store
	assistant *assistant.Assistant
	publisher events.Publisher
	reminders *reminder.Scheduler // nil = reminders disabled
	sseHub    *sseHub
	logger    *slog.Logger

	now func() time.Time
}

// New returns a CalendarServer backed by the given store and assistant.
// The publisher and reminder scheduler may be nil.
func New(st store.Store, a *assistant.Assistant, publisher events.Publisher, reminders *reminder.Scheduler, logger *slog.Logger) *CalendarServer {
	if publisher == nil {
		publisher = &events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CalendarServer{
		store:     st,
		assistant: a,
		publisher: publisher,
		reminders: reminders,
		sseHub:    newSSEHub(),
		logger:    logger,
		now:       time.Now,
	}
}

// publishAndBroadcast sends an event to NATS and to connected SSE clients.
// Both are best-effort; failures are logged but do not block the caller.
func (s *CalendarServer) publishAndBroadcast(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
	s.broadcastEvent(topic, event)
}

// broadcastEvent fans an event out to SSE clients.
func (s *CalendarServer) broadcastEvent(topic string, event any) {
	if s.sseHub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Warn("failed to marshal event for SSE broadcast", "topic", topic, "error", err)
		return
	}
	s.sseHub.broadcast(topic, payload)
}
