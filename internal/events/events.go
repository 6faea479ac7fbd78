package events

import (
	"context"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// Event topic constants
const (
	TopicEventCreated = "calin.event.created"
	TopicEventUpdated = "calin.event.updated"
	TopicEventDeleted = "calin.event.deleted"

	// Reminder lifecycle events (emitted by the scheduler when a lead-time
	// or at-time reminder fires).
	TopicReminderFired = "calin.reminder.fired"
)

// Event types

type EventCreated struct {
	Event *model.Event `json:"event"`
}

type EventUpdated struct {
	Event   *model.Event   `json:"event"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type EventDeleted struct {
	EventID string `json:"event_id"`
}

type ReminderFired struct {
	EventID string    `json:"event_id"`
	Title   string    `json:"title"`
	Stage   string    `json:"stage"` // "lead" or "start"
	FiredAt time.Time `json:"fired_at"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
