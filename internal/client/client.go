// Package client provides a transport-agnostic interface for the calendar
// service and an HTTP/JSON implementation that talks to its REST API.
package client

import (
	"context"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/assistant"
	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// CalendarClient is the interface that all CLI commands use to communicate
// with the calendar server. It is implemented by HTTPClient (default) and
// can be backed by any transport.
type CalendarClient interface {
	// Conversational entry point
	SendMessage(ctx context.Context, message string) (*assistant.Outcome, error)

	// Event CRUD
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context, req *ListEventsRequest) (*ListEventsResponse, error)
	UpdateEvent(ctx context.Context, id string, req *UpdateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	// Queries
	History(ctx context.Context, term string) ([]*model.Event, error)
	Stats(ctx context.Context) (*assistant.Patterns, error)
	Suggestions(ctx context.Context) ([]string, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateEventRequest holds parameters for creating an event directly.
type CreateEventRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	EventDate    time.Time `json:"event_date"`
	Category     string    `json:"category,omitempty"`
	Priority     string    `json:"priority,omitempty"`
	Location     string    `json:"location,omitempty"`
	Participants []string  `json:"participants,omitempty"`
}

// ListEventsRequest holds parameters for listing events.
type ListEventsRequest struct {
	Category  string     `json:"category,omitempty"`
	Search    string     `json:"search,omitempty"`
	From      *time.Time `json:"from,omitempty"`
	Until     *time.Time `json:"until,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
}

// ListEventsResponse is the response from ListEvents.
type ListEventsResponse struct {
	Events []*model.Event `json:"events"`
	Total  int            `json:"total"`
}

// UpdateEventRequest holds optional parameters for updating an event.
// Nil pointer fields mean "don't change".
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	EventDate   *time.Time `json:"event_date,omitempty"`
	Notified    *bool      `json:"notified,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Location    *string    `json:"location,omitempty"`
}
