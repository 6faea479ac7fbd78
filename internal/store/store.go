package store

import (
	"context"
	"errors"

	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// ErrNotFound is returned when the requested event does not exist.
var ErrNotFound = errors.New("event not found")

// Store defines the persistence interface for calendar events.
type Store interface {
	CreateEvent(ctx context.Context, event *model.Event) error
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListEvents(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)
	UpdateEvent(ctx context.Context, event *model.Event) error
	DeleteEvent(ctx context.Context, id string) error

	Close() error
}
