// Package assistant turns free-form chat messages into calendar actions.
//
// Every inbound message goes through the same pipeline: cheap local checks
// (special commands, historical queries), then structured extraction via the
// remote model service with the local parser as fallback, then event
// synthesis with conflict and urgency annotation.
package assistant

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/events"
	"github.com/giubellucas/calendario-inteligente/internal/model"
	"github.com/giubellucas/calendario-inteligente/internal/reminder"
	"github.com/giubellucas/calendario-inteligente/internal/store"
)

// ErrInvalidInput is returned for blank or whitespace-only messages.
var ErrInvalidInput = errors.New("message is empty")

// Extractor produces a structured candidate for an utterance. Satisfied by
// the remote extraction client.
type Extractor interface {
	Extract(ctx context.Context, message string, now time.Time) (*model.Candidate, error)
}

// Assistant orchestrates the message pipeline.
type Assistant struct {
	store     store.Store
	publisher events.Publisher
	extractor Extractor           // nil = local parser only
	reminders *reminder.Scheduler // nil = reminders disabled
	logger    *slog.Logger

	now func() time.Time
}

type Option func(*Assistant)

// WithExtractor wires the remote extraction service.
func WithExtractor(e Extractor) Option {
	return func(a *Assistant) { a.extractor = e }
}

// WithReminders wires the reminder scheduler.
func WithReminders(r *reminder.Scheduler) Option {
	return func(a *Assistant) { a.reminders = r }
}

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

func New(st store.Store, publisher events.Publisher, logger *slog.Logger, opts ...Option) *Assistant {
	if publisher == nil {
		publisher = &events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	a := &Assistant{
		store:     st,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OutcomeKind discriminates pipeline results.
type OutcomeKind string

const (
	OutcomeEventCreated OutcomeKind = "event_created"
	OutcomeHistory      OutcomeKind = "history"
	OutcomeStats        OutcomeKind = "stats"
	OutcomeHelp         OutcomeKind = "help"
	OutcomeChat         OutcomeKind = "chat"
)

// Outcome is the pipeline's answer for one message. Message is always set
// and suitable for direct display; the typed fields are populated per kind.
type Outcome struct {
	Kind        OutcomeKind    `json:"kind"`
	Message     string         `json:"message"`
	Event       *model.Event   `json:"event,omitempty"`
	Conflict    *model.Event   `json:"conflict,omitempty"`
	Matches     []*model.Event `json:"matches,omitempty"`
	Patterns    *Patterns      `json:"patterns,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
}
