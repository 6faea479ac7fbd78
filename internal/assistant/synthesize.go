package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/events"
	"github.com/giubellucas/calendario-inteligente/internal/idgen"
	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// conflictWindow is the proximity within which two events are considered
// overlapping.
const conflictWindow = time.Hour

// Synthesize turns an accepted candidate into a persisted event. The
// candidate must carry a title; a missing date on an actionable candidate
// defaults to now rather than dropping the event. Returns the stored event
// and the first conflicting event, if any.
func (a *Assistant) Synthesize(ctx context.Context, cand *model.Candidate, now time.Time) (*model.Event, *model.Event, error) {
	if err := cand.Validate(); err != nil {
		return nil, nil, err
	}

	at := now
	if cand.Date != nil {
		at = *cand.Date
	}

	conflict, err := a.findConflict(ctx, at)
	if err != nil {
		return nil, nil, err
	}

	id, err := idgen.Generate()
	if err != nil {
		return nil, nil, err
	}

	event := &model.Event{
		ID:           id,
		Title:        cand.Title,
		Description:  cand.Description,
		EventDate:    at,
		Urgency:      model.UrgencyFor(at, now),
		Category:     cand.Category,
		Priority:     cand.Priority,
		Location:     cand.Location,
		Participants: cand.Participants,
		Entities:     cand.Entities,
		Keywords:     cand.Keywords,
		Intent:       cand.Intent,
		Sentiment:    cand.Sentiment,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := a.store.CreateEvent(ctx, event); err != nil {
		return nil, nil, fmt.Errorf("storing event: %w", err)
	}

	if a.reminders != nil {
		a.reminders.Arm(event.ID, event.Title, event.EventDate)
	}

	if err := a.publisher.Publish(ctx, events.TopicEventCreated, events.EventCreated{Event: event}); err != nil {
		a.logger.Warn("publishing event created", "event_id", event.ID, "error", err)
	}

	return event, conflict, nil
}

// findConflict returns the first stored event whose date is within
// conflictWindow of at, in date order. Only the first match is reported.
func (a *Assistant) findConflict(ctx context.Context, at time.Time) (*model.Event, error) {
	from := at.Add(-conflictWindow)
	until := at.Add(conflictWindow)
	existing, err := a.store.ListEvents(ctx, model.EventFilter{From: &from, Until: &until})
	if err != nil {
		return nil, fmt.Errorf("checking conflicts: %w", err)
	}
	for _, e := range existing {
		diff := e.EventDate.Sub(at)
		if diff < 0 {
			diff = -diff
		}
		if diff < conflictWindow {
			return e, nil
		}
	}
	return nil, nil
}
