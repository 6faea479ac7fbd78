// Package reminder schedules in-process notifications for upcoming events.
//
// Each armed event gets up to two timers: one LeadTime before the event and
// one at the event instant. When a timer fires the scheduler publishes a
// ReminderFired payload on the event bus; delivery to end devices is the
// subscriber's concern.
package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/events"
)

// LeadTime is how far before the event the early reminder fires.
var LeadTime = 15 * time.Minute

// Stage labels for ReminderFired payloads.
const (
	StageLead  = "lead"
	StageStart = "start"
)

type Scheduler struct {
	publisher events.Publisher
	logger    *slog.Logger

	mu      sync.Mutex
	timers  map[string][]*time.Timer
	stopped bool
}

func NewScheduler(publisher events.Publisher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		publisher: publisher,
		logger:    logger,
		timers:    make(map[string][]*time.Timer),
	}
}

// Arm schedules reminders for the event. Instants already in the past are
// skipped. Re-arming an event cancels its previous timers first, so callers
// can arm unconditionally after an update.
func (s *Scheduler) Arm(eventID, title string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.cancelLocked(eventID)

	now := time.Now()
	stages := []struct {
		stage string
		when  time.Time
	}{
		{StageLead, at.Add(-LeadTime)},
		{StageStart, at},
	}
	for _, st := range stages {
		delay := st.when.Sub(now)
		if delay <= 0 {
			continue
		}
		stage := st.stage
		timer := time.AfterFunc(delay, func() {
			s.fire(eventID, title, stage)
		})
		s.timers[eventID] = append(s.timers[eventID], timer)
	}
}

// Cancel stops all pending reminders for the event. Canceling an unknown
// event is a no-op.
func (s *Scheduler) Cancel(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(eventID)
}

func (s *Scheduler) cancelLocked(eventID string) {
	for _, timer := range s.timers[eventID] {
		timer.Stop()
	}
	delete(s.timers, eventID)
}

// Stop cancels every pending reminder and rejects future Arm calls.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id := range s.timers {
		s.cancelLocked(id)
	}
}

func (s *Scheduler) fire(eventID, title, stage string) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	payload := events.ReminderFired{
		EventID: eventID,
		Title:   title,
		Stage:   stage,
		FiredAt: time.Now().UTC(),
	}
	if err := s.publisher.Publish(context.Background(), events.TopicReminderFired, payload); err != nil {
		s.logger.Error("publishing reminder", "event_id", eventID, "stage", stage, "error", err)
		return
	}
	s.logger.Info("reminder fired", "event_id", eventID, "title", title, "stage", stage)
}
