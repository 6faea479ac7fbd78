package server

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/assistant"
	"github.com/giubellucas/calendario-inteligente/internal/model"
	"github.com/giubellucas/calendario-inteligente/internal/store"
)

// testNow is a fixed Monday morning reference instant.
var testNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// memStore is an in-memory Store used across the HTTP tests.
type memStore struct {
	mu     sync.Mutex
	events map[string]*model.Event
}

func newMemStore() *memStore {
	return &memStore{events: make(map[string]*model.Event)}
}

func (m *memStore) CreateEvent(ctx context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *event
	m.events[event.ID] = &clone
	return nil
}

func (m *memStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *e
	return &clone, nil
}

func (m *memStore) ListEvents(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Event
	for _, e := range m.events {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(filter.Search)) {
			continue
		}
		if filter.From != nil && e.EventDate.Before(*filter.From) {
			continue
		}
		if filter.Until != nil && !e.EventDate.Before(*filter.Until) {
			continue
		}
		if filter.Completed != nil && e.Completed != *filter.Completed {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (m *memStore) UpdateEvent(ctx context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[event.ID]; !ok {
		return store.ErrNotFound
	}
	clone := *event
	m.events[event.ID] = &clone
	return nil
}

func (m *memStore) DeleteEvent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memStore) Close() error { return nil }

// newTestServer builds a CalendarServer with a fixed clock and no reminders.
func newTestServer(st store.Store) *CalendarServer {
	a := assistant.New(st, nil, nil, assistant.WithClock(fixedClock))
	s := New(st, a, nil, nil, nil)
	s.now = fixedClock
	return s
}

func seedEvent(st store.Store, id, title string, at time.Time, cat model.Category) *model.Event {
	e := &model.Event{
		ID:        id,
		Title:     title,
		EventDate: at,
		Category:  cat,
		CreatedAt: at,
		UpdatedAt: at,
	}
	_ = st.CreateEvent(context.Background(), e)
	return e
}
