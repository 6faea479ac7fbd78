package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/model"
	"github.com/giubellucas/calendario-inteligente/internal/store"
)

// memStore is a minimal in-memory Store for export tests.
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

func nonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func TestExportJSONL(t *testing.T) {
	ms := newMemStore()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	_ = ms.CreateEvent(context.Background(), &model.Event{ID: "ev-b", Title: "Later", EventDate: now.Add(time.Hour)})
	_ = ms.CreateEvent(context.Background(), &model.Event{ID: "ev-a", Title: "Earlier", EventDate: now})

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), ms, &buf); err != nil {
		t.Fatalf("ExportJSONL: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 events", len(lines))
	}

	var hdr header
	if err := json.Unmarshal([]byte(lines[0]), &hdr); err != nil {
		t.Fatalf("decoding header: %v", err)
	}
	if hdr.Type != "header" || hdr.Version != "1" || hdr.EventCount != 2 {
		t.Errorf("header = %+v", hdr)
	}

	// Events are sorted by ID regardless of store order.
	var rec struct {
		Type string      `json:"type"`
		Data model.Event `json:"data"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("decoding record: %v", err)
	}
	if rec.Type != "event" || rec.Data.ID != "ev-a" {
		t.Errorf("first record = %+v", rec)
	}
}

func TestExportJSONL_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), newMemStore(), &buf); err != nil {
		t.Fatalf("ExportJSONL: %v", err)
	}
	lines := nonEmptyLines(buf.String())
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want header only", len(lines))
	}
}
