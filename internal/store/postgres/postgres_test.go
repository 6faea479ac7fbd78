package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/giubellucas/calendario-inteligente/internal/model"
	"github.com/giubellucas/calendario-inteligente/internal/store"
)

// newMockDB creates a sqlmock database with automatic cleanup and
// expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

// eventRowColumns is the column list for scanEvent results.
var eventRowColumns = []string{
	"id", "title", "description", "event_date", "notified", "completed",
	"category", "priority", "location", "participants", "entities", "keywords",
	"intent", "sentiment", "created_at", "updated_at",
}

var testDate = time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)

func eventRow(id, title string) *sqlmock.Rows {
	return sqlmock.NewRows(eventRowColumns).AddRow(
		id, title, "desc", testDate, false, false,
		"health", "medium", "Clinic", []byte(`["Maria"]`), nil, nil,
		"create_event", "neutral", testDate, testDate,
	)
}

func TestCreateEvent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO events").
		WithArgs(
			"ev-1", "Dentist", "desc", testDate, false, false,
			"health", "medium", "Clinic", []byte(`["Maria"]`), []byte(nil), []byte(nil),
			"create_event", "neutral", testDate, testDate,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	event := &model.Event{
		ID:           "ev-1",
		Title:        "Dentist",
		Description:  "desc",
		EventDate:    testDate,
		Category:     model.CategoryHealth,
		Priority:     model.PriorityMedium,
		Location:     "Clinic",
		Participants: []string{"Maria"},
		Intent:       model.IntentCreateEvent,
		Sentiment:    model.SentimentNeutral,
		CreatedAt:    testDate,
		UpdatedAt:    testDate,
	}
	if err := queryCreateEvent(context.Background(), db, event); err != nil {
		t.Fatalf("queryCreateEvent: %v", err)
	}
}

func TestGetEvent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM events WHERE id =").
		WithArgs("ev-1").
		WillReturnRows(eventRow("ev-1", "Dentist"))

	e, err := queryGetEvent(context.Background(), db, "ev-1")
	if err != nil {
		t.Fatalf("queryGetEvent: %v", err)
	}
	if e.Title != "Dentist" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Category != model.CategoryHealth {
		t.Errorf("category = %q", e.Category)
	}
	if len(e.Participants) != 1 || e.Participants[0] != "Maria" {
		t.Errorf("participants = %v", e.Participants)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM events WHERE id =").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := queryGetEvent(context.Background(), db, "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListEvents_Filters(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT (.+) FROM events WHERE category = (.+) AND title ILIKE (.+) ORDER BY event_date").
		WithArgs("health", "%dent%").
		WillReturnRows(eventRow("ev-1", "Dentist"))

	events, err := queryListEvents(context.Background(), db, model.EventFilter{
		Category: model.CategoryHealth,
		Search:   "dent",
	})
	if err != nil {
		t.Fatalf("queryListEvents: %v", err)
	}
	if len(events) != 1 || events[0].ID != "ev-1" {
		t.Errorf("events = %v", events)
	}
}

func TestUpdateEvent_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("UPDATE events SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := queryUpdateEvent(context.Background(), db, &model.Event{ID: "missing", EventDate: testDate})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("DELETE FROM events WHERE id =").
		WithArgs("ev-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryDeleteEvent(context.Background(), db, "ev-1"); err != nil {
		t.Fatalf("queryDeleteEvent: %v", err)
	}
}
