package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/assistant"
	"github.com/giubellucas/calendario-inteligente/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, "")
}

func TestSendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/messages" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["message"] != "Dentist tomorrow at 2pm" {
			t.Errorf("message = %q", body["message"])
		}
		_ = json.NewEncoder(w).Encode(assistant.Outcome{
			Kind:    assistant.OutcomeEventCreated,
			Message: "Scheduled.",
			Event:   &model.Event{ID: "ev-1", Title: "Dentist"},
		})
	})

	out, err := c.SendMessage(context.Background(), "Dentist tomorrow at 2pm")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if out.Kind != assistant.OutcomeEventCreated || out.Event.ID != "ev-1" {
		t.Errorf("out = %+v", out)
	}
}

func TestListEvents_QueryParams(t *testing.T) {
	completed := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("category") != "health" || q.Get("search") != "dent" {
			t.Errorf("query = %v", q)
		}
		if q.Get("completed") != "false" || q.Get("limit") != "5" {
			t.Errorf("query = %v", q)
		}
		_ = json.NewEncoder(w).Encode(ListEventsResponse{
			Events: []*model.Event{{ID: "ev-1"}},
			Total:  1,
		})
	})

	resp, err := c.ListEvents(context.Background(), &ListEventsRequest{
		Category:  "health",
		Search:    "dent",
		Completed: &completed,
		Limit:     5,
	})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if resp.Total != 1 || resp.Events[0].ID != "ev-1" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "event not found"})
	})

	_, err := c.GetEvent(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "event not found" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestUpdateEvent_PartialBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if _, ok := body["title"]; !ok {
			t.Error("title missing from body")
		}
		if _, ok := body["event_date"]; ok {
			t.Error("unset field serialized")
		}
		_ = json.NewEncoder(w).Encode(model.Event{ID: "ev-1", Title: "Renamed"})
	})

	title := "Renamed"
	got, err := c.UpdateEvent(context.Background(), "ev-1", &UpdateEventRequest{Title: &title})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestDeleteEvent_NoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteEvent(context.Background(), "ev-1"); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
}

func TestHistory(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "dentist" {
			t.Errorf("q = %q", r.URL.Query().Get("q"))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"matches": []*model.Event{{ID: "ev-1", Title: "Dentist checkup"}},
			"total":   1,
		})
	})

	matches, err := c.History(context.Background(), "dentist")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(matches) != 1 || matches[0].Title != "Dentist checkup" {
		t.Errorf("matches = %+v", matches)
	}
}

func TestStats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(assistant.Patterns{
			BusiestWeekday: time.Tuesday,
			BusiestHour:    7,
			TopCategory:    model.CategoryFitness,
			TotalEvents:    12,
		})
	})

	p, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if p.BusiestWeekday != time.Tuesday || p.TotalEvents != 12 {
		t.Errorf("patterns = %+v", p)
	}
}

func TestAuthHeaderSet(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL, "secret")
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}
