package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/events"
	"github.com/giubellucas/calendario-inteligente/internal/idgen"
	"github.com/giubellucas/calendario-inteligente/internal/model"
	"github.com/giubellucas/calendario-inteligente/internal/store"
)

// createEventInput is the body for POST /v1/events: a direct event creation
// bypassing the chat pipeline.
type createEventInput struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	EventDate    time.Time `json:"event_date"`
	Category     string    `json:"category"`
	Priority     string    `json:"priority"`
	Location     string    `json:"location"`
	Participants []string  `json:"participants"`
}

// handleCreateEvent handles POST /v1/events.
func (s *CalendarServer) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var in createEventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	now := s.now()
	at := in.EventDate
	if at.IsZero() {
		at = now
	}

	id, err := idgen.Generate()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate id")
		return
	}
	event := &model.Event{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		EventDate:    at,
		Urgency:      model.UrgencyFor(at, now),
		Category:     model.Category(in.Category),
		Priority:     model.Priority(in.Priority),
		Location:     in.Location,
		Participants: in.Participants,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateEvent(r.Context(), event); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	if s.reminders != nil {
		s.reminders.Arm(event.ID, event.Title, event.EventDate)
	}
	s.publishAndBroadcast(r.Context(), events.TopicEventCreated, events.EventCreated{Event: event})

	writeJSON(w, http.StatusCreated, event)
}

// handleListEvents handles GET /v1/events. Results are ordered by proximity
// to now and urgency is recomputed on the way out.
func (s *CalendarServer) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.EventFilter{
		Category: model.Category(q.Get("category")),
		Search:   q.Get("search"),
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		filter.From = &t
	}
	if v := q.Get("until"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid until timestamp")
			return
		}
		filter.Until = &t
	}
	if v := q.Get("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid completed flag")
			return
		}
		filter.Completed = &b
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	list, err := s.store.ListEvents(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	now := s.now()
	for _, e := range list {
		e.Urgency = model.UrgencyFor(e.EventDate, now)
	}
	model.SortByProximity(list, now)

	// Ensure events is never null in JSON output.
	if list == nil {
		list = []*model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": list,
		"total":  len(list),
	})
}

// handleGetEvent handles GET /v1/events/{id}.
func (s *CalendarServer) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	event, err := s.store.GetEvent(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return
	}

	event.Urgency = model.UrgencyFor(event.EventDate, s.now())
	writeJSON(w, http.StatusOK, event)
}

// updateEventInput is the body for PATCH /v1/events/{id}. Nil fields are
// left untouched.
type updateEventInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	EventDate   *time.Time `json:"event_date"`
	Notified    *bool      `json:"notified"`
	Completed   *bool      `json:"completed"`
	Category    *string    `json:"category"`
	Priority    *string    `json:"priority"`
	Location    *string    `json:"location"`
}

// handleUpdateEvent handles PATCH /v1/events/{id}.
func (s *CalendarServer) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateEventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Title != nil && *in.Title == "" {
		writeError(w, http.StatusBadRequest, "title cannot be empty")
		return
	}

	event, err := s.store.GetEvent(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "event not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get event")
		return
	}

	changes := make(map[string]any)
	moved := false
	if in.Title != nil {
		event.Title = *in.Title
		changes["title"] = *in.Title
	}
	if in.Description != nil {
		event.Description = *in.Description
		changes["description"] = *in.Description
	}
	if in.EventDate != nil {
		event.EventDate = *in.EventDate
		changes["event_date"] = *in.EventDate
		moved = true
	}
	if in.Notified != nil {
		event.Notified = *in.Notified
		changes["notified"] = *in.Notified
	}
	if in.Completed != nil {
		event.Completed = *in.Completed
		changes["completed"] = *in.Completed
	}
	if in.Category != nil {
		event.Category = model.Category(*in.Category)
		changes["category"] = *in.Category
	}
	if in.Priority != nil {
		event.Priority = model.Priority(*in.Priority)
		changes["priority"] = *in.Priority
	}
	if in.Location != nil {
		event.Location = *in.Location
		changes["location"] = *in.Location
	}
	if len(changes) == 0 {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	now := s.now()
	event.UpdatedAt = now
	if err := s.store.UpdateEvent(r.Context(), event); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update event")
		return
	}

	if s.reminders != nil && (moved || in.Title != nil) {
		if event.Completed {
			s.reminders.Cancel(event.ID)
		} else {
			s.reminders.Arm(event.ID, event.Title, event.EventDate)
		}
	}
	if s.reminders != nil && in.Completed != nil && *in.Completed {
		s.reminders.Cancel(event.ID)
	}

	s.publishAndBroadcast(r.Context(), events.TopicEventUpdated, events.EventUpdated{
		Event:   event,
		Changes: changes,
	})

	event.Urgency = model.UrgencyFor(event.EventDate, now)
	writeJSON(w, http.StatusOK, event)
}

// handleDeleteEvent handles DELETE /v1/events/{id}.
func (s *CalendarServer) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.DeleteEvent(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete event")
		return
	}

	if s.reminders != nil {
		s.reminders.Cancel(id)
	}
	s.publishAndBroadcast(r.Context(), events.TopicEventDeleted, events.EventDeleted{EventID: id})

	w.WriteHeader(http.StatusNoContent)
}
