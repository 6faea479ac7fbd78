package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/giubellucas/calendario-inteligente/internal/assistant"
	"github.com/giubellucas/calendario-inteligente/internal/extract"
	"github.com/giubellucas/calendario-inteligente/internal/model"
)

type messageInput struct {
	Message string `json:"message"`
}

// handleMessage handles POST /v1/messages: the conversational entry point.
func (s *CalendarServer) handleMessage(w http.ResponseWriter, r *http.Request) {
	var in messageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	out, err := s.assistant.HandleMessage(r.Context(), in.Message)
	if err != nil {
		if errors.Is(err, assistant.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		status, msg := extractionStatus(err)
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

// extractionStatus maps extraction failure kinds onto HTTP statuses, keeping
// the upstream auth and rate-limit signals visible to API clients.
func extractionStatus(err error) (int, string) {
	msg := extract.UserMessage(err)
	switch extract.KindOf(err) {
	case extract.KindAuth:
		return http.StatusUnauthorized, msg
	case extract.KindRateLimited:
		return http.StatusTooManyRequests, msg
	case extract.KindMissingTitle, extract.KindMalformed:
		return http.StatusUnprocessableEntity, msg
	case extract.KindCanceled:
		return http.StatusRequestTimeout, msg
	}
	return http.StatusInternalServerError, msg
}

// handleHistory handles GET /v1/history?q=<term>.
func (s *CalendarServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	matches, err := s.assistant.SearchPast(r.Context(), term, s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search history")
		return
	}
	if matches == nil {
		matches = []*model.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"matches": matches,
		"total":   len(matches),
	})
}

// handleStats handles GET /v1/stats.
func (s *CalendarServer) handleStats(w http.ResponseWriter, r *http.Request) {
	patterns, err := s.assistant.Analyze(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to analyze events")
		return
	}
	writeJSON(w, http.StatusOK, patterns)
}

// handleSuggestions handles GET /v1/suggestions.
func (s *CalendarServer) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.assistant.Suggestions(r.Context(), s.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build suggestions")
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
