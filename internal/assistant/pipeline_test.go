package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/extract"
	"github.com/giubellucas/calendario-inteligente/internal/model"
)

func TestHandleMessage_BlankInput(t *testing.T) {
	a := newTestAssistant(newMemStore())

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := a.HandleMessage(context.Background(), input)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("HandleMessage(%q) err = %v, want ErrInvalidInput", input, err)
		}
	}
}

func TestHandleMessage_LocalParserCreatesEvent(t *testing.T) {
	a := newTestAssistant(newMemStore())

	out, err := a.HandleMessage(context.Background(), "Dentist tomorrow at 2pm")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if out.Kind != OutcomeEventCreated {
		t.Fatalf("kind = %q, want event_created", out.Kind)
	}
	want := time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)
	if !out.Event.EventDate.Equal(want) {
		t.Errorf("event date = %v, want %v", out.Event.EventDate, want)
	}
	if out.Event.Title != "Dentist" {
		t.Errorf("title = %q", out.Event.Title)
	}
	if out.Event.Category != model.CategoryHealth {
		t.Errorf("category = %q, want health", out.Event.Category)
	}
}

func TestHandleMessage_RemoteExtractorUsed(t *testing.T) {
	at := testNow.Add(2 * time.Hour)
	ext := &fakeExtractor{cand: &model.Candidate{
		Title:  "Board meeting",
		Date:   &at,
		Intent: model.IntentCreateEvent,
	}}
	a := newTestAssistant(newMemStore(), WithExtractor(ext))

	out, err := a.HandleMessage(context.Background(), "schedule the board meeting")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if out.Event == nil || out.Event.Title != "Board meeting" {
		t.Errorf("event = %+v", out.Event)
	}
}

func TestHandleMessage_FallsBackOnOutage(t *testing.T) {
	for _, kind := range []extract.Kind{
		extract.KindUnavailable, extract.KindAuth, extract.KindRateLimited,
	} {
		t.Run(string(kind), func(t *testing.T) {
			ext := &fakeExtractor{err: &extract.Error{Kind: kind, Msg: "down"}}
			a := newTestAssistant(newMemStore(), WithExtractor(ext))

			out, err := a.HandleMessage(context.Background(), "Dentist tomorrow at 2pm")
			if err != nil {
				t.Fatalf("HandleMessage: %v", err)
			}
			if out.Kind != OutcomeEventCreated {
				t.Errorf("kind = %q, want event from local fallback", out.Kind)
			}
		})
	}
}

func TestHandleMessage_PropagatesHardFailures(t *testing.T) {
	for _, kind := range []extract.Kind{
		extract.KindMissingTitle, extract.KindMalformed, extract.KindCanceled,
	} {
		t.Run(string(kind), func(t *testing.T) {
			ext := &fakeExtractor{err: &extract.Error{Kind: kind, Msg: "bad"}}
			a := newTestAssistant(newMemStore(), WithExtractor(ext))

			_, err := a.HandleMessage(context.Background(), "Dentist tomorrow at 2pm")
			if extract.KindOf(err) != kind {
				t.Errorf("err = %v, want kind %q", err, kind)
			}
		})
	}
}

func TestHandleMessage_ChatWithoutDate(t *testing.T) {
	a := newTestAssistant(newMemStore())

	out, err := a.HandleMessage(context.Background(), "nice weather lately")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if out.Kind != OutcomeChat {
		t.Errorf("kind = %q, want chat", out.Kind)
	}
	if out.Event != nil {
		t.Errorf("event = %+v, want none", out.Event)
	}
}

func TestHandleMessage_HelpCommand(t *testing.T) {
	a := newTestAssistant(newMemStore())

	out, err := a.HandleMessage(context.Background(), "help")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if out.Kind != OutcomeHelp {
		t.Errorf("kind = %q, want help", out.Kind)
	}
	if !strings.Contains(out.Message, "Dentist tomorrow") {
		t.Errorf("help message = %q", out.Message)
	}
}

func TestHandleMessage_StatsCommand(t *testing.T) {
	st := newMemStore()
	seedEvent(st, "ev-1", "Gym", time.Date(2023, 12, 26, 7, 0, 0, 0, time.UTC), model.CategoryFitness)
	seedEvent(st, "ev-2", "Gym", time.Date(2023, 12, 19, 7, 0, 0, 0, time.UTC), model.CategoryFitness)
	a := newTestAssistant(st)

	out, err := a.HandleMessage(context.Background(), "show my stats")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if out.Kind != OutcomeStats {
		t.Fatalf("kind = %q, want stats", out.Kind)
	}
	if out.Patterns.BusiestWeekday != time.Tuesday {
		t.Errorf("busiest weekday = %v, want Tuesday", out.Patterns.BusiestWeekday)
	}
	if out.Patterns.TopCategory != model.CategoryFitness {
		t.Errorf("top category = %q", out.Patterns.TopCategory)
	}
}

func TestHandleMessage_HistoricalQuery(t *testing.T) {
	st := newMemStore()
	seedEvent(st, "ev-1", "Dentist checkup", time.Date(2023, 11, 10, 9, 0, 0, 0, time.UTC), model.CategoryHealth)
	seedEvent(st, "ev-2", "Dentist cleaning", time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC), model.CategoryHealth)
	// Scheduled, not history: must never appear in the matches.
	seedEvent(st, "ev-3", "Dentist follow-up", testNow.Add(24*time.Hour), model.CategoryHealth)
	a := newTestAssistant(st)

	out, err := a.HandleMessage(context.Background(), "when was the last time I went to the dentist?")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if out.Kind != OutcomeHistory {
		t.Fatalf("kind = %q, want history", out.Kind)
	}
	if len(out.Matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(out.Matches))
	}
	if out.Matches[0].ID != "ev-1" {
		t.Errorf("first match = %q, want most recent", out.Matches[0].ID)
	}
	if !strings.Contains(out.Message, "Dentist checkup") {
		t.Errorf("message = %q", out.Message)
	}
}

func TestHandleMessage_HistoricalQueryNoMatches(t *testing.T) {
	a := newTestAssistant(newMemStore())

	out, err := a.HandleMessage(context.Background(), "when was the last time I went skiing?")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if out.Kind != OutcomeHistory || len(out.Matches) != 0 {
		t.Errorf("out = %+v, want empty history", out)
	}
	if !strings.Contains(out.Message, "nothing") {
		t.Errorf("message = %q", out.Message)
	}
}

func TestHandleMessage_ConflictMentionedInMessage(t *testing.T) {
	st := newMemStore()
	seedEvent(st, "ev-old", "Standup",
		time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC), model.CategoryWork)
	a := newTestAssistant(st)

	out, err := a.HandleMessage(context.Background(), "Dentist tomorrow at 2pm")
	if err != nil {
		t.Fatalf("HandleMessage: %v", err)
	}
	if out.Conflict == nil || out.Conflict.ID != "ev-old" {
		t.Fatalf("conflict = %+v", out.Conflict)
	}
	if !strings.Contains(out.Message, "Standup") {
		t.Errorf("message = %q, want conflict mention", out.Message)
	}
}
