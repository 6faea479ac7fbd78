package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/extract"
	"github.com/giubellucas/calendario-inteligente/internal/model"
	"github.com/giubellucas/calendario-inteligente/internal/nlparse"
)

const helpText = `I can schedule things for you from plain messages.

Examples:
  "Dentist tomorrow at 2pm"
  "Meeting with Ana on friday at 10h"
  "Gym in 2 hours"

You can also ask:
  "When was the last time I went to the dentist?"
  "Show my statistics"`

// HandleMessage runs one utterance through the full pipeline and returns a
// displayable outcome. Precedence: blank check, special commands, historical
// queries, then extraction and synthesis.
func (a *Assistant) HandleMessage(ctx context.Context, text string) (*Outcome, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidInput
	}
	now := a.now()

	cls := nlparse.Classify(text)
	switch cls.SpecialCommand {
	case nlparse.CommandStats:
		return a.statsOutcome(ctx)
	case nlparse.CommandHelp:
		return &Outcome{Kind: OutcomeHelp, Message: helpText}, nil
	}

	if cls.IsHistoricalQuery {
		return a.historyOutcome(ctx, text, now)
	}

	cand, err := a.extractCandidate(ctx, text, now)
	if err != nil {
		return nil, err
	}

	if !cand.Intent.Actionable() && cand.Date == nil {
		return &Outcome{
			Kind:    OutcomeChat,
			Message: "Noted. Tell me when something should go on the calendar.",
		}, nil
	}

	event, conflict, err := a.Synthesize(ctx, cand, now)
	if err != nil {
		return nil, err
	}

	out := &Outcome{
		Kind:     OutcomeEventCreated,
		Event:    event,
		Conflict: conflict,
	}
	out.Message = createdMessage(event, conflict, now)
	return out, nil
}

// extractCandidate calls the remote service and falls back to the local
// parser on outage-class failures. Auth failures and rate limits count as
// outages for fallback purposes: the user's message should still produce an
// event. Malformed responses, missing titles, and cancellations propagate.
func (a *Assistant) extractCandidate(ctx context.Context, text string, now time.Time) (*model.Candidate, error) {
	if a.extractor == nil {
		return nlparse.Parse(text, now), nil
	}

	cand, err := a.extractor.Extract(ctx, text, now)
	if err == nil {
		return cand, nil
	}

	switch extract.KindOf(err) {
	case extract.KindUnavailable, extract.KindAuth, extract.KindRateLimited:
		a.logger.Warn("extraction service failed, using local parser", "error", err)
		return nlparse.Parse(text, now), nil
	}
	return nil, err
}

func (a *Assistant) statsOutcome(ctx context.Context) (*Outcome, error) {
	patterns, err := a.Analyze(ctx)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Kind:     OutcomeStats,
		Patterns: patterns,
		Message: fmt.Sprintf(
			"You are busiest on %s around %02d:00. Most of your events are %s.",
			patterns.BusiestWeekday, patterns.BusiestHour, patterns.TopCategory,
		),
	}, nil
}

func (a *Assistant) historyOutcome(ctx context.Context, text string, now time.Time) (*Outcome, error) {
	term := nlparse.SearchTerm(text)
	matches, err := a.SearchPast(ctx, term, now)
	if err != nil {
		return nil, err
	}

	out := &Outcome{Kind: OutcomeHistory, Matches: matches}
	if len(matches) == 0 {
		out.Message = fmt.Sprintf("I found nothing in your history matching %q.", term)
		return out, nil
	}

	last := matches[0]
	out.Message = fmt.Sprintf(
		"Last time was %q on %s. %d matching record(s) total.",
		last.Title, last.EventDate.Format("2006-01-02 15:04"), len(matches),
	)
	return out, nil
}

func createdMessage(event *model.Event, conflict *model.Event, now time.Time) string {
	msg := fmt.Sprintf("Scheduled %q for %s (%s).",
		event.Title, event.EventDate.Format("2006-01-02 15:04"), model.TimeUntil(event.EventDate, now))
	if event.Urgency == model.UrgencyUrgent {
		msg += " This is coming up within the hour."
	}
	if conflict != nil {
		msg += fmt.Sprintf(" Heads up: it overlaps with %q at %s.",
			conflict.Title, conflict.EventDate.Format("15:04"))
	}
	return msg
}
