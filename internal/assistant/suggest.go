package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// Suggestions returns short proactive notes about what is coming up: events
// starting within the next hour and the count on today's calendar date.
// The two windows are independent: the hour window crosses midnight, and
// today's count includes events that already happened. Empty when there is
// nothing to say.
func (a *Assistant) Suggestions(ctx context.Context, now time.Time) ([]string, error) {
	all, err := a.store.ListEvents(ctx, model.EventFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	var withinHour, today int
	y, m, d := now.Date()
	for _, e := range all {
		diff := e.EventDate.Sub(now)
		if diff > 0 && diff < time.Hour {
			withinHour++
		}
		ey, em, ed := e.EventDate.In(now.Location()).Date()
		if ey == y && em == m && ed == d {
			today++
		}
	}

	var suggestions []string
	if withinHour > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"You have %s starting within the next hour.", countNoun(withinHour, "event")))
	}
	if today > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"%s scheduled for today.", countNoun(today, "event")))
	}
	return suggestions, nil
}

func countNoun(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
