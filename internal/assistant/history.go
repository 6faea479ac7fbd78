package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// SearchPast returns past events whose title contains term, most recent
// first. The comparison is a case-insensitive substring match of the whole
// phrase, never per-word; an empty term matches every past event.
func (a *Assistant) SearchPast(ctx context.Context, term string, now time.Time) ([]*model.Event, error) {
	past, err := a.store.ListEvents(ctx, model.EventFilter{Until: &now})
	if err != nil {
		return nil, fmt.Errorf("searching history: %w", err)
	}

	lowerTerm := strings.ToLower(strings.TrimSpace(term))
	var matches []*model.Event
	for _, e := range past {
		if strings.Contains(strings.ToLower(e.Title), lowerTerm) {
			matches = append(matches, e)
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].EventDate.After(matches[j].EventDate)
	})
	return matches, nil
}
