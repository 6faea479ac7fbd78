package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// Patterns summarizes scheduling habits across the whole event history.
type Patterns struct {
	BusiestWeekday time.Weekday   `json:"busiest_weekday"`
	BusiestHour    int            `json:"busiest_hour"`
	TopCategory    model.Category `json:"top_category"`
	TotalEvents    int            `json:"total_events"`
}

// Analyze computes frequency patterns over every stored event. With no
// events the zero pattern is returned (Sunday, hour 0, general).
func (a *Assistant) Analyze(ctx context.Context) (*Patterns, error) {
	all, err := a.store.ListEvents(ctx, model.EventFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading events for analysis: %w", err)
	}

	p := &Patterns{TopCategory: model.CategoryGeneral, TotalEvents: len(all)}
	if len(all) == 0 {
		return p, nil
	}

	weekdays := make(map[time.Weekday]int)
	hours := make(map[int]int)
	categories := make(map[model.Category]int)
	for _, e := range all {
		weekdays[e.EventDate.Weekday()]++
		hours[e.EventDate.Hour()]++
		cat := e.Category
		if !cat.IsValid() || cat == "" {
			cat = model.CategoryGeneral
		}
		categories[cat]++
	}

	p.BusiestWeekday = maxWeekday(weekdays)
	p.BusiestHour = maxHour(hours)
	p.TopCategory = maxCategory(categories)
	return p, nil
}

// Ties break toward the lowest key so results are deterministic.

func maxWeekday(counts map[time.Weekday]int) time.Weekday {
	best, bestCount := time.Sunday, -1
	for d := time.Sunday; d <= time.Saturday; d++ {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}
	return best
}

func maxHour(counts map[int]int) int {
	best, bestCount := 0, -1
	for h := 0; h < 24; h++ {
		if counts[h] > bestCount {
			best, bestCount = h, counts[h]
		}
	}
	return best
}

func maxCategory(counts map[model.Category]int) model.Category {
	ordered := []model.Category{
		model.CategoryFitness, model.CategoryGeneral, model.CategoryHealth,
		model.CategoryPersonal, model.CategoryShopping, model.CategoryStudy,
		model.CategoryWork,
	}
	best, bestCount := model.CategoryGeneral, -1
	for _, c := range ordered {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}
