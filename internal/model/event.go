package model

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Category is the fixed taxonomy used by the local extractor. Categories
// coming back from the model service may fall outside it; those are kept
// as-is and only normalized for analytics.
type Category string

const (
	CategoryHealth   Category = "health"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryStudy    Category = "study"
	CategoryFitness  Category = "fitness"
	CategoryShopping Category = "shopping"
	CategoryGeneral  Category = "general"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks whether the category is one of the fixed taxonomy values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryHealth, CategoryWork, CategoryPersonal, CategoryStudy,
		CategoryFitness, CategoryShopping, CategoryGeneral:
		return true
	}
	return false
}

// Priority is the three-level priority assigned to an event.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid checks whether the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Intent is the fixed intent vocabulary the extraction service classifies
// messages into.
type Intent string

const (
	IntentCreateEvent Intent = "create_event"
	IntentReminder    Intent = "reminder"
	IntentTask        Intent = "task"
	IntentAskQuestion Intent = "ask_question"
	IntentCommand     Intent = "command"
	IntentChat        Intent = "chat"
)

// String returns the string representation of the intent.
func (i Intent) String() string {
	return string(i)
}

// IsValid checks whether the intent is a known value.
func (i Intent) IsValid() bool {
	switch i {
	case IntentCreateEvent, IntentReminder, IntentTask,
		IntentAskQuestion, IntentCommand, IntentChat:
		return true
	}
	return false
}

// Actionable reports whether the intent implies something to put on the
// calendar. Actionable candidates without a date default their anchor to
// "now" instead of being dropped.
func (i Intent) Actionable() bool {
	switch i {
	case IntentCreateEvent, IntentReminder, IntentTask:
		return true
	}
	return false
}

// Sentiment is the fixed sentiment vocabulary.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// String returns the string representation of the sentiment.
func (s Sentiment) String() string {
	return string(s)
}

// IsValid checks whether the sentiment is a known value.
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Event is the persisted calendar record.
//
// Urgency is derived from EventDate and is recomputed on every read; the
// stored value is never treated as authoritative.
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	EventDate    time.Time `json:"event_date"`
	Notified     bool      `json:"notified"`
	Completed    bool      `json:"completed"`
	Urgency      Urgency   `json:"urgency,omitempty"`
	Category     Category  `json:"category,omitempty"`
	Priority     Priority  `json:"priority,omitempty"`
	Location     string    `json:"location,omitempty"`
	Participants []string  `json:"participants,omitempty"`
	Entities     []string  `json:"entities,omitempty"`
	Keywords     []string  `json:"keywords,omitempty"`
	Intent       Intent    `json:"intent,omitempty"`
	Sentiment    Sentiment `json:"sentiment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EventFilter narrows ListEvents results. Zero values mean "no restriction".
type EventFilter struct {
	Category  Category
	Search    string     // case-insensitive substring match on title
	From      *time.Time // event_date >= From
	Until     *time.Time // event_date < Until
	Completed *bool
	Limit     int
	Offset    int
}

// SortByProximity orders events by absolute distance of their date from now,
// nearest first. This is the display order: what is about to happen (or just
// happened) comes before everything else.
func SortByProximity(events []*Event, now time.Time) {
	sort.SliceStable(events, func(i, j int) bool {
		di := math.Abs(float64(events[i].EventDate.Sub(now)))
		dj := math.Abs(float64(events[j].EventDate.Sub(now)))
		return di < dj
	})
}

// TimeUntil renders a humanized distance from now to the event date.
func TimeUntil(eventDate, now time.Time) string {
	diff := eventDate.Sub(now)
	if diff < 0 {
		return "past event"
	}

	minutes := int(diff.Minutes())
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	case days == 1:
		return "in 1 day"
	case hours > 1:
		return fmt.Sprintf("in %d hours", hours)
	case hours == 1:
		return "in 1 hour"
	case minutes > 1:
		return fmt.Sprintf("in %d minutes", minutes)
	case minutes == 1:
		return "in 1 minute"
	}
	return "now"
}
