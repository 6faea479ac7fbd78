package model

import (
	"errors"
	"time"
)

// ErrMissingTitle is returned when a candidate without a title reaches a
// consumer that requires one.
var ErrMissingTitle = errors.New("candidate has no title")

// Candidate is the ephemeral structured guess produced for a single
// utterance, either by the remote extraction service or by the local
// parser. It is consumed immediately and never persisted.
//
// A nil Date means no temporal anchor was detected. It is never fabricated
// here; downstream policy decides whether to default it.
type Candidate struct {
	Title        string     `json:"title"`
	Date         *time.Time `json:"date,omitempty"`
	Description  string     `json:"description,omitempty"`
	Category     Category   `json:"category,omitempty"`
	Priority     Priority   `json:"priority,omitempty"`
	Location     string     `json:"location,omitempty"`
	Participants []string   `json:"participants,omitempty"`
	Entities     []string   `json:"entities,omitempty"`
	Keywords     []string   `json:"keywords,omitempty"`
	Intent       Intent     `json:"intent,omitempty"`
	Sentiment    Sentiment  `json:"sentiment,omitempty"`
}

// Validate checks the invariants every accepted candidate must hold.
func (c *Candidate) Validate() error {
	if c.Title == "" {
		return ErrMissingTitle
	}
	return nil
}
