package model

import "time"

// Urgency classifies how close an event is.
type Urgency string

const (
	UrgencyUrgent  Urgency = "urgent"
	UrgencySoon    Urgency = "soon"
	UrgencyDistant Urgency = "distant"
)

// Fixed classification thresholds.
const (
	urgentWindow = time.Hour
	soonWindow   = 24 * time.Hour
)

// String returns the string representation of the urgency.
func (u Urgency) String() string {
	return string(u)
}

// IsValid checks whether the urgency is a known value.
func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyUrgent, UrgencySoon, UrgencyDistant:
		return true
	}
	return false
}

// UrgencyFor classifies the distance between now and eventDate. It is a pure
// function of its arguments; callers recompute it on every read rather than
// trusting a stored value.
func UrgencyFor(eventDate, now time.Time) Urgency {
	diff := eventDate.Sub(now)
	switch {
	case diff < urgentWindow:
		return UrgencyUrgent
	case diff < soonWindow:
		return UrgencySoon
	}
	return UrgencyDistant
}
