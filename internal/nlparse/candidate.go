package nlparse

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// titleBoundary marks where the descriptive part of an utterance ends and
// the temporal/locative tail begins.
var titleBoundary = regexp.MustCompile(`\s+(?:em|às|as|na|no|para|amanhã|amanha|hoje|depois|at|on|in|tomorrow|today|next)\s+`)

// Parse is the local extraction path: it combines the temporal resolver and
// the entity extractor into the same candidate shape the remote adapter
// produces. Used as the fallback when the extraction service is
// unavailable, and independently callable for offline use.
//
// The candidate's intent is create_event when a temporal anchor was found
// and chat otherwise; the local path has no deeper intent model.
func Parse(text string, now time.Time) *model.Candidate {
	attrs := Extract(text)
	cand := &model.Candidate{
		Title:        Title(text),
		Description:  text,
		Category:     attrs.Category,
		Priority:     attrs.Priority,
		Location:     attrs.Location,
		Participants: attrs.Participants,
		Intent:       model.IntentChat,
	}
	if at, ok := Resolve(text, now); ok {
		cand.Date = &at
		cand.Intent = model.IntentCreateEvent
	}
	return cand
}

// Title extracts a display title: the part of the utterance before the
// first temporal marker, with the first letter upcased.
func Title(text string) string {
	title := text
	if loc := titleBoundary.FindStringIndex(text); loc != nil {
		title = text[:loc[0]]
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	runes := []rune(title)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
