// Package nlparse implements the local heuristics that turn free-form text
// into structured event attributes: temporal resolution, category/priority/
// location/participant extraction, and intent detection. Everything here is
// best-effort and total: a failed match is an absent value, never an error.
//
// Keyword tables carry both Portuguese and English forms.
package nlparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// Explicit "at HH" / "às HH" style hour, with optional am/pm.
	atHourPattern = regexp.MustCompile(`(?:^|\s)(?:at|às)\s+(\d{1,2})(?::00|h)?\s*(am|pm)?`)

	// Unaccented Portuguese "as 14h". Bare "as" also reads as ordinary
	// English ("invite as 5 people"), so this form requires an hour marker.
	asHourPattern = regexp.MustCompile(`(?:^|\s)as\s+(\d{1,2})(?::00|h)`)

	// Bare "14h" / "14:00" token.
	bareHourPattern = regexp.MustCompile(`(\d{1,2})(?:h(?:$|[^a-z])|:00)`)

	hoursOffsetPattern   = regexp.MustCompile(`(?:em|in)\s+(\d+)\s+(?:horas?|hours?)`)
	minutesOffsetPattern = regexp.MustCompile(`(?:em|in)\s+(\d+)\s+(?:minutos?|minutes?)`)
)

var todayWords = []string{"hoje", "today"}

var tomorrowWords = []string{"amanhã", "amanha", "tomorrow"}

// weekdayNames maps names to time.Weekday. Unaccented Portuguese variants
// are included because users rarely type accents on phones.
var weekdayNames = []struct {
	name string
	day  time.Weekday
}{
	{"domingo", time.Sunday},
	{"sunday", time.Sunday},
	{"segunda", time.Monday},
	{"monday", time.Monday},
	{"terça", time.Tuesday},
	{"terca", time.Tuesday},
	{"tuesday", time.Tuesday},
	{"quarta", time.Wednesday},
	{"wednesday", time.Wednesday},
	{"quinta", time.Thursday},
	{"thursday", time.Thursday},
	{"sexta", time.Friday},
	{"friday", time.Friday},
	{"sábado", time.Saturday},
	{"sabado", time.Saturday},
	{"saturday", time.Saturday},
}

// Resolve converts a relative or absolute time expression in text into a
// concrete timestamp anchored at now. The second return value is false when
// no temporal expression was found; callers must not invent a date.
//
// Strategies are tried in a fixed order and the first match wins:
// today/tomorrow keyword, weekday name, "in N hours/minutes" offset, and
// finally a bare hour mention (rolled to tomorrow if already past).
func Resolve(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)

	if containsAny(lower, todayWords) {
		return anchorDay(now, lower, 0), true
	}

	if containsAny(lower, tomorrowWords) {
		return anchorDay(now, lower, 1), true
	}

	for _, wd := range weekdayNames {
		if !strings.Contains(lower, wd.name) {
			continue
		}
		daysToAdd := int(wd.day - now.Weekday())
		if daysToAdd <= 0 {
			// Naming today's weekday means next week, never today.
			daysToAdd += 7
		}
		return anchorDay(now, lower, daysToAdd), true
	}

	if m := hoursOffsetPattern.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(time.Duration(n) * time.Hour), true
	}
	if m := minutesOffsetPattern.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.Add(time.Duration(n) * time.Minute), true
	}

	if hour, ok := extractHour(lower); ok {
		at := atHour(now, 0, hour)
		if at.Before(now) {
			at = at.AddDate(0, 0, 1)
		}
		return at, true
	}

	return time.Time{}, false
}

// anchorDay anchors now+days, applying the extracted hour when one is
// present and keeping now's clock time otherwise.
func anchorDay(now time.Time, lower string, days int) time.Time {
	if hour, ok := extractHour(lower); ok {
		return atHour(now, days, hour)
	}
	return now.AddDate(0, 0, days)
}

// atHour returns now+days at the given hour with minutes and seconds zeroed.
func atHour(now time.Time, days, hour int) time.Time {
	d := now.AddDate(0, 0, days)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
}

// extractHour finds an hour-of-day mention in the lowercased text. The
// explicit "at HH" form is tried before a bare "14h" token; values outside
// 0-23 are discarded and the search continues.
func extractHour(lower string) (int, bool) {
	for _, m := range atHourPattern.FindAllStringSubmatch(lower, -1) {
		if hour, ok := parseHour(m[1], m[2]); ok {
			return hour, true
		}
	}
	for _, m := range asHourPattern.FindAllStringSubmatch(lower, -1) {
		if hour, ok := parseHour(m[1], ""); ok {
			return hour, true
		}
	}
	for _, m := range bareHourPattern.FindAllStringSubmatch(lower, -1) {
		if hour, ok := parseHour(m[1], ""); ok {
			return hour, true
		}
	}
	return 0, false
}

func parseHour(digits, meridiem string) (int, bool) {
	hour, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	switch meridiem {
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	}
	if hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
