package nlparse

import (
	"strings"
)

// Command is a special command detected locally, without calling the
// extraction service.
type Command string

const (
	CommandStats Command = "stats"
	CommandHelp  Command = "help"
	CommandNone  Command = "none"
)

var historicalPhrases = []string{
	"quando foi", "última vez", "ultima vez", "já fui", "ja fui", "já tive", "ja tive",
	"histórico", "historico", "passado",
	"when was", "last time", "have i ever", "history", "in the past",
}

var statsKeywords = []string{
	"estatística", "estatistica", "análise", "analise", "padrões", "padroes",
	"statistics", "stats", "analysis", "patterns",
}

var helpKeywords = []string{
	"ajuda", "como usar", "help", "how to use", "how do i use",
}

// Classification is the result of the cheap local checks that can
// short-circuit model-based extraction.
type Classification struct {
	IsHistoricalQuery bool
	SpecialCommand    Command
}

// Classify runs the local substring checks over text. The checks are
// independent of model-based intent; the pipeline decides precedence.
func Classify(text string) Classification {
	lower := strings.ToLower(text)
	return Classification{
		IsHistoricalQuery: IsHistoricalQuery(lower),
		SpecialCommand:    DetectCommand(lower),
	}
}

// IsHistoricalQuery reports whether lowercased text asks about a past event
// rather than requesting a new one.
func IsHistoricalQuery(lower string) bool {
	return containsAny(lower, historicalPhrases)
}

// DetectCommand checks for the statistics and help commands.
func DetectCommand(lower string) Command {
	if containsAny(lower, statsKeywords) {
		return CommandStats
	}
	if containsAny(lower, helpKeywords) {
		return CommandHelp
	}
	return CommandNone
}

// searchStopwords are filler tokens stripped from historical queries along
// with the query phrases themselves.
var searchStopwords = map[string]bool{
	"a": true, "o": true, "ao": true, "à": true, "no": true, "na": true,
	"que": true, "eu": true, "foi": true, "fui": true, "tive": true,
	"the": true, "to": true, "at": true, "i": true, "my": true, "did": true,
	"go": true, "went": true, "gone": true, "been": true, "was": true,
}

// SearchTerm strips known query phrases, punctuation, and filler words from
// a historical query, leaving a phrase that is matched downstream as a
// plain substring of event titles, not semantically.
func SearchTerm(text string) string {
	lower := strings.ToLower(text)
	for _, phrase := range historicalPhrases {
		lower = strings.ReplaceAll(lower, phrase, " ")
	}
	lower = strings.Map(func(r rune) rune {
		switch r {
		case '?', '!', '.', ',', ';':
			return ' '
		}
		return r
	}, lower)

	var kept []string
	for _, tok := range strings.Fields(lower) {
		if !searchStopwords[tok] {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}
