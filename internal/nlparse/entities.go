package nlparse

import (
	"regexp"
	"strings"

	"github.com/giubellucas/calendario-inteligente/internal/model"
)

// categoryKeywords is the fixed taxonomy, checked in order; the first
// category with a matching keyword wins.
var categoryKeywords = []struct {
	category model.Category
	keywords []string
}{
	{model.CategoryHealth, []string{
		"médico", "medico", "dentista", "consulta", "exame", "hospital", "clínica", "clinica",
		"doctor", "dentist", "checkup", "clinic",
	}},
	{model.CategoryWork, []string{
		"reunião", "reuniao", "meeting", "trabalho", "projeto", "apresentação", "apresentacao",
		"work", "project", "presentation", "standup",
	}},
	{model.CategoryPersonal, []string{
		"aniversário", "aniversario", "festa", "encontro", "jantar", "almoço", "almoco",
		"birthday", "party", "dinner", "lunch",
	}},
	{model.CategoryStudy, []string{
		"aula", "prova", "estudo", "curso", "faculdade",
		"class", "exam", "study", "course", "college", "lecture",
	}},
	{model.CategoryFitness, []string{
		"academia", "treino", "exercício", "exercicio", "corrida", "yoga",
		"gym", "workout", "exercise",
	}},
	{model.CategoryShopping, []string{
		"comprar", "mercado", "shopping", "loja",
		"buy", "groceries", "mall",
	}},
}

var highPriorityMarkers = []string{
	"urgente", "importante", "crítico", "critico", "emergência", "emergencia",
	"urgent", "important", "critical", "emergency", "asap",
}

var lowPriorityMarkers = []string{
	"talvez", "se possível", "se possivel", "quando der",
	"maybe", "if possible", "no rush", "whenever",
}

var (
	// "at/in/on <Capitalized phrase>": a run of capitalized words after a
	// locative preposition.
	locationPattern = regexp.MustCompile(`(?:^|\s)(?:em|no|na|at|in|on)\s+(\p{Lu}[\p{L}]*(?:\s+\p{Lu}[\p{L}]*)*)`)

	// "with <Name> (and <Name>)*"
	participantsPattern = regexp.MustCompile(`(?:^|\s)(?:com|with)\s+(\p{Lu}[\p{L}]*(?:\s+(?:e|and)\s+\p{Lu}[\p{L}]*)*)`)
	participantsSplit   = regexp.MustCompile(`\s+(?:e|and)\s+`)
)

// Attributes is the result of local entity extraction. Every field is an
// independent best-effort guess; absence is valid.
type Attributes struct {
	Category     model.Category
	Priority     model.Priority
	Location     string
	Participants []string
}

// Extract runs the keyword and pattern heuristics over text. It never fails:
// unmatched fields come back as defaults (general category, medium priority)
// or empty.
func Extract(text string) Attributes {
	lower := strings.ToLower(text)
	return Attributes{
		Category:     DetectCategory(lower),
		Priority:     DetectPriority(lower),
		Location:     ExtractLocation(text),
		Participants: ExtractParticipants(text),
	}
}

// DetectCategory classifies lowercased text into the fixed taxonomy,
// defaulting to general. It is total: every input yields exactly one
// category.
func DetectCategory(lower string) model.Category {
	for _, entry := range categoryKeywords {
		if containsAny(lower, entry.keywords) {
			return entry.category
		}
	}
	return model.CategoryGeneral
}

// DetectPriority classifies lowercased text into high, medium, or low.
// High markers take precedence when both kinds appear.
func DetectPriority(lower string) model.Priority {
	if containsAny(lower, highPriorityMarkers) {
		return model.PriorityHigh
	}
	if containsAny(lower, lowPriorityMarkers) {
		return model.PriorityLow
	}
	return model.PriorityMedium
}

// ExtractLocation captures a capitalized phrase following a locative
// preposition, or "" when none is present. It matches against the original
// casing of the text.
func ExtractLocation(text string) string {
	m := locationPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ExtractParticipants captures names after "with", split on the
// conjunction. Returns nil when no participant phrase is present.
func ExtractParticipants(text string) []string {
	m := participantsPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	parts := participantsSplit.Split(m[1], -1)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
