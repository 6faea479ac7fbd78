package nlparse

import (
	"strings"
	"testing"
)

func TestIsHistoricalQuery(t *testing.T) {
	for _, tc := range []struct {
		text string
		want bool
	}{
		{"When was the last time I went to the dentist?", true},
		{"Quando foi minha última consulta?", true},
		{"have I ever been to a yoga class", true},
		{"show my history", true},
		{"Dentist tomorrow at 2pm", false},
		{"buy milk", false},
	} {
		if got := IsHistoricalQuery(strings.ToLower(tc.text)); got != tc.want {
			t.Errorf("IsHistoricalQuery(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestDetectCommand(t *testing.T) {
	for _, tc := range []struct {
		text string
		want Command
	}{
		{"show me my stats", CommandStats},
		{"mostrar estatísticas", CommandStats},
		{"quero uma análise dos padrões", CommandStats},
		{"help", CommandHelp},
		{"como usar isso?", CommandHelp},
		{"how to use this", CommandHelp},
		{"dentist tomorrow", CommandNone},
		{"", CommandNone},
	} {
		if got := DetectCommand(strings.ToLower(tc.text)); got != tc.want {
			t.Errorf("DetectCommand(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestSearchTerm(t *testing.T) {
	for _, tc := range []struct {
		text string
		want string
	}{
		{"When was the last time I went to the dentist?", "dentist"},
		{"última vez que fui ao dentista?", "dentista"},
		{"have I ever been to a yoga class", "yoga class"},
	} {
		if got := SearchTerm(tc.text); got != tc.want {
			t.Errorf("SearchTerm(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestClassify_Independent(t *testing.T) {
	c := Classify("when was my last statistics class?")
	if !c.IsHistoricalQuery {
		t.Error("expected historical query")
	}
	if c.SpecialCommand != CommandStats {
		t.Errorf("command = %q, want stats", c.SpecialCommand)
	}
}
