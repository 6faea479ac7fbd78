package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/giubellucas/calendario-inteligente/internal/assistant"
	"github.com/giubellucas/calendario-inteligente/internal/model"
	"github.com/giubellucas/calendario-inteligente/internal/ui"
)

const dateLayout = "2006-01-02 15:04"

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printEventTable(event *model.Event) {
	fmt.Printf("ID:           %s\n", event.ID)
	fmt.Printf("Title:        %s\n", ui.RenderAccent(event.Title))
	fmt.Printf("Date:         %s (%s)\n",
		event.EventDate.Local().Format(dateLayout),
		ui.RenderUrgency(model.TimeUntil(event.EventDate, time.Now()), event.Urgency))
	fmt.Printf("Category:     %s\n", event.Category)
	fmt.Printf("Priority:     %s\n", ui.RenderPriority(event.Priority.String(), event.Priority))
	fmt.Printf("Completed:    %t\n", event.Completed)
	if event.Description != "" {
		fmt.Printf("Description:  %s\n", event.Description)
	}
	if event.Location != "" {
		fmt.Printf("Location:     %s\n", event.Location)
	}
	if len(event.Participants) > 0 {
		fmt.Printf("Participants: %s\n", strings.Join(event.Participants, ", "))
	}
	if len(event.Keywords) > 0 {
		fmt.Printf("Keywords:     %s\n", ui.RenderMuted(strings.Join(event.Keywords, ", ")))
	}
	if !event.CreatedAt.IsZero() {
		fmt.Printf("Created At:   %s\n", event.CreatedAt.Local().Format(dateLayout))
	}
	if !event.UpdatedAt.IsZero() {
		fmt.Printf("Updated At:   %s\n", event.UpdatedAt.Local().Format(dateLayout))
	}
}

func printEventListTable(events []*model.Event, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tWHEN\tCATEGORY\tPRIORITY\tTITLE")
	now := time.Now()
	for _, e := range events {
		title := e.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.EventDate.Local().Format(dateLayout),
			ui.RenderUrgency(model.TimeUntil(e.EventDate, now), e.Urgency),
			e.Category,
			ui.RenderPriority(e.Priority.String(), e.Priority),
			title,
		)
	}
	w.Flush()
	fmt.Printf("\n%d events (%d total)\n", len(events), total)
}

// printOutcome renders the assistant's answer for one message. The reply text
// always comes first; structured payloads follow when present.
func printOutcome(out *assistant.Outcome) {
	if jsonOutput {
		printJSON(out)
		return
	}

	fmt.Println(ui.RenderOK(out.Message))

	switch out.Kind {
	case assistant.OutcomeEventCreated:
		if out.Event != nil {
			fmt.Println()
			printEventTable(out.Event)
		}
	case assistant.OutcomeHistory:
		if len(out.Matches) > 0 {
			fmt.Println()
			printEventListTable(out.Matches, len(out.Matches))
		}
	case assistant.OutcomeStats:
		if out.Patterns != nil {
			fmt.Println()
			printPatternsTable(out.Patterns)
		}
	}
}

func printPatternsTable(p *assistant.Patterns) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Busiest weekday:\t%s\n", p.BusiestWeekday)
	fmt.Fprintf(w, "Busiest hour:\t%02d:00\n", p.BusiestHour)
	fmt.Fprintf(w, "Top category:\t%s\n", p.TopCategory)
	fmt.Fprintf(w, "Total events:\t%d\n", p.TotalEvents)
	w.Flush()
}

// parseWhen accepts RFC 3339, "2006-01-02 15:04", or a bare date. Times
// without a zone are interpreted in the local zone.
func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q (want RFC3339, %q, or a date)", s, dateLayout)
}
