package main

import (
	"context"
	"fmt"
	"os"

	"github.com/giubellucas/calendario-inteligente/internal/client"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create an event directly, bypassing the assistant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]

		at, _ := cmd.Flags().GetString("at")
		description, _ := cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")
		priority, _ := cmd.Flags().GetString("priority")
		location, _ := cmd.Flags().GetString("location")
		participants, _ := cmd.Flags().GetStringSlice("with")

		req := &client.CreateEventRequest{
			Title:        title,
			Description:  description,
			Category:     category,
			Priority:     priority,
			Location:     location,
			Participants: participants,
		}
		if at != "" {
			when, err := parseWhen(at)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			req.EventDate = when
		}

		event, err := cl.CreateEvent(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(event)
		} else {
			printEventTable(event)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().String("at", "", "event time (RFC3339, '2006-01-02 15:04', or a date; default now)")
	createCmd.Flags().StringP("description", "d", "", "event description")
	createCmd.Flags().StringP("category", "c", "", "event category")
	createCmd.Flags().StringP("priority", "p", "", "event priority (high, medium, low)")
	createCmd.Flags().StringP("location", "l", "", "event location")
	createCmd.Flags().StringSlice("with", nil, "participants (repeatable)")
}
