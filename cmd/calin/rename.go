package main

import (
	"context"
	"fmt"
	"os"

	"github.com/giubellucas/calendario-inteligente/internal/client"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <id> <title>",
	Short: "Rename an event",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[1]

		event, err := cl.UpdateEvent(context.Background(), args[0], &client.UpdateEventRequest{
			Title: &title,
		})
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
