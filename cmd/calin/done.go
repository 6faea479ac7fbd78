package main

import (
	"context"
	"fmt"
	"os"

	"github.com/giubellucas/calendario-inteligente/internal/client"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark an event as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		completed := true
		if undo, _ := cmd.Flags().GetBool("undo"); undo {
			completed = false
		}

		event, err := cl.UpdateEvent(context.Background(), args[0], &client.UpdateEventRequest{
			Completed: &completed,
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

func init() {
	doneCmd.Flags().Bool("undo", false, "mark as not completed instead")
}
