package main

import (
	"context"
	"fmt"
	"os"

	"github.com/giubellucas/calendario-inteligente/internal/client"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List events, nearest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		search, _ := cmd.Flags().GetString("search")
		from, _ := cmd.Flags().GetString("from")
		until, _ := cmd.Flags().GetString("until")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		req := &client.ListEventsRequest{
			Category: category,
			Search:   search,
			Limit:    limit,
			Offset:   offset,
		}
		if from != "" {
			t, err := parseWhen(from)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			req.From = &t
		}
		if until != "" {
			t, err := parseWhen(until)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			req.Until = &t
		}
		if cmd.Flags().Changed("completed") {
			completed, _ := cmd.Flags().GetBool("completed")
			req.Completed = &completed
		}

		resp, err := cl.ListEvents(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp.Events)
		} else {
			printEventListTable(resp.Events, resp.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("category", "c", "", "filter by category")
	listCmd.Flags().StringP("search", "s", "", "filter by title substring")
	listCmd.Flags().String("from", "", "only events at or after this time")
	listCmd.Flags().String("until", "", "only events before this time")
	listCmd.Flags().Bool("completed", false, "filter by completion state")
	listCmd.Flags().Int("limit", 20, "maximum number of events to return")
	listCmd.Flags().Int("offset", 0, "offset for pagination")
}
