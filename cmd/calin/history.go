package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <term>...",
	Short: "Search past events",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := strings.Join(args, " ")

		matches, err := cl.History(context.Background(), term)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(matches)
			return nil
		}
		if len(matches) == 0 {
			fmt.Printf("no past events matching %q\n", term)
			return nil
		}
		printEventListTable(matches, len(matches))
		return nil
	},
}
