package main

import (
	"context"
	"fmt"
	"os"

	"github.com/giubellucas/calendario-inteligente/internal/ui"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show proactive suggestions for the rest of the day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		suggestions, err := cl.Suggestions(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(suggestions)
			return nil
		}
		if len(suggestions) == 0 {
			fmt.Println(ui.RenderMuted("nothing coming up today"))
			return nil
		}
		for _, s := range suggestions {
			fmt.Println(ui.RenderAccent("* ") + s)
		}
		return nil
	},
}
