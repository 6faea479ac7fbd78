package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/giubellucas/calendario-inteligente/internal/ui"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive conversation with the assistant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(ui.RenderMuted("Type a message, or 'exit' to leave."))

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print(ui.RenderAccent("> "))
			if !scanner.Scan() {
				break
			}
			line := scanner.Text()
			if line == "exit" || line == "quit" {
				break
			}
			if line == "" {
				continue
			}

			out, err := cl.SendMessage(context.Background(), line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			printOutcome(out)
		}
		return scanner.Err()
	},
}
