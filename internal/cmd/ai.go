package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cloum/internal/ai"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Print an assistant prompt describing this tool",
	Long: `Print a prompt that teaches an AI assistant how cloum works, ready to
paste into a chat. With --open, also open the chat site in the browser.`,
	RunE: runAI,
}

//nolint:gochecknoglobals // Cobra CLI pattern for flag storage
var aiOpen bool

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(aiCmd)

	aiCmd.Flags().BoolVar(&aiOpen, "open", false, "open the chat site in the browser")
}

func runAI(cmd *cobra.Command, _ []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), ai.Prompt)

	if aiOpen {
		if err := ai.Open(cmd.Context(), commandRunner); err != nil {
			return fmt.Errorf("failed to open %s: %w", ai.ChatURL, err)
		}
	}
	return nil
}
