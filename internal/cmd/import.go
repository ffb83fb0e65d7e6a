package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import cluster definitions from a JSON file",
	Long: `Import cluster definitions from a JSON file with the same layout as the
clusters file. Entries whose name already exists are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}

	summary, err := store.Import(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cluster(s)", len(summary.Added))
	if len(summary.Added) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ": %s", strings.Join(summary.Added, ", "))
	}
	fmt.Fprintln(cmd.OutOrStdout())
	if len(summary.Skipped) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d duplicate(s): %s\n", len(summary.Skipped), strings.Join(summary.Skipped, ", "))
	}

	return nil
}
