package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cloum/internal/config"
	"cloum/internal/ui"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the cloum binary",
	Long: `Delete the running cloum executable, and optionally the configuration
directory with it.`,
	RunE: runUninstall,
}

//nolint:gochecknoglobals // Cobra CLI pattern for flag storage
var uninstallYes bool

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(uninstallCmd)

	uninstallCmd.Flags().BoolVar(&uninstallYes, "yes", false, "skip the confirmation prompts (keeps the config directory)")
}

func runUninstall(cmd *cobra.Command, _ []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate the running binary: %w", err)
	}

	in, out := cmd.InOrStdin(), cmd.OutOrStdout()
	if !uninstallYes && !ui.Confirm(in, out, fmt.Sprintf("Remove %s?", exe)) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	if err := os.Remove(exe); err != nil {
		return fmt.Errorf("failed to remove %s: %w", exe, err)
	}
	printer := stdoutPrinter(cmd)
	printer.Success("Removed %s", exe)

	if path, err := config.DefaultPath(); err == nil {
		dir := filepath.Dir(path)
		if _, statErr := os.Stat(dir); statErr == nil {
			if !uninstallYes && ui.Confirm(in, out, fmt.Sprintf("Also remove the configuration directory %s?", dir)) {
				if err := os.RemoveAll(dir); err != nil {
					return fmt.Errorf("failed to remove %s: %w", dir, err)
				}
				printer.Success("Removed %s", dir)
			}
		}
	}

	return nil
}
