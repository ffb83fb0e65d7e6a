package cmd

import (
	"github.com/spf13/cobra"

	"cloum/internal/logging"
	"cloum/internal/selfupdate"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update cloum to the latest release",
	Long: `Check GitHub for a newer cloum release and replace the running binary
with it. Development builds refuse to update themselves.`,
	RunE: runUpdate,
}

//nolint:gochecknoglobals // Cobra CLI pattern for flag storage
var updateForce bool

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&updateForce, "force", false, "reinstall even when already up to date")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	updater := selfupdate.NewUpdater(stdoutPrinter(cmd), logging.Get())
	return updater.Run(cmd.Context(), version, updateForce)
}
