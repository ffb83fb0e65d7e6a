package cmd

import (
	"github.com/spf13/cobra"

	"cloum/internal/logging"
	"cloum/internal/providers"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var connectCmd = &cobra.Command{
	Use:   "connect <name>",
	Short: "Connect kubectl to a configured cluster",
	Long: `Connect kubectl to the named cluster: verify the provider CLI login,
fetch fresh credentials, and switch the kube context.`,
	Args: cobra.ExactArgs(1),
	RunE: runConnect,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(connectCmd)
}

func runConnect(cmd *cobra.Command, args []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}

	record, err := store.FindByName(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	provider := providers.New(record.Provider, commandRunner, stdoutPrinter(cmd), logging.Get())
	return provider.Connect(cmd.Context(), record)
}
