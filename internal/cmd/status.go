package cmd

import (
	"sync"

	"github.com/spf13/cobra"

	"cloum/internal/domain"
	"cloum/internal/logging"
	"cloum/internal/providers"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status for every provider",
	Long: `Probe gcloud, aws, and az concurrently and report whether each is
signed in, and as whom. A missing CLI is reported, not treated as an error.`,
	RunE: runStatus,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	printer := stdoutPrinter(cmd)
	adapters := providers.All(commandRunner, printer, logging.Get())

	statuses := make([]domain.ProviderStatus, len(adapters))
	var wg sync.WaitGroup
	for i, adapter := range adapters {
		wg.Add(1)
		go func(i int, adapter domain.ClusterProvider) {
			defer wg.Done()
			statuses[i] = adapter.Status(cmd.Context())
		}(i, adapter)
	}
	wg.Wait()

	printer.Header("Provider status")
	for _, status := range statuses {
		label := status.Provider.DisplayName()
		switch {
		case status.Authenticated:
			printer.Success("%s: signed in as %s", label, status.Identity)
			if status.Details != "" {
				printer.Detail("%s", status.Details)
			}
		case status.Details != "":
			printer.Fail("%s: %s", label, status.Details)
		default:
			printer.Fail("%s: not signed in", label)
		}
	}

	return nil
}
