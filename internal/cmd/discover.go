package cmd

import (
	"github.com/spf13/cobra"

	"cloum/internal/domain"
	"cloum/internal/logging"
	"cloum/internal/providers"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var discoverCmd = &cobra.Command{
	Use:   "discover <provider>",
	Short: "List the clusters visible to a provider account",
	Long: `List the clusters the signed-in gcp, aws, or azure account can see,
so their names can be fed back into 'cloum add'.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

//nolint:gochecknoglobals // Cobra CLI pattern for flag storage
var (
	discoverProject       string
	discoverRegion        string
	discoverProfile       string
	discoverResourceGroup string
)

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(discoverCmd)

	discoverCmd.Flags().StringVar(&discoverProject, "project", "", "restrict to a GCP project")
	discoverCmd.Flags().StringVar(&discoverRegion, "region", "", "restrict to an AWS region")
	discoverCmd.Flags().StringVar(&discoverProfile, "profile", "", "AWS named profile to query with")
	discoverCmd.Flags().StringVar(&discoverResourceGroup, "resource-group", "", "restrict to an Azure resource group")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	provider, err := domain.ParseProvider(args[0])
	if err != nil {
		return err
	}

	filters := domain.DiscoverFilters{
		Project:       discoverProject,
		Region:        discoverRegion,
		Profile:       discoverProfile,
		ResourceGroup: discoverResourceGroup,
	}

	adapter := providers.New(provider, commandRunner, stdoutPrinter(cmd), logging.Get())
	return adapter.Discover(cmd.Context(), filters)
}
