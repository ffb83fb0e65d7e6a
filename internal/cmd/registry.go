package cmd

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"cloum/internal/domain"
	"cloum/internal/errors"
	"cloum/internal/logging"
	"cloum/internal/providers"
	"cloum/internal/ui"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var registryCmd = &cobra.Command{
	Use:   "registry <provider|all>",
	Short: "Log docker in to a provider's container registry",
	Long: `Configure docker credentials for Artifact Registry (gcp), ECR (aws), or
ACR (azure). 'all' logs in to every provider concurrently.

GCP and AWS need --region. Azure takes --registry; without it the available
registries are listed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runRegistry,
}

//nolint:gochecknoglobals // Cobra CLI pattern for flag storage
var (
	registryRegion  string
	registryProfile string
	registryName    string
)

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(registryCmd)

	registryCmd.Flags().StringVar(&registryRegion, "region", "", "registry region (required for gcp and aws)")
	registryCmd.Flags().StringVar(&registryProfile, "profile", "", "AWS named profile")
	registryCmd.Flags().StringVar(&registryName, "registry", "", "Azure container registry name")
}

func runRegistry(cmd *cobra.Command, args []string) error {
	params := domain.RegistryParams{
		Region:   registryRegion,
		Profile:  registryProfile,
		Registry: registryName,
	}

	if args[0] == "all" {
		return runRegistryAll(cmd, params)
	}

	provider, err := domain.ParseProvider(args[0])
	if err != nil {
		return err
	}
	if err := requireRegistryRegion(provider, params); err != nil {
		return err
	}

	adapter := providers.New(provider, commandRunner, stdoutPrinter(cmd), logging.Get())
	return adapter.RegistryLogin(cmd.Context(), params)
}

// registryBranch holds one provider's login outcome. Each goroutine renders
// into its own buffer so nothing shares a writer while the fan-out runs.
type registryBranch struct {
	provider domain.Provider
	out      bytes.Buffer
	err      error
}

func runRegistryAll(cmd *cobra.Command, params domain.RegistryParams) error {
	for _, provider := range domain.AllProviders {
		if err := requireRegistryRegion(provider, params); err != nil {
			return err
		}
	}

	branches := make([]registryBranch, len(domain.AllProviders))
	var wg sync.WaitGroup
	for i, provider := range domain.AllProviders {
		branches[i].provider = provider
		wg.Add(1)
		go func(branch *registryBranch) {
			defer wg.Done()
			adapter := providers.New(branch.provider, commandRunner, ui.NewPrinter(&branch.out), logging.Get())
			branch.err = adapter.RegistryLogin(cmd.Context(), params)
		}(&branches[i])
	}
	wg.Wait()

	printer := stdoutPrinter(cmd)
	failed := 0
	for i := range branches {
		branch := &branches[i]
		fmt.Fprint(cmd.OutOrStdout(), branch.out.String())
		if branch.err != nil {
			failed++
			printer.Fail("%s registry login failed: %v", branch.provider.DisplayName(), branch.err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("registry login failed for %d provider(s)", failed)
	}
	return nil
}

// requireRegistryRegion rejects gcp and aws logins without --region before
// any subprocess runs. Azure registries are not region-addressed.
func requireRegistryRegion(provider domain.Provider, params domain.RegistryParams) error {
	if params.Region != "" || provider == domain.ProviderAzure {
		return nil
	}
	return errors.NewValidationError("region", "", "required", fmt.Sprintf("--region is required for %s registry login", provider))
}
