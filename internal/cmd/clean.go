package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cloum/internal/domain"
	"cloum/internal/kubeconfig"
	"cloum/internal/ui"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var cleanCmd = &cobra.Command{
	Use:   "clean [provider]",
	Short: "Remove stale kube contexts written by the provider CLIs",
	Long: `Remove the kube contexts a provider's CLI has written, together with
their cluster and user entries. Pass a provider to clean just its contexts,
or --all to clean every provider's.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

//nolint:gochecknoglobals // Cobra CLI pattern for flag storage
var (
	cleanAll bool
	cleanYes bool
)

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "clean contexts for every provider")
	cleanCmd.Flags().BoolVar(&cleanYes, "yes", false, "skip the confirmation prompt")
}

func runClean(cmd *cobra.Command, args []string) error {
	match, scope, err := cleanMatcher(cmd, args)
	if err != nil {
		return err
	}

	if !cleanYes {
		prompt := fmt.Sprintf("Remove %s kube contexts?", scope)
		if !ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	removed, err := kubeconfig.NewManager().RemoveContexts(match)
	if err != nil {
		return fmt.Errorf("failed to clean kubeconfig: %w", err)
	}

	printer := stdoutPrinter(cmd)
	if len(removed) == 0 {
		printer.Info("No matching kube contexts found.")
		return nil
	}
	for _, name := range removed {
		printer.Success("Removed context %s", name)
	}
	return nil
}

// cleanMatcher builds one predicate covering the requested scope. A single
// combined pass keeps the kubeconfig write atomic even for --all.
func cleanMatcher(cmd *cobra.Command, args []string) (func(string) bool, string, error) {
	if cleanAll == (len(args) == 1) {
		return nil, "", fmt.Errorf("specify either a provider or --all")
	}

	store, err := getStore()
	if err != nil {
		return nil, "", err
	}
	records, err := store.Load(cmd.Context())
	if err != nil {
		return nil, "", fmt.Errorf("failed to load clusters: %w", err)
	}

	if len(args) == 1 {
		provider, err := domain.ParseProvider(args[0])
		if err != nil {
			return nil, "", err
		}
		return kubeconfig.ProviderMatcher(provider, records), provider.DisplayName(), nil
	}

	matchers := make([]func(string) bool, 0, len(domain.AllProviders))
	for _, provider := range domain.AllProviders {
		matchers = append(matchers, kubeconfig.ProviderMatcher(provider, records))
	}
	combined := func(name string) bool {
		for _, m := range matchers {
			if m(name) {
				return true
			}
		}
		return false
	}
	return combined, "all providers'", nil
}
