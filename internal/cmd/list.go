package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cloum/internal/domain"
	"cloum/internal/kubeconfig"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all configured clusters",
	Long:    `List all clusters that have been added to the configuration. The cluster whose kube context is currently active is marked with '*'.`,
	RunE:    runList,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	store, err := getStore()
	if err != nil {
		return err
	}

	clusters, err := store.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load clusters: %w", err)
	}

	if len(clusters) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No clusters configured. Use 'cloum add' to add clusters.")
		return nil
	}

	// Best effort: an unreadable kubeconfig just means no marker.
	current, _ := kubeconfig.NewManager().CurrentContext()

	fmt.Fprintf(cmd.OutOrStdout(), "Configured clusters (%d):\n\n", len(clusters))
	for i, cluster := range clusters {
		marker := " "
		if current != "" && kubeconfig.MatchesRecord(current, cluster) {
			marker = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", marker, cluster.Name, cluster.Provider.DisplayName())
		fmt.Fprintf(cmd.OutOrStdout(), "   Cluster: %s\n", cluster.ClusterName)
		fmt.Fprintf(cmd.OutOrStdout(), "   Region: %s\n", cluster.Region)
		printProviderDetails(cmd, cluster)
		if i < len(clusters)-1 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
	}

	return nil
}

func printProviderDetails(cmd *cobra.Command, cluster domain.ClusterRecord) {
	switch cluster.Provider {
	case domain.ProviderGCP:
		fmt.Fprintf(cmd.OutOrStdout(), "   Project: %s\n", cluster.Project)
		if cluster.Account != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "   Account: %s\n", cluster.Account)
		}
	case domain.ProviderAWS:
		if cluster.Profile != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "   Profile: %s\n", cluster.Profile)
		}
		if cluster.RoleARN != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "   Role: %s\n", cluster.RoleARN)
		}
	case domain.ProviderAzure:
		fmt.Fprintf(cmd.OutOrStdout(), "   Resource Group: %s\n", cluster.ResourceGroup)
		if cluster.Subscription != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "   Subscription: %s\n", cluster.Subscription)
		}
	}
}
