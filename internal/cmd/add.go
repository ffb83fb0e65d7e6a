package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cloum/internal/domain"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var addCmd = &cobra.Command{
	Use:   "add <provider>",
	Short: "Add a cluster definition",
	Long: `Add a named cluster definition for gcp, aws, or azure.

Required for every provider: --name, --cluster-name, --region.
GCP additionally requires --project and accepts --account.
AWS accepts --profile and --role-arn.
Azure additionally requires --resource-group and accepts --subscription.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

//nolint:gochecknoglobals // Cobra CLI pattern for flag storage
var (
	addName          string
	addClusterName   string
	addRegion        string
	addProject       string
	addAccount       string
	addProfile       string
	addRoleARN       string
	addResourceGroup string
	addSubscription  string
)

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addName, "name", "", "unique alias for the cluster (required)")
	addCmd.Flags().StringVar(&addClusterName, "cluster-name", "", "cluster name on the provider side (required)")
	addCmd.Flags().StringVar(&addRegion, "region", "", "cloud region or location (required)")
	addCmd.Flags().StringVar(&addProject, "project", "", "GCP project ID")
	addCmd.Flags().StringVar(&addAccount, "account", "", "GCP account to activate")
	addCmd.Flags().StringVar(&addProfile, "profile", "", "AWS named profile")
	addCmd.Flags().StringVar(&addRoleARN, "role-arn", "", "AWS IAM role to assume")
	addCmd.Flags().StringVar(&addResourceGroup, "resource-group", "", "Azure resource group")
	addCmd.Flags().StringVar(&addSubscription, "subscription", "", "Azure subscription")

	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("cluster-name")
	_ = addCmd.MarkFlagRequired("region")
}

func runAdd(cmd *cobra.Command, args []string) error {
	provider, err := domain.ParseProvider(args[0])
	if err != nil {
		return err
	}

	record := domain.ClusterRecord{
		Name:        addName,
		Provider:    provider,
		Region:      addRegion,
		ClusterName: addClusterName,
	}
	switch provider {
	case domain.ProviderGCP:
		record.Project = addProject
		record.Account = addAccount
	case domain.ProviderAWS:
		record.Profile = addProfile
		record.RoleARN = addRoleARN
	case domain.ProviderAzure:
		record.ResourceGroup = addResourceGroup
		record.Subscription = addSubscription
	}

	store, err := getStore()
	if err != nil {
		return err
	}
	if err := store.Add(cmd.Context(), record); err != nil {
		return fmt.Errorf("failed to add cluster: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added cluster '%s' (%s)\n", record.Name, provider.DisplayName())
	return nil
}
