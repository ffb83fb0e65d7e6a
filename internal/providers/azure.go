package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cloum/internal/domain"
	"cloum/internal/kubeconfig"
	"cloum/internal/ui"
)

// Azure drives the az CLI for AKS clusters.
type Azure struct {
	runner  domain.CommandRunner
	printer *ui.Printer
	kube    *kubeconfig.Manager
	logger  *slog.Logger
}

// NewAzure creates the Azure adapter.
func NewAzure(runner domain.CommandRunner, printer *ui.Printer, logger *slog.Logger) *Azure {
	return &Azure{
		runner:  runner,
		printer: printer,
		kube:    kubeconfig.NewManager(),
		logger:  logger,
	}
}

// Provider implements domain.ClusterProvider.
func (az *Azure) Provider() domain.Provider {
	return domain.ProviderAzure
}

// signedInUser returns the signed-in user, or empty when no session exists.
func (az *Azure) signedInUser(ctx context.Context) (string, error) {
	result, err := az.runner.Captured(ctx, "az", "account", "show", "--query", "user.name", "-o", "tsv")
	if err != nil {
		return "", fmt.Errorf("az CLI not available: %w", err)
	}
	if result.ExitCode != 0 {
		return "", nil
	}
	return strings.TrimSpace(result.Stdout), nil
}

// ensureAuth verifies the Azure session, launching the interactive login
// flow when it is missing or expired, and selects the requested
// subscription.
func (az *Azure) ensureAuth(ctx context.Context, record domain.ClusterRecord) (string, error) {
	user, err := az.signedInUser(ctx)
	if err != nil {
		return "", err
	}

	if user == "" {
		az.printer.Info("No active Azure session, starting login...")
		result, err := az.runner.Interactive(ctx, "az", "login")
		if err != nil {
			return "", err
		}
		if result.ExitCode != 0 {
			return "", interactiveError("az", []string{"login"}, result.ExitCode)
		}
		if user, err = az.signedInUser(ctx); err != nil {
			return "", err
		}
		if user == "" {
			return "", fmt.Errorf("az login did not produce an active session")
		}
	}

	if record.Subscription != "" {
		args := []string{"account", "set", "--subscription", record.Subscription}
		result, err := az.runner.Captured(ctx, "az", args...)
		if err != nil {
			return "", err
		}
		if result.ExitCode != 0 {
			return "", classifiedError(domain.ProviderAzure, "az", args, result)
		}
	}

	return user, nil
}

// Connect implements domain.ClusterProvider.
func (az *Azure) Connect(ctx context.Context, record domain.ClusterRecord) error {
	az.printer.Header("Connecting to %s (%s)", record.Name, domain.ProviderAzure.DisplayName())
	if record.Subscription != "" {
		az.printer.Detail("Subscription:   %s", record.Subscription)
	}
	az.printer.Detail("Resource group: %s", record.ResourceGroup)
	az.printer.Detail("Cluster:        %s", record.ClusterName)
	az.printer.Detail("Region:         %s", record.Region)

	user, err := az.ensureAuth(ctx, record)
	if err != nil {
		return err
	}
	az.printer.Success("Authenticated as %s", user)

	// Fail fast with a clear error when the cluster/resource-group pair
	// does not exist, before touching the kubeconfig.
	checkArgs := []string{"aks", "show", "--name", record.ClusterName, "--resource-group", record.ResourceGroup, "--query", "name", "-o", "tsv"}
	check, err := az.runner.Captured(ctx, "az", checkArgs...)
	if err != nil {
		return err
	}
	if check.ExitCode != 0 {
		return classifiedError(domain.ProviderAzure, "az", checkArgs, check)
	}

	fetch := []string{
		"aks", "get-credentials",
		"--name", record.ClusterName,
		"--resource-group", record.ResourceGroup,
		"--overwrite-existing",
	}
	result, err := az.runner.Interactive(ctx, "az", fetch...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return interactiveError("az", fetch, result.ExitCode)
	}

	az.verifyAlignment(ctx, record)
	probeReachability(ctx, az.runner, az.printer)
	printSummary(az.printer, az.kube, user, fmt.Sprintf("%s / %s", record.ResourceGroup, record.Region))
	return nil
}

// verifyAlignment re-queries the active subscription and warns, never fails,
// when it matches neither the requested name nor ID.
func (az *Azure) verifyAlignment(ctx context.Context, record domain.ClusterRecord) {
	if record.Subscription == "" {
		return
	}

	result, err := az.runner.Captured(ctx, "az", "account", "show", "--query", "[name,id]", "-o", "tsv")
	if err != nil || result.ExitCode != 0 {
		az.printer.Warn("Could not verify active subscription")
		return
	}

	for _, candidate := range strings.Fields(result.Stdout) {
		if strings.EqualFold(candidate, record.Subscription) {
			return
		}
	}
	// Subscriptions may be referenced by display name containing spaces;
	// compare against whole lines as well.
	for _, line := range strings.Split(result.Stdout, "\n") {
		if strings.EqualFold(strings.TrimSpace(line), record.Subscription) {
			return
		}
	}
	az.printer.Warn("Active subscription is not %s", record.Subscription)
}

// Status implements domain.ClusterProvider. It never returns an error.
func (az *Azure) Status(ctx context.Context) domain.ProviderStatus {
	status := domain.ProviderStatus{Provider: domain.ProviderAzure}

	result, err := az.runner.Captured(ctx, "az", "account", "show", "--query", "user.name", "-o", "tsv")
	if err != nil {
		status.Details = "az CLI not found; install the Azure CLI"
		return status
	}
	user := strings.TrimSpace(result.Stdout)
	if result.ExitCode != 0 || user == "" {
		return status
	}

	status.Authenticated = true
	status.Identity = user
	if sub, err := az.runner.Captured(ctx, "az", "account", "show", "--query", "name", "-o", "tsv"); err == nil && sub.ExitCode == 0 {
		if name := strings.TrimSpace(sub.Stdout); name != "" {
			status.Details = "subscription " + name
		}
	}
	return status
}

// Discover implements domain.ClusterProvider.
func (az *Azure) Discover(ctx context.Context, filters domain.DiscoverFilters) error {
	args := []string{"aks", "list", "-o", "table"}
	if filters.ResourceGroup != "" {
		args = append(args, "--resource-group", filters.ResourceGroup)
	}

	result, err := az.runner.Captured(ctx, "az", args...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return classifiedError(domain.ProviderAzure, "az", args, result)
	}

	az.printer.Info("%s", strings.TrimRight(result.Stdout, "\n"))
	return nil
}

// RegistryLogin implements domain.ClusterProvider. With no registry name the
// available registries are listed as a discovery aid instead.
func (az *Azure) RegistryLogin(ctx context.Context, params domain.RegistryParams) error {
	if params.Registry == "" {
		args := []string{"acr", "list", "-o", "table"}
		result, err := az.runner.Captured(ctx, "az", args...)
		if err != nil {
			return err
		}
		if result.ExitCode != 0 {
			return classifiedError(domain.ProviderAzure, "az", args, result)
		}
		az.printer.Info("No registry name given. Available registries:")
		az.printer.Info("%s", strings.TrimRight(result.Stdout, "\n"))
		return nil
	}

	args := []string{"acr", "login", "--name", params.Registry}
	result, err := az.runner.Captured(ctx, "az", args...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return classifiedError(domain.ProviderAzure, "az", args, result)
	}

	az.printer.Success("Docker logged in to %s", params.Registry)
	return nil
}
