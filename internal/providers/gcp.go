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

// GCP drives the gcloud CLI for GKE clusters.
type GCP struct {
	runner  domain.CommandRunner
	printer *ui.Printer
	kube    *kubeconfig.Manager
	logger  *slog.Logger
}

// NewGCP creates the GCP adapter.
func NewGCP(runner domain.CommandRunner, printer *ui.Printer, logger *slog.Logger) *GCP {
	return &GCP{
		runner:  runner,
		printer: printer,
		kube:    kubeconfig.NewManager(),
		logger:  logger,
	}
}

// Provider implements domain.ClusterProvider.
func (g *GCP) Provider() domain.Provider {
	return domain.ProviderGCP
}

// activeAccount returns the currently active gcloud account, or empty when
// none is active.
func (g *GCP) activeAccount(ctx context.Context) (string, error) {
	result, err := g.runner.Captured(ctx, "gcloud", "auth", "list", "--filter=status:ACTIVE", "--format=value(account)")
	if err != nil {
		return "", fmt.Errorf("gcloud CLI not available: %w", err)
	}
	if result.ExitCode != 0 {
		return "", nil
	}
	return strings.TrimSpace(result.Stdout), nil
}

// ensureAuth verifies the active gcloud credentials, launching the
// interactive login flow when they are missing and switching accounts when
// the record requests a specific one.
func (g *GCP) ensureAuth(ctx context.Context, record domain.ClusterRecord) (string, error) {
	account, err := g.activeAccount(ctx)
	if err != nil {
		return "", err
	}

	if account == "" {
		g.printer.Info("No active gcloud credentials, starting login...")
		result, err := g.runner.Interactive(ctx, "gcloud", "auth", "login")
		if err != nil {
			return "", err
		}
		if result.ExitCode != 0 {
			return "", interactiveError("gcloud", []string{"auth", "login"}, result.ExitCode)
		}
		if account, err = g.activeAccount(ctx); err != nil {
			return "", err
		}
	}

	if record.Account != "" && account != record.Account {
		g.printer.Info("Switching gcloud account to %s", record.Account)
		args := []string{"config", "set", "account", record.Account}
		result, err := g.runner.Captured(ctx, "gcloud", args...)
		if err != nil {
			return "", err
		}
		if result.ExitCode != 0 {
			return "", classifiedError(domain.ProviderGCP, "gcloud", args, result)
		}

		// The switch may land on an account without a valid token.
		account, err = g.activeAccount(ctx)
		if err != nil {
			return "", err
		}
		if account != record.Account {
			result, err := g.runner.Interactive(ctx, "gcloud", "auth", "login", record.Account)
			if err != nil {
				return "", err
			}
			if result.ExitCode != 0 {
				return "", interactiveError("gcloud", []string{"auth", "login", record.Account}, result.ExitCode)
			}
			if account, err = g.activeAccount(ctx); err != nil {
				return "", err
			}
		}
	}

	if account == "" {
		return "", fmt.Errorf("gcloud login did not produce an active account")
	}
	return account, nil
}

// Connect implements domain.ClusterProvider.
func (g *GCP) Connect(ctx context.Context, record domain.ClusterRecord) error {
	g.printer.Header("Connecting to %s (%s)", record.Name, domain.ProviderGCP.DisplayName())
	if record.Account != "" {
		g.printer.Detail("Account: %s", record.Account)
	}
	g.printer.Detail("Project: %s", record.Project)
	g.printer.Detail("Cluster: %s", record.ClusterName)
	g.printer.Detail("Region:  %s", record.Region)

	account, err := g.ensureAuth(ctx, record)
	if err != nil {
		return err
	}
	g.printer.Success("Authenticated as %s", account)

	setProject := []string{"config", "set", "project", record.Project}
	result, err := g.runner.Captured(ctx, "gcloud", setProject...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return classifiedError(domain.ProviderGCP, "gcloud", setProject, result)
	}

	fetch := []string{
		"container", "clusters", "get-credentials", record.ClusterName,
		"--region", record.Region,
		"--project", record.Project,
	}
	result, err = g.runner.Interactive(ctx, "gcloud", fetch...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return interactiveError("gcloud", fetch, result.ExitCode)
	}

	g.verifyAlignment(ctx, record, account)
	probeReachability(ctx, g.runner, g.printer)
	printSummary(g.printer, g.kube, account, fmt.Sprintf("%s / %s", record.Project, record.Region))
	return nil
}

// verifyAlignment re-queries the active project and account and warns, never
// fails, on mismatch.
func (g *GCP) verifyAlignment(ctx context.Context, record domain.ClusterRecord, wantAccount string) {
	result, err := g.runner.Captured(ctx, "gcloud", "config", "get-value", "project")
	if err != nil || result.ExitCode != 0 {
		g.printer.Warn("Could not verify active project")
		return
	}
	if project := strings.TrimSpace(result.Stdout); project != record.Project {
		g.printer.Warn("Active project is %s, expected %s", project, record.Project)
	}

	if record.Account == "" {
		return
	}
	if account, err := g.activeAccount(ctx); err == nil && account != wantAccount {
		g.printer.Warn("Active account is %s, expected %s", account, wantAccount)
	}
}

// Status implements domain.ClusterProvider. It never returns an error.
func (g *GCP) Status(ctx context.Context) domain.ProviderStatus {
	status := domain.ProviderStatus{Provider: domain.ProviderGCP}

	result, err := g.runner.Captured(ctx, "gcloud", "auth", "list", "--filter=status:ACTIVE", "--format=value(account)")
	if err != nil {
		status.Details = "gcloud CLI not found; install the Google Cloud SDK"
		return status
	}
	account := strings.TrimSpace(result.Stdout)
	if result.ExitCode != 0 || account == "" {
		return status
	}

	status.Authenticated = true
	status.Identity = account
	if project, err := g.runner.Captured(ctx, "gcloud", "config", "get-value", "project"); err == nil && project.ExitCode == 0 {
		if p := strings.TrimSpace(project.Stdout); p != "" && p != "(unset)" {
			status.Details = "project " + p
		}
	}
	return status
}

// Discover implements domain.ClusterProvider.
func (g *GCP) Discover(ctx context.Context, filters domain.DiscoverFilters) error {
	args := []string{"container", "clusters", "list"}
	if filters.Project != "" {
		args = append(args, "--project", filters.Project)
	}

	result, err := g.runner.Captured(ctx, "gcloud", args...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return classifiedError(domain.ProviderGCP, "gcloud", args, result)
	}

	g.printer.Info("%s", strings.TrimRight(result.Stdout, "\n"))
	return nil
}

// RegistryLogin implements domain.ClusterProvider. Configures docker's
// credential helper for the regional Artifact Registry host.
func (g *GCP) RegistryLogin(ctx context.Context, params domain.RegistryParams) error {
	host := params.Region + "-docker.pkg.dev"
	args := []string{"auth", "configure-docker", host, "--quiet"}

	result, err := g.runner.Captured(ctx, "gcloud", args...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return classifiedError(domain.ProviderGCP, "gcloud", args, result)
	}

	g.printer.Success("Docker configured for %s", host)
	return nil
}
