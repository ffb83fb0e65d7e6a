package providers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloum/internal/domain"
	"cloum/internal/kubeconfig"
	"cloum/internal/ui"
)

// AWS drives the aws CLI for EKS clusters. A named profile, when configured,
// is selected through the AWS_PROFILE environment variable of each
// invocation rather than by mutating global CLI state.
type AWS struct {
	runner  domain.CommandRunner
	printer *ui.Printer
	kube    *kubeconfig.Manager
	logger  *slog.Logger
}

// NewAWS creates the AWS adapter.
func NewAWS(runner domain.CommandRunner, printer *ui.Printer, logger *slog.Logger) *AWS {
	return &AWS{
		runner:  runner,
		printer: printer,
		kube:    kubeconfig.NewManager(),
		logger:  logger,
	}
}

// Provider implements domain.ClusterProvider.
func (a *AWS) Provider() domain.Provider {
	return domain.ProviderAWS
}

func profileEnv(profile string) map[string]string {
	if profile == "" {
		return nil
	}
	return map[string]string{"AWS_PROFILE": profile}
}

// callerIdentity returns the ARN of the active credentials, or the captured
// result for classification when the probe fails.
func (a *AWS) callerIdentity(ctx context.Context, profile string) (string, domain.CommandResult, error) {
	args := []string{"sts", "get-caller-identity", "--query", "Arn", "--output", "text"}
	result, err := a.runner.CapturedEnv(ctx, profileEnv(profile), "aws", args...)
	if err != nil {
		return "", result, fmt.Errorf("aws CLI not available: %w", err)
	}
	if result.ExitCode != 0 {
		return "", result, nil
	}
	return strings.TrimSpace(result.Stdout), result, nil
}

// ensureAuth verifies the credentials for the record's profile, running the
// interactive SSO login flow when they are expired or missing.
func (a *AWS) ensureAuth(ctx context.Context, record domain.ClusterRecord) (string, error) {
	identity, probe, err := a.callerIdentity(ctx, record.Profile)
	if err != nil {
		return "", err
	}
	if identity != "" {
		return identity, nil
	}

	a.printer.Info("AWS credentials invalid or expired, starting SSO login...")
	loginArgs := []string{"sso", "login"}
	if record.Profile != "" {
		loginArgs = append(loginArgs, "--profile", record.Profile)
	}
	result, err := a.runner.InteractiveEnv(ctx, profileEnv(record.Profile), "aws", loginArgs...)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", interactiveError("aws", loginArgs, result.ExitCode)
	}

	identity, probe, err = a.callerIdentity(ctx, record.Profile)
	if err != nil {
		return "", err
	}
	if identity == "" {
		return "", classifiedError(domain.ProviderAWS, "aws",
			[]string{"sts", "get-caller-identity"}, probe)
	}
	return identity, nil
}

// Connect implements domain.ClusterProvider.
func (a *AWS) Connect(ctx context.Context, record domain.ClusterRecord) error {
	a.printer.Header("Connecting to %s (%s)", record.Name, domain.ProviderAWS.DisplayName())
	if record.Profile != "" {
		a.printer.Detail("Profile: %s", record.Profile)
	}
	if record.RoleARN != "" {
		a.printer.Detail("Role:    %s", record.RoleARN)
	}
	a.printer.Detail("Cluster: %s", record.ClusterName)
	a.printer.Detail("Region:  %s", record.Region)

	identity, err := a.ensureAuth(ctx, record)
	if err != nil {
		return err
	}
	a.printer.Success("Authenticated as %s", identity)

	fetch := []string{
		"eks", "update-kubeconfig",
		"--name", record.ClusterName,
		"--region", record.Region,
	}
	if record.RoleARN != "" {
		fetch = append(fetch, "--role-arn", record.RoleARN)
	}
	result, err := a.runner.InteractiveEnv(ctx, profileEnv(record.Profile), "aws", fetch...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return interactiveError("aws", fetch, result.ExitCode)
	}

	a.verifyAlignment(ctx, record)
	probeReachability(ctx, a.runner, a.printer)
	printSummary(a.printer, a.kube, identity, record.Region)
	return nil
}

// verifyAlignment re-queries the caller identity and warns, never fails,
// when it does not reflect the requested role.
func (a *AWS) verifyAlignment(ctx context.Context, record domain.ClusterRecord) {
	identity, _, err := a.callerIdentity(ctx, record.Profile)
	if err != nil || identity == "" {
		a.printer.Warn("Could not verify caller identity")
		return
	}

	if record.RoleARN == "" {
		return
	}
	// Assumed-role ARNs embed the role name, not the full role ARN.
	parts := strings.Split(record.RoleARN, "/")
	roleName := parts[len(parts)-1]
	if !strings.Contains(identity, roleName) {
		a.printer.Warn("Caller identity %s does not reference requested role %s", identity, record.RoleARN)
	}
}

// Status implements domain.ClusterProvider. It never returns an error.
func (a *AWS) Status(ctx context.Context) domain.ProviderStatus {
	status := domain.ProviderStatus{Provider: domain.ProviderAWS}

	result, err := a.runner.Captured(ctx, "aws", "sts", "get-caller-identity", "--query", "Arn", "--output", "text")
	if err != nil {
		status.Details = "aws CLI not found; install the AWS CLI"
		return status
	}
	identity := strings.TrimSpace(result.Stdout)
	if result.ExitCode != 0 || identity == "" {
		return status
	}

	status.Authenticated = true
	status.Identity = identity
	if profile := os.Getenv("AWS_PROFILE"); profile != "" {
		status.Details = "profile " + profile
	}
	return status
}

// Discover implements domain.ClusterProvider.
func (a *AWS) Discover(ctx context.Context, filters domain.DiscoverFilters) error {
	args := []string{"eks", "list-clusters", "--output", "table"}
	if filters.Region != "" {
		args = append(args, "--region", filters.Region)
	}

	result, err := a.runner.CapturedEnv(ctx, profileEnv(filters.Profile), "aws", args...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return classifiedError(domain.ProviderAWS, "aws", args, result)
	}

	a.printer.Info("%s", strings.TrimRight(result.Stdout, "\n"))
	return nil
}

// RegistryLogin implements domain.ClusterProvider. Fetches a short-lived ECR
// password, resolves the account ID, and pipes the password into docker.
func (a *AWS) RegistryLogin(ctx context.Context, params domain.RegistryParams) error {
	env := profileEnv(params.Profile)

	passwordArgs := []string{"ecr", "get-login-password", "--region", params.Region}
	password, err := a.runner.CapturedEnv(ctx, env, "aws", passwordArgs...)
	if err != nil {
		return err
	}
	if password.ExitCode != 0 {
		return classifiedError(domain.ProviderAWS, "aws", passwordArgs, password)
	}

	accountArgs := []string{"sts", "get-caller-identity", "--query", "Account", "--output", "text"}
	account, err := a.runner.CapturedEnv(ctx, env, "aws", accountArgs...)
	if err != nil {
		return err
	}
	if account.ExitCode != 0 {
		return classifiedError(domain.ProviderAWS, "aws", accountArgs, account)
	}

	registry := fmt.Sprintf("%s.dkr.ecr.%s.amazonaws.com", strings.TrimSpace(account.Stdout), params.Region)
	loginArgs := []string{"login", "--username", "AWS", "--password-stdin", registry}
	login, err := a.runner.CapturedWithStdin(ctx, strings.TrimSpace(password.Stdout), "docker", loginArgs...)
	if err != nil {
		return err
	}
	if login.ExitCode != 0 {
		return classifiedError(domain.ProviderAWS, "docker", loginArgs, login)
	}

	a.printer.Success("Docker logged in to %s", registry)
	return nil
}
