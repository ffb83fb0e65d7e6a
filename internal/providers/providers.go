// Package providers translates generic cluster operations (connect, status,
// discover, registry login) into provider-specific CLI invocations for GCP,
// AWS, and Azure.
package providers

import (
	"context"
	"log/slog"
	"strings"

	"cloum/internal/classify"
	"cloum/internal/domain"
	"cloum/internal/errors"
	"cloum/internal/kubeconfig"
	"cloum/internal/ui"
)

// New returns the adapter for one provider.
func New(provider domain.Provider, runner domain.CommandRunner, printer *ui.Printer, logger *slog.Logger) domain.ClusterProvider {
	switch provider {
	case domain.ProviderGCP:
		return NewGCP(runner, printer, logger)
	case domain.ProviderAWS:
		return NewAWS(runner, printer, logger)
	case domain.ProviderAzure:
		return NewAzure(runner, printer, logger)
	default:
		return nil
	}
}

// All returns the three adapters in display order.
func All(runner domain.CommandRunner, printer *ui.Printer, logger *slog.Logger) []domain.ClusterProvider {
	adapters := make([]domain.ClusterProvider, 0, len(domain.AllProviders))
	for _, provider := range domain.AllProviders {
		adapters = append(adapters, New(provider, runner, printer, logger))
	}
	return adapters
}

// classifiedError turns a captured CLI failure into a CommandError whose
// message carries the classifier's interpretation and remediation hint.
func classifiedError(provider domain.Provider, tool string, args []string, result domain.CommandResult) error {
	cls := classify.Classify(provider, result.Stderr)
	message := cls.Message
	if cls.Hint != "" {
		message += " Hint: " + cls.Hint
	}
	return errors.NewCommandError(tool, args, result.ExitCode, result.Stderr, message)
}

// interactiveError reports a failed interactive invocation. Stderr was
// inherited by the terminal, so only the exit code is available.
func interactiveError(tool string, args []string, exitCode int) error {
	return errors.NewCommandError(tool, args, exitCode, "", "")
}

// probeReachability silently asks kubectl for the node list of the freshly
// configured cluster and reports the outcome as advisory text only. Never
// fails the connect flow.
func probeReachability(ctx context.Context, runner domain.CommandRunner, printer *ui.Printer) {
	result, err := runner.Captured(ctx, "kubectl", "get", "nodes", "--no-headers")
	if err != nil || result.ExitCode != 0 {
		printer.Warn("Cluster not reachable yet (kubectl get nodes failed); credentials may still be propagating")
		return
	}

	nodes := 0
	for _, line := range strings.Split(result.Stdout, "\n") {
		if strings.TrimSpace(line) != "" {
			nodes++
		}
	}
	printer.Success("Cluster reachable (%d nodes)", nodes)
}

// printSummary emits the closing block of a connect flow, including the
// active kube context when it can be read.
func printSummary(printer *ui.Printer, kube *kubeconfig.Manager, identity, location string) {
	printer.Header("Connected")
	printer.Detail("Identity: %s", identity)
	printer.Detail("Location: %s", location)
	if current, err := kube.CurrentContext(); err == nil && current != "" {
		printer.Detail("Context:  %s", current)
	}
}
