// Package ai carries the assistant onboarding prompt and the optional
// browser handoff.
package ai

import (
	"context"
	"fmt"
	"runtime"

	"cloum/internal/domain"
)

// Prompt is the onboarding text for pasting into an AI assistant. It stays
// static so the output is copy-paste stable across versions.
const Prompt = `You are helping me operate "cloum", a command-line tool that manages named
Kubernetes cluster definitions across GCP (GKE), AWS (EKS), and Azure (AKS).

cloum keeps a flat JSON file of cluster records (name, provider, region,
cluster name, plus provider-specific fields) and delegates all cloud work to
the official CLIs: gcloud, aws, az, kubectl, and docker.

Commands:
  cloum add <provider> --name ... --cluster-name ... --region ...   register a cluster
  cloum connect <name>        authenticate and fetch kubectl credentials
  cloum list                  show configured clusters
  cloum status                check authentication against all three providers
  cloum discover <provider>   list clusters visible with current credentials
  cloum registry <provider>   log docker in to the provider's registry
  cloum clean [provider]      remove cloum-managed contexts from kubeconfig
  cloum import <file>         merge cluster records from another JSON file

When I describe a connection problem, ask which provider is involved, then
suggest the matching CLI checks (gcloud auth list, aws sts get-caller-identity,
az account show) before anything cluster-side. Prefer cloum commands over raw
provider commands when both can do the job.`

// ChatURL is opened by the --open flag.
const ChatURL = "https://chat.openai.com/"

// Open launches the default browser at ChatURL using the platform opener.
func Open(ctx context.Context, runner domain.CommandRunner) error {
	var name string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
		args = []string{ChatURL}
	case "windows":
		name = "cmd"
		args = []string{"/c", "start", ChatURL}
	default:
		name = "xdg-open"
		args = []string{ChatURL}
	}

	result, err := runner.Captured(ctx, name, args...)
	if err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("browser opener exited with code %d", result.ExitCode)
	}
	return nil
}
