package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cloum/internal/classify"
	"cloum/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		provider    domain.Provider
		stderr      string
		wantMessage string
		wantHint    string
	}{
		{
			name:        "aws sso session expired",
			provider:    domain.ProviderAWS,
			stderr:      "Error loading SSO Token: The SSO session associated with this profile has expired or is otherwise invalid.",
			wantMessage: "AWS SSO session expired",
			wantHint:    "Run 'aws sso login' (with --profile if you use one) to refresh your session.",
		},
		{
			name:        "aws expired token",
			provider:    domain.ProviderAWS,
			stderr:      "An error occurred (ExpiredToken) when calling the DescribeCluster operation",
			wantMessage: "AWS credentials expired",
			wantHint:    "Refresh your credentials, e.g. 'aws sso login' or re-run your credential provider.",
		},
		{
			name:        "aws no credentials",
			provider:    domain.ProviderAWS,
			stderr:      "Unable to locate credentials. You can configure credentials by running \"aws configure\".",
			wantMessage: "No AWS credentials configured",
			wantHint:    "Run 'aws configure' or 'aws sso login' to set up credentials.",
		},
		{
			name:        "aws cluster missing",
			provider:    domain.ProviderAWS,
			stderr:      "An error occurred (ResourceNotFoundException) when calling the DescribeCluster operation: No cluster found for name: prod.",
			wantMessage: "EKS cluster not found",
			wantHint:    "Check the cluster name and region with 'cloum discover aws'.",
		},
		{
			name:        "gcp reauth",
			provider:    domain.ProviderGCP,
			stderr:      "ERROR: (gcloud.container.clusters.get-credentials) There was a problem refreshing your current auth tokens: Reauthentication required.",
			wantMessage: "GCP session expired",
			wantHint:    "Run 'gcloud auth login' to re-authenticate.",
		},
		{
			name:        "gcp not logged in",
			provider:    domain.ProviderGCP,
			stderr:      "ERROR: (gcloud.auth.list) You do not currently have an active account selected.",
			wantMessage: "Not logged in to gcloud",
			wantHint:    "Run 'gcloud auth login' first.",
		},
		{
			name:        "azure login required",
			provider:    domain.ProviderAzure,
			stderr:      "Please run 'az login' to setup account.",
			wantMessage: "Not logged in to Azure",
			wantHint:    "Run 'az login' first.",
		},
		{
			name:        "azure resource group missing",
			provider:    domain.ProviderAzure,
			stderr:      "(ResourceGroupNotFound) Resource group 'rg-core' could not be found.",
			wantMessage: "Azure resource group not found",
			wantHint:    "Check the resource group name with 'az group list -o table'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify.Classify(tt.provider, tt.stderr)
			assert.Equal(t, tt.wantMessage, got.Message)
			assert.Equal(t, tt.wantHint, got.Hint)
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// Expired-token text also contains "not found"-ish noise; the
	// earlier-declared expiry signature must win.
	stderr := "The SSO session associated with this profile has expired. Requested resource not found."

	got := classify.Classify(domain.ProviderAWS, stderr)

	assert.Equal(t, "AWS SSO session expired", got.Message)
	assert.True(t, got.Retryable)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	got := classify.Classify(domain.ProviderAWS, "AN ERROR OCCURRED (ACCESSDENIED) IN THIS OPERATION")

	assert.Equal(t, "Access denied by AWS", got.Message)
}

func TestClassify_FallbackFirstLine(t *testing.T) {
	stderr := "something nobody predicted went wrong\nwith a second line of detail"

	got := classify.Classify(domain.ProviderGCP, stderr)

	assert.Equal(t, "something nobody predicted went wrong", got.Message)
	assert.Empty(t, got.Hint)
	assert.False(t, got.Retryable)
}

func TestClassify_EmptyStderr(t *testing.T) {
	got := classify.Classify(domain.ProviderAzure, "")

	assert.Equal(t, "command failed with no error output", got.Message)
	assert.Empty(t, got.Hint)
}
