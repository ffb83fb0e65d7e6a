// Package classify interprets provider CLI stderr text against known failure
// signatures to produce a short message and a remediation hint.
package classify

import (
	"strings"

	"cloum/internal/domain"
)

// Classification is the interpreted failure: a short message, an optional
// remediation hint, and whether retrying after the hint is likely to help.
type Classification struct {
	Message   string
	Hint      string
	Retryable bool
}

// signature is one known failure pattern. Matching is a case-insensitive
// substring test; within a provider's table the first match wins, so more
// specific patterns are declared before more general ones.
type signature struct {
	substring string
	message   string
	hint      string
	retryable bool
}

//nolint:gochecknoglobals // Static per-provider signature tables
var gcpSignatures = []signature{
	{
		substring: "reauthentication required",
		message:   "GCP session expired",
		hint:      "Run 'gcloud auth login' to re-authenticate.",
		retryable: true,
	},
	{
		substring: "do not currently have an active account",
		message:   "Not logged in to gcloud",
		hint:      "Run 'gcloud auth login' first.",
		retryable: true,
	},
	{
		substring: "no credentialed accounts",
		message:   "Not logged in to gcloud",
		hint:      "Run 'gcloud auth login' first.",
		retryable: true,
	},
	{
		substring: "permission denied",
		message:   "Permission denied by GCP",
		hint:      "Check IAM roles on the project, or switch accounts with 'gcloud config set account'.",
	},
	{
		substring: "project not found",
		message:   "GCP project not found",
		hint:      "Verify the project ID with 'gcloud projects list'.",
	},
	{
		substring: "404 not found",
		message:   "GKE cluster not found",
		hint:      "Check the cluster name and region with 'cloum discover gcp'.",
	},
	{
		substring: "not found",
		message:   "GCP resource not found",
		hint:      "Check the cluster name, region, and project.",
	},
}

//nolint:gochecknoglobals // Static per-provider signature tables
var awsSignatures = []signature{
	{
		substring: "sso session associated with this profile has expired",
		message:   "AWS SSO session expired",
		hint:      "Run 'aws sso login' (with --profile if you use one) to refresh your session.",
		retryable: true,
	},
	{
		substring: "expiredtoken",
		message:   "AWS credentials expired",
		hint:      "Refresh your credentials, e.g. 'aws sso login' or re-run your credential provider.",
		retryable: true,
	},
	{
		substring: "token has expired",
		message:   "AWS credentials expired",
		hint:      "Refresh your credentials, e.g. 'aws sso login' or re-run your credential provider.",
		retryable: true,
	},
	{
		substring: "unable to locate credentials",
		message:   "No AWS credentials configured",
		hint:      "Run 'aws configure' or 'aws sso login' to set up credentials.",
		retryable: true,
	},
	{
		substring: "accessdenied",
		message:   "Access denied by AWS",
		hint:      "Check the IAM permissions of your profile or assumed role.",
	},
	{
		substring: "resourcenotfoundexception",
		message:   "EKS cluster not found",
		hint:      "Check the cluster name and region with 'cloum discover aws'.",
	},
	{
		substring: "could not connect to the endpoint url",
		message:   "AWS endpoint unreachable",
		hint:      "Check the region name and your network connection.",
	},
}

//nolint:gochecknoglobals // Static per-provider signature tables
var azureSignatures = []signature{
	{
		substring: "refresh token has expired",
		message:   "Azure session expired",
		hint:      "Run 'az login' to re-authenticate.",
		retryable: true,
	},
	{
		substring: "aadsts",
		message:   "Azure AD token rejected",
		hint:      "Run 'az login' to re-authenticate.",
		retryable: true,
	},
	{
		substring: "az login",
		message:   "Not logged in to Azure",
		hint:      "Run 'az login' first.",
		retryable: true,
	},
	{
		substring: "authorizationfailed",
		message:   "Authorization failed on Azure",
		hint:      "Check your role assignments on the subscription or resource group.",
	},
	{
		substring: "resourcegroupnotfound",
		message:   "Azure resource group not found",
		hint:      "Check the resource group name with 'az group list -o table'.",
	},
	{
		substring: "subscription",
		message:   "Azure subscription problem",
		hint:      "List available subscriptions with 'az account list -o table'.",
	},
	{
		substring: "not found",
		message:   "AKS cluster not found",
		hint:      "Check the cluster name and resource group with 'cloum discover azure'.",
	},
}

//nolint:gochecknoglobals // Static per-provider signature tables
var tables = map[domain.Provider][]signature{
	domain.ProviderGCP:   gcpSignatures,
	domain.ProviderAWS:   awsSignatures,
	domain.ProviderAzure: azureSignatures,
}

// Classify matches stderr against the provider's signature table. The first
// matching signature wins; with no match the first line of the raw stderr
// becomes the message with no hint.
func Classify(provider domain.Provider, stderr string) Classification {
	lowered := strings.ToLower(stderr)
	for _, sig := range tables[provider] {
		if strings.Contains(lowered, sig.substring) {
			return Classification{
				Message:   sig.message,
				Hint:      sig.hint,
				Retryable: sig.retryable,
			}
		}
	}

	return Classification{Message: firstLine(stderr)}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "command failed with no error output"
	}
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
