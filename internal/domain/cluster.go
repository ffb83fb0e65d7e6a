package domain

import (
	"fmt"
	"strings"

	"cloum/internal/errors"
)

// Provider identifies one of the supported cloud platforms.
type Provider string

const (
	ProviderGCP   Provider = "gcp"
	ProviderAWS   Provider = "aws"
	ProviderAzure Provider = "azure"
)

// AllProviders lists the supported providers in display order.
//
//nolint:gochecknoglobals // Package-level constant slice for iteration
var AllProviders = []Provider{ProviderGCP, ProviderAWS, ProviderAzure}

// ParseProvider converts a user-supplied string into a Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderGCP:
		return ProviderGCP, nil
	case ProviderAWS:
		return ProviderAWS, nil
	case ProviderAzure:
		return ProviderAzure, nil
	default:
		return "", errors.NewValidationError("provider", s, "oneof",
			fmt.Sprintf("unknown provider %q: must be one of: gcp, aws, azure", s))
	}
}

// String returns the provider tag as stored in the configuration file.
func (p Provider) String() string {
	return string(p)
}

// DisplayName returns the human-readable platform name.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderGCP:
		return "Google Cloud (GKE)"
	case ProviderAWS:
		return "AWS (EKS)"
	case ProviderAzure:
		return "Azure (AKS)"
	default:
		return string(p)
	}
}

// ClusterRecord is one configured cluster. The provider tag discriminates
// which of the optional fields are meaningful: GCP records carry Project and
// optionally Account, AWS records carry Profile and RoleARN, Azure records
// carry ResourceGroup and optionally Subscription.
type ClusterRecord struct {
	Name        string   `json:"name"`
	Provider    Provider `json:"provider"`
	Region      string   `json:"region"`
	ClusterName string   `json:"clusterName"`

	// GCP
	Project string `json:"project,omitempty"`
	Account string `json:"account,omitempty"`

	// AWS
	Profile string `json:"profile,omitempty"`
	RoleARN string `json:"roleArn,omitempty"`

	// Azure
	ResourceGroup string `json:"resourceGroup,omitempty"`
	Subscription  string `json:"subscription,omitempty"`
}

// Validate checks that the record carries every field its provider variant
// requires.
func (r ClusterRecord) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.NewValidationError("name", r.Name, "required", "cluster name is required")
	}
	if _, err := ParseProvider(string(r.Provider)); err != nil {
		return err
	}
	if strings.TrimSpace(r.Region) == "" {
		return errors.NewValidationError("region", r.Region, "required", "region is required")
	}
	if strings.TrimSpace(r.ClusterName) == "" {
		return errors.NewValidationError("cluster_name", r.ClusterName, "required", "cluster name on the provider side is required")
	}

	switch r.Provider {
	case ProviderGCP:
		if strings.TrimSpace(r.Project) == "" {
			return errors.NewValidationError("project", r.Project, "required", "project is required for gcp clusters")
		}
	case ProviderAWS:
		// Profile and RoleARN are both optional.
	case ProviderAzure:
		if strings.TrimSpace(r.ResourceGroup) == "" {
			return errors.NewValidationError("resource_group", r.ResourceGroup, "required", "resource group is required for azure clusters")
		}
	}

	return nil
}
