// Package kubeconfig inspects and prunes the kubectl configuration that the
// provider CLIs populate during connect.
package kubeconfig

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	"cloum/internal/domain"
)

// Manager reads and mutates the active kubeconfig through clientcmd's
// default loading rules, so KUBECONFIG overrides behave exactly as they do
// for kubectl.
type Manager struct{}

// NewManager creates a kubeconfig manager.
func NewManager() *Manager {
	return &Manager{}
}

// CurrentContext returns the name of the active kube context, or an empty
// string when none is set.
func (m *Manager) CurrentContext() (string, error) {
	pathOptions := clientcmd.NewDefaultPathOptions()
	config, err := pathOptions.GetStartingConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	return config.CurrentContext, nil
}

// MatchesRecord reports whether the given context name belongs to the
// record's cluster, following each provider CLI's context naming convention:
// gcloud writes gke_<project>_<location>_<name>, aws writes the cluster ARN,
// az writes the bare cluster name.
func MatchesRecord(contextName string, record domain.ClusterRecord) bool {
	switch record.Provider {
	case domain.ProviderGCP:
		return contextName == fmt.Sprintf("gke_%s_%s_%s", record.Project, record.Region, record.ClusterName)
	case domain.ProviderAWS:
		return strings.HasPrefix(contextName, "arn:aws:eks:"+record.Region+":") &&
			strings.HasSuffix(contextName, ":cluster/"+record.ClusterName)
	case domain.ProviderAzure:
		return contextName == record.ClusterName
	default:
		return false
	}
}

// ExpectedContext renders the context name the provider CLI is expected to
// write for the record. The AWS account segment is not known locally, so it
// is rendered as a wildcard for display purposes.
func ExpectedContext(record domain.ClusterRecord) string {
	switch record.Provider {
	case domain.ProviderGCP:
		return fmt.Sprintf("gke_%s_%s_%s", record.Project, record.Region, record.ClusterName)
	case domain.ProviderAWS:
		return fmt.Sprintf("arn:aws:eks:%s:*:cluster/%s", record.Region, record.ClusterName)
	case domain.ProviderAzure:
		return record.ClusterName
	default:
		return ""
	}
}

// ProviderMatcher returns a predicate recognizing contexts written by the
// given provider's CLI. Azure contexts carry no recognizable prefix, so the
// configured records are consulted instead.
func ProviderMatcher(provider domain.Provider, records []domain.ClusterRecord) func(string) bool {
	switch provider {
	case domain.ProviderGCP:
		return func(name string) bool { return strings.HasPrefix(name, "gke_") }
	case domain.ProviderAWS:
		return func(name string) bool { return strings.HasPrefix(name, "arn:aws:eks:") }
	case domain.ProviderAzure:
		known := make(map[string]bool)
		for _, record := range records {
			if record.Provider == domain.ProviderAzure {
				known[record.ClusterName] = true
			}
		}
		return func(name string) bool { return known[name] }
	default:
		return func(string) bool { return false }
	}
}

// RemoveContexts deletes every context matching the predicate together with
// the cluster and user entries it references, provided no surviving context
// still references them. Returns the removed context names sorted.
func (m *Manager) RemoveContexts(match func(string) bool) ([]string, error) {
	pathOptions := clientcmd.NewDefaultPathOptions()
	config, err := pathOptions.GetStartingConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	var removed []string
	for name, kubeCtx := range config.Contexts {
		if !match(name) {
			continue
		}
		removed = append(removed, name)
		delete(config.Contexts, name)
		if config.CurrentContext == name {
			config.CurrentContext = ""
		}

		// Drop the referenced cluster/user entries unless another context
		// still points at them.
		if !clusterReferenced(config.Contexts, kubeCtx.Cluster) {
			delete(config.Clusters, kubeCtx.Cluster)
		}
		if !userReferenced(config.Contexts, kubeCtx.AuthInfo) {
			delete(config.AuthInfos, kubeCtx.AuthInfo)
		}
	}

	if len(removed) == 0 {
		return nil, nil
	}

	if err := clientcmd.ModifyConfig(pathOptions, *config, true); err != nil {
		return nil, fmt.Errorf("failed to write kubeconfig: %w", err)
	}

	sort.Strings(removed)
	return removed, nil
}

func clusterReferenced(contexts map[string]*clientcmdapi.Context, cluster string) bool {
	for _, kubeCtx := range contexts {
		if kubeCtx.Cluster == cluster {
			return true
		}
	}
	return false
}

func userReferenced(contexts map[string]*clientcmdapi.Context, user string) bool {
	for _, kubeCtx := range contexts {
		if kubeCtx.AuthInfo == user {
			return true
		}
	}
	return false
}
