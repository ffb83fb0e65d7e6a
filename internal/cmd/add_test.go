package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloum/internal/domain"
	"cloum/internal/errors"
)

// setAddFlags loads the add command's flag storage and restores it after the
// test.
func setAddFlags(t *testing.T, values map[string]*string) {
	t.Helper()
	fields := map[string]*string{
		"name":           &addName,
		"cluster-name":   &addClusterName,
		"region":         &addRegion,
		"project":        &addProject,
		"account":        &addAccount,
		"profile":        &addProfile,
		"role-arn":       &addRoleARN,
		"resource-group": &addResourceGroup,
		"subscription":   &addSubscription,
	}
	for name, field := range fields {
		previous := *field
		t.Cleanup(func() { *field = previous })
		if value, ok := values[name]; ok {
			*field = *value
		} else {
			*field = ""
		}
	}
}

func str(s string) *string { return &s }

func TestRunAddGCP(t *testing.T) {
	useTempConfig(t)
	setAddFlags(t, map[string]*string{
		"name":         str("prod"),
		"cluster-name": str("prod-gke"),
		"region":       str("europe-west1"),
		"project":      str("acme-platform"),
		"account":      str("dev@acme.io"),
	})

	cmd, out := newTestCmd(t)
	require.NoError(t, runAdd(cmd, []string{"gcp"}))
	assert.Contains(t, out.String(), "Added cluster 'prod'")

	store, err := getStore()
	require.NoError(t, err)
	record, err := store.FindByName(t.Context(), "prod")
	require.NoError(t, err)
	assert.Equal(t, domain.ProviderGCP, record.Provider)
	assert.Equal(t, "prod-gke", record.ClusterName)
	assert.Equal(t, "acme-platform", record.Project)
	assert.Equal(t, "dev@acme.io", record.Account)
}

func TestRunAddAWS(t *testing.T) {
	useTempConfig(t)
	setAddFlags(t, map[string]*string{
		"name":         str("staging"),
		"cluster-name": str("staging-eks"),
		"region":       str("eu-central-1"),
		"profile":      str("staging-admin"),
		"role-arn":     str("arn:aws:iam::123456789012:role/eks-admin"),
	})

	cmd, _ := newTestCmd(t)
	require.NoError(t, runAdd(cmd, []string{"aws"}))

	store, err := getStore()
	require.NoError(t, err)
	record, err := store.FindByName(t.Context(), "staging")
	require.NoError(t, err)
	assert.Equal(t, "staging-admin", record.Profile)
	assert.Equal(t, "arn:aws:iam::123456789012:role/eks-admin", record.RoleARN)
}

func TestRunAddUnknownProvider(t *testing.T) {
	useTempConfig(t)
	setAddFlags(t, nil)

	cmd, _ := newTestCmd(t)
	err := runAdd(cmd, []string{"digitalocean"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "digitalocean")
}

func TestRunAddGCPWithoutProject(t *testing.T) {
	useTempConfig(t)
	setAddFlags(t, map[string]*string{
		"name":         str("prod"),
		"cluster-name": str("prod-gke"),
		"region":       str("europe-west1"),
	})

	cmd, _ := newTestCmd(t)
	err := runAdd(cmd, []string{"gcp"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRunAddDuplicateName(t *testing.T) {
	useTempConfig(t)
	seedCluster(t, gcpRecord("prod"))
	setAddFlags(t, map[string]*string{
		"name":         str("prod"),
		"cluster-name": str("another"),
		"region":       str("us-east1"),
		"project":      str("acme-platform"),
	})

	cmd, _ := newTestCmd(t)
	err := runAdd(cmd, []string{"gcp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prod")
}
