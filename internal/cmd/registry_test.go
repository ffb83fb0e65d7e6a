package cmd

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloum/internal/domain"
	"cloum/internal/errors"
	"cloum/internal/testutil"
)

func setRegistryFlags(t *testing.T, region, profile, name string) {
	t.Helper()
	prevRegion, prevProfile, prevName := registryRegion, registryProfile, registryName
	t.Cleanup(func() {
		registryRegion, registryProfile, registryName = prevRegion, prevProfile, prevName
	})
	registryRegion, registryProfile, registryName = region, profile, name
}

func TestRunRegistryGCP(t *testing.T) {
	setRegistryFlags(t, "europe-west1", "", "")
	runner := testutil.NewScriptRunner()
	runner.Stub("gcloud auth configure-docker", domain.CommandResult{})
	t.Cleanup(SetCommandRunner(runner))

	cmd, out := newTestCmd(t)
	require.NoError(t, runRegistry(cmd, []string{"gcp"}))

	assert.Contains(t, runner.CommandLines(),
		"gcloud auth configure-docker europe-west1-docker.pkg.dev --quiet")
	assert.Contains(t, out.String(), "Docker configured for europe-west1-docker.pkg.dev")
}

func TestRunRegistryRegionRequired(t *testing.T) {
	setRegistryFlags(t, "", "", "")
	runner := testutil.NewScriptRunner()
	t.Cleanup(SetCommandRunner(runner))

	cmd, _ := newTestCmd(t)
	for _, provider := range []string{"gcp", "aws"} {
		err := runRegistry(cmd, []string{provider})
		require.Error(t, err, provider)
		assert.True(t, errors.IsValidation(err), provider)
	}
	assert.Empty(t, runner.Calls())
}

func TestRunRegistryAzureWithoutNameListsRegistries(t *testing.T) {
	setRegistryFlags(t, "", "", "")
	runner := testutil.NewScriptRunner()
	runner.Stub("az acr list", domain.CommandResult{Stdout: "NAME    RESOURCE GROUP\nacmecr  platform-rg\n"})
	t.Cleanup(SetCommandRunner(runner))

	cmd, out := newTestCmd(t)
	require.NoError(t, runRegistry(cmd, []string{"azure"}))
	assert.Contains(t, out.String(), "Available registries")
	assert.Contains(t, out.String(), "acmecr")
}

func TestRunRegistryAll(t *testing.T) {
	setRegistryFlags(t, "eu-central-1", "", "acmecr")
	runner := testutil.NewScriptRunner()
	runner.Stub("gcloud auth configure-docker", domain.CommandResult{})
	runner.Stub("aws ecr get-login-password", domain.CommandResult{Stdout: "hunter2\n"})
	runner.Stub("aws sts get-caller-identity", domain.CommandResult{Stdout: "123456789012\n"})
	runner.Stub("docker login", domain.CommandResult{})
	runner.Stub("az acr login", domain.CommandResult{})
	t.Cleanup(SetCommandRunner(runner))

	cmd, _ := newTestCmd(t)
	require.NoError(t, runRegistry(cmd, []string{"all"}))

	lines := runner.CommandLines()
	assert.Contains(t, lines, "gcloud auth configure-docker eu-central-1-docker.pkg.dev --quiet")
	assert.Contains(t, lines, "docker login --username AWS --password-stdin 123456789012.dkr.ecr.eu-central-1.amazonaws.com")
	assert.Contains(t, lines, "az acr login --name acmecr")
}

// The three logins overlap inside the runner, yet each provider's status
// lines must come out whole and grouped, never interleaved.
func TestRunRegistryAllConcurrentOutputIntact(t *testing.T) {
	setRegistryFlags(t, "eu-central-1", "", "acmecr")
	runner := testutil.NewScriptRunner()
	runner.Stub("gcloud auth configure-docker", domain.CommandResult{})
	runner.Stub("aws ecr get-login-password", domain.CommandResult{Stdout: "hunter2\n"})
	runner.Stub("aws sts get-caller-identity", domain.CommandResult{Stdout: "123456789012\n"})
	runner.Stub("docker login", domain.CommandResult{})
	runner.Stub("az acr login", domain.CommandResult{})

	var mu sync.Mutex
	arrived := 0
	release := make(chan struct{})
	runner.BeforeReturn = func(call testutil.Call) {
		line := call.CommandLine()
		first := strings.HasPrefix(line, "gcloud auth configure-docker") ||
			strings.HasPrefix(line, "aws ecr get-login-password") ||
			strings.HasPrefix(line, "az acr login")
		if !first {
			return
		}
		mu.Lock()
		arrived++
		if arrived == 3 {
			close(release)
		}
		mu.Unlock()
		select {
		case <-release:
		case <-time.After(5 * time.Second):
			t.Error("registry logins did not run concurrently")
		}
	}
	t.Cleanup(SetCommandRunner(runner))

	cmd, out := newTestCmd(t)
	require.NoError(t, runRegistry(cmd, []string{"all"}))
	require.Equal(t, 3, arrived)

	output := out.String()
	gcloudAt := strings.Index(output, "Docker configured for eu-central-1-docker.pkg.dev")
	awsAt := strings.Index(output, "Docker logged in to 123456789012.dkr.ecr.eu-central-1.amazonaws.com")
	azureAt := strings.Index(output, "Docker logged in to acmecr")
	require.NotEqual(t, -1, gcloudAt)
	require.NotEqual(t, -1, awsAt)
	require.NotEqual(t, -1, azureAt)
	assert.Less(t, gcloudAt, awsAt, "blocks must print in provider order")
	assert.Less(t, awsAt, azureAt, "blocks must print in provider order")
}

func TestRunRegistryAllReportsFailures(t *testing.T) {
	setRegistryFlags(t, "eu-central-1", "", "acmecr")
	runner := testutil.NewScriptRunner()
	runner.Stub("gcloud auth configure-docker", domain.CommandResult{})
	runner.Stub("aws ecr get-login-password", domain.CommandResult{
		ExitCode: 255,
		Stderr:   "Error loading SSO Token: Token for session has expired",
	})
	runner.Stub("az acr login", domain.CommandResult{})
	t.Cleanup(SetCommandRunner(runner))

	cmd, out := newTestCmd(t)
	err := runRegistry(cmd, []string{"all"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 provider(s)")
	assert.Contains(t, out.String(), "AWS (EKS) registry login failed")
}
