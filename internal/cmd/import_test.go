package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunImport(t *testing.T) {
	useTempConfig(t)
	seedCluster(t, gcpRecord("prod"))

	source := filepath.Join(t.TempDir(), "handoff.json")
	payload := `{
  "clusters": [
    {"name": "prod", "provider": "gcp", "region": "europe-west1", "clusterName": "prod-gke", "project": "acme-platform"},
    {"name": "staging", "provider": "aws", "region": "eu-central-1", "clusterName": "staging-eks"}
  ]
}
`
	require.NoError(t, os.WriteFile(source, []byte(payload), 0o600))

	cmd, out := newTestCmd(t)
	require.NoError(t, runImport(cmd, []string{source}))

	output := out.String()
	assert.Contains(t, output, "Imported 1 cluster(s): staging")
	assert.Contains(t, output, "Skipped 1 duplicate(s): prod")

	store, err := getStore()
	require.NoError(t, err)
	clusters, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Len(t, clusters, 2)
}

func TestRunImportMissingFile(t *testing.T) {
	useTempConfig(t)

	cmd, _ := newTestCmd(t)
	err := runImport(cmd, []string{filepath.Join(t.TempDir(), "absent.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import failed")
}
