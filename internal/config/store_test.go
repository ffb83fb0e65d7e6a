package config_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"cloum/internal/config"
	"cloum/internal/domain"
	"cloum/internal/errors"
	"cloum/internal/testutil"
)

type StoreTestSuite struct {
	suite.Suite

	ctx   context.Context
	path  string
	store *config.Store
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "cloum", "clusters.json")
	s.store = config.NewStore(s.path, testutil.Logger())
}

func (s *StoreTestSuite) gcpRecord(name string) domain.ClusterRecord {
	return domain.ClusterRecord{
		Name:        name,
		Provider:    domain.ProviderGCP,
		Region:      "europe-west1",
		ClusterName: "payments",
		Project:     "acme-prod",
	}
}

func (s *StoreTestSuite) TestLoad_CreatesFileOnFirstUse() {
	records, err := s.store.Load(s.ctx)

	s.Require().NoError(err)
	s.Empty(records)

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal("{\n  \"clusters\": []\n}\n", string(data))
}

func (s *StoreTestSuite) TestLoad_InvalidJSON() {
	s.Require().NoError(os.MkdirAll(filepath.Dir(s.path), 0o700))
	s.Require().NoError(os.WriteFile(s.path, []byte("{not json"), 0o600))

	_, err := s.store.Load(s.ctx)

	s.Require().Error(err)
	s.True(errors.IsConfiguration(err))
}

func (s *StoreTestSuite) TestAdd_RoundTrip() {
	record := domain.ClusterRecord{
		Name:        "prod-eks",
		Provider:    domain.ProviderAWS,
		Region:      "us-east-1",
		ClusterName: "prod",
		Profile:     "acme",
		RoleARN:     "arn:aws:iam::123456789012:role/eks-admin",
	}

	s.Require().NoError(s.store.Add(s.ctx, record))

	loaded, err := s.store.FindByName(s.ctx, "prod-eks")
	s.Require().NoError(err)
	s.Equal(record, loaded)
}

func (s *StoreTestSuite) TestAdd_DuplicateNameDoesNotMutate() {
	s.Require().NoError(s.store.Add(s.ctx, s.gcpRecord("prod")))

	before, err := os.ReadFile(s.path)
	s.Require().NoError(err)

	dup := s.gcpRecord("prod")
	dup.Region = "us-central1"
	err = s.store.Add(s.ctx, dup)

	s.Require().Error(err)
	s.True(errors.IsValidation(err))
	s.Contains(err.Error(), "already exists")

	after, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal(before, after, "duplicate add must not mutate the store")
}

func (s *StoreTestSuite) TestAdd_InvalidRecordRejected() {
	record := s.gcpRecord("no-project")
	record.Project = ""

	err := s.store.Add(s.ctx, record)

	s.Require().Error(err)
	s.True(errors.IsValidation(err))
}

func (s *StoreTestSuite) TestRemove() {
	s.Require().NoError(s.store.Add(s.ctx, s.gcpRecord("prod")))
	s.Require().NoError(s.store.Add(s.ctx, s.gcpRecord("staging")))

	s.Require().NoError(s.store.Remove(s.ctx, "prod"))

	records, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Len(records, 1)
	s.Equal("staging", records[0].Name)
}

func (s *StoreTestSuite) TestRemove_MissingLeavesFileIdentical() {
	s.Require().NoError(s.store.Add(s.ctx, s.gcpRecord("prod")))

	before, err := os.ReadFile(s.path)
	s.Require().NoError(err)

	err = s.store.Remove(s.ctx, "nope")

	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Contains(err.Error(), "prod")

	after, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal(before, after)
}

func (s *StoreTestSuite) TestFindByName_EmptyStore() {
	_, err := s.store.FindByName(s.ctx, "anything")

	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Contains(err.Error(), "(none configured)")
}

func (s *StoreTestSuite) TestSave_PreservesInsertionOrder() {
	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		s.Require().NoError(s.store.Add(s.ctx, s.gcpRecord(name)))
	}

	records, err := s.store.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 3)
	for i, name := range names {
		s.Equal(name, records[i].Name)
	}
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func writeImportFile(t *testing.T, dir string, records []domain.ClusterRecord) string {
	t.Helper()
	data, err := json.MarshalIndent(map[string]any{"clusters": records}, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(dir, "import.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestImport(t *testing.T) {
	ctx := context.Background()

	newStore := func(t *testing.T) (*config.Store, string) {
		dir := t.TempDir()
		path := filepath.Join(dir, "clusters.json")
		return config.NewStore(path, testutil.Logger()), dir
	}

	azure := func(name string) domain.ClusterRecord {
		return domain.ClusterRecord{
			Name:          name,
			Provider:      domain.ProviderAzure,
			Region:        "westeurope",
			ClusterName:   "core",
			ResourceGroup: "rg-core",
		}
	}

	t.Run("new and duplicate records", func(t *testing.T) {
		store, dir := newStore(t)
		require.NoError(t, store.Add(ctx, azure("existing")))

		path := writeImportFile(t, dir, []domain.ClusterRecord{
			azure("existing"),
			azure("fresh-one"),
			azure("fresh-two"),
		})

		summary, err := store.Import(ctx, path)

		require.NoError(t, err)
		assert.Equal(t, []string{"fresh-one", "fresh-two"}, summary.Added)
		assert.Equal(t, []string{"existing"}, summary.Skipped)

		records, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("all duplicates leaves count unchanged", func(t *testing.T) {
		store, dir := newStore(t)
		require.NoError(t, store.Add(ctx, azure("only")))

		path := writeImportFile(t, dir, []domain.ClusterRecord{azure("only")})

		summary, err := store.Import(ctx, path)

		require.NoError(t, err)
		assert.Empty(t, summary.Added)
		assert.Equal(t, []string{"only"}, summary.Skipped)

		records, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		store, dir := newStore(t)

		_, err := store.Import(ctx, filepath.Join(dir, "nope.json"))

		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})
}
