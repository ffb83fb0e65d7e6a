// Package config persists the cluster list as a flat JSON file under the
// user's configuration directory.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cloum/internal/domain"
	"cloum/internal/errors"
)

const (
	dirPermissions  = 0o700 // Owner-only access for security
	filePermissions = 0o600 // Read/write owner only
)

// clustersFile is the on-disk schema: {"clusters": [...]}.
type clustersFile struct {
	Clusters []domain.ClusterRecord `json:"clusters"`
}

// Store is a file-backed domain.ClusterStore. Every operation performs a
// fresh read-modify-write cycle with no cross-process locking; concurrent
// mutating invocations race and the last write wins. Accepted for a
// single-user interactive tool.
type Store struct {
	path   string
	logger *slog.Logger
}

var _ domain.ClusterStore = (*Store)(nil)

// NewStore creates a store backed by the given file path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// DefaultPath returns <user-config-dir>/cloum/clusters.json.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(configDir, "cloum", "clusters.json"), nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns all records, creating an empty store file on first use.
func (s *Store) Load(ctx context.Context) ([]domain.ClusterRecord, error) {
	if err := s.ensureFile(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.NewConfigurationError("clusters_file", s.path, "failed to read clusters file", err)
	}

	var file clustersFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, errors.NewConfigurationError("clusters_file", s.path, "invalid JSON in clusters file", err)
	}

	s.logger.DebugContext(ctx, "Loaded clusters file", "path", s.path, "count", len(file.Clusters))
	if file.Clusters == nil {
		return []domain.ClusterRecord{}, nil
	}
	return file.Clusters, nil
}

// Save overwrites the store with the given records, pretty-printed with a
// trailing newline so the file stays pleasant to hand-edit.
func (s *Store) Save(ctx context.Context, records []domain.ClusterRecord) error {
	if records == nil {
		records = []domain.ClusterRecord{}
	}

	data, err := json.MarshalIndent(clustersFile{Clusters: records}, "", "  ")
	if err != nil {
		return errors.NewConfigurationError("clusters_file", s.path, "failed to marshal clusters", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), dirPermissions); err != nil {
		return errors.NewConfigurationError("clusters_dir", filepath.Dir(s.path), "failed to create config directory", err)
	}
	if err := os.WriteFile(s.path, data, filePermissions); err != nil {
		return errors.NewConfigurationError("clusters_file", s.path, "failed to write clusters file", err)
	}

	s.logger.DebugContext(ctx, "Saved clusters file", "path", s.path, "count", len(records))
	return nil
}

// FindByName returns the record with the given name.
func (s *Store) FindByName(ctx context.Context, name string) (domain.ClusterRecord, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return domain.ClusterRecord{}, err
	}

	for _, record := range records {
		if record.Name == name {
			return record, nil
		}
	}

	return domain.ClusterRecord{}, errors.NewNotFoundError("cluster", name, recordNames(records))
}

// Add appends a validated record, rejecting duplicate names without
// mutating the store.
func (s *Store) Add(ctx context.Context, record domain.ClusterRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	records, err := s.Load(ctx)
	if err != nil {
		return err
	}

	for _, existing := range records {
		if existing.Name == record.Name {
			return errors.NewValidationError("name", record.Name, "unique",
				fmt.Sprintf("cluster '%s' already exists", record.Name))
		}
	}

	records = append(records, record)
	if err := s.Save(ctx, records); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Added cluster", "name", record.Name, "provider", record.Provider)
	return nil
}

// Remove deletes the record with the given name.
func (s *Store) Remove(ctx context.Context, name string) error {
	records, err := s.Load(ctx)
	if err != nil {
		return err
	}

	kept := make([]domain.ClusterRecord, 0, len(records))
	found := false
	for _, record := range records {
		if record.Name == name {
			found = true
			continue
		}
		kept = append(kept, record)
	}

	if !found {
		return errors.NewNotFoundError("cluster", name, recordNames(records))
	}

	if err := s.Save(ctx, kept); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Removed cluster", "name", name)
	return nil
}

// Import merges records from an external file of the same schema, skipping
// names that already exist in the store.
func (s *Store) Import(ctx context.Context, path string) (domain.ImportSummary, error) {
	var summary domain.ImportSummary

	data, err := os.ReadFile(path)
	if err != nil {
		return summary, errors.NewConfigurationError("import_file", path, "failed to read import file", err)
	}

	var file clustersFile
	if err := json.Unmarshal(data, &file); err != nil {
		return summary, errors.NewConfigurationError("import_file", path, "invalid JSON in import file", err)
	}

	records, err := s.Load(ctx)
	if err != nil {
		return summary, err
	}

	existing := make(map[string]bool, len(records))
	for _, record := range records {
		existing[record.Name] = true
	}

	for _, incoming := range file.Clusters {
		if existing[incoming.Name] {
			summary.Skipped = append(summary.Skipped, incoming.Name)
			continue
		}
		if err := incoming.Validate(); err != nil {
			return domain.ImportSummary{}, fmt.Errorf("invalid record '%s' in %s: %w", incoming.Name, path, err)
		}
		records = append(records, incoming)
		existing[incoming.Name] = true
		summary.Added = append(summary.Added, incoming.Name)
	}

	if len(summary.Added) > 0 {
		if err := s.Save(ctx, records); err != nil {
			return domain.ImportSummary{}, err
		}
	}

	s.logger.InfoContext(ctx, "Imported clusters",
		"path", path,
		"added", len(summary.Added),
		"skipped", len(summary.Skipped))
	return summary, nil
}

func (s *Store) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.NewConfigurationError("clusters_file", s.path, "failed to stat clusters file", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPermissions); err != nil {
		return errors.NewConfigurationError("clusters_dir", filepath.Dir(s.path), "failed to create config directory", err)
	}

	empty := []byte("{\n  \"clusters\": []\n}\n")
	if err := os.WriteFile(s.path, empty, filePermissions); err != nil {
		return errors.NewConfigurationError("clusters_file", s.path, "failed to create clusters file", err)
	}
	return nil
}

func recordNames(records []domain.ClusterRecord) []string {
	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, record.Name)
	}
	return names
}
