package domain

import "context"

// ClusterStore manages the persistent list of cluster records.
type ClusterStore interface {
	// Load returns all records, creating an empty store file on first use.
	Load(ctx context.Context) ([]ClusterRecord, error)

	// Save overwrites the store with the given records.
	Save(ctx context.Context, records []ClusterRecord) error

	// FindByName returns the record with the given name, or a not-found
	// error listing the known names.
	FindByName(ctx context.Context, name string) (ClusterRecord, error)

	// Add appends a validated record, rejecting duplicate names without
	// mutating the store.
	Add(ctx context.Context, record ClusterRecord) error

	// Remove deletes the record with the given name, erroring when absent.
	Remove(ctx context.Context, name string) error

	// Import merges records from an external file of the same schema,
	// skipping names that already exist.
	Import(ctx context.Context, path string) (ImportSummary, error)
}

// CommandRunner executes external CLIs in one of three modes. Interactive
// runs inherit the caller's streams so that provider login prompts reach the
// user; Captured runs drain both streams for programmatic use.
type CommandRunner interface {
	Interactive(ctx context.Context, name string, args ...string) (CommandResult, error)
	InteractiveEnv(ctx context.Context, env map[string]string, name string, args ...string) (CommandResult, error)
	Captured(ctx context.Context, name string, args ...string) (CommandResult, error)
	CapturedEnv(ctx context.Context, env map[string]string, name string, args ...string) (CommandResult, error)
	CapturedWithStdin(ctx context.Context, stdin, name string, args ...string) (CommandResult, error)
}

// ClusterProvider translates generic cluster operations into one cloud
// platform's CLI invocations.
type ClusterProvider interface {
	// Provider returns the platform this adapter serves.
	Provider() Provider

	// Connect runs the full credential workflow for the record: ensure
	// auth, set the active project/subscription, fetch credentials, verify
	// alignment, probe reachability.
	Connect(ctx context.Context, record ClusterRecord) error

	// Status probes authentication without ever returning an error.
	Status(ctx context.Context) ProviderStatus

	// Discover lists the clusters visible with the current credentials.
	Discover(ctx context.Context, filters DiscoverFilters) error

	// RegistryLogin authenticates the local container tool against the
	// platform's registry.
	RegistryLogin(ctx context.Context, params RegistryParams) error
}
