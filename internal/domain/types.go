package domain

// ProviderStatus is the ephemeral result of a non-fatal authentication probe.
type ProviderStatus struct {
	Provider      Provider
	Authenticated bool
	Identity      string
	Details       string
}

// CommandResult is the ephemeral result of one subprocess execution. Stdout
// and Stderr are empty when the command ran with inherited streams.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ImportSummary reports the outcome of merging an external cluster file into
// the store.
type ImportSummary struct {
	Added   []string
	Skipped []string
}

// RegistryParams carries the inputs for a container registry login.
type RegistryParams struct {
	Region   string
	Profile  string
	Registry string
}

// DiscoverFilters narrows a provider's native cluster listing.
type DiscoverFilters struct {
	Project       string
	Region        string
	Profile       string
	ResourceGroup string
}
