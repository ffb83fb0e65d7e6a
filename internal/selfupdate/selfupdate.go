// Package selfupdate checks GitHub releases for a newer cloum build and
// replaces the running executable in place.
package selfupdate

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/creativeprojects/go-selfupdate"

	"cloum/internal/ui"
	"cloum/internal/version"
)

// Repository is the GitHub slug releases are published under.
const Repository = "cloum-dev/cloum"

// Updater drives the update flow.
type Updater struct {
	printer *ui.Printer
	logger  *slog.Logger
}

// NewUpdater creates an updater.
func NewUpdater(printer *ui.Printer, logger *slog.Logger) *Updater {
	return &Updater{
		printer: printer,
		logger:  logger,
	}
}

// Decide maps the version relation to whether the release should be applied
// and the line to show the user.
func Decide(relation version.Relation, latest string, force bool) (bool, string) {
	switch relation {
	case version.Older:
		return true, fmt.Sprintf("Update available: %s", latest)
	case version.Newer:
		if force {
			return true, fmt.Sprintf("Forcing downgrade to released version %s", latest)
		}
		return false, fmt.Sprintf("Current build is newer than the latest release (%s); not updating", latest)
	default:
		if force {
			return true, fmt.Sprintf("Reinstalling %s", latest)
		}
		return false, "Already up to date"
	}
}

// Run checks the latest release and applies it when the current build is
// older (or --force was given).
func (u *Updater) Run(ctx context.Context, currentVersion string, force bool) error {
	if version.IsDev(currentVersion) {
		return fmt.Errorf("cannot self-update a development version; install a released build first")
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(Repository))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", Repository)
	}

	relation, err := version.Compare(currentVersion, latest.Version())
	if err != nil {
		return err
	}

	apply, message := Decide(relation, latest.Version(), force)
	if !apply {
		if relation == version.Newer {
			u.printer.Warn("%s", message)
		} else {
			u.printer.Success("%s", message)
		}
		return nil
	}
	u.printer.Info("%s", message)

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate current executable: %w", err)
	}

	u.logger.InfoContext(ctx, "Applying update",
		"current", currentVersion,
		"latest", latest.Version(),
		"asset", latest.AssetName)
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to apply update: %w", err)
	}

	u.printer.Success("Updated to %s", latest.Version())
	if latest.ReleaseNotes != "" {
		u.printer.Info("\nRelease notes:\n%s", latest.ReleaseNotes)
	}
	return nil
}
