package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reqlint/internal/domain/entities"
	domainRepos "github.com/rios0rios0/reqlint/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/reqlint/internal/infrastructure/repositories"
	"github.com/rios0rios0/reqlint/internal/version"
)

// Outdated is the interface for the outdated command.
type Outdated interface {
	Execute(ctx context.Context, settings *entities.Settings, opts OutdatedOptions) ([]OutdatedPin, error)
}

// OutdatedOptions holds runtime options for the outdated command.
type OutdatedOptions struct {
	Path   string
	DryRun bool
}

// OutdatedPin describes a pinned record with a newer release on the index.
type OutdatedPin struct {
	Name       string
	CurrentVer string
	LatestVer  string
	Line       int
}

// OutdatedCommand reports pinned records whose version is behind the
// latest release on the package index.
type OutdatedCommand struct {
	manifests    domainRepos.ManifestRepository
	indexFactory infraRepos.IndexFactory
}

// NewOutdatedCommand creates a new OutdatedCommand.
func NewOutdatedCommand(
	manifests domainRepos.ManifestRepository,
	indexFactory infraRepos.IndexFactory,
) *OutdatedCommand {
	return &OutdatedCommand{manifests: manifests, indexFactory: indexFactory}
}

// Execute queries the index for every pinned record and returns those
// with newer releases. Per-package index failures degrade to warnings
// so one unreachable package never hides the rest of the report.
func (it *OutdatedCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts OutdatedOptions,
) ([]OutdatedPin, error) {
	path, err := it.manifests.Resolve(opts.Path)
	if err != nil {
		return nil, err
	}

	result, loadErr := it.manifests.Load(path)
	if loadErr != nil {
		return nil, loadErr
	}

	pinned := pinnedRequirements(result.Manifest, settings)
	logger.Infof("[outdated] Checking %d pinned record(s) against %s", len(pinned), settings.IndexURL)

	if opts.DryRun {
		for _, req := range pinned {
			logger.Infof("[outdated] [DRY RUN] Would query index for %s", req.NormalizedName())
		}
		return nil, nil
	}

	index := it.indexFactory(settings.IndexURL)

	var outdated []OutdatedPin
	for _, req := range pinned {
		latest, queryErr := index.LatestVersion(ctx, req.Name)
		if queryErr != nil {
			logger.Warnf("[outdated] Skipping %s: %v", req.NormalizedName(), queryErr)
			continue
		}

		if version.IsNewerVersion(req.Version, latest) {
			outdated = append(outdated, OutdatedPin{
				Name:       req.Name,
				CurrentVer: req.Version,
				LatestVer:  latest,
				Line:       req.Line,
			})
		}
	}

	return outdated, nil
}

// pinnedRequirements returns the records worth querying: exact pins not
// on the ignore list.
func pinnedRequirements(
	manifest entities.Manifest,
	settings *entities.Settings,
) []entities.Requirement {
	pinned := make([]entities.Requirement, 0, len(manifest.Requirements))
	for _, req := range manifest.Requirements {
		if req.IsPinned() && !settings.IsIgnored(req.Name) {
			pinned = append(pinned, req)
		}
	}
	return pinned
}
