package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reqlint/internal/domain/entities"
	domainRepos "github.com/rios0rios0/reqlint/internal/domain/repositories"
)

const (
	changelogFileName = "CHANGELOG.md"
	changelogFileMode = 0o644

	commitMessage  = "chore: canonicalized requirements manifest"
	changelogEntry = "- changed the requirements manifest to canonical form (sorted, duplicates merged)"
)

// ErrNotCanonical is returned by check mode when the manifest on disk
// differs from its canonical form.
var ErrNotCanonical = errors.New("manifest is not in canonical form")

// Format is the interface for the fmt command.
type Format interface {
	Execute(ctx context.Context, settings *entities.Settings, opts FormatOptions) (*FormatResult, error)
}

// FormatOptions holds runtime options for the fmt command.
type FormatOptions struct {
	Path   string
	Write  bool // Rewrite the file in place
	Check  bool // Exit non-zero when not canonical, change nothing
	Commit bool // Commit the rewritten manifest (implies Write)
	DryRun bool
}

// FormatResult holds the outcome of a format run.
type FormatResult struct {
	Rendered   string
	Changed    bool
	CommitHash string
}

// FormatCommand renders a manifest in canonical form: header verbatim,
// duplicates merged, records sorted case-insensitively.
type FormatCommand struct {
	manifests domainRepos.ManifestRepository
	vcs       domainRepos.VCSRepository
}

// NewFormatCommand creates a new FormatCommand.
func NewFormatCommand(
	manifests domainRepos.ManifestRepository,
	vcs domainRepos.VCSRepository,
) *FormatCommand {
	return &FormatCommand{manifests: manifests, vcs: vcs}
}

// Execute canonicalizes the manifest at opts.Path.
func (it *FormatCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts FormatOptions,
) (*FormatResult, error) {
	path, err := it.manifests.Resolve(opts.Path)
	if err != nil {
		return nil, err
	}

	result, loadErr := it.manifests.Load(path)
	if loadErr != nil {
		return nil, loadErr
	}
	if entities.HasErrors(result.Findings) {
		return nil, fmt.Errorf(
			"cannot format %s: %d line(s) failed to parse, run lint first", path, countErrors(result.Findings),
		)
	}

	canonical, canonErr := result.Manifest.Canonical()
	if canonErr != nil {
		return nil, fmt.Errorf("cannot format %s: %w", path, canonErr)
	}

	raw, rawErr := it.manifests.Raw(path)
	if rawErr != nil {
		return nil, rawErr
	}

	rendered := canonical.Render()
	formatResult := &FormatResult{Rendered: rendered, Changed: rendered != raw}

	switch {
	case opts.Check:
		if formatResult.Changed {
			return formatResult, fmt.Errorf("%s: %w", path, ErrNotCanonical)
		}
		logger.Infof("[fmt] %s is canonical", path)
		return formatResult, nil

	case opts.DryRun:
		logger.Infof("[fmt] [DRY RUN] Would rewrite %s (changed: %v)", path, formatResult.Changed)
		return formatResult, nil

	case opts.Write || opts.Commit:
		return it.write(path, canonical, formatResult, opts.Commit)

	default:
		return formatResult, nil
	}
}

// write persists the canonical manifest and optionally commits it along
// with a changelog entry.
func (it *FormatCommand) write(
	path string,
	canonical entities.Manifest,
	formatResult *FormatResult,
	commit bool,
) (*FormatResult, error) {
	if !formatResult.Changed {
		logger.Infof("[fmt] %s already canonical, nothing to write", path)
		return formatResult, nil
	}

	if saveErr := it.manifests.Save(canonical); saveErr != nil {
		return nil, saveErr
	}
	logger.Infof("[fmt] Rewrote %s", path)

	if !commit {
		return formatResult, nil
	}

	files := []string{path}
	if changelogPath, updated := updateChangelog(filepath.Dir(path)); updated {
		files = append(files, changelogPath)
	}

	hash, commitErr := it.vcs.CommitFiles(files, commitMessage)
	if commitErr != nil {
		return nil, fmt.Errorf("failed to commit: %w", commitErr)
	}

	logger.Infof("[fmt] Committed as %s", hash)
	formatResult.CommitHash = hash
	return formatResult, nil
}

// updateChangelog inserts a Keep-a-Changelog entry into the CHANGELOG.md
// next to the manifest, when one exists.
func updateChangelog(dir string) (string, bool) {
	changelogPath := filepath.Join(dir, changelogFileName)

	content, err := os.ReadFile(changelogPath)
	if err != nil {
		return "", false // no changelog present
	}

	modified := entities.InsertChangelogEntry(string(content), []string{changelogEntry})
	if modified == string(content) {
		return "", false
	}

	if writeErr := os.WriteFile(changelogPath, []byte(modified), changelogFileMode); writeErr != nil {
		logger.Warnf("[fmt] Failed to update %s: %v", changelogPath, writeErr)
		return "", false
	}

	return changelogPath, true
}

// countErrors counts error-severity findings.
func countErrors(findings []entities.Finding) int {
	count := 0
	for _, f := range findings {
		if f.Severity == entities.SeverityError {
			count++
		}
	}
	return count
}
