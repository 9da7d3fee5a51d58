// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"context"
	"errors"
	"fmt"

	"github.com/rios0rios0/reqlint/internal/domain/entities"
	"github.com/rios0rios0/reqlint/internal/domain/repositories"
	"github.com/rios0rios0/reqlint/internal/parser"
)

// ---------------------------------------------------------------------------
// SpyManifestRepository
// ---------------------------------------------------------------------------

// SpyManifestRepository implements repositories.ManifestRepository as a
// configurable spy. Configure the response fields for the methods your
// test exercises, then inspect the call-tracking fields to verify
// behavior.
type SpyManifestRepository struct {
	// --- Resolve ---
	ResolvedPath string
	ResolveErr   error
	// spy: paths that were requested
	ResolvedArgs []string

	// --- Load ---
	LoadResult parser.Result
	LoadErr    error

	// --- Raw ---
	RawContent string
	RawErr     error

	// --- Save ---
	SaveErr error
	// spy: manifests that were written
	SavedManifests []entities.Manifest
}

var _ repositories.ManifestRepository = (*SpyManifestRepository)(nil)

func (r *SpyManifestRepository) Resolve(path string) (string, error) {
	r.ResolvedArgs = append(r.ResolvedArgs, path)
	if r.ResolveErr != nil {
		return "", r.ResolveErr
	}
	if r.ResolvedPath != "" {
		return r.ResolvedPath, nil
	}
	return path, nil
}

func (r *SpyManifestRepository) Load(_ string) (parser.Result, error) {
	return r.LoadResult, r.LoadErr
}

func (r *SpyManifestRepository) Raw(_ string) (string, error) {
	if r.RawErr != nil {
		return "", r.RawErr
	}
	if r.RawContent != "" {
		return r.RawContent, nil
	}
	return r.LoadResult.Manifest.Render(), nil
}

func (r *SpyManifestRepository) Save(m entities.Manifest) error {
	r.SavedManifests = append(r.SavedManifests, m)
	return r.SaveErr
}

// ---------------------------------------------------------------------------
// SpyIndexRepository
// ---------------------------------------------------------------------------

// SpyIndexRepository implements repositories.PackageIndexRepository as a
// configurable spy keyed on normalized package names.
type SpyIndexRepository struct {
	// --- LatestVersion ---
	Versions  map[string]string // normalized name -> latest version
	LatestErr error
	// spy: names that were queried
	QueriedNames []string
}

var _ repositories.PackageIndexRepository = (*SpyIndexRepository)(nil)

func (r *SpyIndexRepository) LatestVersion(_ context.Context, name string) (string, error) {
	normalized := entities.NormalizeName(name)
	r.QueriedNames = append(r.QueriedNames, normalized)

	if r.LatestErr != nil {
		return "", r.LatestErr
	}
	if version, ok := r.Versions[normalized]; ok {
		return version, nil
	}
	return "", fmt.Errorf("package %q not found on index", name)
}

// ---------------------------------------------------------------------------
// SpyVCSRepository
// ---------------------------------------------------------------------------

// SpyVCSRepository implements repositories.VCSRepository as a
// configurable spy.
type SpyVCSRepository struct {
	// --- CommitFiles ---
	Hash      string
	CommitErr error
	// spy: inputs received
	CommittedFiles [][]string
	CommitMessages []string
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

func (r *SpyVCSRepository) CommitFiles(paths []string, message string) (string, error) {
	r.CommittedFiles = append(r.CommittedFiles, paths)
	r.CommitMessages = append(r.CommitMessages, message)

	if r.CommitErr != nil {
		return "", r.CommitErr
	}
	if r.Hash != "" {
		return r.Hash, nil
	}
	return "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", nil
}

// ---------------------------------------------------------------------------
// StubPolicyRepository
// ---------------------------------------------------------------------------

// StubPolicyRepository implements repositories.PolicyRepository with a
// fixed response.
type StubPolicyRepository struct {
	Policy  entities.Policy
	LoadErr error
	// spy: paths that were requested
	LoadedPaths []string
}

var _ repositories.PolicyRepository = (*StubPolicyRepository)(nil)

func (r *StubPolicyRepository) Load(path string) (entities.Policy, error) {
	r.LoadedPaths = append(r.LoadedPaths, path)
	return r.Policy, r.LoadErr
}

// ---------------------------------------------------------------------------
// DummyVCSRepository — satisfies the interface but refuses to commit
// ---------------------------------------------------------------------------

// DummyVCSRepository is a no-op implementation of repositories.VCSRepository.
// Use it where the command under test must never reach the VCS.
type DummyVCSRepository struct{}

var _ repositories.VCSRepository = (*DummyVCSRepository)(nil)

func (d *DummyVCSRepository) CommitFiles(_ []string, _ string) (string, error) {
	return "", errors.New("unexpected commit on dummy VCS repository")
}
