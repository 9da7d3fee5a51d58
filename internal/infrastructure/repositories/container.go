package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/reqlint/internal/domain/repositories"
	gitRepo "github.com/rios0rios0/reqlint/internal/infrastructure/repositories/git"
	manifestRepo "github.com/rios0rios0/reqlint/internal/infrastructure/repositories/manifest"
	policyRepo "github.com/rios0rios0/reqlint/internal/infrastructure/repositories/policy"
	pypiRepo "github.com/rios0rios0/reqlint/internal/infrastructure/repositories/pypi"
)

// IndexFactory builds a package index repository for a base URL. The
// URL comes from the settings, which are only known at execution time.
type IndexFactory func(baseURL string) domainRepos.PackageIndexRepository

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(manifestRepo.NewFileManifestRepository); err != nil {
		return err
	}
	if err := container.Provide(gitRepo.NewGoGitRepository); err != nil {
		return err
	}
	if err := container.Provide(policyRepo.NewHCLPolicyRepository); err != nil {
		return err
	}

	if err := container.Provide(func() IndexFactory {
		return pypiRepo.NewPyPIIndexRepository
	}); err != nil {
		return err
	}

	return nil
}
