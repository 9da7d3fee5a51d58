package repositories

import "github.com/rios0rios0/reqlint/internal/domain/entities"

// PolicyRepository abstracts loading the version policy file.
type PolicyRepository interface {
	// Load reads the policy at the given path. A missing file yields an
	// empty policy, not an error.
	Load(path string) (entities.Policy, error)
}
