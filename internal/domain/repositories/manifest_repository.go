package repositories

import (
	"github.com/rios0rios0/reqlint/internal/domain/entities"
	"github.com/rios0rios0/reqlint/internal/parser"
)

// ManifestRepository abstracts manifest storage. The path may be a file
// or a directory containing a requirements.txt.
type ManifestRepository interface {
	// Resolve returns the manifest file path for the given argument.
	Resolve(path string) (string, error)

	// Load reads and parses the manifest at the given path.
	Load(path string) (parser.Result, error)

	// Raw returns the unparsed file content, for round-trip checks.
	Raw(path string) (string, error)

	// Save writes rendered manifest content back to disk.
	Save(manifest entities.Manifest) error
}
