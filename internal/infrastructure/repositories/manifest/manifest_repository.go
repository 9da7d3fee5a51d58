package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/reqlint/internal/domain/entities"
	"github.com/rios0rios0/reqlint/internal/domain/repositories"
	"github.com/rios0rios0/reqlint/internal/parser"
)

const (
	manifestFileName = "requirements.txt"
	manifestFileMode = 0o644
)

// FileManifestRepository implements repositories.ManifestRepository on
// the local filesystem.
type FileManifestRepository struct{}

// NewFileManifestRepository creates a new filesystem-backed manifest
// repository.
func NewFileManifestRepository() repositories.ManifestRepository {
	return &FileManifestRepository{}
}

// Resolve maps a path argument to a manifest file: directories resolve
// to the requirements.txt inside them.
func (r *FileManifestRepository) Resolve(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	info, statErr := os.Stat(abs)
	if statErr != nil {
		return "", fmt.Errorf("cannot access %q: %w", path, statErr)
	}

	if info.IsDir() {
		abs = filepath.Join(abs, manifestFileName)
		if _, statErr = os.Stat(abs); statErr != nil {
			return "", fmt.Errorf("no %s found in %q: %w", manifestFileName, path, statErr)
		}
	}

	return abs, nil
}

// Load reads and parses the manifest at the given path.
func (r *FileManifestRepository) Load(path string) (parser.Result, error) {
	content, err := r.Raw(path)
	if err != nil {
		return parser.Result{}, err
	}

	result := parser.Parse(content, path)
	logger.Debugf(
		"[manifest] Parsed %s: %d records, %d option lines, %d parse findings",
		path, len(result.Manifest.Requirements), len(result.Manifest.Options), len(result.Findings),
	)
	return result, nil
}

// Raw returns the unparsed manifest content.
func (r *FileManifestRepository) Raw(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	return string(data), nil
}

// Save writes the rendered manifest back to its path.
func (r *FileManifestRepository) Save(m entities.Manifest) error {
	if writeErr := os.WriteFile(m.Path, []byte(m.Render()), manifestFileMode); writeErr != nil {
		return fmt.Errorf("failed to write manifest %q: %w", m.Path, writeErr)
	}
	return nil
}
