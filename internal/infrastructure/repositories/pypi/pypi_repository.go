package pypi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rios0rios0/reqlint/internal/domain/entities"
	"github.com/rios0rios0/reqlint/internal/domain/repositories"
)

const indexTimeout = 15 * time.Second

// PyPIIndexRepository implements repositories.PackageIndexRepository
// against the PyPI JSON API (https://pypi.org/pypi/<name>/json).
type PyPIIndexRepository struct {
	baseURL string
	client  *http.Client
}

// NewPyPIIndexRepository creates an index repository for the given base
// URL (e.g. "https://pypi.org" or a private mirror).
func NewPyPIIndexRepository(baseURL string) repositories.PackageIndexRepository {
	return &PyPIIndexRepository{
		baseURL: baseURL,
		client:  &http.Client{Timeout: indexTimeout},
	}
}

// projectResponse is the subset of the PyPI JSON API response we need.
type projectResponse struct {
	Info struct {
		Version string `json:"version"`
		Yanked  bool   `json:"yanked"`
	} `json:"info"`
}

// LatestVersion returns the newest published version of a package.
func (r *PyPIIndexRepository) LatestVersion(ctx context.Context, name string) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/pypi/%s/json", r.baseURL, url.PathEscape(entities.NormalizeName(name)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to query index for %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("package %q not found on index", name)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var project projectResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&project); decodeErr != nil {
		return "", fmt.Errorf("failed to parse index response for %q: %w", name, decodeErr)
	}

	if project.Info.Version == "" {
		return "", errors.New("index response carries no version")
	}

	return project.Info.Version, nil
}
