package repositories

import "context"

// PackageIndexRepository abstracts the package index queried for latest
// release versions.
type PackageIndexRepository interface {
	// LatestVersion returns the newest published version of a package.
	LatestVersion(ctx context.Context, name string) (string, error)
}
