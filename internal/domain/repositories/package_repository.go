package repositories

import "github.com/rios0rios0/devtools/internal/domain/entities"

// PackageRepository reads and writes the JSON manifests of a package.
type PackageRepository interface {
	// ReadPackage parses the package.json found in dir.
	ReadPackage(dir string) (*entities.PackageManifest, error)

	// UpdateMgitManifest rewrites the mgit.json at path with the result of
	// update. A missing file is handed to update as an empty manifest.
	UpdateMgitManifest(path string, update func(*entities.MgitManifest) *entities.MgitManifest) error
}
