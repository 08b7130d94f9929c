//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	"github.com/rios0rios0/devtools/internal/domain/repositories"
)

// StubPackageRepository implements repositories.PackageRepository with
// in-memory manifests keyed by directory.
type StubPackageRepository struct {
	Packages  map[string]*entities.PackageManifest
	ReadErr   error
	UpdateErr error

	// Existing is handed to the update function; nil means a missing file.
	Existing        *entities.MgitManifest
	WrittenPath     string
	WrittenMgit     *entities.MgitManifest
	UpdateCallCount int
}

var _ repositories.PackageRepository = (*StubPackageRepository)(nil)

func (s *StubPackageRepository) ReadPackage(dir string) (*entities.PackageManifest, error) {
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	pkg, ok := s.Packages[dir]
	if !ok {
		return nil, fmt.Errorf("no package.json in %s", dir)
	}
	return pkg, nil
}

func (s *StubPackageRepository) UpdateMgitManifest(
	path string,
	update func(*entities.MgitManifest) *entities.MgitManifest,
) error {
	s.UpdateCallCount++
	if s.UpdateErr != nil {
		return s.UpdateErr
	}

	existing := s.Existing
	if existing == nil {
		existing = &entities.MgitManifest{Dependencies: map[string]string{}}
	}
	s.WrittenPath = path
	s.WrittenMgit = update(existing)
	return nil
}
