package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

const (
	packageFileName = "package.json"
	jsonFileMode    = 0o644
)

// PackageRepository reads package.json files and rewrites mgit.json files.
// Both are parsed leniently: comments and trailing commas are accepted.
type PackageRepository struct{}

// NewPackageRepository creates a new PackageRepository.
func NewPackageRepository() *PackageRepository {
	return &PackageRepository{}
}

// ReadPackage parses dir/package.json.
func (it *PackageRepository) ReadPackage(dir string) (*entities.PackageManifest, error) {
	path := filepath.Join(dir, packageFileName)

	var manifest entities.PackageManifest
	if err := readJSON(path, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// UpdateMgitManifest loads path, applies update and writes the result back.
func (it *PackageRepository) UpdateMgitManifest(
	path string,
	update func(*entities.MgitManifest) *entities.MgitManifest,
) error {
	current := &entities.MgitManifest{Dependencies: map[string]string{}}
	if err := readJSON(path, current); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return writeJSON(path, update(current))
}

func readJSON(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if unmarshalErr := json.Unmarshal(jsonc.ToJSON(data), target); unmarshalErr != nil {
		return fmt.Errorf("failed to parse %s: %w", path, unmarshalErr)
	}
	return nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if writeErr := os.WriteFile(path, append(data, '\n'), jsonFileMode); writeErr != nil {
		return fmt.Errorf("failed to write %s: %w", path, writeErr)
	}
	return nil
}
