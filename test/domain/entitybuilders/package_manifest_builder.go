//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"maps"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PackageManifestBuilder helps create test package manifests with a fluent interface.
type PackageManifestBuilder struct {
	*testkit.BaseBuilder
	name            string
	version         string
	repository      string
	dependencies    map[string]string
	devDependencies map[string]string
}

// NewPackageManifestBuilder creates a new package manifest builder with sensible defaults.
func NewPackageManifestBuilder() *PackageManifestBuilder {
	return &PackageManifestBuilder{
		BaseBuilder:     testkit.NewBaseBuilder(),
		name:            "@ckeditor/ckeditor5-engine",
		version:         "1.0.0",
		dependencies:    map[string]string{},
		devDependencies: map[string]string{},
	}
}

// WithName sets the package name.
func (b *PackageManifestBuilder) WithName(name string) *PackageManifestBuilder {
	b.name = name
	return b
}

// WithVersion sets the package version.
func (b *PackageManifestBuilder) WithVersion(version string) *PackageManifestBuilder {
	b.version = version
	return b
}

// WithRepository sets the repository URL.
func (b *PackageManifestBuilder) WithRepository(url string) *PackageManifestBuilder {
	b.repository = url
	return b
}

// WithDependency adds a runtime dependency.
func (b *PackageManifestBuilder) WithDependency(name, version string) *PackageManifestBuilder {
	b.dependencies[name] = version
	return b
}

// WithDevDependency adds a development dependency.
func (b *PackageManifestBuilder) WithDevDependency(name, version string) *PackageManifestBuilder {
	b.devDependencies[name] = version
	return b
}

// Build creates the manifest (satisfies testkit.Builder interface).
func (b *PackageManifestBuilder) Build() interface{} {
	return b.BuildManifest()
}

// BuildManifest creates the manifest with a concrete return type.
func (b *PackageManifestBuilder) BuildManifest() *entities.PackageManifest {
	return &entities.PackageManifest{
		Name:            b.name,
		Version:         b.version,
		Repository:      entities.RepositoryField{URL: b.repository},
		Dependencies:    maps.Clone(b.dependencies),
		DevDependencies: maps.Clone(b.devDependencies),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PackageManifestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "@ckeditor/ckeditor5-engine"
	b.version = "1.0.0"
	b.repository = ""
	b.dependencies = map[string]string{}
	b.devDependencies = map[string]string{}
	return b
}

// Clone creates a deep copy of the PackageManifestBuilder.
func (b *PackageManifestBuilder) Clone() testkit.Builder {
	return &PackageManifestBuilder{
		BaseBuilder:     b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:            b.name,
		version:         b.version,
		repository:      b.repository,
		dependencies:    maps.Clone(b.dependencies),
		devDependencies: maps.Clone(b.devDependencies),
	}
}
