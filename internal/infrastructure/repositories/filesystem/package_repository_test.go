//go:build unit

package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	"github.com/rios0rios0/devtools/internal/infrastructure/repositories/filesystem"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestPackageRepositoryReadPackage(t *testing.T) {
	t.Parallel()

	t.Run("should parse package.json with comments and trailing commas", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{
  // the package under test
  "name": "@ckeditor/ckeditor5-engine",
  "version": "1.0.0",
  "repository": "ckeditor/ckeditor5-engine",
  "dependencies": {
    "@ckeditor/ckeditor5-utils": "^1.0.0",
  },
}`)
		repo := filesystem.NewPackageRepository()

		// when
		pkg, err := repo.ReadPackage(dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, "@ckeditor/ckeditor5-engine", pkg.Name)
		assert.Equal(t, "1.0.0", pkg.Version)
		assert.Equal(t, "ckeditor/ckeditor5-engine", pkg.Repository.URL)
		assert.Equal(t, map[string]string{"@ckeditor/ckeditor5-utils": "^1.0.0"}, pkg.Dependencies)
	})

	t.Run("should fail without package.json", func(t *testing.T) {
		t.Parallel()

		// given
		repo := filesystem.NewPackageRepository()

		// when
		_, err := repo.ReadPackage(t.TempDir())

		// then
		require.Error(t, err)
	})

	t.Run("should fail on malformed JSON", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "package.json"), `{"name": `)
		repo := filesystem.NewPackageRepository()

		// when
		_, err := repo.ReadPackage(dir)

		// then
		require.ErrorContains(t, err, "failed to parse")
	})
}

func TestPackageRepositoryUpdateMgitManifest(t *testing.T) {
	t.Parallel()

	t.Run("should hand the existing manifest to the update", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "mgit.json")
		writeFile(t, path, `{"packages": "packages/", "dependencies": {"@ckeditor/ckeditor5-engine": "ckeditor/ckeditor5-engine"}}`)
		repo := filesystem.NewPackageRepository()
		var seen *entities.MgitManifest

		// when
		err := repo.UpdateMgitManifest(path, func(current *entities.MgitManifest) *entities.MgitManifest {
			seen = current
			current.Dependencies["@ckeditor/ckeditor5-engine"] += "#abc"
			return current
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "packages/", seen.Packages)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t,
			"{\n  \"packages\": \"packages/\",\n  \"dependencies\": {\n"+
				"    \"@ckeditor/ckeditor5-engine\": \"ckeditor/ckeditor5-engine#abc\"\n  }\n}\n",
			string(data),
		)
	})

	t.Run("should create a missing manifest", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "mgit.json")
		repo := filesystem.NewPackageRepository()

		// when
		err := repo.UpdateMgitManifest(path, func(_ *entities.MgitManifest) *entities.MgitManifest {
			return &entities.MgitManifest{Packages: "packages/", Dependencies: map[string]string{}}
		})

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.JSONEq(t, `{"packages": "packages/", "dependencies": {}}`, string(data))
	})
}
