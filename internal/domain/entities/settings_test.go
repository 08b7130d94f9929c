//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewSettings(t *testing.T) {
	t.Run("should read YAML and keep defaults for missing keys", func(t *testing.T) {
		// given
		path := writeConfig(t, ".devtools.yaml", `
package_prefix: "@acme/acme"
directory_prefix: acme
runner_port: 9000
runner_command: [npx, karma, start, --no-color]
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "@acme/acme", settings.PackagePrefix)
		assert.Equal(t, "acme", settings.DirectoryPrefix)
		assert.Equal(t, 9000, settings.RunnerPort)
		assert.Equal(t, []string{"npx", "karma", "start", "--no-color"}, settings.RunnerCommand)
		assert.Equal(t, "CHANGELOG.md", settings.ChangelogFile)
		assert.Equal(t, "Docs: Changelog. [skip ci]", settings.ChangelogMessage)
		assert.Equal(t, []string{"/ckeditor5-dev"}, settings.SiblingMarkers)
	})

	t.Run("should read TOML", func(t *testing.T) {
		// given
		path := writeConfig(t, "devtools.toml", `
packages_directory = "repos/"
host_markers = ["acme/editor", "acme/plugins"]
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "repos/", settings.PackagesDirectory)
		assert.Equal(t, []string{"acme/editor", "acme/plugins"}, settings.HostMarkers)
	})

	t.Run("should read HCL with environment references", func(t *testing.T) {
		// given
		t.Setenv("DEVTOOLS_TEST_BS_KEY", "hcl-secret")
		path := writeConfig(t, "devtools.hcl", `
browserstack_username = "ci-user"
browserstack_key      = env.DEVTOOLS_TEST_BS_KEY
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "ci-user", settings.BrowserStackUsername)
		assert.Equal(t, "hcl-secret", settings.BrowserStackKey)
	})

	t.Run("should expand secrets from the environment", func(t *testing.T) {
		// given
		t.Setenv("DEVTOOLS_TEST_BS_USER", "env-user")
		path := writeConfig(t, "devtools.yaml", `browserstack_username: "${DEVTOOLS_TEST_BS_USER}"`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "env-user", settings.BrowserStackUsername)
	})

	t.Run("should read secrets from files", func(t *testing.T) {
		// given
		secret := writeConfig(t, "key.txt", "file-secret\n")
		path := writeConfig(t, "devtools.yaml", "browserstack_key: "+secret+"\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "file-secret", settings.BrowserStackKey)
	})

	t.Run("should reject an out of range port", func(t *testing.T) {
		// given
		path := writeConfig(t, "devtools.yaml", "runner_port: 70000\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "runner_port")
	})

	t.Run("should reject a passphrase without a key", func(t *testing.T) {
		// given
		path := writeConfig(t, "devtools.yaml", "signing_passphrase: secret\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		// given / when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
	})
}

func TestSettingsSigningKey(t *testing.T) {
	t.Parallel()

	t.Run("should be nil without a key file", func(t *testing.T) {
		t.Parallel()

		// given / when / then
		assert.Nil(t, entities.DefaultSettings().SigningKey())
	})

	t.Run("should carry the key file and passphrase", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.SigningKeyFile = "/keys/release.asc"
		settings.SigningPassphrase = "pass"

		// when / then
		assert.Equal(t, &entities.SigningKey{File: "/keys/release.asc", Passphrase: "pass"}, settings.SigningKey())
	})
}

func TestLoadSettings(t *testing.T) {
	t.Run("should use the given file", func(t *testing.T) {
		// given
		path := writeConfig(t, "custom.yaml", "coverage_directory: reports\n")

		// when
		settings, err := entities.LoadSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "reports", settings.CoverageDirectory)
	})
}
