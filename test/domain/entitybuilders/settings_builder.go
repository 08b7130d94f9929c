//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/devtools/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings starting from the defaults.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	settings entities.Settings
}

// NewSettingsBuilder creates a new settings builder holding the defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		settings:    *entities.DefaultSettings(),
	}
}

// WithRunnerCommand sets the command that starts the test runner.
func (b *SettingsBuilder) WithRunnerCommand(command ...string) *SettingsBuilder {
	b.settings.RunnerCommand = command
	return b
}

// WithBrowserStack sets the cloud browser farm credentials.
func (b *SettingsBuilder) WithBrowserStack(username, key string) *SettingsBuilder {
	b.settings.BrowserStackUsername = username
	b.settings.BrowserStackKey = key
	return b
}

// WithSigningKey sets the commit signing key.
func (b *SettingsBuilder) WithSigningKey(file, passphrase string) *SettingsBuilder {
	b.settings.SigningKeyFile = file
	b.settings.SigningPassphrase = passphrase
	return b
}

// WithThemePath sets the default theme path.
func (b *SettingsBuilder) WithThemePath(path string) *SettingsBuilder {
	b.settings.ThemePath = path
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := b.settings
	return &settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.settings = *entities.DefaultSettings()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		settings:    b.settings,
	}
}
