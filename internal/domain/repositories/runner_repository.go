package repositories

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// RunnerRepository hands a configuration to the browser test runner.
type RunnerRepository interface {
	// WriteConfig stores the configuration where the runner can load it.
	WriteConfig(path string, config *entities.RunnerConfig) error

	// Run starts the runner with the stored configuration and blocks until
	// it exits. env holds additional environment variables.
	Run(ctx context.Context, command []string, configPath string, env map[string]string) error
}

// BrowserRepository locates browsers installed on this machine.
type BrowserRepository interface {
	// LookPath returns the path of a local Chrome or Chromium binary.
	LookPath() (string, bool)
}
