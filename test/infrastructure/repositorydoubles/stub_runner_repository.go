//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	"github.com/rios0rios0/devtools/internal/domain/repositories"
)

// SpyRunnerRepository implements repositories.RunnerRepository as a spy.
type SpyRunnerRepository struct {
	WriteErr error
	RunErr   error

	WrittenPath   string
	WrittenConfig *entities.RunnerConfig
	RunCallCount  int
	LastCommand   []string
	LastEnv       map[string]string
}

var _ repositories.RunnerRepository = (*SpyRunnerRepository)(nil)

func (s *SpyRunnerRepository) WriteConfig(path string, config *entities.RunnerConfig) error {
	s.WrittenPath = path
	s.WrittenConfig = config
	return s.WriteErr
}

func (s *SpyRunnerRepository) Run(_ context.Context, command []string, _ string, env map[string]string) error {
	s.RunCallCount++
	s.LastCommand = command
	s.LastEnv = env
	return s.RunErr
}

// StubBrowserRepository implements repositories.BrowserRepository.
type StubBrowserRepository struct {
	Path  string
	Found bool
}

var _ repositories.BrowserRepository = (*StubBrowserRepository)(nil)

func (s *StubBrowserRepository) LookPath() (string, bool) {
	return s.Path, s.Found
}
