//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/repositories"
)

// StubGlobRepository implements repositories.GlobRepository with fixed matches.
type StubGlobRepository struct {
	Matches           map[string][]string
	Directories       map[string][]string
	GlobErr           error
	Patterns          []string
	DirectoryPatterns []string
}

var _ repositories.GlobRepository = (*StubGlobRepository)(nil)

func (s *StubGlobRepository) Glob(pattern string) ([]string, error) {
	s.Patterns = append(s.Patterns, pattern)
	if s.GlobErr != nil {
		return nil, s.GlobErr
	}
	return s.Matches[pattern], nil
}

func (s *StubGlobRepository) GlobDirectories(pattern string) ([]string, error) {
	s.DirectoryPatterns = append(s.DirectoryPatterns, pattern)
	if s.GlobErr != nil {
		return nil, s.GlobErr
	}
	return s.Directories[pattern], nil
}

// StubWatcherRepository implements repositories.WatcherRepository by firing
// the change callback a fixed number of times before returning.
type StubWatcherRepository struct {
	Changes      int
	WatchErr     error
	WatchedRoots []string
	CallCount    int
}

var _ repositories.WatcherRepository = (*StubWatcherRepository)(nil)

func (s *StubWatcherRepository) Watch(_ context.Context, roots []string, onChange func()) error {
	s.CallCount++
	s.WatchedRoots = roots
	for range s.Changes {
		onChange()
	}
	return s.WatchErr
}
