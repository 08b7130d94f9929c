//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	"github.com/rios0rios0/devtools/internal/domain/repositories"
)

// SpyConsoleRepository implements repositories.ConsoleRepository with a
// scripted answer.
type SpyConsoleRepository struct {
	Answer     string
	ProvideErr error

	DisplayedCommits [][]entities.TransformedCommit
	LastCurrent      string
	LastSuggested    string
	ProvideCallCount int
}

var _ repositories.ConsoleRepository = (*SpyConsoleRepository)(nil)

func (s *SpyConsoleRepository) DisplayCommits(commits []entities.TransformedCommit) {
	s.DisplayedCommits = append(s.DisplayedCommits, commits)
}

func (s *SpyConsoleRepository) ProvideVersion(_ context.Context, current, suggested string) (string, error) {
	s.ProvideCallCount++
	s.LastCurrent = current
	s.LastSuggested = suggested
	if s.ProvideErr != nil {
		return "", s.ProvideErr
	}
	if s.Answer == "" {
		return suggested, nil
	}
	return s.Answer, nil
}
