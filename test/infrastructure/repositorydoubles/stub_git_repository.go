//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	"github.com/rios0rios0/devtools/internal/domain/repositories"
)

// SpyGitRepository implements repositories.GitRepository as a configurable spy.
type SpyGitRepository struct {
	// --- CommitsSince ---
	Commits         []entities.Commit
	CommitsErr      error
	CommitsSinceTag []string

	// --- RemoteURL ---
	Remote    string
	RemoteErr error

	// --- CommitFile ---
	CommitErr      error
	CommittedFiles []string
	CommitMessages []string
	LastSigningKey *entities.SigningKey
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (s *SpyGitRepository) CommitsSince(_ context.Context, _, tagName string) ([]entities.Commit, error) {
	s.CommitsSinceTag = append(s.CommitsSinceTag, tagName)
	return s.Commits, s.CommitsErr
}

func (s *SpyGitRepository) RemoteURL(_ context.Context, _ string) (string, error) {
	return s.Remote, s.RemoteErr
}

func (s *SpyGitRepository) CommitFile(
	_ context.Context,
	_, path, message string,
	signing *entities.SigningKey,
) error {
	s.CommittedFiles = append(s.CommittedFiles, path)
	s.CommitMessages = append(s.CommitMessages, message)
	s.LastSigningKey = signing
	return s.CommitErr
}
