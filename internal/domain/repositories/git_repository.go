package repositories

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// GitRepository abstracts the version control operations of the release tools.
type GitRepository interface {
	// CommitsSince returns the commits reachable from HEAD that are newer than
	// the given tag, newest first. An empty tag returns the whole history.
	CommitsSince(ctx context.Context, dir, tagName string) ([]entities.Commit, error)

	// RemoteURL returns the URL of the "origin" remote.
	RemoteURL(ctx context.Context, dir string) (string, error)

	// CommitFile stages a single file and commits it with the given message.
	// A nil signing key creates an unsigned commit.
	CommitFile(ctx context.Context, dir, path, message string, signing *entities.SigningKey) error
}
