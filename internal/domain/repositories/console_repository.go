package repositories

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// ConsoleRepository is the interactive terminal of the release tools.
type ConsoleRepository interface {
	// DisplayCommits lists the commits that will make up the release.
	DisplayCommits(commits []entities.TransformedCommit)

	// ProvideVersion asks for the new version. The answer is either a
	// semantic version, "skip" or "internal".
	ProvideVersion(ctx context.Context, current, suggested string) (string, error)
}
