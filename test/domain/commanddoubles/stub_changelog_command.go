//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/commands"
	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// StubChangelogCommand is a stub implementation of commands.Changelog.
type StubChangelogCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Version          string
	LastSettings     *entities.Settings
	LastOpts         commands.ChangelogOptions
}

var _ commands.Changelog = (*StubChangelogCommand)(nil)

func (s *StubChangelogCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.ChangelogOptions,
) (string, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.Version, s.ExecuteErr
}
