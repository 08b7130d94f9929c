//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/commands"
	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// StubPrepareMgitCommand is a stub implementation of commands.PrepareMgit.
type StubPrepareMgitCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.PrepareMgitOptions
}

var _ commands.PrepareMgit = (*StubPrepareMgitCommand)(nil)

func (s *StubPrepareMgitCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.PrepareMgitOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
