//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/commands"
	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// StubAutomatedTestsCommand is a stub implementation of commands.AutomatedTests.
type StubAutomatedTestsCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.AutomatedTestsOptions
}

var _ commands.AutomatedTests = (*StubAutomatedTestsCommand)(nil)

func (s *StubAutomatedTestsCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.AutomatedTestsOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
