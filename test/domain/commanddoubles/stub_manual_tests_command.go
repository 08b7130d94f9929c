//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/devtools/internal/domain/commands"
	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// StubManualTestsCommand is a stub implementation of commands.ManualTests.
type StubManualTestsCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.ManualTestsOptions
}

var _ commands.ManualTests = (*StubManualTestsCommand)(nil)

func (s *StubManualTestsCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.ManualTestsOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
