package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewChangelogCommand); err != nil {
		return err
	}
	if err := container.Provide(NewPrepareMgitCommand); err != nil {
		return err
	}
	if err := container.Provide(NewAutomatedTestsCommand); err != nil {
		return err
	}
	if err := container.Provide(NewManualTestsCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *ChangelogCommand) Changelog {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PrepareMgitCommand) PrepareMgit {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *AutomatedTestsCommand) AutomatedTests {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *ManualTestsCommand) ManualTests {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
