package controllers

import (
	"github.com/rios0rios0/devtools/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewChangelogController); err != nil {
		return err
	}
	if err := container.Provide(NewPrepareMgitController); err != nil {
		return err
	}
	if err := container.Provide(NewAutomatedTestsController); err != nil {
		return err
	}
	if err := container.Provide(NewManualTestsController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	changelogController *ChangelogController,
	prepareMgitController *PrepareMgitController,
	automatedTestsController *AutomatedTestsController,
	manualTestsController *ManualTestsController,
) *[]entities.Controller {
	return &[]entities.Controller{
		changelogController,
		prepareMgitController,
		automatedTestsController,
		manualTestsController,
	}
}
