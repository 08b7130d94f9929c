package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/devtools/internal/domain/commands"
	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// PrepareMgitController handles the "prepare-mgit-json" subcommand.
type PrepareMgitController struct {
	command commands.PrepareMgit
}

// NewPrepareMgitController creates a new PrepareMgitController.
func NewPrepareMgitController(command commands.PrepareMgit) *PrepareMgitController {
	return &PrepareMgitController{command: command}
}

// GetBind returns the Cobra command metadata for the mgit controller.
func (it *PrepareMgitController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "prepare-mgit-json <test-dir>",
		Short: "Write the mgit.json of a testing checkout",
		Long: `Write <test-dir>/mgit.json from the dependencies of <test-dir>/package.json.

The package in the current directory is pinned to the commit under test,
taken from TRAVIS_PULL_REQUEST_SHA or TRAVIS_COMMIT. Use --dry-run to print
the manifest instead.`,
		Args: cobra.MaximumNArgs(1),
	}
}

// Execute runs the mgit.json preparation.
func (it *PrepareMgitController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	testDir := ""
	if len(args) > 0 {
		testDir = args[0]
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if runErr := it.command.Execute(cmd.Context(), settings, commands.PrepareMgitOptions{
		TestDir: testDir,
		DryRun:  dryRun,
		Output:  cmd.OutOrStdout(),
	}); runErr != nil {
		return fmt.Errorf("preparing mgit.json failed: %w", runErr)
	}
	return nil
}
