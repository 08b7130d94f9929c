package controllers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/devtools/internal/domain/commands"
	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// ManualTestsController handles the "compile-manual" subcommand.
type ManualTestsController struct {
	command commands.ManualTests
}

// NewManualTestsController creates a new ManualTestsController.
func NewManualTestsController(command commands.ManualTests) *ManualTestsController {
	return &ManualTestsController{command: command}
}

// GetBind returns the Cobra command metadata for the manual tests controller.
func (it *ManualTestsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "compile-manual",
		Short: "Bundle the scripts of manual test pages",
		Long: `Bundle every script found in the "manual" test directories of the
selected packages into the build directory. With --watch the scripts are
rebuilt whenever their sources change, until interrupted.`,
		Args: cobra.NoArgs,
	}
}

// AddFlags adds the manual-tests-specific flags to the given Cobra command.
func (it *ManualTestsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("files", "f", nil, "Packages or files to compile (default: every package)")
	cmd.Flags().String("build-dir", "", "Output directory (default: from config)")
	cmd.Flags().String("theme-path", "", "Path to the theme loaded by the bundler")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild when sources change")
}

// Execute runs the manual tests compilation.
func (it *ManualTestsController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	files, _ := cmd.Flags().GetStringSlice("files")
	buildDir, _ := cmd.Flags().GetString("build-dir")
	themePath, _ := cmd.Flags().GetString("theme-path")
	watch, _ := cmd.Flags().GetBool("watch")

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runErr := it.command.Execute(ctx, settings, commands.ManualTestsOptions{
		Files:     files,
		BuildDir:  buildDir,
		ThemePath: themePath,
		Watch:     watch,
	}); runErr != nil {
		return fmt.Errorf("compiling manual tests failed: %w", runErr)
	}
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
