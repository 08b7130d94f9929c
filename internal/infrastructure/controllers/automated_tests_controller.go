package controllers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/devtools/internal/domain/commands"
	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// AutomatedTestsController handles the "test" subcommand.
type AutomatedTestsController struct {
	command commands.AutomatedTests
}

// NewAutomatedTestsController creates a new AutomatedTestsController.
func NewAutomatedTestsController(command commands.AutomatedTests) *AutomatedTestsController {
	return &AutomatedTestsController{command: command}
}

// GetBind returns the Cobra command metadata for the automated tests controller.
func (it *AutomatedTestsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "test",
		Short: "Run automated tests in browsers",
		Long: `Assemble the Karma configuration for the given test files and run it.

--files accepts package names ("engine"), package subdirectories
("engine/view"), single files ("engine/view/node.js"), "/" for the package in
the current directory and "*" for every package. Use --dry-run to print the
configuration without starting Karma.`,
		Args: cobra.NoArgs,
	}
}

// AddFlags adds the test-specific flags to the given Cobra command.
func (it *AutomatedTestsController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("files", "f", nil, "Test files to run")
	cmd.Flags().StringP("reporter", "r", entities.ReporterMocha,
		fmt.Sprintf("Reporter (%s)", strings.Join(entities.SupportedReporters(), ", ")))
	cmd.Flags().Bool("source-map", false, "Generate source maps")
	cmd.Flags().Bool("coverage", false, "Collect code coverage")
	cmd.Flags().String("theme-path", "", "Path to the theme loaded by the bundler")
	cmd.Flags().StringSlice("browsers", []string{"Chrome"}, "Browsers to start")
	cmd.Flags().BoolP("watch", "w", false, "Re-run the tests when files change")
	cmd.Flags().Bool("server", false, "Start the server without launching browsers")
	cmd.Flags().Bool("browserstack", false, "Run the tests on BrowserStack")
	cmd.Flags().String("username", "", "BrowserStack username (overrides the config)")
	cmd.Flags().String("access-key", "", "BrowserStack access key (overrides the config)")
}

// Execute runs the automated tests.
func (it *AutomatedTestsController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	files, _ := flags.GetStringSlice("files")
	reporter, _ := flags.GetString("reporter")
	sourceMap, _ := flags.GetBool("source-map")
	coverage, _ := flags.GetBool("coverage")
	themePath, _ := flags.GetString("theme-path")
	browsers, _ := flags.GetStringSlice("browsers")
	watch, _ := flags.GetBool("watch")
	server, _ := flags.GetBool("server")
	browserStack, _ := flags.GetBool("browserstack")
	username, _ := flags.GetString("username")
	accessKey, _ := flags.GetString("access-key")
	verbose, _ := flags.GetBool("verbose")
	dryRun, _ := flags.GetBool("dry-run")

	if runErr := it.command.Execute(cmd.Context(), settings, commands.AutomatedTestsOptions{
		Runner: entities.RunnerOptions{
			Files:        files,
			Reporter:     reporter,
			SourceMap:    sourceMap,
			Coverage:     coverage,
			ThemePath:    themePath,
			Browsers:     browsers,
			Watch:        watch,
			Server:       server,
			Verbose:      verbose,
			BrowserStack: browserStack,
			Username:     username,
			AccessKey:    accessKey,
		},
		DryRun: dryRun,
		Output: cmd.OutOrStdout(),
	}); runErr != nil {
		return fmt.Errorf("automated tests failed: %w", runErr)
	}
	return nil
}
