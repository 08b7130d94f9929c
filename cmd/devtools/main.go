package main

import (
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/devtools/internal"
	"github.com/rios0rios0/devtools/internal/domain/entities"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "devtools",
		Short: "Development tools for multi-package editor repositories",
		Long: `Tooling shared by the packages of a multi-repository editor project.

  devtools prepare-mgit-json <dir>   Pin the tested package in a testing checkout
  devtools test                      Run the automated tests in browsers
  devtools compile-manual            Bundle the scripts of manual test pages
  devtools changelog                 Generate the changelog of the next release`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().Bool("dry-run", false,
		"Show what would be done without making changes")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  bind.Args,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if flagged, ok := ctrl.(entities.FlaggedController); ok {
			flagged.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	cobraRoot := buildRootCommand()

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'devtools': %s", err)
	}
}
