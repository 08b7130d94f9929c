package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/devtools/internal/domain/commands"
	"github.com/rios0rios0/devtools/internal/domain/entities"
)

// ChangelogController handles the "changelog" subcommand.
type ChangelogController struct {
	command commands.Changelog
}

// NewChangelogController creates a new ChangelogController.
func NewChangelogController(command commands.Changelog) *ChangelogController {
	return &ChangelogController{command: command}
}

// GetBind returns the Cobra command metadata for the changelog controller.
func (it *ChangelogController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "changelog",
		Short: "Generate the changelog entry for the next release",
		Long: `Generate the changelog entry of a single package from its commit history.

The commits since the last released version are classified and listed, then
the new version is asked for. Answer "skip" to stop without changes or
"internal" to release a version without user-facing changes. The updated
changelog is committed right away. Use --dry-run to print the entry instead.`,
		Args: cobra.NoArgs,
	}
}

// AddFlags adds the changelog-specific flags to the given Cobra command.
func (it *ChangelogController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("new-version", "", "Use this version instead of asking for one")
	cmd.Flags().Bool("skip-links", false, "Omit links to commits and releases")
	cmd.Flags().String("cwd", ".", "Path to the package")
}

// Execute runs the changelog generation.
func (it *ChangelogController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	newVersion, _ := cmd.Flags().GetString("new-version")
	skipLinks, _ := cmd.Flags().GetBool("skip-links")
	dir, _ := cmd.Flags().GetString("cwd")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	version, err := it.command.Execute(cmd.Context(), settings, commands.ChangelogOptions{
		Dir:        dir,
		NewVersion: newVersion,
		SkipLinks:  skipLinks,
		DryRun:     dryRun,
		Output:     cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("changelog generation failed: %w", err)
	}

	if version != "" {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	}
	return nil
}
