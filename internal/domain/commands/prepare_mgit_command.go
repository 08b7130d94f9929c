package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	"github.com/rios0rios0/devtools/internal/domain/repositories"
)

const mgitFileName = "mgit.json"

// ErrMissingTestDir is returned when no testing directory was given.
var ErrMissingTestDir = errors.New("the script requires one parameter: a path to the testing directory")

// PrepareMgit is the interface for the mgit.json preparation command.
type PrepareMgit interface {
	Execute(ctx context.Context, settings *entities.Settings, opts PrepareMgitOptions) error
}

// PrepareMgitOptions holds runtime options for the mgit.json preparation.
type PrepareMgitOptions struct {
	TestDir string
	DryRun  bool      // Print the manifest instead of writing it
	Output  io.Writer // Destination of the dry-run output
}

// PrepareMgitCommand writes the mgit.json of a testing checkout so that the
// package under test is cloned at the commit being built.
type PrepareMgitCommand struct {
	packages repositories.PackageRepository
	env      entities.Environment
}

// NewPrepareMgitCommand creates a new PrepareMgitCommand.
func NewPrepareMgitCommand(packages repositories.PackageRepository, env entities.Environment) *PrepareMgitCommand {
	return &PrepareMgitCommand{packages: packages, env: env}
}

// Execute updates <TestDir>/mgit.json.
func (it *PrepareMgitCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts PrepareMgitOptions,
) error {
	if opts.TestDir == "" {
		return ErrMissingTestDir
	}

	original, err := it.packages.ReadPackage(it.env.WorkingDirectory)
	if err != nil {
		return fmt.Errorf("failed to read the tested package: %w", err)
	}

	testing, err := it.packages.ReadPackage(opts.TestDir)
	if err != nil {
		return fmt.Errorf("failed to read the testing package: %w", err)
	}

	var override *entities.CommitOverride
	if commit := it.env.TestedCommit(); commit != "" {
		override = &entities.CommitOverride{PackageName: original.Name, Commit: commit}
		logger.Infof("Pinning %q to commit %s", original.Name, commit)
	} else {
		logger.Warnf("No commit found in the environment, %q keeps its default revision", original.Name)
	}

	manifestPath := filepath.Join(opts.TestDir, mgitFileName)
	rules := entities.NewManifestRules(settings)

	manifest := entities.NewMgitManifest(testing, rules, override)

	if opts.DryRun {
		logger.Infof("Dry run: %s is left untouched", manifestPath)
		return printMgitManifest(dryRunOutput(opts.Output), manifest)
	}

	updateErr := it.packages.UpdateMgitManifest(manifestPath, func(_ *entities.MgitManifest) *entities.MgitManifest {
		return manifest
	})
	if updateErr != nil {
		return fmt.Errorf("failed to update %s: %w", manifestPath, updateErr)
	}

	logger.Infof("Updated %s", manifestPath)
	return nil
}

// dryRunOutput falls back to stdout when no writer was given.
func dryRunOutput(output io.Writer) io.Writer {
	if output == nil {
		return os.Stdout
	}
	return output
}

func printMgitManifest(output io.Writer, manifest *entities.MgitManifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", mgitFileName, err)
	}
	if _, writeErr := fmt.Fprintln(output, string(data)); writeErr != nil {
		return fmt.Errorf("failed to print %s: %w", mgitFileName, writeErr)
	}
	return nil
}
