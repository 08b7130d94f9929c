package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	"github.com/rios0rios0/devtools/internal/domain/repositories"
)

const chromeBinaryEnv = "CHROME_BIN"

// AutomatedTests is the interface for the automated tests command.
type AutomatedTests interface {
	Execute(ctx context.Context, settings *entities.Settings, opts AutomatedTestsOptions) error
}

// AutomatedTestsOptions holds runtime options for an automated test run.
type AutomatedTestsOptions struct {
	Runner entities.RunnerOptions
	DryRun bool      // Print the configuration instead of running
	Output io.Writer // Destination of the dry-run output
}

// AutomatedTestsCommand assembles the runner configuration and starts the
// browser test runner with it.
type AutomatedTestsCommand struct {
	runner   repositories.RunnerRepository
	browsers repositories.BrowserRepository
	env      entities.Environment
}

// NewAutomatedTestsCommand creates a new AutomatedTestsCommand.
func NewAutomatedTestsCommand(
	runner repositories.RunnerRepository,
	browsers repositories.BrowserRepository,
	env entities.Environment,
) *AutomatedTestsCommand {
	return &AutomatedTestsCommand{runner: runner, browsers: browsers, env: env}
}

// Execute builds the configuration and runs (or prints) it.
func (it *AutomatedTestsCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts AutomatedTestsOptions,
) error {
	runnerOpts := opts.Runner
	if runnerOpts.Username == "" {
		runnerOpts.Username = settings.BrowserStackUsername
	}
	if runnerOpts.AccessKey == "" {
		runnerOpts.AccessKey = settings.BrowserStackKey
	}
	if runnerOpts.ThemePath == "" {
		runnerOpts.ThemePath = settings.ThemePath
	}

	config, err := entities.NewRunnerConfig(runnerOpts, it.env, settings)
	if err != nil {
		return err
	}

	if opts.DryRun {
		return printRunnerConfig(dryRunOutput(opts.Output), config)
	}

	configPath := filepath.Join(it.env.WorkingDirectory, settings.RunnerConfigFile)
	if writeErr := it.runner.WriteConfig(configPath, config); writeErr != nil {
		return fmt.Errorf("failed to write runner config: %w", writeErr)
	}
	logger.Debugf("Runner config written to %s", configPath)

	extraEnv := make(map[string]string)
	if !it.env.CI && !runnerOpts.BrowserStack {
		if bin, found := it.browsers.LookPath(); found {
			logger.Debugf("Using local browser %s", bin)
			extraEnv[chromeBinaryEnv] = bin
		}
	}

	if runErr := it.runner.Run(ctx, settings.RunnerCommand, configPath, extraEnv); runErr != nil {
		return fmt.Errorf("test runner failed: %w", runErr)
	}
	return nil
}

func printRunnerConfig(output io.Writer, config *entities.RunnerConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode runner config: %w", err)
	}
	if _, writeErr := fmt.Fprintln(output, string(data)); writeErr != nil {
		return fmt.Errorf("failed to print runner config: %w", writeErr)
	}
	return nil
}
