package karma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

const configFileMode = 0o644

// RunnerRepository writes Karma configuration files and starts Karma.
type RunnerRepository struct {
	stdout io.Writer
	stderr io.Writer
}

// NewRunnerRepository creates a RunnerRepository attached to the terminal.
func NewRunnerRepository() *RunnerRepository {
	return &RunnerRepository{stdout: os.Stdout, stderr: os.Stderr}
}

// RenderConfig renders the configuration as a Karma config module.
func RenderConfig(config *entities.RunnerConfig) ([]byte, error) {
	data, err := json.MarshalIndent(config, "\t", "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to encode runner config: %w", err)
	}

	var builder strings.Builder
	builder.WriteString("// Generated file, do not edit.\n")
	builder.WriteString("'use strict';\n\n")
	builder.WriteString("module.exports = config => {\n\tconfig.set( ")
	builder.Write(data)
	builder.WriteString(" );\n};\n")
	return []byte(builder.String()), nil
}

// WriteConfig writes the configuration to path.
func (it *RunnerRepository) WriteConfig(path string, config *entities.RunnerConfig) error {
	content, err := RenderConfig(config)
	if err != nil {
		return err
	}
	if writeErr := os.WriteFile(path, content, configFileMode); writeErr != nil {
		return fmt.Errorf("failed to write %s: %w", path, writeErr)
	}
	return nil
}

// Run executes command followed by the config path.
func (it *RunnerRepository) Run(
	ctx context.Context,
	command []string,
	configPath string,
	env map[string]string,
) error {
	if len(command) == 0 {
		return errors.New("no runner command configured")
	}

	args := append(append([]string{}, command[1:]...), configPath)
	cmd := exec.CommandContext(ctx, command[0], args...)
	cmd.Stdout = it.stdout
	cmd.Stderr = it.stderr
	cmd.Env = mergeEnv(os.Environ(), env)

	logger.Infof("Running: %s %s", command[0], strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", command[0], err)
	}
	return nil
}

func mergeEnv(base []string, extra map[string]string) []string {
	keys := make([]string, 0, len(extra))
	for key := range extra {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	merged := append([]string{}, base...)
	for _, key := range keys {
		merged = append(merged, key+"="+extra[key])
	}
	return merged
}
