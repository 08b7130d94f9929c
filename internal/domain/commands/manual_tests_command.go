package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	"github.com/rios0rios0/devtools/internal/domain/repositories"
)

// ManualTests is the interface for the manual tests compilation command.
type ManualTests interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ManualTestsOptions) error
}

// ManualTestsOptions holds runtime options for a manual tests compilation.
type ManualTestsOptions struct {
	Files     []string // --files values, see entities.TransformFileOptionToTestGlob
	BuildDir  string
	ThemePath string
	Watch     bool
}

// ManualTestsCommand bundles the scripts of manual test pages.
type ManualTestsCommand struct {
	globs   repositories.GlobRepository
	bundler repositories.BundlerRepository
	watcher repositories.WatcherRepository
	env     entities.Environment
}

// NewManualTestsCommand creates a new ManualTestsCommand.
func NewManualTestsCommand(
	globs repositories.GlobRepository,
	bundler repositories.BundlerRepository,
	watcher repositories.WatcherRepository,
	env entities.Environment,
) *ManualTestsCommand {
	return &ManualTestsCommand{globs: globs, bundler: bundler, watcher: watcher, env: env}
}

// Execute compiles the manual test scripts once, then keeps recompiling on
// changes when watching.
func (it *ManualTestsCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ManualTestsOptions,
) error {
	files := opts.Files
	if len(files) == 0 {
		files = []string{"*"}
	}

	patterns := make([]string, 0, len(files))
	for _, file := range files {
		patterns = append(patterns, entities.TransformFileOptionToTestGlob(
			file, it.env.WorkingDirectory, settings.DirectoryPrefix, true,
		))
	}

	buildDir := opts.BuildDir
	if buildDir == "" {
		buildDir = filepath.Join(it.env.WorkingDirectory, settings.ManualBuildDirectory)
	}
	themePath := opts.ThemePath
	if themePath == "" {
		themePath = settings.ThemePath
	}

	if _, err := it.CompileScripts(ctx, settings, buildDir, patterns, themePath); err != nil {
		return err
	}

	if !opts.Watch {
		return nil
	}

	roots, err := it.watchRoots(patterns)
	if err != nil {
		return err
	}
	logger.Infof("Watching %d directories for changes...", len(roots))
	return it.watcher.Watch(ctx, roots, func() {
		if _, compileErr := it.CompileScripts(ctx, settings, buildDir, patterns, themePath); compileErr != nil {
			logger.Errorf("Recompilation failed: %v", compileErr)
		}
	})
}

// CompileScripts resolves the patterns to manual test scripts and runs the
// bundler over them once.
func (it *ManualTestsCommand) CompileScripts(
	ctx context.Context,
	settings *entities.Settings,
	buildDir string,
	patterns []string,
	themePath string,
) (entities.BuildConfig, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := it.globs.Glob(pattern)
		if err != nil {
			return entities.BuildConfig{}, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	config := entities.NewManualBuildConfig(
		files, buildDir, themePath, it.env.WorkingDirectory, settings.DirectoryPrefix,
	)
	if len(config.Entries) == 0 {
		logger.Warn("No manual test scripts found, nothing to compile.")
		return config, nil
	}

	logger.Infof("Compiling %d manual test scripts into %s", len(config.Entries), buildDir)
	if err := it.bundler.Bundle(ctx, config); err != nil {
		return config, fmt.Errorf("failed to compile manual tests: %w", err)
	}
	return config, nil
}

// watchRoots lists the manual test and source trees of every package the
// patterns cover, so that new scripts and edited imports trigger a rebuild.
func (it *ManualTestsCommand) watchRoots(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		for _, root := range entities.WatchRootsForGlob(pattern) {
			if !entities.HasGlobMeta(root) {
				seen[root] = struct{}{}
				continue
			}

			dirs, err := it.globs.GlobDirectories(root)
			if err != nil {
				return nil, fmt.Errorf("failed to expand %q: %w", root, err)
			}
			for _, dir := range dirs {
				seen[dir] = struct{}{}
			}
		}
	}

	roots := make([]string, 0, len(seen))
	for root := range seen {
		roots = append(roots, root)
	}
	sort.Strings(roots)
	return roots, nil
}
