//go:build unit

package commands_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/devtools/internal/domain/commands"
	"github.com/rios0rios0/devtools/internal/domain/entities"
	doubles "github.com/rios0rios0/devtools/test/infrastructure/repositorydoubles"
)

const manualWorkDir = "/work/ckeditor5"

func manualGlob(option string) string {
	return entities.TransformFileOptionToTestGlob(option, manualWorkDir, "ckeditor5", true)
}

func TestManualTestsCommandExecute(t *testing.T) {
	t.Parallel()

	env := entities.Environment{WorkingDirectory: manualWorkDir}
	engineManual := filepath.Join(manualWorkDir, "node_modules", "ckeditor5-engine", "tests", "manual")

	t.Run("should bundle the manual scripts of every package by default", func(t *testing.T) {
		t.Parallel()

		// given
		globs := &doubles.StubGlobRepository{Matches: map[string][]string{
			manualGlob("*"): {
				filepath.Join(engineManual, "selection.js"),
				filepath.Join(engineManual, "view", "renderer.js"),
			},
		}}
		bundler := &doubles.SpyBundlerRepository{}
		cmd := commands.NewManualTestsCommand(globs, bundler, &doubles.StubWatcherRepository{}, env)

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.ManualTestsOptions{})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{manualGlob("*")}, globs.Patterns)
		require.Len(t, bundler.Configs, 1)
		assert.Equal(t, filepath.Join(manualWorkDir, "build", ".manual-tests"), bundler.Configs[0].OutputDir)
		assert.Equal(t, []string{
			filepath.Join("ckeditor5-engine", "tests", "manual", "selection"),
			filepath.Join("ckeditor5-engine", "tests", "manual", "view", "renderer"),
		}, bundler.Configs[0].EntryNames())
	})

	t.Run("should skip the bundler when nothing matches", func(t *testing.T) {
		t.Parallel()

		// given
		bundler := &doubles.SpyBundlerRepository{}
		cmd := commands.NewManualTestsCommand(&doubles.StubGlobRepository{}, bundler, &doubles.StubWatcherRepository{}, env)

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.ManualTestsOptions{
			Files: []string{"engine"},
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, bundler.Configs)
	})

	t.Run("should honour the build directory and theme", func(t *testing.T) {
		t.Parallel()

		// given
		globs := &doubles.StubGlobRepository{Matches: map[string][]string{
			manualGlob("engine"): {filepath.Join(engineManual, "selection.js")},
		}}
		bundler := &doubles.SpyBundlerRepository{}
		cmd := commands.NewManualTestsCommand(globs, bundler, &doubles.StubWatcherRepository{}, env)

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.ManualTestsOptions{
			Files:     []string{"engine"},
			BuildDir:  "/out",
			ThemePath: "/themes/lark.css",
		})

		// then
		require.NoError(t, err)
		require.Len(t, bundler.Configs, 1)
		assert.Equal(t, "/out", bundler.Configs[0].OutputDir)
		assert.Equal(t, "/themes/lark.css", bundler.Configs[0].ThemePath)
	})

	t.Run("should propagate a bundler failure", func(t *testing.T) {
		t.Parallel()

		// given
		globs := &doubles.StubGlobRepository{Matches: map[string][]string{
			manualGlob("engine"): {filepath.Join(engineManual, "selection.js")},
		}}
		bundler := &doubles.SpyBundlerRepository{BundleErr: errors.New("syntax error")}
		watcher := &doubles.StubWatcherRepository{}
		cmd := commands.NewManualTestsCommand(globs, bundler, watcher, env)

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.ManualTestsOptions{
			Files: []string{"engine"},
			Watch: true,
		})

		// then
		require.ErrorContains(t, err, "syntax error")
		assert.Zero(t, watcher.CallCount)
	})

	t.Run("should recompile on every change when watching", func(t *testing.T) {
		t.Parallel()

		// given
		globs := &doubles.StubGlobRepository{Matches: map[string][]string{
			manualGlob("engine"): {
				filepath.Join(engineManual, "selection.js"),
				filepath.Join(engineManual, "view", "renderer.js"),
			},
		}}
		bundler := &doubles.SpyBundlerRepository{}
		watcher := &doubles.StubWatcherRepository{Changes: 2}
		cmd := commands.NewManualTestsCommand(globs, bundler, watcher, env)

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.ManualTestsOptions{
			Files: []string{"engine"},
			Watch: true,
		})

		// then
		require.NoError(t, err)
		assert.Len(t, bundler.Configs, 3)
		enginePackage := filepath.Join(manualWorkDir, "node_modules", "ckeditor5-engine")
		assert.Equal(t, []string{filepath.Join(enginePackage, "src"), engineManual}, watcher.WatchedRoots)
		assert.Len(t, globs.Patterns, 3)
	})

	t.Run("should watch every package when no script exists yet", func(t *testing.T) {
		t.Parallel()

		// given
		packagesGlob := filepath.Join(manualWorkDir, "node_modules", "ckeditor5-*")
		enginePackage := filepath.Join(manualWorkDir, "node_modules", "ckeditor5-engine")
		utilsPackage := filepath.Join(manualWorkDir, "node_modules", "ckeditor5-utils")
		globs := &doubles.StubGlobRepository{Directories: map[string][]string{
			filepath.Join(packagesGlob, "src"):             {filepath.Join(enginePackage, "src"), filepath.Join(utilsPackage, "src")},
			filepath.Join(packagesGlob, "tests", "manual"): {engineManual},
		}}
		bundler := &doubles.SpyBundlerRepository{}
		watcher := &doubles.StubWatcherRepository{}
		cmd := commands.NewManualTestsCommand(globs, bundler, watcher, env)

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.ManualTestsOptions{Watch: true})

		// then
		require.NoError(t, err)
		assert.Empty(t, bundler.Configs)
		assert.Equal(t, []string{
			filepath.Join(enginePackage, "src"),
			engineManual,
			filepath.Join(utilsPackage, "src"),
		}, watcher.WatchedRoots)
	})

	t.Run("should watch the current package", func(t *testing.T) {
		t.Parallel()

		// given
		watcher := &doubles.StubWatcherRepository{}
		cmd := commands.NewManualTestsCommand(
			&doubles.StubGlobRepository{}, &doubles.SpyBundlerRepository{}, watcher, env,
		)

		// when
		err := cmd.Execute(context.Background(), entities.DefaultSettings(), commands.ManualTestsOptions{
			Files: []string{"/"},
			Watch: true,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(manualWorkDir, "src"),
			filepath.Join(manualWorkDir, "tests", "manual"),
		}, watcher.WatchedRoots)
	})
}
