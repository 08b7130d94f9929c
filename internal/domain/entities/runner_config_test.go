//go:build unit

package entities_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

const workDir = "/workspace/ckeditor5"

func localEnvironment() entities.Environment {
	return entities.Environment{WorkingDirectory: workDir}
}

func minimalRunnerOptions() entities.RunnerOptions {
	return entities.RunnerOptions{
		Files:    []string{"engine"},
		Reporter: entities.ReporterMocha,
		Browsers: []string{"Chrome"},
	}
}

func TestNewRunnerConfig(t *testing.T) {
	t.Parallel()

	settings := entities.DefaultSettings()

	t.Run("should fail without files", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.Files = nil

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.ErrorIs(t, err, entities.ErrNoTestFiles)
		assert.Nil(t, config)
	})

	t.Run("should fail with an unsupported reporter", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.Reporter = "progress"

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.ErrorIs(t, err, entities.ErrUnsupportedReporter)
		assert.Contains(t, err.Error(), "mocha, dots")
		assert.Nil(t, config)
	})

	t.Run("should assign one preprocessor chain per file", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.Files = []string{"engine", "utils/dom", "/"}

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, err)
		assert.Len(t, config.Preprocessors, 3)
		for _, file := range config.Files {
			assert.Equal(t, []string{"webpack"}, config.Preprocessors[file])
		}
	})

	t.Run("should append the source map step when requested", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.SourceMap = true

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, err)
		glob := filepath.Join(workDir, "node_modules", "ckeditor5-engine", "tests", "**", "*.js")
		assert.Equal(t, []string{"webpack", "sourcemap"}, config.Preprocessors[glob])
		assert.Equal(t, "inline-source-map", config.Webpack.Devtool)
	})

	t.Run("should run once in a local Chrome by default", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, workDir, config.BasePath)
		assert.Equal(t, []string{"mocha", "chai", "sinon"}, config.Frameworks)
		assert.Equal(t, []string{entities.LauncherChromeLocal}, config.Browsers)
		assert.Equal(t, []string{entities.ReporterMocha}, config.Reporters)
		assert.Equal(t, 9876, config.Port)
		assert.True(t, config.SingleRun)
		assert.False(t, config.AutoWatch)
		assert.True(t, config.WebpackMiddleware.NoInfo)
		assert.Nil(t, config.BrowserStack)
		assert.Nil(t, config.CoverageReporter)
		assert.Len(t, config.CustomLaunchers, 6)
	})

	t.Run("should force the CI launcher on CI", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.Browsers = []string{"Firefox", "Safari"}
		env := localEnvironment()
		env.CI = true

		// when
		config, err := entities.NewRunnerConfig(opts, env, settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{entities.LauncherChromeCI}, config.Browsers)
	})

	t.Run("should keep other browsers as given", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.Browsers = []string{"Chrome", "Firefox"}

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{entities.LauncherChromeLocal, "Firefox"}, config.Browsers)
	})

	t.Run("should stay alive in watch and server modes", func(t *testing.T) {
		t.Parallel()

		for _, mode := range []string{"watch", "server"} {
			// given
			opts := minimalRunnerOptions()
			opts.Watch = mode == "watch"
			opts.Server = mode == "server"

			// when
			config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

			// then
			require.NoError(t, err, mode)
			assert.False(t, config.SingleRun, mode)
			assert.True(t, config.AutoWatch, mode)
		}
	})

	t.Run("should not launch browsers in server mode", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.Server = true

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, err)
		assert.Nil(t, config.Browsers)
	})

	t.Run("should show bundler output when verbose", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.Verbose = true

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.Middleware{NoInfo: false}, config.WebpackMiddleware)
	})

	t.Run("should run every cloud preset when no browser was chosen", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.BrowserStack = true
		opts.Username = "user"
		opts.AccessKey = "secret"

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			"HighSierra_Safari",
			"Mavericks_Chrome",
			"Windows_Edge",
			"Yosemite_Firefox",
		}, config.Browsers)
		assert.Equal(t, []string{entities.ReporterDots, "BrowserStack"}, config.Reporters)
		assert.Equal(t, &entities.BrowserStackCredentials{Username: "user", AccessKey: "secret"}, config.BrowserStack)
	})

	t.Run("should narrow cloud presets to the requested browsers", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.BrowserStack = true
		opts.Browsers = []string{"firefox", "EDGE"}

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"Windows_Edge", "Yosemite_Firefox"}, config.Browsers)
	})

	t.Run("should prefer the cloud farm over CI detection", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.BrowserStack = true
		opts.Browsers = []string{"safari"}
		env := localEnvironment()
		env.CI = true

		// when
		config, err := entities.NewRunnerConfig(opts, env, settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"HighSierra_Safari"}, config.Browsers)
	})

	t.Run("should attach the coverage reporter and outputs", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.Coverage = true
		coverageDir := filepath.Join(workDir, "coverage")

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{entities.ReporterMocha, "coverage"}, config.Reporters)
		want := &entities.CoverageReporter{Reporters: []entities.CoverageTarget{
			{Type: "text-summary"},
			{Type: "html", Dir: coverageDir},
			{Type: "lcovonly", Subdir: ".", Dir: coverageDir},
		}}
		if diff := cmp.Diff(want, config.CoverageReporter); diff != "" {
			t.Errorf("coverage reporter mismatch (-want +got):\n%s", diff)
		}
		require.Len(t, config.Webpack.Module.Rules, 1)
		assert.Equal(t,
			[]string{filepath.Join(workDir, "node_modules", "ckeditor5-engine", "src")},
			config.Webpack.Module.Rules[0].Include,
		)
	})

	t.Run("should combine coverage with the cloud farm reporters", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.Coverage = true
		opts.BrowserStack = true

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{entities.ReporterDots, "BrowserStack", "coverage"}, config.Reporters)
	})

	t.Run("should alias the theme when a theme path is given", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.ThemePath = "/themes/lark/theme.css"

		// when
		config, err := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]string{entities.ThemeAlias: "/themes/lark/theme.css"}, config.Webpack.Resolve.Alias)
	})

	t.Run("should produce the same config for equal options", func(t *testing.T) {
		t.Parallel()

		// given
		opts := minimalRunnerOptions()
		opts.Coverage = true
		opts.Verbose = true
		opts.Watch = true

		// when
		first, firstErr := entities.NewRunnerConfig(opts, localEnvironment(), settings)
		second, secondErr := entities.NewRunnerConfig(opts, localEnvironment(), settings)

		// then
		require.NoError(t, firstErr)
		require.NoError(t, secondErr)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("configs differ (-first +second):\n%s", diff)
		}
	})
}
