//go:build unit

package karma_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	"github.com/rios0rios0/devtools/internal/infrastructure/repositories/karma"
)

func sampleConfig(t *testing.T) *entities.RunnerConfig {
	t.Helper()
	config, err := entities.NewRunnerConfig(entities.RunnerOptions{
		Files:    []string{"engine"},
		Reporter: entities.ReporterMocha,
		Browsers: []string{"Chrome"},
		Coverage: true,
	}, entities.Environment{WorkingDirectory: "/work/ckeditor5"}, entities.DefaultSettings())
	require.NoError(t, err)
	return config
}

func TestRenderConfig(t *testing.T) {
	t.Parallel()

	t.Run("should wrap the JSON in a Karma config module", func(t *testing.T) {
		t.Parallel()

		// given
		config := sampleConfig(t)

		// when
		content, err := karma.RenderConfig(config)

		// then
		require.NoError(t, err)
		text := string(content)
		assert.True(t, strings.Contains(text, "module.exports = config => {\n\tconfig.set( {"))
		assert.True(t, strings.HasSuffix(text, "} );\n};\n"))

		start := strings.Index(text, "config.set( ") + len("config.set( ")
		end := strings.LastIndex(text, " );")
		var decoded entities.RunnerConfig
		require.NoError(t, json.Unmarshal([]byte(text[start:end]), &decoded))
		assert.Equal(t, config.Files, decoded.Files)
		assert.Equal(t, config.CoverageReporter, decoded.CoverageReporter)
	})
}

func TestRunnerRepositoryWriteConfig(t *testing.T) {
	t.Parallel()

	t.Run("should write the rendered module", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "karma.conf.js")
		config := sampleConfig(t)
		repo := karma.NewRunnerRepository()

		// when
		err := repo.WriteConfig(path, config)

		// then
		require.NoError(t, err)
		written, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		expected, renderErr := karma.RenderConfig(config)
		require.NoError(t, renderErr)
		assert.Equal(t, expected, written)
	})
}

func TestRunnerRepositoryRun(t *testing.T) {
	t.Parallel()

	t.Run("should fail without a command", func(t *testing.T) {
		t.Parallel()

		// given
		repo := karma.NewRunnerRepository()

		// when
		err := repo.Run(context.Background(), nil, "karma.conf.js", nil)

		// then
		require.Error(t, err)
	})
}

func TestMergeEnv(t *testing.T) {
	t.Parallel()

	t.Run("should append extra variables in key order", func(t *testing.T) {
		t.Parallel()

		// given
		base := []string{"PATH=/usr/bin"}

		// when
		merged := karma.MergeEnv(base, map[string]string{"Z_VAR": "z", "CHROME_BIN": "/usr/bin/chromium"})

		// then
		assert.Equal(t, []string{"PATH=/usr/bin", "CHROME_BIN=/usr/bin/chromium", "Z_VAR=z"}, merged)
		assert.Equal(t, []string{"PATH=/usr/bin"}, base)
	})
}
