package esbuild

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

const themePluginName = "theme-importer"

// BundlerRepository compiles manual test scripts with esbuild.
type BundlerRepository struct{}

// NewBundlerRepository creates a new BundlerRepository.
func NewBundlerRepository() *BundlerRepository {
	return &BundlerRepository{}
}

// Bundle runs a single build; any error reported by esbuild fails it.
func (it *BundlerRepository) Bundle(ctx context.Context, config entities.BuildConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	result := api.Build(buildOptions(config))

	for _, warning := range api.FormatMessages(result.Warnings, api.FormatMessagesOptions{
		Kind: api.WarningMessage,
	}) {
		logger.Debug(strings.TrimSpace(warning))
	}

	if len(result.Errors) > 0 {
		formatted := api.FormatMessages(result.Errors, api.FormatMessagesOptions{
			Kind: api.ErrorMessage,
		})
		return errors.New(strings.TrimSpace(strings.Join(formatted, "\n")))
	}

	logger.Debugf("Wrote %d files to %s", len(result.OutputFiles), config.OutputDir)
	return nil
}

func buildOptions(config entities.BuildConfig) api.BuildOptions {
	entryPoints := make([]api.EntryPoint, 0, len(config.Entries))
	for _, name := range config.EntryNames() {
		entryPoints = append(entryPoints, api.EntryPoint{
			InputPath:  config.Entries[name],
			OutputPath: name,
		})
	}

	sourceMap := api.SourceMapNone
	if config.SourceMap {
		sourceMap = api.SourceMapInline
	}

	options := api.BuildOptions{
		EntryPointsAdvanced: entryPoints,
		Bundle:              true,
		Write:               true,
		Outdir:              config.OutputDir,
		Format:              api.FormatIIFE,
		Target:              api.ES2019,
		Sourcemap:           sourceMap,
		LogLevel:            api.LogLevelSilent,
		Loader: map[string]api.Loader{
			".svg":  api.LoaderText,
			".html": api.LoaderText,
			".css":  api.LoaderCSS,
		},
	}

	if config.ThemePath != "" {
		options.Plugins = []api.Plugin{themePlugin(config.ThemePath)}
	}
	return options
}

// themePlugin resolves "@theme/..." imports inside the configured theme.
func themePlugin(themePath string) api.Plugin {
	return api.Plugin{
		Name: themePluginName,
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `^` + entities.ThemeAlias + `(/.*)?$`},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					root, err := filepath.Abs(themePath)
					if err != nil {
						return api.OnResolveResult{}, fmt.Errorf("invalid theme path: %w", err)
					}
					rest := strings.TrimPrefix(strings.TrimPrefix(args.Path, entities.ThemeAlias), "/")
					return api.OnResolveResult{Path: filepath.Join(root, rest)}, nil
				})
		},
	}
}
