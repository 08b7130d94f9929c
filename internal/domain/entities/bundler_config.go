package entities

import (
	"path/filepath"
	"sort"
	"strings"
)

const (
	bundlerMode       = "development"
	inlineSourceMap   = "inline-source-map"
	coverageLoader    = "istanbul-instrumenter-loader"
	ThemeAlias        = "@theme"
	manualPathSegment = string(filepath.Separator) + manualDirectory + string(filepath.Separator)
)

// AutomatedBundlerOptions are the inputs of the bundler sub-config.
type AutomatedBundlerOptions struct {
	Files     []string
	SourceMap bool
	Coverage  bool
	ThemePath string
}

// BundlerRule is a module rule of the bundler sub-config.
type BundlerRule struct {
	Loader  string         `json:"loader"`
	Enforce string         `json:"enforce,omitempty"`
	Include []string       `json:"include,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

// BundlerModule holds the module rules.
type BundlerModule struct {
	Rules []BundlerRule `json:"rules"`
}

// BundlerResolve holds module resolution settings.
type BundlerResolve struct {
	Alias map[string]string `json:"alias,omitempty"`
}

// BundlerConfig is the bundler sub-config embedded in the runner config.
type BundlerConfig struct {
	Mode    string         `json:"mode"`
	Devtool string         `json:"devtool,omitempty"`
	Module  BundlerModule  `json:"module"`
	Resolve BundlerResolve `json:"resolve"`
}

// NewAutomatedBundlerConfig builds the bundler sub-config for automated tests.
func NewAutomatedBundlerConfig(opts AutomatedBundlerOptions) BundlerConfig {
	config := BundlerConfig{
		Mode:   bundlerMode,
		Module: BundlerModule{Rules: []BundlerRule{}},
	}

	if opts.SourceMap {
		config.Devtool = inlineSourceMap
	}

	if opts.ThemePath != "" {
		config.Resolve.Alias = map[string]string{ThemeAlias: opts.ThemePath}
	}

	if opts.Coverage {
		config.Module.Rules = append(config.Module.Rules, BundlerRule{
			Loader:  coverageLoader,
			Enforce: "post",
			Include: coverageSources(opts.Files),
			Options: map[string]any{"esModules": true},
		})
	}

	return config
}

func coverageSources(files []string) []string {
	seen := make(map[string]struct{}, len(files))
	sources := make([]string, 0, len(files))
	for _, file := range files {
		dir := SourceDirectoryForGlob(file)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		sources = append(sources, dir)
	}
	return sources
}

// BuildConfig describes a single bundler run over manual test scripts.
type BuildConfig struct {
	// Entries maps an output name to its source script.
	Entries   map[string]string
	OutputDir string
	ThemePath string
	SourceMap bool
}

// NewManualBuildConfig selects the scripts that live in a manual test
// directory and keys each one by its relative path without extension.
func NewManualBuildConfig(files []string, buildDir, themePath, workingDirectory, directoryPrefix string) BuildConfig {
	entries := make(map[string]string)
	for _, file := range files {
		if !strings.Contains(file, manualPathSegment) {
			continue
		}
		name := strings.TrimSuffix(RelativeFilePath(file, workingDirectory, directoryPrefix), ".js")
		entries[name] = file
	}

	return BuildConfig{
		Entries:   entries,
		OutputDir: buildDir,
		ThemePath: themePath,
		SourceMap: true,
	}
}

// EntryNames returns the entry names in a stable order.
func (c BuildConfig) EntryNames() []string {
	names := make([]string, 0, len(c.Entries))
	for name := range c.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RelativeFilePath shortens a test file path to start at its package
// directory (the last "<prefix>-*" segment). Files outside of any project
// package are made relative to the working directory.
func RelativeFilePath(file, workingDirectory, directoryPrefix string) string {
	marker := string(filepath.Separator) + directoryPrefix + "-"
	if idx := strings.LastIndex(file, marker); idx >= 0 {
		return file[idx+1:]
	}

	if rel, err := filepath.Rel(workingDirectory, file); err == nil {
		return rel
	}
	return file
}
