package entities

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

const (
	ReporterMocha = "mocha"
	ReporterDots  = "dots"

	reporterBrowserStack = "BrowserStack"
	reporterCoverage     = "coverage"

	preprocessorWebpack   = "webpack"
	preprocessorSourceMap = "sourcemap"

	LauncherChromeCI    = "CHROME_TRAVIS_CI"
	LauncherChromeLocal = "CHROME_LOCAL"
	browserChrome       = "Chrome"
	baseBrowserStack    = "BrowserStack"
)

var (
	// ErrNoTestFiles is returned when no file option was given.
	ErrNoTestFiles = errors.New("karma requires files to tests: files has to be a non-empty list")

	// ErrUnsupportedReporter is returned for a reporter outside SupportedReporters.
	ErrUnsupportedReporter = errors.New("given Mocha reporter is not supported")
)

// SupportedReporters lists the accepted values of RunnerOptions.Reporter.
func SupportedReporters() []string {
	return []string{ReporterMocha, ReporterDots}
}

// RunnerOptions are the user choices for an automated test run.
type RunnerOptions struct {
	Files        []string
	Reporter     string
	SourceMap    bool
	Coverage     bool
	ThemePath    string
	Browsers     []string
	Watch        bool
	Server       bool
	Verbose      bool
	BrowserStack bool
	Username     string
	AccessKey    string
}

// Launcher is a named browser preset.
type Launcher struct {
	Base           string   `json:"base"`
	Flags          []string `json:"flags,omitempty"`
	OS             string   `json:"os,omitempty"`
	OSVersion      string   `json:"os_version,omitempty"`
	Browser        string   `json:"browser,omitempty"`
	BrowserVersion string   `json:"browser_version,omitempty"`
}

// MiddlewareStats controls the bundler middleware output.
type MiddlewareStats struct {
	Chunks bool `json:"chunks"`
}

// Middleware configures the bundler middleware of the runner.
type Middleware struct {
	NoInfo bool             `json:"noInfo"`
	Stats  *MiddlewareStats `json:"stats,omitempty"`
}

// BrowserStackCredentials authenticates against the cloud browser farm.
type BrowserStackCredentials struct {
	Username  string `json:"username"`
	AccessKey string `json:"accessKey"`
}

// CoverageTarget is a single coverage output.
type CoverageTarget struct {
	Type   string `json:"type"`
	Dir    string `json:"dir,omitempty"`
	Subdir string `json:"subdir,omitempty"`
}

// CoverageReporter groups the coverage outputs.
type CoverageReporter struct {
	Reporters []CoverageTarget `json:"reporters"`
}

// MochaReporter configures the mocha reporter.
type MochaReporter struct {
	ShowDiff bool `json:"showDiff"`
}

// RunnerConfig is the configuration object handed to Karma.
type RunnerConfig struct {
	BasePath                 string                   `json:"basePath"`
	Frameworks               []string                 `json:"frameworks"`
	Files                    []string                 `json:"files"`
	Exclude                  []string                 `json:"exclude"`
	Preprocessors            map[string][]string      `json:"preprocessors"`
	Webpack                  BundlerConfig            `json:"webpack"`
	WebpackMiddleware        Middleware               `json:"webpackMiddleware"`
	Reporters                []string                 `json:"reporters"`
	Port                     int                      `json:"port"`
	Colors                   bool                     `json:"colors"`
	LogLevel                 string                   `json:"logLevel"`
	Browsers                 []string                 `json:"browsers"`
	CustomLaunchers          map[string]Launcher      `json:"customLaunchers"`
	SingleRun                bool                     `json:"singleRun"`
	AutoWatch                bool                     `json:"autoWatch"`
	Concurrency              *int                     `json:"concurrency,omitempty"`
	BrowserNoActivityTimeout int                      `json:"browserNoActivityTimeout"`
	MochaReporter            MochaReporter            `json:"mochaReporter"`
	BrowserStack             *BrowserStackCredentials `json:"browserStack,omitempty"`
	CoverageReporter         *CoverageReporter        `json:"coverageReporter,omitempty"`
}

// DefaultLaunchers returns the browser presets known to the runner.
func DefaultLaunchers() map[string]Launcher {
	return map[string]Launcher{
		LauncherChromeCI: {
			Base:  browserChrome,
			Flags: []string{"--no-sandbox", "--disable-background-timer-throttling"},
		},
		LauncherChromeLocal: {
			Base:  browserChrome,
			Flags: []string{"--disable-background-timer-throttling"},
		},
		"Windows_Edge": {
			Base: baseBrowserStack, OS: "Windows", OSVersion: "10",
			Browser: "edge", BrowserVersion: "16.0",
		},
		"Mavericks_Chrome": {
			Base: baseBrowserStack, OS: "OS X", OSVersion: "Mavericks",
			Browser: "chrome", BrowserVersion: "62.0",
		},
		"Yosemite_Firefox": {
			Base: baseBrowserStack, OS: "OS X", OSVersion: "Yosemite",
			Browser: "firefox", BrowserVersion: "57.0",
		},
		"HighSierra_Safari": {
			Base: baseBrowserStack, OS: "OS X", OSVersion: "High Sierra",
			Browser: "safari", BrowserVersion: "11.0",
		},
	}
}

// runnerTransform derives a new configuration from an existing one. Every
// transform copies what it changes and touches a disjoint set of fields, so
// the order they are applied in does not matter.
type runnerTransform func(config RunnerConfig, opts RunnerOptions) RunnerConfig

// NewRunnerConfig assembles the Karma configuration for the given options.
func NewRunnerConfig(opts RunnerOptions, env Environment, settings *Settings) (*RunnerConfig, error) {
	if len(opts.Files) == 0 {
		return nil, ErrNoTestFiles
	}

	if !isSupportedReporter(opts.Reporter) {
		return nil, fmt.Errorf(
			"%w: %q, available reporters: %s",
			ErrUnsupportedReporter, opts.Reporter, strings.Join(SupportedReporters(), ", "),
		)
	}

	config := baseRunnerConfig(opts, env, settings)

	transforms := []runnerTransform{
		withWatchMode,
		withVerboseMiddleware,
		withBrowserStackCredentials,
		coverageTransform(filepath.Join(env.WorkingDirectory, settings.CoverageDirectory)),
	}
	for _, transform := range transforms {
		config = transform(config, opts)
	}

	return &config, nil
}

func baseRunnerConfig(opts RunnerOptions, env Environment, settings *Settings) RunnerConfig {
	files := make([]string, 0, len(opts.Files))
	for _, file := range opts.Files {
		files = append(files, TransformFileOptionToTestGlob(file, env.WorkingDirectory, settings.DirectoryPrefix, false))
	}

	preprocessors := make(map[string][]string, len(files))
	for _, file := range files {
		steps := []string{preprocessorWebpack}
		if opts.SourceMap {
			steps = append(steps, preprocessorSourceMap)
		}
		preprocessors[file] = steps
	}

	launchers := DefaultLaunchers()

	return RunnerConfig{
		BasePath:   env.WorkingDirectory,
		Frameworks: []string{"mocha", "chai", "sinon"},
		Files:      files,
		Exclude: []string{
			filepath.Join("**", testsDirectory, "**", "_utils", "**", scriptGlob),
			filepath.Join("**", testsDirectory, "**", manualDirectory, "**", scriptGlob),
		},
		Preprocessors: preprocessors,
		Webpack: NewAutomatedBundlerConfig(AutomatedBundlerOptions{
			Files:     files,
			SourceMap: opts.SourceMap,
			Coverage:  opts.Coverage,
			ThemePath: opts.ThemePath,
		}),
		WebpackMiddleware: Middleware{
			NoInfo: true,
			Stats:  &MiddlewareStats{Chunks: false},
		},
		Reporters:                selectReporters(opts),
		Port:                     settings.RunnerPort,
		Colors:                   true,
		LogLevel:                 "INFO",
		Browsers:                 selectBrowsers(opts, env, launchers),
		CustomLaunchers:          launchers,
		SingleRun:                true,
		BrowserNoActivityTimeout: 0,
		MochaReporter:            MochaReporter{ShowDiff: true},
	}
}

// selectReporters derives the reporter list from the reporter, cloud farm
// and coverage options together.
func selectReporters(opts RunnerOptions) []string {
	reporters := []string{opts.Reporter}
	if opts.BrowserStack {
		reporters = []string{ReporterDots, reporterBrowserStack}
	}
	if opts.Coverage {
		reporters = append(reporters, reporterCoverage)
	}
	return reporters
}

// selectBrowsers returns the browsers to start. A nil result lets the runner
// wait for browsers to connect on their own.
func selectBrowsers(opts RunnerOptions, env Environment, launchers map[string]Launcher) []string {
	if opts.BrowserStack {
		return browserStackBrowsers(opts.Browsers, launchers)
	}

	if env.CI {
		return []string{LauncherChromeCI}
	}

	if opts.Server || opts.Browsers == nil {
		return nil
	}

	browsers := make([]string, 0, len(opts.Browsers))
	for _, browser := range opts.Browsers {
		if browser == browserChrome {
			browsers = append(browsers, LauncherChromeLocal)
			continue
		}
		browsers = append(browsers, browser)
	}
	return browsers
}

// browserStackBrowsers returns every cloud farm preset, narrowed to the
// requested browsers. Preset names follow the OperatingSystem_Browser form.
func browserStackBrowsers(requested []string, launchers map[string]Launcher) []string {
	if isDefaultBrowserSelection(requested) {
		requested = nil
	}

	names := make([]string, 0, len(launchers))
	for name, launcher := range launchers {
		if launcher.Base != baseBrowserStack {
			continue
		}
		if len(requested) > 0 && !matchesRequestedBrowser(name, requested) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func matchesRequestedBrowser(launcherName string, requested []string) bool {
	segment := launcherName
	if idx := strings.LastIndex(launcherName, "_"); idx >= 0 {
		segment = launcherName[idx+1:]
	}

	for _, browser := range requested {
		if strings.EqualFold(browser, segment) {
			return true
		}
	}
	return false
}

// isDefaultBrowserSelection reports whether the list is the implicit local
// default rather than an explicit user choice.
func isDefaultBrowserSelection(browsers []string) bool {
	return len(browsers) == 1 &&
		(browsers[0] == LauncherChromeLocal || browsers[0] == browserChrome)
}

func withWatchMode(config RunnerConfig, opts RunnerOptions) RunnerConfig {
	if opts.Watch || opts.Server {
		config.AutoWatch = true
		config.SingleRun = false
	}
	return config
}

func withVerboseMiddleware(config RunnerConfig, opts RunnerOptions) RunnerConfig {
	if opts.Verbose {
		config.WebpackMiddleware = Middleware{NoInfo: false}
	}
	return config
}

func withBrowserStackCredentials(config RunnerConfig, opts RunnerOptions) RunnerConfig {
	if opts.BrowserStack {
		config.BrowserStack = &BrowserStackCredentials{
			Username:  opts.Username,
			AccessKey: opts.AccessKey,
		}
	}
	return config
}

func coverageTransform(coverageDir string) runnerTransform {
	return func(config RunnerConfig, opts RunnerOptions) RunnerConfig {
		if !opts.Coverage {
			return config
		}

		config.CoverageReporter = &CoverageReporter{
			Reporters: []CoverageTarget{
				{Type: "text-summary"},
				{Type: "html", Dir: coverageDir},
				// lcov.info is picked up by the code quality service.
				{Type: "lcovonly", Subdir: ".", Dir: coverageDir},
			},
		}
		return config
	}
}

func isSupportedReporter(reporter string) bool {
	for _, supported := range SupportedReporters() {
		if supported == reporter {
			return true
		}
	}
	return false
}
