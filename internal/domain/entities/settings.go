package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	toml "github.com/pelletier/go-toml/v2"
	logger "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

const (
	defaultPackagePrefix   = "@ckeditor/ckeditor5"
	defaultDirectoryPrefix = "ckeditor5"
	defaultSiblingMarker   = "/ckeditor5-dev"
	defaultHostMarker      = "cksource/ckeditor"
	defaultPackagesDir     = "packages/"
	defaultChangelogFile   = "CHANGELOG.md"
	defaultCommitMessage   = "Docs: Changelog. [skip ci]"
	defaultRunnerPort      = 9876
	defaultCoverageDir     = "coverage"
	defaultRunnerConfig    = "karma.conf.js"
	defaultManualBuildDir  = "build/.manual-tests"
)

// Settings is the project configuration shared by every command. The same
// flat layout is accepted from YAML, TOML and HCL files.
type Settings struct {
	PackagePrefix        string   `yaml:"package_prefix"         toml:"package_prefix"         hcl:"package_prefix,optional"`
	DirectoryPrefix      string   `yaml:"directory_prefix"       toml:"directory_prefix"       hcl:"directory_prefix,optional"`
	SiblingMarkers       []string `yaml:"sibling_markers"        toml:"sibling_markers"        hcl:"sibling_markers,optional"`
	HostMarkers          []string `yaml:"host_markers"           toml:"host_markers"           hcl:"host_markers,optional"`
	PackagesDirectory    string   `yaml:"packages_directory"     toml:"packages_directory"     hcl:"packages_directory,optional"`
	ChangelogFile        string   `yaml:"changelog_file"         toml:"changelog_file"         hcl:"changelog_file,optional"`
	ChangelogMessage     string   `yaml:"changelog_message"      toml:"changelog_message"      hcl:"changelog_message,optional"`
	SigningKeyFile       string   `yaml:"signing_key_file"       toml:"signing_key_file"       hcl:"signing_key_file,optional"`
	SigningPassphrase    string   `yaml:"signing_passphrase"     toml:"signing_passphrase"     hcl:"signing_passphrase,optional"`
	RunnerPort           int      `yaml:"runner_port"            toml:"runner_port"            hcl:"runner_port,optional"`
	RunnerConfigFile     string   `yaml:"runner_config_file"     toml:"runner_config_file"     hcl:"runner_config_file,optional"`
	RunnerCommand        []string `yaml:"runner_command"         toml:"runner_command"         hcl:"runner_command,optional"`
	CoverageDirectory    string   `yaml:"coverage_directory"     toml:"coverage_directory"     hcl:"coverage_directory,optional"`
	ManualBuildDirectory string   `yaml:"manual_build_directory" toml:"manual_build_directory" hcl:"manual_build_directory,optional"`
	ThemePath            string   `yaml:"theme_path"             toml:"theme_path"             hcl:"theme_path,optional"`
	BrowserStackUsername string   `yaml:"browserstack_username"  toml:"browserstack_username"  hcl:"browserstack_username,optional"`
	BrowserStackKey      string   `yaml:"browserstack_key"       toml:"browserstack_key"       hcl:"browserstack_key,optional"`
}

// SigningKey points at an armored OpenPGP private key used to sign commits.
type SigningKey struct {
	File       string
	Passphrase string
}

// SigningKey returns the configured commit signing key, or nil.
func (s *Settings) SigningKey() *SigningKey {
	if s.SigningKeyFile == "" {
		return nil
	}
	return &SigningKey{File: s.SigningKeyFile, Passphrase: s.SigningPassphrase}
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no configuration file exists.
func DefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

// NewSettings reads and parses a configuration file. The format is chosen by
// the file extension (.yaml/.yml, .toml or .hcl). Secret fields may hold
// ${ENV_VAR} references or a path to a file containing the value.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &settings)
	case ".hcl":
		err = decodeHCL(path, data, &settings)
	default:
		err = yaml.Unmarshal(data, &settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	settings.BrowserStackUsername = resolveSecret(settings.BrowserStackUsername)
	settings.BrowserStackKey = resolveSecret(settings.BrowserStackKey)
	settings.SigningPassphrase = resolveSecret(settings.SigningPassphrase)
	settings.applyDefaults()

	if validateErr := validateSettings(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

// LoadSettings loads the given file, or the auto-detected one when path is
// empty. Without any file the defaults are returned.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		found, err := FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return DefaultSettings(), nil
		}
		path = found
	}

	logger.Debugf("Using config file: %s", path)
	return NewSettings(path)
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".devtools.yaml",
		".devtools.yml",
		".devtools.toml",
		".devtools.hcl",
		"devtools.yaml",
		"devtools.yml",
		"devtools.toml",
		"devtools.hcl",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// decodeHCL decodes an HCL document. Environment variables are exposed to
// expressions as the "env" object, e.g. browserstack_key = env.BS_KEY.
func decodeHCL(path string, data []byte, target *Settings) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return diags
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": environmentObject(os.Environ()),
		},
	}

	if decodeDiags := gohcl.DecodeBody(file.Body, evalCtx, target); decodeDiags.HasErrors() {
		return decodeDiags
	}
	return nil
}

func environmentObject(pairs []string) cty.Value {
	values := make(map[string]cty.Value, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = cty.StringVal(value)
	}
	if len(values) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(values)
}

// resolveSecret expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the value from the file.
func resolveSecret(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if resolved == "" {
		return resolved
	}

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read secret file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Debugf("Read secret from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

func (s *Settings) applyDefaults() {
	if s.PackagePrefix == "" {
		s.PackagePrefix = defaultPackagePrefix
	}
	if s.DirectoryPrefix == "" {
		s.DirectoryPrefix = defaultDirectoryPrefix
	}
	if len(s.SiblingMarkers) == 0 {
		s.SiblingMarkers = []string{defaultSiblingMarker}
	}
	if len(s.HostMarkers) == 0 {
		s.HostMarkers = []string{defaultHostMarker}
	}
	if s.PackagesDirectory == "" {
		s.PackagesDirectory = defaultPackagesDir
	}
	if s.ChangelogFile == "" {
		s.ChangelogFile = defaultChangelogFile
	}
	if s.ChangelogMessage == "" {
		s.ChangelogMessage = defaultCommitMessage
	}
	if s.RunnerPort == 0 {
		s.RunnerPort = defaultRunnerPort
	}
	if s.RunnerConfigFile == "" {
		s.RunnerConfigFile = defaultRunnerConfig
	}
	if len(s.RunnerCommand) == 0 {
		s.RunnerCommand = []string{"npx", "karma", "start"}
	}
	if s.CoverageDirectory == "" {
		s.CoverageDirectory = defaultCoverageDir
	}
	if s.ManualBuildDirectory == "" {
		s.ManualBuildDirectory = defaultManualBuildDir
	}
}

// validateSettings checks values that have no sensible default.
func validateSettings(s *Settings) error {
	if s.RunnerPort < 0 || s.RunnerPort > 65535 {
		return fmt.Errorf("runner_port %d is out of range", s.RunnerPort)
	}
	if s.SigningPassphrase != "" && s.SigningKeyFile == "" {
		return errors.New("signing_passphrase is set but signing_key_file is empty")
	}
	return nil
}
