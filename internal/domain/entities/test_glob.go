package entities

import (
	"path/filepath"
	"strings"
)

const (
	currentPackageOption = "/"
	testsDirectory       = "tests"
	manualDirectory      = "manual"
	scriptGlob           = "*.js"
	recursiveGlob        = "**"
	sourcesDirectory     = "src"
	globMetaCharacters   = "*?[{"
)

// TransformFileOptionToTestGlob converts a --files value into a glob that
// matches test scripts:
//
//	"/"            tests of the package in the working directory
//	"engine"       node_modules/<prefix>-engine/tests/**/*.js
//	"engine/view"  node_modules/<prefix>-engine/tests/view/**/*.js
//	"engine/a.js"  node_modules/<prefix>-engine/tests/a.js
//	"*"            tests of every project package
//
// Absolute paths are returned unchanged. With manual set, only scripts in
// the "manual" directories are matched.
func TransformFileOptionToTestGlob(option, workingDirectory, directoryPrefix string, manual bool) string {
	if filepath.IsAbs(option) && option != currentPackageOption {
		return option
	}

	var base string
	var rest []string
	if option == currentPackageOption {
		base = filepath.Join(workingDirectory, testsDirectory)
	} else {
		chunks := strings.Split(strings.Trim(option, "/"), "/")
		packageDir := filepath.Join(workingDirectory, "node_modules", directoryPrefix+"-"+chunks[0])
		base = filepath.Join(packageDir, testsDirectory)
		rest = chunks[1:]
	}

	if manual {
		base = filepath.Join(base, manualDirectory)
	}

	if len(rest) > 0 && strings.HasSuffix(rest[len(rest)-1], ".js") {
		return filepath.Join(append([]string{base}, rest...)...)
	}

	parts := append([]string{base}, rest...)
	parts = append(parts, recursiveGlob, scriptGlob)
	return filepath.Join(parts...)
}

// SourceDirectoryForGlob returns the source directory of the package a test
// glob belongs to, used to scope coverage instrumentation.
func SourceDirectoryForGlob(glob string) string {
	separator := string(filepath.Separator)
	marker := separator + testsDirectory + separator
	if idx := strings.LastIndex(glob, marker); idx >= 0 {
		return filepath.Join(glob[:idx], sourcesDirectory)
	}
	return filepath.Join(filepath.Dir(glob), sourcesDirectory)
}

// WatchRootsForGlob returns the directories whose changes affect the scripts
// matched by a manual test glob: the manual tests of the package and its
// sources. The package part of a root may still contain glob characters.
func WatchRootsForGlob(glob string) []string {
	separator := string(filepath.Separator)
	marker := separator + testsDirectory + separator
	if idx := strings.LastIndex(glob, marker); idx >= 0 {
		packageDir := glob[:idx]
		return []string{
			filepath.Join(packageDir, sourcesDirectory),
			filepath.Join(packageDir, testsDirectory, manualDirectory),
		}
	}

	if idx := strings.IndexAny(glob, globMetaCharacters); idx >= 0 {
		glob = glob[:idx]
	}
	return []string{filepath.Dir(glob)}
}

// HasGlobMeta reports whether path contains glob characters.
func HasGlobMeta(path string) bool {
	return strings.ContainsAny(path, globMetaCharacters)
}
