package entities

import (
	"regexp"
	"strings"
)

// hashedVersionPattern matches a specifier already pinned to a commit.
var hashedVersionPattern = regexp.MustCompile(`#[0-9a-f]+$`)

// MgitManifest is the content of an mgit.json file: where the packages are
// cloned to and which revision of each one to check out.
type MgitManifest struct {
	Packages     string            `json:"packages"`
	Dependencies map[string]string `json:"dependencies"`
}

// CommitOverride pins a single package to a specific commit.
type CommitOverride struct {
	PackageName string
	Commit      string
}

// ManifestRules decides which dependencies belong in the manifest.
type ManifestRules struct {
	PackagesDirectory string
	PackagePrefix     string
	SiblingMarkers    []string
	HostMarkers       []string
}

// NewManifestRules extracts the manifest rules from the settings.
func NewManifestRules(settings *Settings) ManifestRules {
	return ManifestRules{
		PackagesDirectory: settings.PackagesDirectory,
		PackagePrefix:     settings.PackagePrefix,
		SiblingMarkers:    settings.SiblingMarkers,
		HostMarkers:       settings.HostMarkers,
	}
}

// NewMgitManifest converts the dependencies of a package manifest into an
// mgit manifest. A dependency is kept when it is a project package or when
// its version points at a project host; the two conditions are independent.
// Tooling siblings are never kept.
func NewMgitManifest(pkg *PackageManifest, rules ManifestRules, override *CommitOverride) *MgitManifest {
	manifest := &MgitManifest{
		Packages:     rules.PackagesDirectory,
		Dependencies: make(map[string]string),
	}

	if pkg != nil {
		for name, version := range pkg.AllDependencies() {
			if !rules.includes(name, version) {
				continue
			}

			if IsHashedVersion(version) {
				manifest.Dependencies[name] = version
			} else {
				manifest.Dependencies[name] = strings.TrimPrefix(name, "@")
			}
		}
	}

	if override == nil {
		return manifest
	}

	if current, ok := manifest.Dependencies[override.PackageName]; ok {
		base, _, _ := strings.Cut(current, "#")
		manifest.Dependencies[override.PackageName] = base + "#" + override.Commit
	}

	return manifest
}

// IsHashedVersion reports whether the specifier ends with "#<hex>".
func IsHashedVersion(version string) bool {
	return hashedVersionPattern.MatchString(version)
}

func (r ManifestRules) includes(name, version string) bool {
	if containsAny(name, r.SiblingMarkers) {
		return false
	}
	return strings.HasPrefix(name, r.PackagePrefix) || containsAny(version, r.HostMarkers)
}

func containsAny(value string, markers []string) bool {
	for _, marker := range markers {
		if marker != "" && strings.Contains(value, marker) {
			return true
		}
	}
	return false
}
