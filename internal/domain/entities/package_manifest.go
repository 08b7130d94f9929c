package entities

import (
	"encoding/json"
	"strings"
)

// PackageManifest is the subset of package.json the tools work with.
type PackageManifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Repository      RepositoryField   `json:"repository"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// RepositoryField accepts both the string and the object form of the
// package.json "repository" entry.
type RepositoryField struct {
	URL string
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RepositoryField) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		r.URL = raw
		return nil
	}

	var object struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		return err
	}
	r.URL = object.URL
	return nil
}

// AllDependencies merges runtime and development dependencies. Development
// entries win when a name appears in both sections.
func (p *PackageManifest) AllDependencies() map[string]string {
	merged := make(map[string]string, len(p.Dependencies)+len(p.DevDependencies))
	for name, version := range p.Dependencies {
		merged[name] = version
	}
	for name, version := range p.DevDependencies {
		merged[name] = version
	}
	return merged
}

// ShortName returns the package name without its npm scope.
func (p *PackageManifest) ShortName() string {
	if _, after, found := strings.Cut(p.Name, "/"); found && strings.HasPrefix(p.Name, "@") {
		return after
	}
	return p.Name
}
