package entities

import "strings"

const defaultGitHost = "github.com"

// NormalizeRepositoryURL turns the repository forms found in package.json
// files and git remotes into a browsable https URL:
//
//	git@github.com:org/repo.git     -> https://github.com/org/repo
//	git+https://github.com/org/repo -> https://github.com/org/repo
//	github:org/repo, org/repo       -> https://github.com/org/repo
//
// Unrecognised values yield an empty string.
func NormalizeRepositoryURL(raw string) string {
	cleaned := strings.TrimSuffix(strings.TrimSpace(raw), "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")
	cleaned = strings.TrimPrefix(cleaned, "git+")

	switch {
	case cleaned == "":
		return ""
	case strings.HasPrefix(cleaned, "git@"):
		host, path, ok := strings.Cut(strings.TrimPrefix(cleaned, "git@"), ":")
		if !ok {
			return ""
		}
		return buildHTTPSURL(host, path)
	case strings.Contains(cleaned, "://"):
		_, rest, _ := strings.Cut(cleaned, "://")
		if at := strings.Index(rest, "@"); at >= 0 && at < strings.Index(rest+"/", "/") {
			rest = rest[at+1:]
		}
		host, path, ok := strings.Cut(rest, "/")
		if !ok {
			return ""
		}
		return buildHTTPSURL(host, path)
	case strings.HasPrefix(cleaned, "github:"):
		return buildHTTPSURL(defaultGitHost, strings.TrimPrefix(cleaned, "github:"))
	case strings.Count(cleaned, "/") == 1 && !strings.Contains(cleaned, ":"):
		return buildHTTPSURL(defaultGitHost, cleaned)
	default:
		return ""
	}
}

func buildHTTPSURL(host, path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" { //nolint:mnd // need org + repo
		return ""
	}
	return "https://" + host + "/" + segments[0] + "/" + segments[1]
}
