package entities

import (
	"regexp"
	"strings"
	"time"
)

// ReleaseType classifies a pending release.
type ReleaseType string

const (
	ReleaseMajor    ReleaseType = "major"
	ReleaseMinor    ReleaseType = "minor"
	ReleasePatch    ReleaseType = "patch"
	ReleaseSkip     ReleaseType = "skip"
	ReleaseInternal ReleaseType = "internal"
)

// Commit types recognised in commit headers.
const (
	CommitFeature  = "Feature"
	CommitFix      = "Fix"
	CommitOther    = "Other"
	CommitDocs     = "Docs"
	CommitInternal = "Internal"
	CommitTests    = "Tests"
	CommitRevert   = "Revert"
	CommitRelease  = "Release"
)

const (
	noteBreakingChange  = "BREAKING CHANGE"
	noteBreakingChanges = "BREAKING CHANGES"
	noteGeneric         = "NOTE"
	shortHashLength     = 7
)

var (
	headerPattern      = regexp.MustCompile(`^([A-Za-z]+)(?: \(([\w-]+)\))?: (.+)$`)
	mergeHeaderPattern = regexp.MustCompile(`^Merge (?:pull request|branch) `)
	notePattern        = regexp.MustCompile(`^(BREAKING CHANGES?|NOTE):\s*(.*)$`)
)

// visibleTypes maps commit types shown in the changelog to their section.
var visibleTypes = map[string]string{ //nolint:gochecknoglobals // lookup table
	CommitFeature: "Features",
	CommitFix:     "Bug fixes",
	CommitOther:   "Other changes",
}

// SectionOrder is the order in which changelog sections are rendered.
func SectionOrder() []string {
	return []string{"Bug fixes", "Features", "Other changes"}
}

// Commit is a raw commit read from the repository.
type Commit struct {
	Hash    string
	Message string
	Date    time.Time
}

// Note is a free-form remark attached to a commit.
type Note struct {
	Title string
	Text  string
}

// TransformedCommit is a commit parsed into changelog terms.
type TransformedCommit struct {
	Hash    string
	Type    string
	Scope   string
	Subject string
	Body    string
	Notes   []Note
	Valid   bool
}

// ShortHash returns the abbreviated commit hash.
func (c TransformedCommit) ShortHash() string {
	if len(c.Hash) > shortHashLength {
		return c.Hash[:shortHashLength]
	}
	return c.Hash
}

// IsVisible reports whether the commit appears in the changelog.
func (c TransformedCommit) IsVisible() bool {
	_, ok := visibleTypes[c.Type]
	return c.Valid && ok
}

// Section returns the changelog section of a visible commit.
func (c TransformedCommit) Section() string {
	return visibleTypes[c.Type]
}

// IsBreaking reports whether the commit carries a breaking change note.
func (c TransformedCommit) IsBreaking() bool {
	for _, note := range c.Notes {
		if note.Title == noteBreakingChanges {
			return true
		}
	}
	return false
}

// TransformCommit parses a raw commit. Merge commits take their header from
// the first line of the body.
func TransformCommit(commit Commit) TransformedCommit {
	lines := strings.Split(strings.ReplaceAll(commit.Message, "\r\n", "\n"), "\n")

	header := strings.TrimSpace(lines[0])
	bodyLines := lines[1:]
	if mergeHeaderPattern.MatchString(header) {
		header, bodyLines = firstNonEmpty(bodyLines)
	}

	transformed := TransformedCommit{Hash: commit.Hash, Subject: header}
	if match := headerPattern.FindStringSubmatch(header); match != nil {
		transformed.Type = match[1]
		transformed.Scope = match[2]
		transformed.Subject = match[3]
		transformed.Valid = isKnownType(match[1])
	}

	transformed.Body, transformed.Notes = parseBody(bodyLines)
	return transformed
}

// TransformCommits parses every commit, preserving order.
func TransformCommits(commits []Commit) []TransformedCommit {
	result := make([]TransformedCommit, 0, len(commits))
	for _, commit := range commits {
		result = append(result, TransformCommit(commit))
	}
	return result
}

// GetNewReleaseType proposes a release type for the given commits: skip
// when there is nothing, internal when nothing is changelog-worthy.
func GetNewReleaseType(commits []TransformedCommit) ReleaseType {
	if len(commits) == 0 {
		return ReleaseSkip
	}

	hasVisible := false
	hasFeature := false
	for _, commit := range commits {
		if commit.IsBreaking() {
			return ReleaseMajor
		}
		if commit.IsVisible() {
			hasVisible = true
			hasFeature = hasFeature || commit.Type == CommitFeature
		}
	}

	switch {
	case hasFeature:
		return ReleaseMinor
	case hasVisible:
		return ReleasePatch
	default:
		return ReleaseInternal
	}
}

func parseBody(lines []string) (string, []Note) {
	var body []string
	var notes []Note
	current := -1

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if match := notePattern.FindStringSubmatch(trimmed); match != nil {
			title := match[1]
			if title == noteBreakingChange {
				title = noteBreakingChanges
			}
			notes = append(notes, Note{Title: title, Text: match[2]})
			current = len(notes) - 1
			continue
		}

		if current >= 0 {
			if trimmed == "" {
				current = -1
				continue
			}
			notes[current].Text = strings.TrimSpace(notes[current].Text + " " + trimmed)
			continue
		}

		body = append(body, line)
	}

	return strings.TrimSpace(strings.Join(body, "\n")), notes
}

func firstNonEmpty(lines []string) (string, []string) {
	for i, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed, lines[i+1:]
		}
	}
	return "", nil
}

func isKnownType(commitType string) bool {
	switch commitType {
	case CommitFeature, CommitFix, CommitOther, CommitDocs,
		CommitInternal, CommitTests, CommitRevert, CommitRelease:
		return true
	default:
		return false
	}
}
