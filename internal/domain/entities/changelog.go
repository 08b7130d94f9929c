package entities

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"
	"time"
)

const (
	ChangelogHeader = "Changelog\n=========\n\n"

	h2Prefix            = "## "
	internalChangesNote = "Internal changes only (updated dependencies, documentation, etc.)."
	dateLayout          = "2006-01-02"
)

var lastVersionPattern = regexp.MustCompile(`(?m)^## \[?v?(\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?)`)

var entryTemplate = template.Must(template.New("entry").Parse( //nolint:gochecknoglobals // parsed once
	`## {{ .Heading }} ({{ .Date }})
{{ if .Internal }}
` + internalChangesNote + `
{{ else }}{{ range .Sections }}
### {{ .Title }}

{{ range .Items }}* {{ . }}
{{ end }}{{ end }}{{ end }}`))

// ChangelogContext holds everything needed to render one changelog entry.
type ChangelogContext struct {
	Version           string
	TagName           string
	NewTagName        string
	IsInternalRelease bool
	SkipLinks         bool
	RepositoryURL     string
	Date              time.Time
	Commits           []TransformedCommit
}

type changelogSection struct {
	Title string
	Items []string
}

type changelogData struct {
	Heading  string
	Date     string
	Internal bool
	Sections []changelogSection
}

// LastVersionFromChangelog returns the version of the newest entry, or an
// empty string when the changelog has none.
func LastVersionFromChangelog(content string) string {
	match := lastVersionPattern.FindStringSubmatch(content)
	if match == nil {
		return ""
	}
	return match[1]
}

// FormatChangelogEntry renders the entry for a release.
func FormatChangelogEntry(ctx ChangelogContext) (string, error) {
	data := changelogData{
		Heading:  ctx.heading(),
		Date:     ctx.Date.Format(dateLayout),
		Internal: ctx.IsInternalRelease,
	}

	if !ctx.IsInternalRelease {
		data.Sections = ctx.sections()
	}

	var buf bytes.Buffer
	if err := entryTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render changelog entry: %w", err)
	}
	return buf.String(), nil
}

// InsertChangelogEntry places the entry above the newest existing entry.
//
// Behaviour:
//   - Empty content gets the changelog header first.
//   - Without any "## " heading the entry is appended after the header.
func InsertChangelogEntry(content, entry string) string {
	if strings.TrimSpace(content) == "" {
		return ChangelogHeader + strings.TrimRight(entry, "\n") + "\n"
	}

	lines := strings.Split(content, "\n")
	entryLines := strings.Split(strings.TrimRight(entry, "\n"), "\n")
	entryLines = append(entryLines, "")

	firstEntryIdx := findNextH2Index(lines, -1)
	if firstEntryIdx == len(lines) {
		trimmed := strings.TrimRight(content, "\n")
		return trimmed + "\n\n" + strings.Join(entryLines, "\n")
	}

	lines = insertLines(lines, firstEntryIdx, entryLines)
	return strings.Join(lines, "\n")
}

func (c ChangelogContext) heading() string {
	if c.SkipLinks || c.RepositoryURL == "" {
		return c.Version
	}
	if c.TagName == "" {
		return fmt.Sprintf("[%s](%s/tree/%s)", c.Version, c.RepositoryURL, c.NewTagName)
	}
	return fmt.Sprintf("[%s](%s/compare/%s...%s)", c.Version, c.RepositoryURL, c.TagName, c.NewTagName)
}

func (c ChangelogContext) sections() []changelogSection {
	grouped := make(map[string][]string)
	var breaking, notes []string

	for _, commit := range c.Commits {
		for _, note := range commit.Notes {
			if note.Title == noteBreakingChanges {
				breaking = append(breaking, note.Text)
			} else if note.Title == noteGeneric {
				notes = append(notes, note.Text)
			}
		}

		if !commit.IsVisible() {
			continue
		}
		grouped[commit.Section()] = append(grouped[commit.Section()], c.formatItem(commit))
	}

	sections := make([]changelogSection, 0, len(grouped)+2) //nolint:mnd // notes sections
	for _, title := range SectionOrder() {
		if items := grouped[title]; len(items) > 0 {
			sections = append(sections, changelogSection{Title: title, Items: items})
		}
	}
	if len(breaking) > 0 {
		sections = append(sections, changelogSection{Title: noteBreakingChanges, Items: breaking})
	}
	if len(notes) > 0 {
		sections = append(sections, changelogSection{Title: noteGeneric, Items: notes})
	}
	return sections
}

func (c ChangelogContext) formatItem(commit TransformedCommit) string {
	item := commit.Subject
	if commit.Scope != "" {
		item = fmt.Sprintf("**%s**: %s", commit.Scope, item)
	}
	if c.SkipLinks || c.RepositoryURL == "" || commit.Hash == "" {
		return item
	}
	return fmt.Sprintf("%s ([%s](%s/commit/%s))", item, commit.ShortHash(), c.RepositoryURL, commit.Hash)
}

// findNextH2Index returns the line index of the next "## " heading after
// startIdx, or len(lines) if there is none.
func findNextH2Index(lines []string, startIdx int) int {
	for i := startIdx + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), h2Prefix) {
			return i
		}
	}
	return len(lines)
}

// insertLines inserts extra lines into slice at the given index.
func insertLines(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	result = append(result, lines[at:]...)
	return result
}
