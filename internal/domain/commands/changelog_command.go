package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devtools/internal/domain/entities"
	"github.com/rios0rios0/devtools/internal/domain/repositories"
)

// Changelog is the interface for the changelog command.
type Changelog interface {
	Execute(ctx context.Context, settings *entities.Settings, opts ChangelogOptions) (string, error)
}

// ChangelogOptions holds runtime options for a changelog generation.
type ChangelogOptions struct {
	Dir        string
	NewVersion string // If set, no commit classification nor prompt happens
	SkipLinks  bool
	DryRun     bool      // Print the entry instead of writing and committing it
	Output     io.Writer // Destination of the dry-run output
}

// ChangelogCommand generates the changelog entry of a single package and
// commits it.
type ChangelogCommand struct {
	packages   repositories.PackageRepository
	changelogs repositories.ChangelogRepository
	git        repositories.GitRepository
	console    repositories.ConsoleRepository
	now        func() time.Time
}

// NewChangelogCommand creates a new ChangelogCommand.
func NewChangelogCommand(
	packages repositories.PackageRepository,
	changelogs repositories.ChangelogRepository,
	git repositories.GitRepository,
	console repositories.ConsoleRepository,
) *ChangelogCommand {
	return &ChangelogCommand{
		packages:   packages,
		changelogs: changelogs,
		git:        git,
		console:    console,
		now:        time.Now,
	}
}

// Execute runs the generation and returns the released version. An empty
// version with a nil error means the release was skipped.
func (it *ChangelogCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts ChangelogOptions,
) (string, error) {
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	pkg, err := it.packages.ReadPackage(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read package: %w", err)
	}

	changelogPath := filepath.Join(dir, settings.ChangelogFile)
	content, err := it.changelogs.Read(changelogPath)
	if err != nil {
		return "", fmt.Errorf("failed to read changelog: %w", err)
	}

	tagName := ""
	if last := entities.LastVersionFromChangelog(content); last != "" {
		tagName = "v" + last
	}

	logger.Infof("Generating changelog for %q...", pkg.Name)

	var commits []entities.TransformedCommit
	version := opts.NewVersion
	if version == "" {
		commits, err = it.readCommits(ctx, dir, tagName)
		if err != nil {
			return "", err
		}

		version, err = it.askForVersion(ctx, pkg.Version, commits)
		if err != nil {
			return "", err
		}
	}

	if version == string(entities.ReleaseSkip) {
		logger.Infof("Skipping changelog for %q.", pkg.Name)
		return "", nil
	}

	isInternalRelease := version == string(entities.ReleaseInternal)
	if isInternalRelease {
		version, err = entities.NextInternalVersion(pkg.Version)
		if err != nil {
			return "", err
		}
	} else if validateErr := entities.ValidateVersionAnswer(version, pkg.Version); validateErr != nil {
		return "", validateErr
	}

	if commits == nil && !isInternalRelease {
		commits, err = it.readCommits(ctx, dir, tagName)
		if err != nil {
			return "", err
		}
	}

	entry, err := entities.FormatChangelogEntry(entities.ChangelogContext{
		Version:           version,
		TagName:           tagName,
		NewTagName:        "v" + version,
		IsInternalRelease: isInternalRelease,
		SkipLinks:         opts.SkipLinks,
		RepositoryURL:     it.repositoryURL(ctx, dir, pkg),
		Date:              it.now(),
		Commits:           commits,
	})
	if err != nil {
		return "", err
	}

	if opts.DryRun {
		logger.Infof("Dry run: %s and the commit are left untouched", changelogPath)
		if _, printErr := fmt.Fprint(dryRunOutput(opts.Output), entry); printErr != nil {
			return "", fmt.Errorf("failed to print changelog entry: %w", printErr)
		}
		return version, nil
	}

	if writeErr := it.changelogs.Write(changelogPath, entities.InsertChangelogEntry(content, entry)); writeErr != nil {
		return "", fmt.Errorf("failed to write changelog: %w", writeErr)
	}

	if commitErr := it.git.CommitFile(
		ctx, dir, settings.ChangelogFile, settings.ChangelogMessage, settings.SigningKey(),
	); commitErr != nil {
		return "", fmt.Errorf("failed to commit changelog: %w", commitErr)
	}

	logger.Infof("Changelog for %q (v%s) has been generated.", pkg.Name, version)
	return version, nil
}

func (it *ChangelogCommand) readCommits(
	ctx context.Context,
	dir, tagName string,
) ([]entities.TransformedCommit, error) {
	raw, err := it.git.CommitsSince(ctx, dir, tagName)
	if err != nil {
		return nil, fmt.Errorf("failed to read commits since %q: %w", tagName, err)
	}
	logger.Debugf("Found %d commits since %q", len(raw), tagName)
	return entities.TransformCommits(raw), nil
}

// askForVersion proposes a version from the commits and lets the user decide.
func (it *ChangelogCommand) askForVersion(
	ctx context.Context,
	current string,
	commits []entities.TransformedCommit,
) (string, error) {
	releaseType := entities.GetNewReleaseType(commits)
	it.console.DisplayCommits(commits)

	suggested, err := entities.SuggestVersion(current, releaseType)
	if err != nil {
		return "", err
	}

	version, err := it.console.ProvideVersion(ctx, current, suggested)
	if err != nil {
		return "", fmt.Errorf("failed to provide version: %w", err)
	}
	return version, nil
}

// repositoryURL prefers the package.json repository over the git remote.
func (it *ChangelogCommand) repositoryURL(
	ctx context.Context,
	dir string,
	pkg *entities.PackageManifest,
) string {
	if url := entities.NormalizeRepositoryURL(pkg.Repository.URL); url != "" {
		return url
	}

	remote, err := it.git.RemoteURL(ctx, dir)
	if err != nil {
		logger.Debugf("No repository URL for links: %v", err)
		return ""
	}
	return entities.NormalizeRepositoryURL(remote)
}
