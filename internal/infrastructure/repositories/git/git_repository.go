package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/devtools/internal/domain/entities"
)

const originRemote = "origin"

// GitRepository reads history with go-git and records commits with the git
// CLI, so that the user's hooks and configuration apply. Signed commits are
// created with go-git because the key is handled in process.
type GitRepository struct{}

// NewGitRepository creates a new GitRepository.
func NewGitRepository() *GitRepository {
	return &GitRepository{}
}

// CommitsSince returns the commits reachable from HEAD but not from the given
// tag, like "git log <tag>..HEAD", newest first.
func (it *GitRepository) CommitsSince(_ context.Context, dir, tagName string) ([]entities.Commit, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return []entities.Commit{}, nil
		}
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	released := make(map[plumbing.Hash]bool)
	if tagName != "" {
		tagCommit, tagErr := resolveTagCommit(repo, tagName)
		if tagErr != nil {
			return nil, tagErr
		}
		if released, err = ancestors(repo, tagCommit); err != nil {
			return nil, err
		}
	}

	if released[head.Hash()] {
		return []entities.Commit{}, nil
	}

	headCommit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	iter := object.NewCommitIterCTime(headCommit, released, nil)
	defer iter.Close()

	commits := make([]entities.Commit, 0)
	iterErr := iter.ForEach(func(commit *object.Commit) error {
		commits = append(commits, entities.Commit{
			Hash:    commit.Hash.String(),
			Message: commit.Message,
			Date:    commit.Author.When,
		})
		return nil
	})
	if iterErr != nil {
		return nil, fmt.Errorf("failed to walk commits: %w", iterErr)
	}

	return commits, nil
}

// ancestors returns the hashes of the given commit and everything it reaches.
func ancestors(repo *gogit.Repository, from plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := repo.Log(&gogit.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("failed to read log from %s: %w", from, err)
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]bool)
	iterErr := iter.ForEach(func(commit *object.Commit) error {
		seen[commit.Hash] = true
		return nil
	})
	if iterErr != nil {
		return nil, fmt.Errorf("failed to walk released commits: %w", iterErr)
	}
	return seen, nil
}

// RemoteURL returns the first URL of the origin remote.
func (it *GitRepository) RemoteURL(_ context.Context, dir string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}

	remote, err := repo.Remote(originRemote)
	if err != nil {
		return "", fmt.Errorf("failed to read remote %q: %w", originRemote, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", originRemote)
	}
	return urls[0], nil
}

// CommitFile stages path and commits it.
func (it *GitRepository) CommitFile(
	ctx context.Context,
	dir, path, message string,
	signing *entities.SigningKey,
) error {
	if signing != nil {
		return it.signedCommit(dir, path, message, signing)
	}

	if err := runGit(ctx, dir, "add", path); err != nil {
		return err
	}
	return runGit(ctx, dir, "commit", "-m", message)
}

func (it *GitRepository) signedCommit(dir, path, message string, signing *entities.SigningKey) error {
	key, err := readSigningKey(signing)
	if err != nil {
		return err
	}

	repo, err := open(dir)
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open worktree: %w", err)
	}

	staged, err := rootRelative(worktree.Filesystem.Root(), dir, path)
	if err != nil {
		return err
	}
	if _, addErr := worktree.Add(staged); addErr != nil {
		return fmt.Errorf("failed to stage %s: %w", staged, addErr)
	}

	author, err := signature(repo)
	if err != nil {
		return err
	}

	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author:  author,
		SignKey: key,
	})
	if err != nil {
		return fmt.Errorf("failed to commit %s: %w", path, err)
	}

	logger.Debugf("Created signed commit %s", hash)
	return nil
}

// rootRelative turns a path given relative to dir into one relative to the
// worktree root, which is what go-git stages.
func rootRelative(root, dir, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", path, err)
	}

	relative, err := filepath.Rel(root, absolute)
	if err != nil || strings.HasPrefix(relative, "..") {
		return "", fmt.Errorf("%s is outside of the repository at %s", absolute, root)
	}
	return filepath.ToSlash(relative), nil
}

func open(dir string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", dir, err)
	}
	return repo, nil
}

// resolveTagCommit peels annotated tags down to their commit.
func resolveTagCommit(repo *gogit.Repository, tagName string) (plumbing.Hash, error) {
	ref, err := repo.Tag(tagName)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to find tag %q: %w", tagName, err)
	}

	tag, err := repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		commit, commitErr := tag.Commit()
		if commitErr != nil {
			return plumbing.ZeroHash, fmt.Errorf("tag %q does not point at a commit: %w", tagName, commitErr)
		}
		return commit.Hash, nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return ref.Hash(), nil
	default:
		return plumbing.ZeroHash, fmt.Errorf("failed to read tag %q: %w", tagName, err)
	}
}

func signature(repo *gogit.Repository) (*object.Signature, error) {
	// SystemScope merges local, global and system config, local first.
	cfg, err := repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return nil, fmt.Errorf("failed to read git config: %w", err)
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return nil, errors.New("user.name and user.email must be configured to sign commits")
	}
	return &object.Signature{Name: cfg.User.Name, Email: cfg.User.Email, When: time.Now()}, nil
}

func readSigningKey(signing *entities.SigningKey) (*openpgp.Entity, error) {
	file, err := os.Open(signing.File)
	if err != nil {
		return nil, fmt.Errorf("failed to open signing key: %w", err)
	}
	defer file.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing key: %w", err)
	}
	if len(keyring) == 0 || keyring[0].PrivateKey == nil {
		return nil, fmt.Errorf("no private key in %s", signing.File)
	}

	key := keyring[0]
	if key.PrivateKey.Encrypted {
		if decryptErr := key.DecryptPrivateKeys([]byte(signing.Passphrase)); decryptErr != nil {
			return nil, fmt.Errorf("failed to decrypt signing key: %w", decryptErr)
		}
	}
	return key, nil
}

// runGit runs a git command and only surfaces its output when it fails.
func runGit(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	logger.Debugf("Running: git %s", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w\n%s", args[0], err, strings.TrimSpace(output.String()))
	}
	return nil
}
