package filesystem

import (
	"fmt"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// GlobRepository expands patterns against the local file system.
type GlobRepository struct{}

// NewGlobRepository creates a new GlobRepository.
func NewGlobRepository() *GlobRepository {
	return &GlobRepository{}
}

// Glob returns the regular files matching pattern, sorted.
func (it *GlobRepository) Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// GlobDirectories returns the directories matching pattern, sorted.
func (it *GlobRepository) GlobDirectories(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	dirs := make([]string, 0, len(matches))
	for _, match := range matches {
		if info, statErr := os.Stat(match); statErr == nil && info.IsDir() {
			dirs = append(dirs, match)
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
