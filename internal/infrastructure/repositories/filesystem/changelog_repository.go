package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const changelogFileMode = 0o644

// ChangelogRepository stores the changelog on disk.
type ChangelogRepository struct{}

// NewChangelogRepository creates a new ChangelogRepository.
func NewChangelogRepository() *ChangelogRepository {
	return &ChangelogRepository{}
}

// Read returns the changelog content; a missing file reads as empty.
func (it *ChangelogRepository) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces the changelog content.
func (it *ChangelogRepository) Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), changelogFileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
