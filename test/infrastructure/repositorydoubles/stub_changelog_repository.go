//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import "github.com/rios0rios0/devtools/internal/domain/repositories"

// StubChangelogRepository implements repositories.ChangelogRepository in memory.
type StubChangelogRepository struct {
	Content  string
	ReadErr  error
	WriteErr error

	ReadPaths      []string
	WrittenPath    string
	Written        string
	WriteCallCount int
}

var _ repositories.ChangelogRepository = (*StubChangelogRepository)(nil)

func (s *StubChangelogRepository) Read(path string) (string, error) {
	s.ReadPaths = append(s.ReadPaths, path)
	return s.Content, s.ReadErr
}

func (s *StubChangelogRepository) Write(path, content string) error {
	s.WriteCallCount++
	s.WrittenPath = path
	s.Written = content
	return s.WriteErr
}
