package repositories

// ChangelogRepository reads and writes the changelog file.
type ChangelogRepository interface {
	// Read returns the changelog content, or an empty string when the file
	// does not exist yet.
	Read(path string) (string, error)
	Write(path, content string) error
}
