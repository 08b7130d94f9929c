package repositories

import "context"

// GlobRepository expands file patterns.
type GlobRepository interface {
	// Glob returns the files matching pattern, "**" included.
	Glob(pattern string) ([]string, error)
	// GlobDirectories returns the directories matching pattern.
	GlobDirectories(pattern string) ([]string, error)
}

// WatcherRepository reports changes below a set of directories.
type WatcherRepository interface {
	// Watch calls onChange after files anywhere below roots change, until ctx
	// is done.
	Watch(ctx context.Context, roots []string, onChange func()) error
}
