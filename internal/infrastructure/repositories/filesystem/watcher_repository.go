package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	logger "github.com/sirupsen/logrus"
)

const defaultDebounce = 300 * time.Millisecond

// ErrNothingToWatch is returned when none of the given roots exist.
var ErrNothingToWatch = errors.New("no existing directory to watch")

// WatcherRepository watches directory trees with fsnotify. Bursts of events
// (editors often write a file several times) collapse into one callback.
type WatcherRepository struct {
	debounce time.Duration
}

// NewWatcherRepository creates a new WatcherRepository.
func NewWatcherRepository() *WatcherRepository {
	return &WatcherRepository{debounce: defaultDebounce}
}

// NewWatcherRepositoryWithDebounce creates a WatcherRepository with a custom
// quiet period.
func NewWatcherRepositoryWithDebounce(debounce time.Duration) *WatcherRepository {
	return &WatcherRepository{debounce: debounce}
}

// Watch blocks until ctx is done, calling onChange after each burst of
// writes, creations, renames or removals anywhere below roots. Missing roots
// are skipped and directories created later are watched as they appear.
func (it *WatcherRepository) Watch(ctx context.Context, roots []string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := 0
	for _, root := range roots {
		count, addErr := addTree(watcher, root)
		if errors.Is(addErr, fs.ErrNotExist) {
			logger.Debugf("Not watching missing %s", root)
			continue
		}
		if addErr != nil {
			return addErr
		}
		watched += count
	}
	if watched == 0 {
		return fmt.Errorf("%w: %s", ErrNothingToWatch, strings.Join(roots, ", "))
	}
	logger.Debugf("Watching %d directories", watched)

	// Armed only by events; a stopped timer never delivers a stale tick.
	timer := time.NewTimer(it.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if event.Has(fsnotify.Create) {
				it.watchCreatedDirectory(watcher, event.Name)
			}
			logger.Debugf("Change detected: %s", event)
			timer.Reset(it.debounce)
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("Watcher error: %v", watchErr)
		case <-timer.C:
			onChange()
		}
	}
}

func (it *WatcherRepository) watchCreatedDirectory(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if _, addErr := addTree(watcher, path); addErr != nil {
		logger.Warnf("Failed to watch new directory %s: %v", path, addErr)
	}
}

// addTree watches root and every directory below it, returning how many
// directories were added.
func addTree(watcher *fsnotify.Watcher, root string) (int, error) {
	count := 0
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && skipDirectory(entry.Name()) {
			return filepath.SkipDir
		}
		if addErr := watcher.Add(path); addErr != nil {
			return fmt.Errorf("failed to watch %s: %w", path, addErr)
		}
		count++
		return nil
	})
	return count, err
}

func skipDirectory(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}
