// Package watcher re-runs the analysis when source files change.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tristendillon/scout/core/logger"
	"github.com/tristendillon/scout/core/walker"
)

const DefaultDebounce = 500 * time.Millisecond

// Hooks are called from the watcher. OnChange receives the absolute paths of
// every selected file that changed during one debounce window, sorted, and
// never runs concurrently with another OnChange.
type Hooks struct {
	OnStart  func() error
	OnChange func(changed []string) error
	OnClose  func() error
}

type FileWatcher struct {
	RootDir  string
	Walker   *walker.FileWalker
	Debounce time.Duration

	hooks   Hooks
	watcher *fsnotify.Watcher
	mutex   sync.Mutex
	timer   *time.Timer
	pending map[string]bool
	closed  bool
	running sync.WaitGroup
	// runMutex keeps OnChange calls from overlapping.
	runMutex sync.Mutex
}

func NewFileWatcher(rootDir string, w *walker.FileWalker, hooks Hooks) (*FileWatcher, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", rootDir, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &FileWatcher{
		RootDir:  root,
		Walker:   w,
		Debounce: DefaultDebounce,
		hooks:    hooks,
		watcher:  fsw,
		pending:  make(map[string]bool),
	}, nil
}

// Watch blocks until ctx is done or the underlying watcher fails.
func (fw *FileWatcher) Watch(ctx context.Context) error {
	if err := fw.addWatchersRecursively(fw.RootDir); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}

	if fw.hooks.OnStart != nil {
		if err := fw.hooks.OnStart(); err != nil {
			logger.Error("Watcher.OnStart failed: %v", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			logger.Debug("File event: %s %s", event.Op, event.Name)

			if event.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					if !fw.shouldSkipDir(event.Name) {
						logger.Debug("Adding watcher for new directory: %s", event.Name)
						if err := fw.addWatchersRecursively(event.Name); err != nil {
							logger.Warn("Failed to watch %s: %v", event.Name, err)
						}
					}
					continue
				}
			}

			if !fw.selected(event.Name) {
				continue
			}
			fw.debounce(event.Name)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

// debounce queues path and restarts the timer, so a burst of events causes
// one OnChange call.
func (fw *FileWatcher) debounce(path string) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	if fw.closed {
		return
	}
	fw.pending[path] = true
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.Debounce, fw.flush)
}

// flush hands the pending batch to OnChange. A flush that fires while a run
// is in flight waits for it and then takes everything queued meanwhile.
func (fw *FileWatcher) flush() {
	fw.runMutex.Lock()
	defer fw.runMutex.Unlock()

	fw.mutex.Lock()
	if fw.closed {
		fw.mutex.Unlock()
		return
	}
	changed := make([]string, 0, len(fw.pending))
	for p := range fw.pending {
		changed = append(changed, p)
	}
	fw.pending = make(map[string]bool)
	fw.running.Add(1)
	fw.mutex.Unlock()
	defer fw.running.Done()

	if len(changed) == 0 || fw.hooks.OnChange == nil {
		return
	}
	sort.Strings(changed)
	logger.Debug("File changes detected in %d files, re-running...", len(changed))
	if err := fw.hooks.OnChange(changed); err != nil {
		logger.Error("Watcher.OnChange failed: %v", err)
	}
}

func (fw *FileWatcher) Close() error {
	fw.mutex.Lock()
	fw.closed = true
	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.mutex.Unlock()
	fw.running.Wait()

	if fw.hooks.OnClose != nil {
		if err := fw.hooks.OnClose(); err != nil {
			logger.Error("Watcher.OnClose failed: %v", err)
		}
	}
	return fw.watcher.Close()
}

// selected reports whether path is a file the walker would pick up.
// Removed files are still selected so their importers get refreshed.
func (fw *FileWatcher) selected(path string) bool {
	rel, err := filepath.Rel(fw.RootDir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}
	for dir := filepath.Dir(path); dir != fw.RootDir && len(dir) > len(fw.RootDir); dir = filepath.Dir(dir) {
		if fw.Walker.SkipDirs[filepath.Base(dir)] {
			return false
		}
	}
	return fw.Walker.Match(rel)
}

func (fw *FileWatcher) shouldSkipDir(path string) bool {
	return path != fw.RootDir && fw.Walker.SkipDirs[filepath.Base(path)]
}

func (fw *FileWatcher) addWatchersRecursively(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if fw.shouldSkipDir(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		logger.Debug("Adding watcher for: %s", path)
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}
		return nil
	})
}
