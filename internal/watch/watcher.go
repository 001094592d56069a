// Package watch reports changes to the directories shown by document stores
// so they can be reloaded.
package watch

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/justyntemme/docbrowser/internal/debug"
	"github.com/justyntemme/docbrowser/internal/logging"
)

// DefaultDebounce applies when NewDirectoryWatcher gets a non-positive interval.
const DefaultDebounce = 200 * time.Millisecond

// DirectoryWatcher watches directories for changes and sends the path of a
// changed directory once its events have been quiet for the debounce interval.
//
// Only create, remove, rename and write events on visible entries count.
// Receivers reload their store on their own goroutine.
type DirectoryWatcher struct {
	watcher   *fsnotify.Watcher
	log       *zap.Logger
	mu        sync.Mutex
	watching  map[string]bool
	events    chan string
	done      chan struct{}
	closeOnce sync.Once
	debounce  time.Duration
}

// NewDirectoryWatcher creates a watcher with the given debounce interval in
// milliseconds.
func NewDirectoryWatcher(debounceMs int, logger *zap.Logger) (*DirectoryWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	debounce := time.Duration(debounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	dw := &DirectoryWatcher{
		watcher:  w,
		log:      logging.OrDefault(logger).Named("watch"),
		watching: make(map[string]bool),
		events:   make(chan string, 16),
		done:     make(chan struct{}),
		debounce: debounce,
	}

	go dw.run()
	return dw, nil
}

func (dw *DirectoryWatcher) run() {
	lastEvent := make(map[string]time.Time)
	tick := dw.debounce / 2
	if tick <= 0 {
		tick = dw.debounce
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-dw.done:
			return

		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if dir, ok := dw.owner(event.Name); ok {
				lastEvent[dir] = time.Now()
				debug.Log(debug.WATCH, "event %s on %s (dir %s)", event.Op, event.Name, dir)
			}

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			dw.log.Warn("watch error", zap.Error(err))

		case now := <-ticker.C:
			for dir, last := range lastEvent {
				if now.Sub(last) < dw.debounce {
					continue
				}
				select {
				case dw.events <- dir:
					debug.Log(debug.WATCH, "change notification: %s", dir)
				default:
					dw.log.Debug("dropping change notification, receiver is behind", zap.String("dir", dir))
				}
				delete(lastEvent, dir)
			}
		}
	}
}

// owner returns the watched directory an event path belongs to: its parent,
// or the path itself when the watched directory changed.
func (dw *DirectoryWatcher) owner(path string) (string, bool) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if parent := filepath.Dir(path); dw.watching[parent] {
		return parent, true
	}
	if dw.watching[path] {
		return path, true
	}
	return "", false
}

func relevant(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Write)
}

// Watch adds a directory to the watch list.
func (dw *DirectoryWatcher) Watch(dir string) error {
	dir = filepath.Clean(dir)
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if dw.watching[dir] {
		return nil
	}
	if err := dw.watcher.Add(dir); err != nil {
		return err
	}
	dw.watching[dir] = true
	debug.Log(debug.WATCH, "now watching %s", dir)
	return nil
}

// Unwatch removes a directory from the watch list.
func (dw *DirectoryWatcher) Unwatch(dir string) error {
	dir = filepath.Clean(dir)
	dw.mu.Lock()
	defer dw.mu.Unlock()

	if !dw.watching[dir] {
		return nil
	}
	// The directory may already be gone.
	if err := dw.watcher.Remove(dir); err != nil {
		debug.Log(debug.WATCH, "unwatch %s: %v", dir, err)
	}
	delete(dw.watching, dir)
	debug.Log(debug.WATCH, "stopped watching %s", dir)
	return nil
}

// UnwatchAll removes every directory from the watch list.
func (dw *DirectoryWatcher) UnwatchAll() {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	for dir := range dw.watching {
		dw.watcher.Remove(dir)
	}
	dw.watching = make(map[string]bool)
}

// Watching returns the watched directories, sorted.
func (dw *DirectoryWatcher) Watching() []string {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	dirs := make([]string, 0, len(dw.watching))
	for dir := range dw.watching {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	return dirs
}

// Events returns the channel of changed directory paths.
func (dw *DirectoryWatcher) Events() <-chan string {
	return dw.events
}

// Close shuts down the watcher. It is safe to call more than once.
func (dw *DirectoryWatcher) Close() error {
	var err error
	dw.closeOnce.Do(func() {
		close(dw.done)
		err = dw.watcher.Close()
	})
	return err
}
