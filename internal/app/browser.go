// Package app wires the document stores, search, preferences, trash and
// directory watching into one Browser used by the front-ends.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/justyntemme/docbrowser/internal/config"
	"github.com/justyntemme/docbrowser/internal/debug"
	"github.com/justyntemme/docbrowser/internal/docs"
	"github.com/justyntemme/docbrowser/internal/fs"
	"github.com/justyntemme/docbrowser/internal/logging"
	"github.com/justyntemme/docbrowser/internal/prefs"
	"github.com/justyntemme/docbrowser/internal/search"
	"github.com/justyntemme/docbrowser/internal/trash"
	"github.com/justyntemme/docbrowser/internal/watch"
)

// ErrWatchDisabled is returned by Watch when no watcher is configured.
var ErrWatchDisabled = errors.New("directory watching is disabled")

// Deps are the collaborators of a Browser. Nil fields get defaults: the
// local filesystem, no persisted preferences, the global logger and no
// watcher.
type Deps struct {
	Manager fs.Manager
	Prefs   *prefs.DB
	Logger  *zap.Logger
	Trash   *trash.Bin
	Watcher *watch.DirectoryWatcher
}

// Browser owns the stores opened for the configured roots.
type Browser struct {
	cfg      config.Config
	manager  fs.Manager
	prefs    *prefs.DB
	log      *zap.Logger
	bin      *trash.Bin
	watcher  *watch.DirectoryWatcher
	searcher *search.Searcher

	mu     sync.Mutex
	stores map[string]*docs.Store // by working directory
	owned  bool                   // Close releases prefs and watcher
}

// New builds a Browser from cfg and deps.
func New(cfg config.Config, deps Deps) *Browser {
	manager := deps.Manager
	if manager == nil {
		manager = fs.NewLocal(deps.Trash)
	}
	b := &Browser{
		cfg:     cfg,
		manager: manager,
		prefs:   deps.Prefs,
		log:     logging.OrDefault(deps.Logger).Named("app"),
		bin:     deps.Trash,
		watcher: deps.Watcher,
		stores:  make(map[string]*docs.Store),
	}
	var paths []string
	for _, r := range b.Roots() {
		paths = append(paths, r.Path)
	}
	b.searcher = search.NewSearcher(paths, manager, deps.Logger)
	return b
}

// Open builds a Browser on the local filesystem with the preferences
// database, trash bin and watcher described by cfg.
func Open(cfg config.Config) (*Browser, error) {
	logger := logging.L()

	db, err := prefs.Open(cfg.PrefsPath(), logger)
	if err != nil {
		return nil, err
	}

	deps := Deps{Prefs: db, Logger: logger}
	if cfg.Browser.UseTrash {
		deps.Trash = &trash.Bin{Dir: cfg.TrashPath()}
	}
	if cfg.Watch.Enabled {
		w, err := watch.NewDirectoryWatcher(cfg.Watch.DebounceMs, logger)
		if err != nil {
			// Browsing still works without change notifications.
			logger.Warn("directory watcher unavailable", zap.Error(err))
		} else {
			deps.Watcher = w
		}
	}

	b := New(cfg, deps)
	b.owned = true
	return b, nil
}

// Roots returns the configured roots, or the platform defaults when none
// are configured.
func (b *Browser) Roots() []fs.Root {
	var roots []fs.Root
	for _, r := range b.cfg.Roots {
		if r.Path == "" {
			continue
		}
		name := r.Name
		if name == "" {
			name = filepath.Base(r.Path)
		}
		roots = append(roots, fs.Root{Name: name, Path: filepath.Clean(r.Path)})
	}
	if len(roots) == 0 {
		return fs.DefaultRoots()
	}
	return roots
}

// Root finds a root by name or path.
func (b *Browser) Root(nameOrPath string) (fs.Root, bool) {
	clean := filepath.Clean(nameOrPath)
	for _, r := range b.Roots() {
		if r.Name == nameOrPath || r.Path == clean {
			return r, true
		}
	}
	return fs.Root{}, false
}

// DefaultSort is the order used for directories without a saved one. A
// direction in the configured value ("name-asc") wins over SortAscending.
func (b *Browser) DefaultSort() docs.SortOption {
	value := b.cfg.Browser.DefaultSort
	opt, err := docs.ParseSortOption(value)
	if err != nil {
		if value != "" {
			b.log.Warn("invalid default sort in config", zap.String("sort", value), zap.Error(err))
		}
		return docs.DateSort(b.cfg.Browser.SortAscending)
	}
	if !strings.Contains(value, "-") {
		opt.Ascending = b.cfg.Browser.SortAscending
	}
	return opt
}

// OpenStore returns a loaded store for rel below root, sorted by the order
// last saved for that directory.
func (b *Browser) OpenStore(root, rel string) *docs.Store {
	wd := filepath.Join(root, rel)
	sorting := b.DefaultSort()
	if b.prefs != nil {
		saved, ok, err := b.prefs.SortFor(wd)
		if err != nil {
			b.log.Warn("cannot read saved sort", zap.String("dir", wd), zap.Error(err))
		} else if ok {
			sorting = saved
		}
	}

	s := docs.NewStore(docs.Options{
		Root:         root,
		RelativePath: rel,
		Sorting:      sorting,
		Manager:      b.manager,
		Logger:       b.log,
	})
	s.Load()

	b.mu.Lock()
	b.stores[filepath.Clean(s.WorkingDirectory())] = s
	b.mu.Unlock()
	debug.Log(debug.APP, "opened store %s (sort %s)", wd, sorting)
	return s
}

// SetSorting applies opt to s and saves it for s's directory.
func (b *Browser) SetSorting(s *docs.Store, opt docs.SortOption) error {
	s.SetSorting(opt)
	if b.prefs == nil {
		return nil
	}
	return b.prefs.SetSortFor(s.WorkingDirectory(), opt)
}

// Search runs a name search across all roots.
func (b *Browser) Search(query string) []search.Result {
	return b.searcher.Search(query)
}

// ConfirmDelete reports whether deletes should be confirmed first. A saved
// preference overrides the config default.
func (b *Browser) ConfirmDelete() bool {
	if b.prefs == nil {
		return b.cfg.Browser.ConfirmDelete
	}
	return b.prefs.BoolSetting(prefs.KeyConfirmDelete, b.cfg.Browser.ConfirmDelete)
}

// SetConfirmDelete saves the delete confirmation preference.
func (b *Browser) SetConfirmDelete(confirm bool) error {
	if b.prefs == nil {
		return errors.New("preferences are not available")
	}
	return b.prefs.SetSetting(prefs.KeyConfirmDelete, prefs.Bool(confirm))
}

// Prefs returns the preferences database, or nil.
func (b *Browser) Prefs() *prefs.DB { return b.prefs }

// Settings lists the saved settings.
func (b *Browser) Settings() ([]prefs.Entry, error) {
	if b.prefs == nil {
		return nil, nil
	}
	return b.prefs.Settings()
}

// Trash returns the trash bin deletes go to, or nil when deletes are
// permanent.
func (b *Browser) Trash() *trash.Bin { return b.bin }

// Watch starts reporting changes to s's directory on Events.
func (b *Browser) Watch(s *docs.Store) error {
	if b.watcher == nil {
		return ErrWatchDisabled
	}
	wd := filepath.Clean(s.WorkingDirectory())
	if err := b.watcher.Watch(wd); err != nil {
		return fmt.Errorf("watch %s: %w", wd, err)
	}
	b.mu.Lock()
	b.stores[wd] = s
	b.mu.Unlock()
	return nil
}

// Events returns the changed-directory channel, or nil without a watcher.
func (b *Browser) Events() <-chan string {
	if b.watcher == nil {
		return nil
	}
	return b.watcher.Events()
}

// Reload reloads the store opened for dir. It reports false when no store
// is open there. Call it from the goroutine that owns the store.
func (b *Browser) Reload(dir string) bool {
	b.mu.Lock()
	s, ok := b.stores[filepath.Clean(dir)]
	b.mu.Unlock()
	if !ok {
		return false
	}
	s.Reload()
	return true
}

// OpenDocument opens d with the platform's default application.
func (b *Browser) OpenDocument(d docs.Document) error {
	if err := platformOpen(d.Path); err != nil {
		return fmt.Errorf("open %s: %w", d.Name, err)
	}
	return nil
}

// Close releases the watcher and, for a Browser made by Open, the
// preferences database.
func (b *Browser) Close() error {
	var errs []error
	if b.watcher != nil {
		errs = append(errs, b.watcher.Close())
	}
	if b.owned && b.prefs != nil {
		errs = append(errs, b.prefs.Close())
	}
	return errors.Join(errs...)
}
