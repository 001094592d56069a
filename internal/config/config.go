package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/justyntemme/docbrowser/internal/fs"
	"github.com/justyntemme/docbrowser/internal/logging"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Roots   []RootEntry    `json:"roots"`
	Browser BrowserConfig  `json:"browser"`
	Watch   WatchConfig    `json:"watch"`
	Logging logging.Config `json:"logging"`
	Storage StorageConfig  `json:"storage"`
}

// RootEntry is a directory offered for browsing and searching
type RootEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// BrowserConfig holds document list behavior
type BrowserConfig struct {
	DefaultSort   string `json:"defaultSort"` // "date" | "name"
	SortAscending bool   `json:"sortAscending"`
	ConfirmDelete bool   `json:"confirmDelete"`
	UseTrash      bool   `json:"useTrash"` // Delete moves items into the trash bin
}

// WatchConfig holds directory watcher settings
type WatchConfig struct {
	Enabled    bool `json:"enabled"`
	DebounceMs int  `json:"debounceMs"`
}

// StorageConfig holds the locations of local state. Empty paths use the
// defaults next to config.json.
type StorageConfig struct {
	PrefsPath string `json:"prefsPath"`
	TrashPath string `json:"trashPath"`
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
	log      *zap.Logger
}

// NewManager creates a new configuration manager
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		config: DefaultConfig(),
		path:   ConfigPath(),
		log:    logging.OrDefault(logger).Named("config"),
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	var roots []RootEntry
	for _, r := range fs.DefaultRoots() {
		roots = append(roots, RootEntry{Name: r.Name, Path: r.Path})
	}
	return &Config{
		Roots: roots,
		Browser: BrowserConfig{
			DefaultSort:   "date",
			SortAscending: false,
			ConfirmDelete: true,
			UseTrash:      true,
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 200,
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "console",
		},
	}
}

// Dir returns the config directory: ~/.config/docbrowser
// This is consistent across all platforms (Windows, macOS, Linux)
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "docbrowser")
}

// ConfigPath returns the config file path: ~/.config/docbrowser/config.json
func ConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads the configuration from the default config file.
func (m *Manager) Load() error {
	return m.LoadFrom(ConfigPath())
}

// LoadFrom reads the configuration from path.
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) LoadFrom(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.path = path
	m.parseErr = nil

	// Ensure config directory exists
	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		m.log.Error("failed to create config directory", zap.String("dir", configDir), zap.Error(err))
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		m.log.Info("creating default config", zap.String("path", m.path))
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			m.log.Error("failed to save default config", zap.Error(saveErr))
			return saveErr
		}
		return nil
	}
	if err != nil {
		m.log.Error("failed to read config", zap.String("path", m.path), zap.Error(err))
		return err
	}

	// Start from defaults so sections missing from the file keep them.
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		// Store error for display, use defaults
		m.log.Warn("config parse error, using defaults", zap.String("path", m.path), zap.Error(err))
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}

	m.log.Debug("config loaded", zap.String("path", m.path))
	m.config = cfg
	return nil
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Path returns the file the configuration is loaded from and saved to
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	cfg := *m.config
	cfg.Roots = slices.Clone(m.config.Roots)
	return cfg
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetDefaultSort updates the sort used for directories without a saved one
func (m *Manager) SetDefaultSort(sort string, ascending bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.Browser.DefaultSort = sort
	m.config.Browser.SortAscending = ascending
	return m.saveUnlocked()
}

// AddRoot adds a browsing root. Adding a path twice is a no-op.
func (m *Manager) AddRoot(name, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	for _, r := range m.config.Roots {
		if r.Path == path {
			return nil
		}
	}
	if name == "" {
		name = filepath.Base(path)
	}
	m.config.Roots = append(m.config.Roots, RootEntry{Name: name, Path: path})
	return m.saveUnlocked()
}

// RemoveRoot removes a browsing root by path
func (m *Manager) RemoveRoot(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	m.config.Roots = slices.DeleteFunc(m.config.Roots, func(r RootEntry) bool {
		return r.Path == path
	})
	return m.saveUnlocked()
}

// PrefsPath returns the preferences database location
func (c Config) PrefsPath() string {
	if c.Storage.PrefsPath != "" {
		return c.Storage.PrefsPath
	}
	return filepath.Join(Dir(), "prefs.db")
}

// TrashPath returns the trash bin directory; empty means the platform default
func (c Config) TrashPath() string {
	return c.Storage.TrashPath
}
