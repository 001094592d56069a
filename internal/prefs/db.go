// Package prefs persists browser preferences in a local SQLite database:
// typed settings and the last sort order chosen for each directory.
package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/docbrowser/internal/debug"
	"github.com/justyntemme/docbrowser/internal/docs"
	"github.com/justyntemme/docbrowser/internal/logging"
)

// Well-known setting keys.
const (
	KeyConfirmDelete = "confirm_delete"
	KeyLastRoot      = "last_root"
)

// Entry is one stored setting.
type Entry struct {
	Key   string
	Value Value
}

type DB struct {
	conn *sql.DB
	path string
	log  *zap.Logger
}

// Open initializes the database connection and schema, creating the parent
// directory of path when needed.
func Open(path string, logger *zap.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create prefs directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open prefs %s: %w", path, err)
	}
	conn.SetMaxOpenConns(1)

	// WAL mode allows simultaneous readers and writers
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	schema := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sort_orders (
			dir TEXT PRIMARY KEY,
			sort TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("init prefs schema: %w", err)
		}
	}

	debug.Log(debug.PREFS, "opened %s", path)
	return &DB{conn: conn, path: path, log: logging.OrDefault(logger).Named("prefs")}, nil
}

// Path returns the database file.
func (d *DB) Path() string { return d.path }

// Setting returns the value stored under key. ok is false when the key is
// unset.
func (d *DB) Setting(key string) (v Value, ok bool, err error) {
	var kindName, text string
	err = d.conn.QueryRow("SELECT kind, value FROM settings WHERE key = ?", key).Scan(&kindName, &text)
	if errors.Is(err, sql.ErrNoRows) {
		return Value{}, false, nil
	}
	if err != nil {
		return Value{}, false, fmt.Errorf("read setting %q: %w", key, err)
	}
	v, err = decode(kindName, text)
	if err != nil {
		return Value{}, false, fmt.Errorf("read setting %q: %w", key, err)
	}
	return v, true, nil
}

// BoolSetting returns the bool stored under key, or def when the key is
// unset, unreadable or not a bool.
func (d *DB) BoolSetting(key string, def bool) bool {
	v, ok, err := d.Setting(key)
	if err != nil {
		d.log.Warn("cannot read setting", zap.String("key", key), zap.Error(err))
		return def
	}
	if b, isBool := v.Bool(); ok && isBool {
		return b
	}
	return def
}

// SetSetting stores v under key, replacing any previous value.
func (d *DB) SetSetting(key string, v Value) error {
	_, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, kind, value) VALUES (?, ?, ?)",
		key, v.Kind().String(), v.Display())
	if err != nil {
		return fmt.Errorf("save setting %q: %w", key, err)
	}
	debug.Log(debug.PREFS, "set %s = %s", key, v)
	return nil
}

// DeleteSetting removes key. Removing an unset key is not an error.
func (d *DB) DeleteSetting(key string) error {
	if _, err := d.conn.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	return nil
}

// Settings returns every stored setting ordered by key. Rows that no longer
// decode are logged and skipped.
func (d *DB) Settings() ([]Entry, error) {
	rows, err := d.conn.Query("SELECT key, kind, value FROM settings ORDER BY key ASC")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var key, kindName, text string
		if err := rows.Scan(&key, &kindName, &text); err != nil {
			return nil, fmt.Errorf("list settings: %w", err)
		}
		v, err := decode(kindName, text)
		if err != nil {
			d.log.Warn("skipping malformed setting", zap.String("key", key), zap.Error(err))
			continue
		}
		entries = append(entries, Entry{Key: key, Value: v})
	}
	return entries, rows.Err()
}

// SortFor returns the sort order last saved for dir.
func (d *DB) SortFor(dir string) (opt docs.SortOption, ok bool, err error) {
	var text string
	err = d.conn.QueryRow("SELECT sort FROM sort_orders WHERE dir = ?", filepath.Clean(dir)).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return docs.SortOption{}, false, nil
	}
	if err != nil {
		return docs.SortOption{}, false, fmt.Errorf("read sort for %s: %w", dir, err)
	}
	opt, err = docs.ParseSortOption(text)
	if err != nil {
		return docs.SortOption{}, false, fmt.Errorf("read sort for %s: %w", dir, err)
	}
	return opt, true, nil
}

// SetSortFor saves opt as the sort order of dir.
func (d *DB) SetSortFor(dir string, opt docs.SortOption) error {
	_, err := d.conn.Exec(
		"INSERT OR REPLACE INTO sort_orders (dir, sort, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
		filepath.Clean(dir), opt.String())
	if err != nil {
		return fmt.Errorf("save sort for %s: %w", dir, err)
	}
	debug.Log(debug.PREFS, "sort for %s = %s", dir, opt)
	return nil
}

func (d *DB) Close() error {
	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

func decode(kindName, text string) (Value, error) {
	kind, err := ParseKind(kindName)
	if err != nil {
		return Value{}, err
	}
	return ParseValue(kind, text)
}
