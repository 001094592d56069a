package fs

import (
	iofs "io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Op names a Manager operation for fault injection on Memory.
type Op string

const (
	OpList   Op = "list"
	OpStat   Op = "stat"
	OpRemove Op = "remove"
	OpMkdir  Op = "mkdir"
	OpCopy   Op = "copy"
	OpMove   Op = "move"
)

type memNode struct {
	isDir    bool
	data     []byte
	created  time.Time
	modified time.Time
}

type fault struct {
	op   Op
	path string
}

// Memory is an in-memory Manager. Paths are cleaned with filepath.Clean and
// the tree always contains the root directory "/".
type Memory struct {
	mu     sync.Mutex
	nodes  map[string]*memNode
	now    func() time.Time
	faults map[fault]error
}

// NewMemory returns an empty tree containing only "/".
func NewMemory() *Memory {
	m := &Memory{
		nodes:  make(map[string]*memNode),
		now:    time.Now,
		faults: make(map[fault]error),
	}
	t := m.now()
	m.nodes[string(filepath.Separator)] = &memNode{isDir: true, created: t, modified: t}
	return m
}

// SetClock replaces the time source used for new and copied entries.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// FailOn makes every op on path return err until cleared with a nil err.
func (m *Memory) FailOn(op Op, path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := fault{op: op, path: filepath.Clean(path)}
	if err == nil {
		delete(m.faults, key)
		return
	}
	m.faults[key] = err
}

// MkdirAll creates path and any missing parents.
func (m *Memory) MkdirAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mkdirAll(filepath.Clean(path))
}

// WriteFile creates or replaces a file, creating missing parents.
func (m *Memory) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.mkdirAll(filepath.Dir(path)); err != nil {
		return err
	}
	if n, ok := m.nodes[path]; ok && n.isDir {
		return &iofs.PathError{Op: "write", Path: path, Err: iofs.ErrInvalid}
	}
	t := m.now()
	m.nodes[path] = &memNode{data: append([]byte(nil), data...), created: t, modified: t}
	return nil
}

// SetModTime overrides the modification time of path. A zero t models a
// platform that cannot report one.
func (m *Memory) SetModTime(path string, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[filepath.Clean(path)]
	if !ok {
		return notExist("chtimes", path)
	}
	n.modified = t
	return nil
}

// ReadFile returns the content of a file.
func (m *Memory) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nodes[filepath.Clean(path)]
	if !ok {
		return nil, notExist("read", path)
	}
	return append([]byte(nil), n.data...), nil
}

func (m *Memory) List(dir string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir = filepath.Clean(dir)
	if err := m.fault(OpList, dir); err != nil {
		return nil, err
	}
	n, ok := m.nodes[dir]
	if !ok {
		return nil, notExist("open", dir)
	}
	if !n.isDir {
		return nil, &iofs.PathError{Op: "readdir", Path: dir, Err: iofs.ErrInvalid}
	}

	var paths []string
	for p := range m.nodes {
		if p == dir || filepath.Dir(p) != dir || isHidden(filepath.Base(p)) {
			continue
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (m *Memory) Stat(path string) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.fault(OpStat, path); err != nil {
		return Info{}, err
	}
	n, ok := m.nodes[path]
	if !ok {
		return Info{}, notExist("stat", path)
	}
	return Info{
		Name:     filepath.Base(path),
		Path:     path,
		Size:     int64(len(n.data)),
		Created:  n.created,
		Modified: n.modified,
		IsDir:    n.isDir,
	}, nil
}

func (m *Memory) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.fault(OpRemove, path); err != nil {
		return err
	}
	if _, ok := m.nodes[path]; !ok {
		return notExist("remove", path)
	}
	if path == string(filepath.Separator) {
		return &iofs.PathError{Op: "remove", Path: path, Err: iofs.ErrPermission}
	}
	for _, p := range m.subtree(path) {
		delete(m.nodes, p)
	}
	return nil
}

func (m *Memory) Mkdir(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.fault(OpMkdir, path); err != nil {
		return err
	}
	if _, ok := m.nodes[path]; ok {
		return existError("mkdir", path)
	}
	if err := m.requireDir(filepath.Dir(path), "mkdir"); err != nil {
		return err
	}
	t := m.now()
	m.nodes[path] = &memNode{isDir: true, created: t, modified: t}
	return nil
}

func (m *Memory) Copy(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, dst = filepath.Clean(src), filepath.Clean(dst)
	if err := m.fault(OpCopy, dst); err != nil {
		return err
	}
	if _, ok := m.nodes[src]; !ok {
		return notExist("copy", src)
	}
	if _, ok := m.nodes[dst]; ok {
		return existError("copy", dst)
	}
	if err := m.requireDir(filepath.Dir(dst), "copy"); err != nil {
		return err
	}

	t := m.now()
	for _, p := range m.subtree(src) {
		n := m.nodes[p]
		m.nodes[dst+strings.TrimPrefix(p, src)] = &memNode{
			isDir:    n.isDir,
			data:     append([]byte(nil), n.data...),
			created:  t,
			modified: t,
		}
	}
	return nil
}

func (m *Memory) Move(src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, dst = filepath.Clean(src), filepath.Clean(dst)
	if err := m.fault(OpMove, src); err != nil {
		return err
	}
	if _, ok := m.nodes[src]; !ok {
		return notExist("move", src)
	}
	if _, ok := m.nodes[dst]; ok {
		return existError("move", dst)
	}
	if err := m.requireDir(filepath.Dir(dst), "move"); err != nil {
		return err
	}

	for _, p := range m.subtree(src) {
		m.nodes[dst+strings.TrimPrefix(p, src)] = m.nodes[p]
		delete(m.nodes, p)
	}
	return nil
}

func (m *Memory) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.nodes[filepath.Clean(path)]
	return ok
}

// subtree returns path and all of its descendants.
func (m *Memory) subtree(path string) []string {
	prefix := path
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	paths := []string{path}
	for p := range m.nodes {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	return paths
}

func (m *Memory) mkdirAll(path string) error {
	if n, ok := m.nodes[path]; ok {
		if !n.isDir {
			return &iofs.PathError{Op: "mkdir", Path: path, Err: iofs.ErrExist}
		}
		return nil
	}
	if parent := filepath.Dir(path); parent != path {
		if err := m.mkdirAll(parent); err != nil {
			return err
		}
	}
	t := m.now()
	m.nodes[path] = &memNode{isDir: true, created: t, modified: t}
	return nil
}

func (m *Memory) requireDir(path, op string) error {
	n, ok := m.nodes[path]
	if !ok {
		return notExist(op, path)
	}
	if !n.isDir {
		return &iofs.PathError{Op: op, Path: path, Err: iofs.ErrInvalid}
	}
	return nil
}

func (m *Memory) fault(op Op, path string) error {
	return m.faults[fault{op: op, path: path}]
}

func notExist(op, path string) error {
	return &iofs.PathError{Op: op, Path: path, Err: iofs.ErrNotExist}
}
