package ui

import (
	"path"
	"strings"

	"github.com/disiqueira/gotree/v3"
)

// PathTree renders slash-separated paths as an indented tree.
type PathTree struct {
	tree gotree.Tree
	dirs map[string]gotree.Tree
}

func NewPathTree(rootLabel string) PathTree {
	return PathTree{tree: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree)}
}

func (t PathTree) getDir(dirPath string) gotree.Tree {
	if dirPath == "." || dirPath == "" {
		return t.tree
	}
	dir := t.dirs[dirPath]
	if dir == nil {
		parent := t.getDir(path.Dir(dirPath))
		dir = parent.Add(path.Base(dirPath))
		t.dirs[dirPath] = dir
	}
	return dir
}

// Insert adds a leaf for p, creating intermediate directory nodes. A path
// that is also inserted as a directory of a later path keeps a single node.
func (t PathTree) Insert(p string) {
	p = strings.Trim(path.Clean(p), "/")
	if p == "" || p == "." {
		return
	}
	if _, ok := t.dirs[p]; ok {
		return
	}
	dir := t.getDir(path.Dir(p))
	t.dirs[p] = dir.Add(path.Base(p))
}

func (t PathTree) Render() string {
	return t.tree.Print()
}
