// Package search finds documents by name below a set of root directories.
package search

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justyntemme/docbrowser/internal/debug"
	"github.com/justyntemme/docbrowser/internal/docs"
	"github.com/justyntemme/docbrowser/internal/fs"
	"github.com/justyntemme/docbrowser/internal/logging"
)

// Result pairs a matched document with the root it was found under.
type Result struct {
	ID       uuid.UUID
	Document docs.Document
	Root     string
}

// DisplayPath renders the document location starting at the root's base
// name, e.g. "Documents/Foo/bar.txt".
func (r Result) DisplayPath() string {
	return docs.HumanReadablePath(r.Document.Path, r.Root)
}

// Searcher walks its roots on every Search and keeps the last result set.
//
// Walks are synchronous and cannot be cancelled. A Searcher is not safe for
// concurrent use.
type Searcher struct {
	roots   []string
	manager fs.Manager
	log     *zap.Logger
	results []Result
}

// NewSearcher returns a searcher over roots. A nil manager means the local
// filesystem; a nil logger means the global one.
func NewSearcher(roots []string, manager fs.Manager, logger *zap.Logger) *Searcher {
	if manager == nil {
		manager = fs.NewLocal(nil)
	}
	return &Searcher{
		roots:   roots,
		manager: manager,
		log:     logging.OrDefault(logger).Named("search"),
	}
}

// Roots returns the directories searched.
func (s *Searcher) Roots() []string { return s.roots }

// Search returns every entry below the roots whose name contains query,
// ignoring case and surrounding space. An empty query clears the results.
//
// Roots are searched in order and each is walked depth first in listing
// order. Matching directories are reported and still descended into.
func (s *Searcher) Search(query string) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		s.Clear()
		return nil
	}

	var results []Result
	for _, root := range s.roots {
		results = s.walk(root, root, q, results)
	}
	s.results = results
	debug.Log(debug.SEARCH, "query %q: %d results across %d roots", q, len(results), len(s.roots))
	return s.Results()
}

// Results returns the results of the last Search.
func (s *Searcher) Results() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// Clear drops the last results.
func (s *Searcher) Clear() {
	s.results = nil
}

func (s *Searcher) walk(root, dir, query string, results []Result) []Result {
	paths, err := s.manager.List(dir)
	if err != nil {
		s.log.Debug("skipping unreadable directory", zap.String("dir", dir), zap.Error(err))
		return results
	}

	for _, p := range paths {
		info, err := s.manager.Stat(p)
		if err != nil {
			s.log.Debug("skipping unreadable entry", zap.String("path", p), zap.Error(err))
			continue
		}
		if strings.Contains(strings.ToLower(filepath.Base(p)), query) {
			results = append(results, Result{
				ID:       uuid.New(),
				Document: docs.NewDocument(info),
				Root:     root,
			})
		}
		if info.IsDir {
			results = s.walk(root, p, query, results)
		}
	}
	return results
}
