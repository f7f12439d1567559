/*
Package walker performs the single exclusion-aware traversal pass that
produces both the indented tree listing and the ordered list of files the
content stage will read.

Pruning is structural: an excluded directory is counted and skipped without
being enumerated, so none of its descendants is ever visited or re-tested.

Basic usage:

	w := walker.New(fs, classifier, log)
	res, err := w.Walk("/project")
	// res.Tree, res.Entries, res.Excluded
*/
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/sonemaro/codetext/pkg/logger"
	"github.com/sonemaro/codetext/pkg/pattern"
)

// Entry is one surviving file, in traversal order.
type Entry struct {
	// RelPath is the path relative to the traversal root, slash-normalized.
	RelPath string

	// AbsPath is the path as seen by the filesystem.
	AbsPath string

	// Ext is the file extension including the dot, or "".
	Ext string
}

// Result carries the output of one traversal.
type Result struct {
	// Tree is the indented textual listing: directories as "name/",
	// files one level deeper, 4 spaces per depth level.
	Tree string

	// Entries lists every surviving file in encounter order.
	Entries []Entry

	// Excluded counts pruned directories and filtered files.
	Excluded int
}

// Walker traverses a directory tree once, depth-first, consulting the
// classifier before descending. State is per-call; a Walker must not run
// concurrent Walk calls on the same instance.
type Walker struct {
	fs  afero.Fs
	cls *pattern.Classifier
	log logger.Logger
}

// New creates a walker over the given filesystem and classifier.
func New(fs afero.Fs, cls *pattern.Classifier, log logger.Logger) *Walker {
	return &Walker{
		fs:  fs,
		cls: cls,
		log: log,
	}
}

// Walk traverses root and returns the tree text plus the surviving entries.
// The same classifier answers both, so the tree and content sections can
// never disagree.
func (w *Walker) Walk(root string) (*Result, error) {
	info, err := w.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	res := &Result{}
	var tree strings.Builder

	if d := w.cls.ShouldExclude(root); d.Excluded {
		w.log.WithFields(logger.Fields{
			"path":    root,
			"reason":  d.Reason,
			"pattern": d.Pattern,
		}).Debug("Excluding root directory")
		res.Excluded++
	} else if err := w.walkDir(root, root, 0, &tree, res); err != nil {
		return nil, err
	}

	res.Tree = tree.String()

	w.log.WithFields(logger.Fields{
		"files":    len(res.Entries),
		"excluded": res.Excluded,
	}).Debug("Traversal completed")

	return res, nil
}

func (w *Walker) walkDir(root, dir string, depth int, tree *strings.Builder, res *Result) error {
	entries, err := afero.ReadDir(w.fs, dir)
	if err != nil {
		if depth == 0 {
			return fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		w.log.WithFields(logger.Fields{
			"path":  dir,
			"error": err,
		}).Warn("Failed to read directory")
		return nil
	}

	indent := strings.Repeat(" ", 4*depth)
	tree.WriteString(indent + filepath.Base(dir) + "/\n")

	subindent := strings.Repeat(" ", 4*(depth+1))
	var dirs []os.FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry)
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if d := w.cls.ShouldExclude(path); d.Excluded {
			w.log.WithFields(logger.Fields{
				"path":    path,
				"reason":  d.Reason,
				"pattern": d.Pattern,
			}).Debug("Excluding file")
			res.Excluded++
			continue
		}

		tree.WriteString(subindent + entry.Name() + "\n")

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = entry.Name()
		}
		res.Entries = append(res.Entries, Entry{
			RelPath: filepath.ToSlash(rel),
			AbsPath: path,
			Ext:     filepath.Ext(path),
		})
	}

	// Excluded directories are pruned here, before descent; their
	// contents are never enumerated.
	for _, d := range dirs {
		path := filepath.Join(dir, d.Name())
		if dec := w.cls.ShouldExclude(path); dec.Excluded {
			w.log.WithFields(logger.Fields{
				"path":    path,
				"reason":  dec.Reason,
				"pattern": dec.Pattern,
			}).Debug("Pruning directory")
			res.Excluded++
			continue
		}
		if err := w.walkDir(root, path, depth+1, tree, res); err != nil {
			return err
		}
	}

	return nil
}
