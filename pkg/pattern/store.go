/*
Package pattern implements the exclusion engine for codetext: a Store that
assembles glob patterns from the command line, a fixed default set and an
optional .exclude declarations file, and a Classifier that decides per path
whether it is hidden, excluded or an image.

Basic usage:

	store := pattern.NewStore(fs, pattern.Options{
		Patterns:    []string{"*.log,temp/"},
		ExcludeFile: "/project/.exclude",
	}, log)

	cls := pattern.NewClassifier(store, "/project", true)
	if d := cls.ShouldExclude("/project/logs/app.log"); d.Excluded {
		// skip it
	}
*/
package pattern

import (
	"bufio"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/sonemaro/codetext/pkg/logger"
)

// DefaultPatterns are always part of the exclusion set. They cover VCS
// metadata, bytecode caches, virtual environments, dependency directories,
// OS artifacts, log/temp files, build output and packaging metadata.
var DefaultPatterns = []string{
	".git/", ".git/**",
	"__pycache__/", "**/__pycache__/**",
	"*.pyc", "*.pyo", "*.pyd",
	".venv/", "venv/", "env/",
	"node_modules/",
	".DS_Store",
	"*.log", "*.tmp",
	".pytest_cache/",
	".coverage",
	"build/", "dist/",
	"*.egg-info/",
}

// Options configures pattern collection for a Store.
type Options struct {
	// Patterns are caller-supplied exclusion patterns. Each string may
	// contain comma-separated sub-patterns; surrounding whitespace is
	// trimmed and empty results are discarded.
	Patterns []string

	// ExcludeFile is the path of a line-oriented declarations file.
	// Blank lines and lines starting with '#' are ignored. An unreadable
	// file is non-fatal; the source is simply skipped. Empty disables
	// the source.
	ExcludeFile string
}

// compiledPattern is one pattern with every derived matcher it needs.
type compiledPattern struct {
	raw string

	// re serves the plain fnmatch checks against the final path
	// component and the full normalized path.
	re *regexp.Regexp

	// dir is set for directory-style patterns ("name/"); it is matched
	// against every individual path component.
	dir *regexp.Regexp

	// deep is set for patterns containing "**": the globstar segments
	// are collapsed to a single wildcard and the result is matched
	// against the full path and every path suffix.
	deep *regexp.Regexp
}

// Store holds the merged, compiled exclusion pattern set. It is built once
// and immutable afterwards; matching only tests membership, so the order in
// which sources were added never affects outcomes.
type Store struct {
	patterns map[string]compiledPattern
	log      logger.Logger
}

// NewStore merges the three pattern sources (caller-supplied, defaults,
// declarations file) with union semantics and compiles each unique pattern.
// Invalid patterns are dropped with a warning rather than failing the run.
func NewStore(fs afero.Fs, opts Options, log logger.Logger) *Store {
	s := &Store{
		patterns: make(map[string]compiledPattern),
		log:      log,
	}

	for _, raw := range opts.Patterns {
		for _, p := range strings.Split(raw, ",") {
			s.add(strings.TrimSpace(p))
		}
	}

	for _, p := range DefaultPatterns {
		s.add(p)
	}

	if opts.ExcludeFile != "" {
		s.loadExcludeFile(fs, opts.ExcludeFile)
	}

	return s
}

// Patterns returns a sorted copy of the active pattern set, for diagnostics.
func (s *Store) Patterns() []string {
	out := make([]string, 0, len(s.patterns))
	for p := range s.patterns {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Match tests a slash-normalized relative path against every pattern in the
// set and returns the first pattern that hits. The checks per pattern, any
// of which excludes the path:
//
//  1. glob against the bare final component
//  2. glob against the full path
//  3. directory-style patterns against every individual component
//  4. globstar patterns, collapsed, against the full path and every suffix
func (s *Store) Match(normalized string) (string, bool) {
	base := path.Base(normalized)

	for raw, cp := range s.patterns {
		if cp.re.MatchString(base) || cp.re.MatchString(normalized) {
			return raw, true
		}
		if cp.dir != nil && matchAnyComponent(cp.dir, normalized) {
			return raw, true
		}
		if cp.deep != nil && matchAnySuffix(cp.deep, normalized) {
			return raw, true
		}
	}

	return "", false
}

func (s *Store) add(p string) {
	if p == "" {
		return
	}
	if _, ok := s.patterns[p]; ok {
		return
	}

	cp := compiledPattern{raw: p}

	re, err := compileGlob(p)
	if err != nil {
		s.log.WithFields(logger.Fields{
			"pattern": p,
			"error":   err,
		}).Warn("Ignoring invalid exclusion pattern")
		return
	}
	cp.re = re

	if strings.HasSuffix(p, "/") {
		dir, err := compileGlob(strings.TrimSuffix(p, "/"))
		if err == nil {
			cp.dir = dir
		}
	}

	if strings.Contains(p, "**") {
		collapsed := strings.ReplaceAll(p, "**/", "")
		collapsed = strings.ReplaceAll(collapsed, "**", "*")
		deep, err := compileGlob(collapsed)
		if err == nil {
			cp.deep = deep
		}
	}

	s.patterns[p] = cp
}

func (s *Store) loadExcludeFile(fs afero.Fs, name string) {
	f, err := fs.Open(name)
	if err != nil {
		s.log.WithFields(logger.Fields{
			"file":  name,
			"error": err,
		}).Debug("No readable exclusion declarations file")
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.add(line)
	}
	if err := scanner.Err(); err != nil {
		s.log.WithFields(logger.Fields{
			"file":  name,
			"error": err,
		}).Warn("Failed to read exclusion declarations file")
		return
	}

	s.log.WithFields(logger.Fields{
		"file": name,
	}).Debug("Loaded exclusion declarations file")
}

func matchAnyComponent(re *regexp.Regexp, normalized string) bool {
	for _, part := range strings.Split(normalized, "/") {
		if re.MatchString(part) {
			return true
		}
	}
	return false
}

func matchAnySuffix(re *regexp.Regexp, normalized string) bool {
	parts := strings.Split(normalized, "/")
	for i := range parts {
		if re.MatchString(strings.Join(parts[i:], "/")) {
			return true
		}
	}
	return false
}
