package pattern

import (
	"path/filepath"
	"strings"
)

// Reason explains why a path was excluded.
type Reason string

const (
	// ReasonNone means the path is visible.
	ReasonNone Reason = "none"

	// ReasonHidden means a path component starts with "." or "__" and
	// the hidden-path switch is on.
	ReasonHidden Reason = "hidden"

	// ReasonPattern means an exclusion pattern matched.
	ReasonPattern Reason = "pattern-match"
)

// Decision is the verdict for a single path, computed fresh per call.
type Decision struct {
	Excluded bool
	Reason   Reason

	// Pattern is the matching pattern when Reason is ReasonPattern.
	Pattern string
}

// imageExtensions is the fixed allow-list for image classification.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
}

// Classifier answers visibility questions for paths under one traversal
// root. The same instance must answer both the tree pass and the content
// pass so the two outputs always agree.
type Classifier struct {
	store         *Store
	root          string
	excludeHidden bool
}

// NewClassifier creates a classifier anchored at root. When excludeHidden is
// set, hidden paths are excluded unconditionally, before any pattern test.
func NewClassifier(store *Store, root string, excludeHidden bool) *Classifier {
	return &Classifier{
		store:         store,
		root:          root,
		excludeHidden: excludeHidden,
	}
}

// IsHidden reports whether any component of the path starts with "." or
// "__". This is independent of the exclusion pattern set.
func (c *Classifier) IsHidden(p string) bool {
	for _, part := range strings.Split(filepath.Clean(p), string(filepath.Separator)) {
		if strings.HasPrefix(part, ".") || strings.HasPrefix(part, "__") {
			return true
		}
	}
	return false
}

// ShouldExclude computes the visibility verdict for a path. The hidden test
// short-circuits when enabled; otherwise the path is normalized relative to
// the root and tested against the pattern set.
func (c *Classifier) ShouldExclude(p string) Decision {
	if c.excludeHidden && c.IsHidden(p) {
		return Decision{Excluded: true, Reason: ReasonHidden}
	}

	if pat, ok := c.store.Match(c.normalize(p)); ok {
		return Decision{Excluded: true, Reason: ReasonPattern, Pattern: pat}
	}

	return Decision{Reason: ReasonNone}
}

// IsImage reports whether the path has an image extension.
func (c *Classifier) IsImage(p string) bool {
	return IsImage(p)
}

// IsImage reports whether the path has an extension on the fixed,
// case-insensitive image allow-list. Independent of exclusion.
func IsImage(p string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(p))]
}

// normalize computes the path relative to the root with separators forced
// to "/", so patterns match platform-independently. If no relative path can
// be computed the path is used as given, separator-normalized.
func (c *Classifier) normalize(p string) string {
	rel, err := filepath.Rel(c.root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}
