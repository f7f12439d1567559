package pattern

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func newTestClassifier(t *testing.T, patterns []string, excludeHidden bool) *Classifier {
	t.Helper()
	store := NewStore(afero.NewMemMapFs(), Options{Patterns: patterns}, &mockLogger{})
	return NewClassifier(store, "/project", excludeHidden)
}

func TestIsHidden(t *testing.T) {
	cls := newTestClassifier(t, nil, false)

	tests := []struct {
		path   string
		hidden bool
	}{
		{"/project/src/main.go", false},
		{"/project/.git/config", true},
		{"/project/src/.env", true},
		{"/project/__pycache__/mod.pyc", true},
		{"/project/src/__init__.py", true},
		{"/project/src/init.py", false},
		{"/project/a.b/file", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.hidden, cls.IsHidden(tt.path), "path %q", tt.path)
	}
}

func TestShouldExcludeHiddenShortCircuit(t *testing.T) {
	// Hidden test runs before any pattern test, and only when enabled.
	on := newTestClassifier(t, nil, true)
	off := newTestClassifier(t, nil, false)

	d := on.ShouldExclude("/project/src/.env")
	assert.True(t, d.Excluded)
	assert.Equal(t, ReasonHidden, d.Reason)
	assert.Empty(t, d.Pattern)

	d = off.ShouldExclude("/project/src/.env")
	assert.False(t, d.Excluded)
	assert.Equal(t, ReasonNone, d.Reason)
}

func TestShouldExcludePatternMatch(t *testing.T) {
	cls := newTestClassifier(t, []string{"*.bak", "venv/"}, false)

	d := cls.ShouldExclude("/project/data/old.bak")
	assert.True(t, d.Excluded)
	assert.Equal(t, ReasonPattern, d.Reason)
	assert.Equal(t, "*.bak", d.Pattern)

	d = cls.ShouldExclude("/project/venv/lib/file")
	assert.True(t, d.Excluded)
	assert.Equal(t, ReasonPattern, d.Reason)

	d = cls.ShouldExclude("/project/src/main.go")
	assert.False(t, d.Excluded)
}

func TestShouldExcludeOutsideRootFallsBack(t *testing.T) {
	// Relative computation still works for paths outside the root; the
	// basename check keeps suffix patterns effective either way.
	cls := newTestClassifier(t, []string{"*.bak"}, false)
	d := cls.ShouldExclude("/elsewhere/file.bak")
	assert.True(t, d.Excluded)
}

func TestIsImage(t *testing.T) {
	tests := []struct {
		path  string
		image bool
	}{
		{"logo.png", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"anim.gif", true},
		{"scan.bmp", true},
		{"scan.tiff", true},
		{"doc.pdf", false},
		{"main.go", false},
		{"noext", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.image, IsImage(tt.path), "path %q", tt.path)
	}
}

// Exclusion and image classification are independent axes.
func TestImageIndependentOfExclusion(t *testing.T) {
	cls := newTestClassifier(t, []string{"*.png"}, false)

	path := "/project/img/logo.png"
	assert.True(t, cls.ShouldExclude(path).Excluded)
	assert.True(t, cls.IsImage(path))
}
