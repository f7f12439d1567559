package pattern

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonemaro/codetext/pkg/logger"
)

type mockLogger struct {
	logs []string
}

func (m *mockLogger) Info(msg string)                               { m.logs = append(m.logs, "INFO: "+msg) }
func (m *mockLogger) Debug(msg string)                              { m.logs = append(m.logs, "DEBUG: "+msg) }
func (m *mockLogger) Error(msg string)                              { m.logs = append(m.logs, "ERROR: "+msg) }
func (m *mockLogger) Warn(msg string)                               { m.logs = append(m.logs, "WARN: "+msg) }
func (m *mockLogger) Trace(msg string)                              { m.logs = append(m.logs, "TRACE: "+msg) }
func (m *mockLogger) WithFields(fields logger.Fields) logger.Logger { return m }

func TestStoreCLIPatterns(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, Options{
		Patterns: []string{"*.bak,  temp/ ", "", "  ", "extra.txt"},
	}, &mockLogger{})

	patterns := store.Patterns()
	assert.Contains(t, patterns, "*.bak")
	assert.Contains(t, patterns, "temp/")
	assert.Contains(t, patterns, "extra.txt")
	assert.NotContains(t, patterns, "")
	assert.NotContains(t, patterns, "  ")
}

func TestStoreDefaultsAlwaysInjected(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, Options{}, &mockLogger{})

	patterns := store.Patterns()
	require.NotEmpty(t, patterns)
	for _, p := range DefaultPatterns {
		assert.Contains(t, patterns, p)
	}
}

func TestStoreExcludeFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	declarations := "# a comment\n\n*.tmp\n  spaced.txt  \n# another\nvendor/\n"
	require.NoError(t, afero.WriteFile(fs, "/project/.exclude", []byte(declarations), 0644))

	store := NewStore(fs, Options{ExcludeFile: "/project/.exclude"}, &mockLogger{})

	patterns := store.Patterns()
	assert.Contains(t, patterns, "*.tmp")
	assert.Contains(t, patterns, "spaced.txt")
	assert.Contains(t, patterns, "vendor/")
	assert.NotContains(t, patterns, "# a comment")
}

func TestStoreMissingExcludeFileIsNonFatal(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, Options{
		Patterns:    []string{"*.bak"},
		ExcludeFile: "/nowhere/.exclude",
	}, &mockLogger{})

	// The other sources still apply.
	assert.Contains(t, store.Patterns(), "*.bak")
	_, matched := store.Match("file.bak")
	assert.True(t, matched)
}

func TestStoreUnionCollapsesDuplicates(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/.exclude", []byte("*.log\n"), 0644))

	// "*.log" arrives from all three sources; the set holds it once.
	store := NewStore(fs, Options{
		Patterns:    []string{"*.log"},
		ExcludeFile: "/p/.exclude",
	}, &mockLogger{})

	count := 0
	for _, p := range store.Patterns() {
		if p == "*.log" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestStoreInvalidPatternSkipped(t *testing.T) {
	fs := afero.NewMemMapFs()
	log := &mockLogger{}
	store := NewStore(fs, Options{Patterns: []string{"file[z-a]", "*.bak"}}, log)

	assert.NotContains(t, store.Patterns(), "file[z-a]")
	assert.Contains(t, store.Patterns(), "*.bak")
	assert.NotEmpty(t, log.logs)
}

func TestStoreMatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, Options{
		Patterns: []string{"*.bak", "src/*.py", "venv/", "**/generated/**"},
	}, &mockLogger{})

	tests := []struct {
		name    string
		path    string
		matched bool
	}{
		{"basename match", "deep/nested/old.bak", true},
		{"path glob match", "src/main.py", true},
		{"directory pattern at root", "venv", true},
		{"directory pattern component", "venv/lib/site.py", true},
		{"directory pattern at depth", "tools/venv/bin/python", true},
		{"recursive pattern at root", "generated/api.go", true},
		{"recursive pattern at depth", "pkg/generated/v1/api.go", true},
		{"default pattern git", ".git/config", true},
		{"clean path survives", "src/main.go", false},
		{"similar name survives", "venvs/file", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, matched := store.Match(tt.path)
			assert.Equal(t, tt.matched, matched, "path %q", tt.path)
		})
	}
}

// The same pattern is equally effective from any source.
func TestStoreSourceIrrelevantToOutcome(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/.exclude", []byte("*.secret\n"), 0644))

	viaCLI := NewStore(fs, Options{Patterns: []string{"*.secret"}}, &mockLogger{})
	viaFile := NewStore(fs, Options{ExcludeFile: "/p/.exclude"}, &mockLogger{})

	for _, path := range []string{"a.secret", "dir/b.secret", "clean.txt"} {
		_, m1 := viaCLI.Match(path)
		_, m2 := viaFile.Match(path)
		assert.Equal(t, m1, m2, "path %q", path)
	}
}
