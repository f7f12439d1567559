package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonemaro/codetext/pkg/logger"
)

type mockLogger struct{}

func (m *mockLogger) Trace(msg string)                              {}
func (m *mockLogger) Debug(msg string)                              {}
func (m *mockLogger) Info(msg string)                               {}
func (m *mockLogger) Warn(msg string)                               {}
func (m *mockLogger) Error(msg string)                              {}
func (m *mockLogger) WithFields(fields logger.Fields) logger.Logger { return m }

func TestIsRemote(t *testing.T) {
	tests := []struct {
		input  string
		remote bool
	}{
		{"https://github.com/user/repo", true},
		{"https://github.com/user/repo.git", true},
		{"git@github.com:user/repo.git", true},
		{"https://gitlab.com/user/repo", false},
		{"http://github.com/user/repo", false},
		{"/home/user/project", false},
		{"./relative/dir", false},
		{"github.com/user/repo", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.remote, IsRemote(tt.input), "input %q", tt.input)
	}
}

func TestAcquireLocalDirectory(t *testing.T) {
	dir := t.TempDir()

	src, err := NewAcquirer(&mockLogger{}).Acquire(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, src.Root)
	assert.False(t, src.Staged)

	// Cleanup on a local source is a no-op: the directory stays.
	require.NoError(t, src.Cleanup())
	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestAcquireLocalRelativePath(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.Mkdir("sub", 0755))

	src, err := NewAcquirer(&mockLogger{}).Acquire(context.Background(), "sub")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(src.Root))
}

func TestAcquireLocalFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := NewAcquirer(&mockLogger{}).Acquire(context.Background(), file)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestAcquireLocalMissing(t *testing.T) {
	_, err := NewAcquirer(&mockLogger{}).Acquire(context.Background(), "/no/such/path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to access input path")
}

func TestStagedCleanupRemovesDirectory(t *testing.T) {
	dir, err := os.MkdirTemp("", "github_repo_")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0644))

	src := &Source{Root: dir, Staged: true}
	require.NoError(t, src.Cleanup())

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	// A second cleanup of an already removed directory is harmless.
	assert.NoError(t, src.Cleanup())
}
