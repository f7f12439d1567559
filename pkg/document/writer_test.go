package document

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonemaro/codetext/pkg/content"
	"github.com/sonemaro/codetext/pkg/logger"
)

type mockLogger struct{}

func (m *mockLogger) Trace(msg string)                              {}
func (m *mockLogger) Debug(msg string)                              {}
func (m *mockLogger) Info(msg string)                               {}
func (m *mockLogger) Warn(msg string)                               {}
func (m *mockLogger) Error(msg string)                              {}
func (m *mockLogger) WithFields(fields logger.Fields) logger.Logger { return m }

func TestCompose(t *testing.T) {
	tree := "project/\n    main.go\n"
	records := "\n\nmain.go\nFile type: .go\npackage main\n"

	got := Compose(tree, records)

	expected := "Folder Structure\n" + content.Separator + "\n" +
		tree + "\n\n" +
		"File Contents\n" + content.Separator + "\n" +
		records
	assert.Equal(t, expected, got)
}

func TestForType(t *testing.T) {
	fs := afero.NewMemMapFs()
	log := &mockLogger{}

	w, err := ForType(TypeTxt, fs, log)
	require.NoError(t, err)
	assert.IsType(t, &textWriter{}, w)

	w, err = ForType(TypeDocx, fs, log)
	require.NoError(t, err)
	assert.IsType(t, &docxWriter{}, w)

	_, err = ForType("pdf", fs, log)
	assert.ErrorIs(t, err, ErrInvalidType)
	assert.Contains(t, err.Error(), "pdf")
}

func TestTextWriterRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := ForType(TypeTxt, fs, &mockLogger{})
	require.NoError(t, err)

	text := Compose("project/\n", "\n\nREADME\nFile type: no extension\nhi\n")
	require.NoError(t, w.Write(text, "/out/artifact.txt"))

	data, err := afero.ReadFile(fs, "/out/artifact.txt")
	require.NoError(t, err)
	assert.Equal(t, text, string(data))
}

func TestTextWriterOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/out.txt", []byte("stale"), 0644))

	w, err := ForType(TypeTxt, fs, &mockLogger{})
	require.NoError(t, err)
	require.NoError(t, w.Write("fresh", "/out.txt"))

	data, err := afero.ReadFile(fs, "/out.txt")
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestDocxWriterPlainText(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := ForType(TypeDocx, fs, &mockLogger{})
	require.NoError(t, err)

	text := Compose("project/\n    main.go\n", "\n\nmain.go\nFile type: .go\npackage main\n")
	require.NoError(t, w.Write(text, "/out.docx"))

	info, err := fs.Stat("/out.docx")
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDocxWriterMissingImageDegrades(t *testing.T) {
	// A marker pointing at a nonexistent image must not fail the write;
	// the document gets a placeholder paragraph instead.
	fs := afero.NewMemMapFs()
	w, err := ForType(TypeDocx, fs, &mockLogger{})
	require.NoError(t, err)

	text := "before\n\n" +
		content.ImageMarkerOpen + "/no/such/logo.png" + content.ImageMarkerClose +
		"\nafter\n"
	require.NoError(t, w.Write(text, "/out.docx"))

	info, err := fs.Stat("/out.docx")
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDocxWriterUnterminatedMarkerIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	w, err := ForType(TypeDocx, fs, &mockLogger{})
	require.NoError(t, err)

	text := "body\n" + content.ImageMarkerOpen + "/dangling/path.png"
	require.NoError(t, w.Write(text, "/out.docx"))

	_, err = fs.Stat("/out.docx")
	assert.NoError(t, err)
}
