/*
Package content turns the walker's surviving entries into the formatted
file records of the final artifact. It reads bytes, classifies each file as
text, binary or image, and frames the result; per-file failures produce an
inline error marker instead of aborting the run.

Basic usage:

	asm := content.New(fs, content.Config{BufferSize: 4096}, log)
	records, err := asm.Assemble(ctx, entries)
*/
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/sonemaro/codetext/pkg/logger"
	"github.com/sonemaro/codetext/pkg/pattern"
	"github.com/sonemaro/codetext/pkg/walker"
)

// Separator is the fixed rule between file records and section headers.
var Separator = strings.Repeat("-", 50)

// Markers delimiting an embedded image path in document output. The
// document writer splits the assembled text on these.
const (
	ImageMarkerOpen  = "(IMAGE_MARKER)"
	ImageMarkerClose = "(/IMAGE_MARKER)"
)

const binaryMarker = "Binary file. Content not included."

// binarySniffLen is how many leading bytes are inspected for a NUL byte.
const binarySniffLen = 1024

// nonUTF8PreviewLen bounds the preview emitted for undecodable files.
const nonUTF8PreviewLen = 500

// Config controls record assembly.
type Config struct {
	// EmbedImages replaces image file records with embed markers, for
	// paginated document output.
	EmbedImages bool

	// BufferSize is the read buffer size in bytes (default 4096).
	BufferSize int

	// Workers is the content-read concurrency. Values above 1 route
	// reads through an order-preserving worker pool; the assembled
	// output is byte-identical to the sequential path.
	Workers int

	// RateLimit caps file reads per second when workers are in use
	// (0 = unlimited).
	RateLimit int
}

// Assembler formats one record per surviving entry, in traversal order.
type Assembler struct {
	fs  afero.Fs
	cfg Config
	log logger.Logger
}

// New creates an assembler reading through the given filesystem.
func New(fs afero.Fs, cfg Config, log logger.Logger) *Assembler {
	return &Assembler{
		fs:  fs,
		cfg: cfg,
		log: log,
	}
}

// Assemble produces the concatenated file records for the entries, in the
// order given. Entry order is preserved regardless of worker count.
func (a *Assembler) Assemble(ctx context.Context, entries []walker.Entry) (string, error) {
	if a.cfg.Workers > 1 {
		return a.assembleConcurrent(ctx, entries)
	}

	var b strings.Builder
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		b.WriteString(a.record(e))
	}

	a.log.WithFields(logger.Fields{
		"files": len(entries),
	}).Debug("Content assembly completed")

	return b.String(), nil
}

// record builds the full framed record for one entry.
func (a *Assembler) record(e walker.Entry) string {
	if a.cfg.EmbedImages && pattern.IsImage(e.AbsPath) {
		abs, err := filepath.Abs(e.AbsPath)
		if err != nil {
			abs = e.AbsPath
		}
		return "\n\n" + ImageMarkerOpen + abs + ImageMarkerClose + "\n"
	}

	a.log.WithFields(logger.Fields{
		"path": e.AbsPath,
	}).Trace("Processing file")

	ext := e.Ext
	if ext == "" {
		ext = "no extension"
	}

	return fmt.Sprintf("\n\n%s\nFile type: %s\n%s\n\n%s\nFile End\n%s\n",
		e.RelPath, ext, a.fileBody(e.AbsPath), Separator, Separator)
}

// fileBody reads and classifies one file. Failures are recovered locally
// with an inline error marker so the rest of the run continues.
func (a *Assembler) fileBody(path string) string {
	data, err := a.readAll(path)
	if err != nil {
		a.log.WithFields(logger.Fields{
			"path":  path,
			"error": err,
		}).Debug("Failed to read file")
		return "[Error: Could not process file - " + err.Error() + "]"
	}

	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		return binaryMarker
	}

	if !utf8.Valid(data) {
		preview := data
		if len(preview) > nonUTF8PreviewLen {
			preview = preview[:nonUTF8PreviewLen]
		}
		return fmt.Sprintf("[Binary/Non-UTF8 file - showing first %d chars]\n%s...",
			nonUTF8PreviewLen, preview)
	}

	return string(data)
}

// readAll reads the whole file honoring the configured buffer size.
func (a *Assembler) readAll(path string) ([]byte, error) {
	f, err := a.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	bufferSize := a.cfg.BufferSize
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	buf := make([]byte, bufferSize)
	var content []byte
	for {
		n, err := f.Read(buf)
		if n > 0 {
			content = append(content, buf[:n]...)
		}
		if err == io.EOF {
			return content, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error reading file %s: %w", path, err)
		}
	}
}
