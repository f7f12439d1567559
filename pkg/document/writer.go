/*
Package document serializes the composed artifact text: plain text or a
paginated Word document with embedded images.

Basic usage:

	w, err := document.ForType(document.TypeTxt, fs, log)
	if err != nil {
	    return err
	}
	err = w.Write(document.Compose(tree, records), "out.txt")
*/
package document

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/sonemaro/codetext/pkg/content"
	"github.com/sonemaro/codetext/pkg/logger"
)

// Type selects the artifact serialization.
type Type string

const (
	// TypeTxt writes the artifact as plain UTF-8 text.
	TypeTxt Type = "txt"

	// TypeDocx writes a paginated Word document, splicing in images
	// where the content stage left embed markers.
	TypeDocx Type = "docx"
)

// ErrInvalidType indicates an unsupported output type. Nothing is written
// when it is returned.
var ErrInvalidType = errors.New("invalid output type: supported types are txt and docx")

// Writer serializes the final artifact text to a destination path.
type Writer interface {
	Write(text, outputPath string) error
}

// ForType returns the writer for the given output type.
func ForType(t Type, fs afero.Fs, log logger.Logger) (Writer, error) {
	switch t {
	case TypeTxt:
		return &textWriter{fs: fs, log: log}, nil
	case TypeDocx:
		return &docxWriter{fs: fs, log: log}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, t)
	}
}

// Compose joins the tree listing and the file records into the final
// artifact layout.
func Compose(tree, records string) string {
	return "Folder Structure\n" + content.Separator + "\n" + tree + "\n\n" +
		"File Contents\n" + content.Separator + "\n" + records
}
