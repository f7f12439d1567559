package document

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/sonemaro/codetext/pkg/logger"
)

type textWriter struct {
	fs  afero.Fs
	log logger.Logger
}

func (w *textWriter) Write(text, outputPath string) error {
	if err := afero.WriteFile(w.fs, outputPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputPath, err)
	}

	w.log.WithFields(logger.Fields{
		"path": outputPath,
		"size": len(text),
	}).Debug("Text artifact written")

	return nil
}
