package document

import (
	"fmt"
	"strings"

	docx "github.com/fumiama/go-docx"
	"github.com/spf13/afero"

	"github.com/sonemaro/codetext/pkg/content"
	"github.com/sonemaro/codetext/pkg/logger"
)

type docxWriter struct {
	fs  afero.Fs
	log logger.Logger
}

// Write builds the Word document by splitting the text on image markers:
// plain segments become paragraphs, marker payloads are embedded as inline
// drawings. A missing or unembeddable image degrades to a marker paragraph
// so the document still completes.
func (w *docxWriter) Write(text, outputPath string) error {
	doc := docx.New().WithDefaultTheme()

	segments := strings.Split(text, content.ImageMarkerOpen)

	if strings.TrimSpace(segments[0]) != "" {
		w.addParagraphs(doc, segments[0])
	}

	for _, segment := range segments[1:] {
		imgPath, rest, ok := strings.Cut(segment, content.ImageMarkerClose)
		if !ok {
			continue
		}
		w.addImage(doc, strings.TrimSpace(imgPath))

		if strings.TrimSpace(rest) != "" {
			w.addParagraphs(doc, rest)
		}
	}

	f, err := w.fs.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	defer f.Close()

	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write document %s: %w", outputPath, err)
	}

	w.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Debug("Document artifact written")

	return nil
}

func (w *docxWriter) addImage(doc *docx.Docx, imgPath string) {
	if _, err := w.fs.Stat(imgPath); err != nil {
		w.log.WithFields(logger.Fields{
			"image": imgPath,
		}).Debug("Image file not found")
		doc.AddParagraph().AddText("[Missing image: " + imgPath + "]")
		return
	}

	w.log.WithFields(logger.Fields{
		"image": imgPath,
	}).Trace("Embedding image")

	if _, err := doc.AddParagraph().AddInlineDrawingFrom(imgPath); err != nil {
		w.log.WithFields(logger.Fields{
			"image": imgPath,
			"error": err,
		}).Debug("Failed to embed image")
		doc.AddParagraph().AddText("[Error: Could not add image - " + err.Error() + "]")
	}
}

func (w *docxWriter) addParagraphs(doc *docx.Docx, text string) {
	for _, line := range strings.Split(text, "\n") {
		doc.AddParagraph().AddText(line)
	}
}
