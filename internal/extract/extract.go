// Package extract turns résumé files into normalized lower-case text.
//
// Every failure mode (unreadable file, corrupt container, missing OCR engine,
// unsupported extension) degrades to empty text so a single bad document
// never aborts a search over the collection.
package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cvsearch/internal/logger"
	"cvsearch/internal/metrics"
	"cvsearch/internal/models"
	"cvsearch/internal/ocr"
	"cvsearch/internal/util"
)

// Reader pulls raw text out of one document format.
type Reader interface {
	Read(ctx context.Context, path string) (string, error)
}

type Extractor struct {
	readers map[models.Format]Reader
}

type Option func(*Extractor)

// WithReader overrides the reader used for format.
func WithReader(format models.Format, r Reader) Option {
	return func(e *Extractor) {
		e.readers[format] = r
	}
}

// New wires the built-in readers. recognizer may be nil, in which case
// images always extract to empty text.
func New(recognizer ocr.Recognizer, opts ...Option) *Extractor {
	e := &Extractor{readers: map[models.Format]Reader{
		models.FormatPDF:  PDFReader{},
		models.FormatDOCX: DOCXReader{},
	}}
	if recognizer != nil {
		e.readers[models.FormatImage] = ImageReader{Recognizer: recognizer}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the normalized text of path, or "" when nothing could be
// read.
func (e *Extractor) Extract(ctx context.Context, path string) string {
	format := models.FormatFromPath(path)
	r, ok := e.readers[format]
	if !ok {
		logger.FromContext(ctx).Debug("no reader for document", zap.String("file", path), zap.String("format", string(format)))
		return ""
	}

	text, err := e.read(ctx, r, path)
	if err != nil {
		logger.FromContext(ctx).Warn("text extraction failed",
			zap.String("file", path),
			zap.String("format", string(format)),
			zap.Error(err),
		)
		metrics.ObserveExtractionFailure(string(format))
		return ""
	}
	return util.NormalizeText(text)
}

// Document extracts path and wraps the result with its metadata.
func (e *Extractor) Document(ctx context.Context, path string) models.Document {
	doc := models.Document{
		Path:   path,
		Format: models.FormatFromPath(path),
	}
	if info, ok := util.IsRegularFile(path); ok {
		doc.Filename = info.Name()
		doc.Size = info.Size()
	}
	doc.Text = e.Extract(ctx, path)
	doc.Status = models.StatusSuccess
	if doc.Text == "" {
		doc.Status = models.StatusEmpty
	}
	return doc
}

func (e *Extractor) read(ctx context.Context, r Reader, path string) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("reader panic: %v", rec)
		}
	}()
	return r.Read(ctx, path)
}
