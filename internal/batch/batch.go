// Package batch copies every PDF in the collection that mentions one fixed
// keyword into a results directory. There is no ranking, excerpting or
// keyword expansion.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"cvsearch/internal/logger"
	"cvsearch/internal/metrics"
	"cvsearch/internal/models"
	"cvsearch/internal/util"
)

const DefaultKeyword = "limpeza"

// ErrAlreadyRunning is returned when a copy into the same results directory is
// still in progress.
var ErrAlreadyRunning = errors.New("batch copy already running")

type TextExtractor interface {
	Extract(ctx context.Context, path string) string
}

type Lister interface {
	List() ([]models.Document, error)
}

type Report struct {
	Count   int      `json:"count"`
	Matched []string `json:"matched"`
}

// ListPDFs returns the paths of the PDF documents in the collection, in
// listing order.
func ListPDFs(l Lister) ([]string, error) {
	docs, err := l.List()
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.Format == models.FormatPDF {
			paths = append(paths, d.Path)
		}
	}
	return paths, nil
}

// ContainsKeyword is a case-insensitive substring test.
func ContainsKeyword(text, keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return false
	}
	return strings.Contains(strings.ToLower(text), keyword)
}

// MatchAndCopy extracts path and, when it contains keyword, copies it into
// resultsDir under the same name.
func MatchAndCopy(ctx context.Context, ex TextExtractor, path, resultsDir, keyword string) (bool, error) {
	if !ContainsKeyword(ex.Extract(ctx, path), keyword) {
		return false, nil
	}
	dst := filepath.Join(resultsDir, filepath.Base(path))
	if err := util.CopyFileAtomic(path, dst); err != nil {
		return false, fmt.Errorf("copy %s: %w", filepath.Base(path), err)
	}
	metrics.ObserveBatchCopy()
	return true, nil
}

type Copier struct {
	running sync.Mutex

	collection Lister
	extractor  TextExtractor
	resultsDir string
	keyword    string
}

func NewCopier(collection Lister, extractor TextExtractor, resultsDir, keyword string) *Copier {
	if strings.TrimSpace(keyword) == "" {
		keyword = DefaultKeyword
	}
	return &Copier{
		collection: collection,
		extractor:  extractor,
		resultsDir: resultsDir,
		keyword:    keyword,
	}
}

func (c *Copier) Keyword() string { return c.keyword }

// Run scans every PDF in process and copies the matches. Extraction and copy
// failures are logged and only skip that file. Overlapping calls fail with
// ErrAlreadyRunning.
func (c *Copier) Run(ctx context.Context) (Report, error) {
	if !c.running.TryLock() {
		return Report{}, fmt.Errorf("%w: keyword %q", ErrAlreadyRunning, c.keyword)
	}
	defer c.running.Unlock()

	log := logger.FromContext(ctx).With(zap.String("keyword", c.keyword))

	if err := util.EnsureDir(c.resultsDir); err != nil {
		return Report{}, err
	}
	paths, err := ListPDFs(c.collection)
	if err != nil {
		return Report{}, fmt.Errorf("list pdfs: %w", err)
	}

	rep := Report{Matched: make([]string, 0)}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		name := filepath.Base(p)
		ok, err := MatchAndCopy(ctx, c.extractor, p, c.resultsDir, c.keyword)
		if err != nil {
			log.Warn("copy failed", zap.String("file", name), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		rep.Matched = append(rep.Matched, name)
		log.Info("keyword found, copied", zap.String("file", name))
	}
	rep.Count = len(rep.Matched)

	log.Info("batch copy finished",
		zap.Int("scanned", len(paths)),
		zap.Int("copied", rep.Count),
		zap.String("results_dir", c.resultsDir),
	)
	return rep, nil
}
