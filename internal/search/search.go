// Package search runs a keyword over every document in the collection and
// returns the matches ranked by score.
package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cvsearch/internal/expand"
	"cvsearch/internal/logger"
	"cvsearch/internal/metrics"
	"cvsearch/internal/models"
	"cvsearch/internal/score"
)

// ErrEmptyQuery is returned before any document is read when the keyword is
// blank.
var ErrEmptyQuery = errors.New("keyword is required")

type TextExtractor interface {
	Extract(ctx context.Context, path string) string
}

type QueryExpander interface {
	Expand(keyword string) expand.VariantSet
}

type Lister interface {
	List() ([]models.Document, error)
}

// RunRecorder persists a summary of each finished search.
type RunRecorder interface {
	Insert(ctx context.Context, run models.SearchRun) error
}

type Searcher struct {
	collection Lister
	extractor  TextExtractor
	expander   QueryExpander
	recorder   RunRecorder
	now        func() time.Time
}

type Option func(*Searcher)

func WithRecorder(r RunRecorder) Option {
	return func(s *Searcher) { s.recorder = r }
}

func New(collection Lister, extractor TextExtractor, expander QueryExpander, opts ...Option) *Searcher {
	s := &Searcher{
		collection: collection,
		extractor:  extractor,
		expander:   expander,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Response struct {
	RunID    string                `json:"run_id"`
	Keyword  string                `json:"keyword"`
	Variants []string              `json:"variants"`
	Scanned  int                   `json:"scanned"`
	Results  []models.ScoredResult `json:"results"`
}

// Search is Run without the run metadata.
func (s *Searcher) Search(ctx context.Context, keyword string) ([]models.ScoredResult, error) {
	resp, err := s.Run(ctx, keyword)
	if err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Run expands keyword once, scores every regular file in the collection and
// sorts the matches by descending score. Ties keep listing order. Per-file
// extraction failures only drop that file.
func (s *Searcher) Run(ctx context.Context, keyword string) (Response, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		metrics.ObserveSearch("rejected", 0, 0)
		return Response{}, ErrEmptyQuery
	}

	start := s.now()
	runID := uuid.NewString()
	log := logger.FromContext(ctx).With(zap.String("run_id", runID), zap.String("keyword", keyword))
	ctx = logger.ContextWithLogger(ctx, log)

	variants := s.expander.Expand(keyword).Terms()
	log.Debug("keyword expanded", zap.Strings("variants", variants))

	docs, err := s.collection.List()
	if err != nil {
		metrics.ObserveSearch("error", 0, 0)
		return Response{}, fmt.Errorf("list collection: %w", err)
	}

	results := make([]models.ScoredResult, 0)
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			metrics.ObserveSearch("error", len(docs), 0)
			return Response{}, err
		}
		text := s.extractor.Extract(ctx, doc.Path)
		res := score.Score(text, variants)
		if !res.Matched() {
			continue
		}
		results = append(results, models.ScoredResult{
			Filename:    doc.Filename,
			Path:        doc.Path,
			Score:       res.Score,
			Occurrences: res.Occurrences,
			Excerpt:     res.Excerpt,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	took := s.now().Sub(start)
	outcome := "matched"
	if len(results) == 0 {
		outcome = "empty"
	}
	metrics.ObserveSearch(outcome, len(docs), took)

	run := models.SearchRun{
		RunID:    runID,
		Keyword:  keyword,
		Variants: variants,
		Scanned:  len(docs),
		Matched:  len(results),
		Duration: took,
	}
	if len(results) > 0 {
		run.TopFile = results[0].Filename
	}
	log.Info("search finished",
		zap.Int("scanned", run.Scanned),
		zap.Int("matched", run.Matched),
		zap.Duration("took", took),
	)
	if s.recorder != nil {
		if err := s.recorder.Insert(ctx, run); err != nil {
			log.Warn("record search run failed", zap.Error(err))
		}
	}

	return Response{
		RunID:    runID,
		Keyword:  keyword,
		Variants: variants,
		Scanned:  len(docs),
		Results:  results,
	}, nil
}
