// Package app assembles the searcher, batch runner and their dependencies from
// configuration. Every binary builds exactly one App.
package app

import (
	"context"
	"fmt"
	"time"

	tclient "go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"cvsearch/internal/batch"
	"cvsearch/internal/collection"
	"cvsearch/internal/config"
	"cvsearch/internal/expand"
	"cvsearch/internal/extract"
	"cvsearch/internal/ocr"
	"cvsearch/internal/search"
	"cvsearch/internal/storage"
	"cvsearch/internal/util"
	"cvsearch/internal/workflows"
)

// BatchRunner is satisfied by batch.Copier and workflows.Launcher.
type BatchRunner interface {
	Run(ctx context.Context) (batch.Report, error)
}

type App struct {
	Config     config.Config
	Log        *zap.Logger
	Collection *collection.Store
	Extractor  *extract.Extractor
	Expander   *expand.Expander
	Searcher   *search.Searcher
	Batch      BatchRunner

	db       *storage.DB
	temporal tclient.Client
}

type Option func(*options)

type options struct {
	recognizer ocr.Recognizer
	temporal   tclient.Client
	skipRemote bool
}

// WithRecognizer replaces the OCR engine picked from configuration.
func WithRecognizer(r ocr.Recognizer) Option {
	return func(o *options) { o.recognizer = r }
}

// LocalOnly ignores the Postgres and Temporal settings.
func LocalOnly() Option {
	return func(o *options) { o.skipRemote = true }
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := util.EnsureDir(cfg.CollectionDir); err != nil {
		return nil, err
	}

	syn, err := config.LoadSynonyms(cfg.SynonymsPath, expand.DefaultSynonyms())
	if err != nil {
		return nil, err
	}

	var lemmatizer expand.Lemmatizer = expand.IdentityLemmatizer{}
	if sl, err := expand.NewSnowballLemmatizer(cfg.Language); err != nil {
		log.Warn("lemmatizer unavailable, matching on exact keyword tokens", zap.String("language", cfg.Language), zap.Error(err))
	} else {
		lemmatizer = sl
	}

	recognizer := o.recognizer
	if recognizer == nil {
		recognizer = ocr.NewDefault(cfg.TesseractCmd, cfg.OCRLanguage)
	}

	a := &App{
		Config:     cfg,
		Log:        log,
		Collection: collection.NewStore(cfg.CollectionDir),
		Extractor:  extract.New(recognizer),
		Expander:   expand.New(lemmatizer, syn),
	}

	var searchOpts []search.Option
	if cfg.PostgresURL != "" && !o.skipRemote {
		repo, err := a.connectSearchLog(ctx)
		if err != nil {
			log.Warn("search log disabled", zap.Error(err))
		} else {
			searchOpts = append(searchOpts, search.WithRecorder(repo))
		}
	}
	a.Searcher = search.New(a.Collection, a.Extractor, a.Expander, searchOpts...)

	a.Batch = batch.NewCopier(a.Collection, a.Extractor, cfg.ResultsDir, cfg.BatchKeyword)
	if cfg.TemporalAddress != "" && !o.skipRemote {
		c, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("dial temporal: %w", err)
		}
		a.temporal = c
		a.Batch = workflows.NewLauncher(c, cfg.TemporalTaskQueue, workflows.BatchCopyInput{
			CollectionDir: cfg.CollectionDir,
			ResultsDir:    cfg.ResultsDir,
			Keyword:       cfg.BatchKeyword,
		})
	}
	return a, nil
}

func (a *App) connectSearchLog(ctx context.Context) (*storage.SearchLogRepo, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, a.Config.PostgresURL)
	if err != nil {
		return nil, err
	}
	repo := storage.NewSearchLogRepo(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	a.db = db
	return repo, nil
}

func (a *App) Close() {
	if a.temporal != nil {
		a.temporal.Close()
	}
	a.db.Close()
	_ = a.Log.Sync()
}
