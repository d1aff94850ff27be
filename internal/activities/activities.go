package activities

import (
	"context"
	"fmt"
	"path/filepath"

	"go.temporal.io/sdk/activity"
	"go.uber.org/zap"

	"cvsearch/internal/batch"
	"cvsearch/internal/collection"
	"cvsearch/internal/logger"
	"cvsearch/internal/util"
)

const SummaryFile = "batch_summary.json"

type Activities struct {
	extractor batch.TextExtractor
	log       *zap.Logger
}

func New(extractor batch.TextExtractor, log *zap.Logger) *Activities {
	if log == nil {
		log = zap.NewNop()
	}
	return &Activities{extractor: extractor, log: log}
}

func (a *Activities) ListPDFsActivity(ctx context.Context, in ListPDFsInput) (ListPDFsOutput, error) {
	_ = ctx
	paths, err := batch.ListPDFs(collection.NewStore(in.CollectionDir))
	if err != nil {
		return ListPDFsOutput{}, fmt.Errorf("list pdfs: %w", err)
	}
	return ListPDFsOutput{Paths: paths}, nil
}

func (a *Activities) MatchAndCopyActivity(ctx context.Context, in MatchAndCopyInput) (MatchAndCopyOutput, error) {
	ctx = logger.ContextWithLogger(ctx, a.activityLogger(ctx))
	ok, err := batch.MatchAndCopy(ctx, a.extractor, in.Path, in.ResultsDir, in.Keyword)
	if err != nil {
		return MatchAndCopyOutput{}, err
	}
	return MatchAndCopyOutput{Filename: filepath.Base(in.Path), Matched: ok}, nil
}

func (a *Activities) WriteBatchSummaryActivity(ctx context.Context, in WriteBatchSummaryInput) (WriteBatchSummaryOutput, error) {
	_ = ctx
	path := filepath.Join(in.ResultsDir, SummaryFile)
	if err := util.WriteJSONAtomic(path, in.Summary); err != nil {
		return WriteBatchSummaryOutput{}, err
	}
	return WriteBatchSummaryOutput{Path: path}, nil
}

// activityLogger tags the base logger with the activity identity when running
// under a worker; outside one it returns the base logger.
func (a *Activities) activityLogger(ctx context.Context) *zap.Logger {
	if !activity.IsActivity(ctx) {
		return a.log
	}
	info := activity.GetInfo(ctx)
	return a.log.With(
		zap.String("workflow_id", info.WorkflowExecution.ID),
		zap.String("activity", info.ActivityType.Name),
		zap.Int32("attempt", info.Attempt),
	)
}
