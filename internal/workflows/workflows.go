package workflows

import (
	"path/filepath"
	"strings"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"cvsearch/internal/activities"
	"cvsearch/internal/batch"
)

const QueryGetProgress = "GetProgress"

// BatchCopyWorkflow copies every PDF in the collection that contains the
// keyword into the results directory. A file whose activity fails after
// retries is recorded as failed and the run continues.
func BatchCopyWorkflow(ctx workflow.Context, input BatchCopyInput) (BatchCopyResult, error) {
	if strings.TrimSpace(input.Keyword) == "" {
		input.Keyword = batch.DefaultKeyword
	}
	progress := BatchCopyProgress{
		Keyword: input.Keyword,
		PerFile: map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetProgress, func() (BatchCopyProgress, error) {
		return progress, nil
	}); err != nil {
		return BatchCopyResult{}, err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	logger := workflow.GetLogger(ctx)

	var listOut activities.ListPDFsOutput
	if err := workflow.ExecuteActivity(ctx, "ListPDFsActivity", activities.ListPDFsInput{CollectionDir: input.CollectionDir}).Get(ctx, &listOut); err != nil {
		return BatchCopyResult{}, err
	}
	progress.Total = len(listOut.Paths)

	result := BatchCopyResult{Matched: []string{}}
	for _, path := range listOut.Paths {
		name := filepath.Base(path)
		progress.PerFile[name] = "processing"

		var out activities.MatchAndCopyOutput
		err := workflow.ExecuteActivity(ctx, "MatchAndCopyActivity", activities.MatchAndCopyInput{
			Path:       path,
			ResultsDir: input.ResultsDir,
			Keyword:    input.Keyword,
		}).Get(ctx, &out)
		progress.Done++
		switch {
		case err != nil:
			progress.Failed++
			progress.PerFile[name] = "failed"
			result.Failed = append(result.Failed, name)
			logger.Warn("match and copy failed", "file", name, "error", err)
		case out.Matched:
			progress.Copied++
			progress.PerFile[name] = "copied"
			result.Matched = append(result.Matched, name)
			logger.Info("keyword found, copied", "file", name)
		default:
			progress.PerFile[name] = "skipped"
		}
	}
	result.Count = len(result.Matched)

	var summaryOut activities.WriteBatchSummaryOutput
	err := workflow.ExecuteActivity(ctx, "WriteBatchSummaryActivity", activities.WriteBatchSummaryInput{
		ResultsDir: input.ResultsDir,
		Summary: map[string]any{
			"keyword":      input.Keyword,
			"total":        progress.Total,
			"count":        result.Count,
			"matched":      result.Matched,
			"failed":       result.Failed,
			"per_file":     progress.PerFile,
			"generated_at": workflow.Now(ctx),
		},
	}).Get(ctx, &summaryOut)
	if err != nil {
		logger.Warn("batch summary not written", "results_dir", input.ResultsDir, "error", err)
	} else {
		result.Summary = summaryOut.Path
	}

	return result, nil
}

func sanitizeID(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
