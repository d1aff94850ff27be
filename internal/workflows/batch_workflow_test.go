package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/activity"
	tclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/testsuite"

	"cvsearch/internal/activities"
	"cvsearch/internal/batch"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func registerBatchActivities(env *testsuite.TestWorkflowEnvironment) {
	registerActivityName(env, "ListPDFsActivity", func(context.Context, activities.ListPDFsInput) (activities.ListPDFsOutput, error) {
		return activities.ListPDFsOutput{}, nil
	})
	registerActivityName(env, "MatchAndCopyActivity", func(context.Context, activities.MatchAndCopyInput) (activities.MatchAndCopyOutput, error) {
		return activities.MatchAndCopyOutput{}, nil
	})
	registerActivityName(env, "WriteBatchSummaryActivity", func(context.Context, activities.WriteBatchSummaryInput) (activities.WriteBatchSummaryOutput, error) {
		return activities.WriteBatchSummaryOutput{}, nil
	})
}

func TestBatchCopyWorkflowCopiesMatches(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(BatchCopyWorkflow)
	registerBatchActivities(env)

	env.OnActivity("ListPDFsActivity", mock.Anything, activities.ListPDFsInput{CollectionDir: "/cv"}).
		Return(activities.ListPDFsOutput{Paths: []string{"/cv/ana.pdf", "/cv/bruno.pdf"}}, nil)
	env.OnActivity("MatchAndCopyActivity", mock.Anything, activities.MatchAndCopyInput{Path: "/cv/ana.pdf", ResultsDir: "/out", Keyword: "limpeza"}).
		Return(activities.MatchAndCopyOutput{Filename: "ana.pdf", Matched: true}, nil)
	env.OnActivity("MatchAndCopyActivity", mock.Anything, activities.MatchAndCopyInput{Path: "/cv/bruno.pdf", ResultsDir: "/out", Keyword: "limpeza"}).
		Return(activities.MatchAndCopyOutput{Filename: "bruno.pdf"}, nil)
	env.OnActivity("WriteBatchSummaryActivity", mock.Anything, mock.Anything).
		Return(activities.WriteBatchSummaryOutput{Path: "/out/batch_summary.json"}, nil)

	env.ExecuteWorkflow(BatchCopyWorkflow, BatchCopyInput{CollectionDir: "/cv", ResultsDir: "/out"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out BatchCopyResult
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, 1, out.Count)
	require.Equal(t, []string{"ana.pdf"}, out.Matched)
	require.Empty(t, out.Failed)
	require.Equal(t, "/out/batch_summary.json", out.Summary)

	val, err := env.QueryWorkflow(QueryGetProgress)
	require.NoError(t, err)
	var progress BatchCopyProgress
	require.NoError(t, val.Get(&progress))
	require.Equal(t, 2, progress.Total)
	require.Equal(t, 2, progress.Done)
	require.Equal(t, "copied", progress.PerFile["ana.pdf"])
	require.Equal(t, "skipped", progress.PerFile["bruno.pdf"])
}

func TestBatchCopyWorkflowRecordsFailures(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(BatchCopyWorkflow)
	registerBatchActivities(env)

	env.OnActivity("ListPDFsActivity", mock.Anything, mock.Anything).
		Return(activities.ListPDFsOutput{Paths: []string{"/cv/a.pdf", "/cv/b.pdf"}}, nil)
	env.OnActivity("MatchAndCopyActivity", mock.Anything, activities.MatchAndCopyInput{Path: "/cv/a.pdf", ResultsDir: "/out", Keyword: "motorista"}).
		Return(activities.MatchAndCopyOutput{}, errors.New("disk full"))
	env.OnActivity("MatchAndCopyActivity", mock.Anything, activities.MatchAndCopyInput{Path: "/cv/b.pdf", ResultsDir: "/out", Keyword: "motorista"}).
		Return(activities.MatchAndCopyOutput{Filename: "b.pdf", Matched: true}, nil)
	env.OnActivity("WriteBatchSummaryActivity", mock.Anything, mock.Anything).
		Return(activities.WriteBatchSummaryOutput{}, nil)

	env.ExecuteWorkflow(BatchCopyWorkflow, BatchCopyInput{CollectionDir: "/cv", ResultsDir: "/out", Keyword: "motorista"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out BatchCopyResult
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, 1, out.Count)
	require.Equal(t, []string{"b.pdf"}, out.Matched)
	require.Equal(t, []string{"a.pdf"}, out.Failed)
}

func TestBatchCopyWorkflowSummaryFailureKeepsResult(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(BatchCopyWorkflow)
	registerBatchActivities(env)

	env.OnActivity("ListPDFsActivity", mock.Anything, mock.Anything).
		Return(activities.ListPDFsOutput{Paths: []string{"/cv/ana.pdf"}}, nil)
	env.OnActivity("MatchAndCopyActivity", mock.Anything, mock.Anything).
		Return(activities.MatchAndCopyOutput{Filename: "ana.pdf", Matched: true}, nil)
	env.OnActivity("WriteBatchSummaryActivity", mock.Anything, mock.Anything).
		Return(activities.WriteBatchSummaryOutput{}, errors.New("disk full"))

	env.ExecuteWorkflow(BatchCopyWorkflow, BatchCopyInput{CollectionDir: "/cv", ResultsDir: "/out", Keyword: "limpeza"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out BatchCopyResult
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, []string{"ana.pdf"}, out.Matched)
	require.Empty(t, out.Summary)
}

func TestBatchCopyWorkflowListFailure(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(BatchCopyWorkflow)
	registerBatchActivities(env)

	env.OnActivity("ListPDFsActivity", mock.Anything, mock.Anything).
		Return(activities.ListPDFsOutput{}, errors.New("read collection dir: permission denied"))

	env.ExecuteWorkflow(BatchCopyWorkflow, BatchCopyInput{CollectionDir: "/cv", ResultsDir: "/out"})
	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
}

func TestLauncherWorkflowID(t *testing.T) {
	require.Equal(t, "batch-copy-limpeza", NewLauncher(nil, "cvsearch", BatchCopyInput{}).WorkflowID())
	require.Equal(t, "batch-copy-auxiliar-de-limpeza", NewLauncher(nil, "cvsearch", BatchCopyInput{Keyword: "Auxiliar de Limpeza"}).WorkflowID())
}

type startErrClient struct {
	tclient.Client
	err  error
	opts tclient.StartWorkflowOptions
}

func (c *startErrClient) ExecuteWorkflow(_ context.Context, opts tclient.StartWorkflowOptions, _ interface{}, _ ...interface{}) (tclient.WorkflowRun, error) {
	c.opts = opts
	return nil, c.err
}

func TestLauncherReportsRunningBatch(t *testing.T) {
	c := &startErrClient{err: &serviceerror.WorkflowExecutionAlreadyStarted{Message: "workflow execution already started"}}
	l := NewLauncher(c, "cvsearch", BatchCopyInput{Keyword: "limpeza"})

	_, err := l.Run(context.Background())
	require.ErrorIs(t, err, batch.ErrAlreadyRunning)
	require.Equal(t, "batch-copy-limpeza", c.opts.ID)
	require.Equal(t, "cvsearch", c.opts.TaskQueue)
}

func TestLauncherStartFailure(t *testing.T) {
	c := &startErrClient{err: errors.New("dial tcp 127.0.0.1:7233: connection refused")}

	_, err := NewLauncher(c, "cvsearch", BatchCopyInput{}).Run(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, batch.ErrAlreadyRunning)
	require.Contains(t, err.Error(), "start batch workflow")
}
