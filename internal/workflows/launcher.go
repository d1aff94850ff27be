package workflows

import (
	"context"
	"errors"
	"fmt"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	tclient "go.temporal.io/sdk/client"

	"cvsearch/internal/batch"
)

// Launcher runs BatchCopyWorkflow on a Temporal cluster and waits for the
// result. It satisfies the same contract as batch.Copier.Run.
type Launcher struct {
	client    tclient.Client
	taskQueue string
	input     BatchCopyInput
}

func NewLauncher(c tclient.Client, taskQueue string, input BatchCopyInput) *Launcher {
	return &Launcher{client: c, taskQueue: taskQueue, input: input}
}

// WorkflowID is fixed per keyword so two batches never copy into the same
// results directory at once; a closed run's id may be reused.
func (l *Launcher) WorkflowID() string {
	kw := l.input.Keyword
	if kw == "" {
		kw = batch.DefaultKeyword
	}
	return "batch-copy-" + sanitizeID(kw)
}

func (l *Launcher) Run(ctx context.Context) (batch.Report, error) {
	run, err := l.client.ExecuteWorkflow(ctx, tclient.StartWorkflowOptions{
		ID:                    l.WorkflowID(),
		TaskQueue:             l.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}, BatchCopyWorkflow, l.input)
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			return batch.Report{}, fmt.Errorf("%w: workflow %s", batch.ErrAlreadyRunning, l.WorkflowID())
		}
		return batch.Report{}, fmt.Errorf("start batch workflow: %w", err)
	}
	var res BatchCopyResult
	if err := run.Get(ctx, &res); err != nil {
		return batch.Report{}, fmt.Errorf("batch workflow %s: %w", run.GetID(), err)
	}
	return batch.Report{Count: res.Count, Matched: res.Matched}, nil
}
