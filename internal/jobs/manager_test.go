package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/models"
	"conference-outreach/internal/workflow"
)

// ==========================
// Test Helper Functions
// ==========================

type blockingRunner struct {
	release chan struct{}
	err     error
}

func (r *blockingRunner) Run(ctx context.Context, input *workflow.Input, progress workflow.ProgressFunc) (*models.WorkflowRun, error) {
	if progress != nil {
		progress(0.5, "halfway")
	}
	if r.release != nil {
		<-r.release
	}
	if r.err != nil {
		return nil, r.err
	}
	return &models.WorkflowRun{Event: input.Event}, nil
}

func waitForState(t *testing.T, m *Manager, jobID string, state models.JobState) *models.JobStatus {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if job, ok := m.Get(jobID); ok && job.State == state {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached state %s", jobID, state)
	return nil
}

// ==========================
// Lifecycle
// ==========================

func TestManager_Start_CompletesJob(t *testing.T) {
	m := NewManager(&blockingRunner{}, nil, logger.NewTestLogger(t))

	job, err := m.Start(context.Background(), &workflow.Input{Event: "TechSummit 2025"})
	require.NoError(t, err)
	assert.Equal(t, models.JobQueued, job.State)
	assert.NotEmpty(t, job.JobID)

	done := waitForState(t, m, job.JobID, models.JobCompleted)
	assert.Equal(t, 1.0, done.Progress)
	require.NotNil(t, done.Result)
	assert.Equal(t, "TechSummit 2025", done.Result.Event)
}

func TestManager_Start_FailedRunMarksJobFailed(t *testing.T) {
	runner := &blockingRunner{err: errors.NewScrapeFailedError("https://conf.example", assert.AnError)}
	m := NewManager(runner, nil, logger.NewTestLogger(t))

	job, err := m.Start(context.Background(), &workflow.Input{Event: "TechSummit 2025"})
	require.NoError(t, err)

	failed := waitForState(t, m, job.JobID, models.JobFailed)
	assert.Contains(t, failed.Message, "SCRAPE_FAILED")
	assert.Nil(t, failed.Result)
}

func TestManager_Get_UnknownJob(t *testing.T) {
	m := NewManager(&blockingRunner{}, nil, logger.NewTestLogger(t))

	_, ok := m.Get("no-such-job")
	assert.False(t, ok)
}

// ==========================
// Operator Notification
// ==========================

type recordingNotifier struct {
	runs chan *models.WorkflowRun
}

func (n *recordingNotifier) RunCompleted(ctx context.Context, run *models.WorkflowRun) error {
	n.runs <- run
	return nil
}

func (n *recordingNotifier) BatchSent(ctx context.Context, event string, result *models.BatchResult) error {
	return nil
}

func TestManager_CompletedRunNotifiesOperator(t *testing.T) {
	notifier := &recordingNotifier{runs: make(chan *models.WorkflowRun, 1)}
	m := NewManager(&blockingRunner{}, notifier, logger.NewTestLogger(t))

	job, err := m.Start(context.Background(), &workflow.Input{Event: "TechSummit 2025"})
	require.NoError(t, err)
	waitForState(t, m, job.JobID, models.JobCompleted)

	select {
	case run := <-notifier.runs:
		assert.Equal(t, "TechSummit 2025", run.Event)
	case <-time.After(2 * time.Second):
		t.Fatal("operator was never notified of the completed run")
	}
}

func TestManager_FailedRunDoesNotNotify(t *testing.T) {
	notifier := &recordingNotifier{runs: make(chan *models.WorkflowRun, 1)}
	runner := &blockingRunner{err: errors.NewScrapeFailedError("https://conf.example", assert.AnError)}
	m := NewManager(runner, notifier, logger.NewTestLogger(t))

	job, err := m.Start(context.Background(), &workflow.Input{Event: "TechSummit 2025"})
	require.NoError(t, err)
	waitForState(t, m, job.JobID, models.JobFailed)

	select {
	case <-notifier.runs:
		t.Fatal("failed run should not notify the operator")
	default:
	}
}

// ==========================
// Per-Event Serialization
// ==========================

func TestManager_Start_RejectsConcurrentRunForSameEvent(t *testing.T) {
	release := make(chan struct{})
	m := NewManager(&blockingRunner{release: release}, nil, logger.NewTestLogger(t))

	first, err := m.Start(context.Background(), &workflow.Input{Event: "TechSummit 2025"})
	require.NoError(t, err)

	_, err = m.Start(context.Background(), &workflow.Input{Event: "TechSummit 2025"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRunConflict, errors.CodeOf(err))

	// A different event is not serialized against this one.
	_, err = m.Start(context.Background(), &workflow.Input{Event: "DevCon 2025"})
	require.NoError(t, err)

	close(release)
	waitForState(t, m, first.JobID, models.JobCompleted)

	// Once finished, the event accepts a new run.
	_, err = m.Start(context.Background(), &workflow.Input{Event: "TechSummit 2025"})
	require.NoError(t, err)
}
