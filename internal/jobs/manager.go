// internal/jobs/manager.go
package jobs

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/models"
	"conference-outreach/internal/notify"
	"conference-outreach/internal/workflow"
)

// Runner executes one workflow run to completion.
type Runner interface {
	Run(ctx context.Context, input *workflow.Input, progress workflow.ProgressFunc) (*models.WorkflowRun, error)
}

// Manager tracks asynchronous workflow runs. At most one run may be
// active per event; statuses of finished runs stay queryable for the
// lifetime of the process.
type Manager struct {
	runner   Runner
	notifier notify.Notifier
	logger   logger.Logger

	mu     sync.Mutex
	jobs   map[string]*models.JobStatus
	active map[string]string
}

func NewManager(runner Runner, notifier notify.Notifier, log logger.Logger) *Manager {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Manager{
		runner:   runner,
		notifier: notifier,
		logger: log.WithFields(map[string]interface{}{
			"component": "jobs",
		}),
		jobs:   make(map[string]*models.JobStatus),
		active: make(map[string]string),
	}
}

// Start queues a workflow run for the event and returns immediately.
// Returns RUN_CONFLICT while another run for the same event is still
// queued or running.
func (m *Manager) Start(ctx context.Context, input *workflow.Input) (*models.JobStatus, error) {
	m.mu.Lock()
	if _, busy := m.active[input.Event]; busy {
		m.mu.Unlock()
		return nil, errors.NewRunConflictError(input.Event)
	}

	job := &models.JobStatus{
		JobID: uuid.NewString(),
		Event: input.Event,
		State: models.JobQueued,
	}
	m.jobs[job.JobID] = job
	m.active[input.Event] = job.JobID
	snapshot := *job
	m.mu.Unlock()

	m.logger.Info("workflow job queued", map[string]interface{}{
		"job_id": job.JobID,
		"event":  input.Event,
	})

	// The run outlives the request that started it.
	go m.run(context.WithoutCancel(ctx), job.JobID, input)

	return &snapshot, nil
}

// Get returns a snapshot of a job's status.
func (m *Manager) Get(jobID string) (*models.JobStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, false
	}
	snapshot := *job
	return &snapshot, true
}

func (m *Manager) run(ctx context.Context, jobID string, input *workflow.Input) {
	m.update(jobID, func(job *models.JobStatus) {
		job.State = models.JobRunning
	})

	result, err := m.runner.Run(ctx, input, func(progress float64, message string) {
		m.update(jobID, func(job *models.JobStatus) {
			job.Progress = progress
			job.Message = message
		})
	})

	m.mu.Lock()
	delete(m.active, input.Event)
	m.mu.Unlock()

	if err != nil {
		m.update(jobID, func(job *models.JobStatus) {
			job.State = models.JobFailed
			job.Message = err.Error()
		})
		m.logger.Error("workflow job failed", map[string]interface{}{
			"job_id": jobID,
			"event":  input.Event,
			"error":  err.Error(),
		})
		return
	}

	m.update(jobID, func(job *models.JobStatus) {
		job.State = models.JobCompleted
		job.Progress = 1.0
		job.Message = "run complete"
		job.Result = result
	})
	m.logger.Info("workflow job completed", map[string]interface{}{
		"job_id": jobID,
		"event":  input.Event,
	})

	// Drafts are now Pending; tell the operator. Delivery failures do
	// not affect the job outcome.
	if err := m.notifier.RunCompleted(ctx, result); err != nil {
		m.logger.Warn("run completion notification failed", map[string]interface{}{
			"job_id": jobID,
			"event":  input.Event,
			"error":  err.Error(),
		})
	}
}

func (m *Manager) update(jobID string, mutate func(*models.JobStatus)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if job, ok := m.jobs[jobID]; ok {
		mutate(job)
	}
}
