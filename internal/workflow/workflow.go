// internal/workflow/workflow.go
package workflow

import (
	"context"
	"time"

	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/common/metrics"
	"conference-outreach/internal/common/observability"
	"conference-outreach/internal/models"
	"conference-outreach/internal/stages/intake"
)

// Intake registers participants for an event.
type Intake interface {
	Execute(ctx context.Context, input *intake.Input) (*intake.Output, error)
}

// Researcher warms the research record for one participant.
type Researcher interface {
	Research(ctx context.Context, event string, participant models.Participant, userCompany string) *models.ResearchRecord
}

// Composer drafts messages for a batch of participants.
type Composer interface {
	ComposeBatch(ctx context.Context, event string, participants []models.Participant, user models.UserProfile) *models.BatchResult
}

// ProgressFunc receives run progress in [0, 1] with a short phase
// description. It may be nil.
type ProgressFunc func(progress float64, message string)

// Input describes one full pipeline run.
type Input struct {
	Event        string               `json:"event_name"`
	ScrapeURL    string               `json:"scrape_url,omitempty"`
	Credentials  *models.Credentials  `json:"credentials,omitempty"`
	Participants []models.Participant `json:"participants,omitempty"`
	User         models.UserProfile   `json:"user"`
}

// Runner drives the intake, research, and compose stages in order.
// Sending and reporting stay separate operations; they run only after
// a human pass over the approval table.
type Runner struct {
	intake     Intake
	researcher Researcher
	composer   Composer
	obs        *observability.Observability
	logger     logger.Logger
}

func NewRunner(in Intake, researcher Researcher, composer Composer, obs *observability.Observability, log logger.Logger) *Runner {
	return &Runner{
		intake:     in,
		researcher: researcher,
		composer:   composer,
		obs:        obs,
		logger: log.WithFields(map[string]interface{}{
			"component": "workflow",
		}),
	}
}

// Run executes one full pipeline run for an event. Participants are
// processed one at a time; one participant's failure never aborts the
// run.
func (r *Runner) Run(ctx context.Context, input *Input, progress ProgressFunc) (*models.WorkflowRun, error) {
	start := time.Now()
	report := func(p float64, msg string) {
		if progress != nil {
			progress(p, msg)
		}
	}

	metrics.WorkflowRunsActive.WithLabelValues(input.Event).Inc()
	defer metrics.WorkflowRunsActive.WithLabelValues(input.Event).Dec()

	log := r.logger.WithFields(map[string]interface{}{"event": input.Event})
	log.Info("workflow run started", map[string]interface{}{
		"participants": len(input.Participants),
	})

	report(0.0, "registering participants")
	out, err := r.intake.Execute(ctx, &intake.Input{
		Event:        input.Event,
		ScrapeURL:    input.ScrapeURL,
		Credentials:  input.Credentials,
		Participants: input.Participants,
	})
	if err != nil {
		r.recordRun(ctx, start, "failed")
		return nil, err
	}
	participants := out.Participants

	report(0.1, "researching participants")
	researched := models.StageCounts{Total: len(participants)}
	for i, p := range participants {
		record := r.researcher.Research(ctx, input.Event, p, input.User.CompanyName)
		if record.Success {
			researched.OK++
		} else {
			researched.Failed++
		}
		report(0.1+0.4*float64(i+1)/float64(len(participants)), "researching participants")
	}

	report(0.5, "composing messages")
	batch := r.composer.ComposeBatch(ctx, input.Event, participants, input.User)
	messaged := models.StageCounts{
		Total:  batch.Total,
		OK:     batch.Successful,
		Failed: batch.Failed,
	}

	report(1.0, "run complete")
	r.recordRun(ctx, start, "success")
	log.Info("workflow run finished", map[string]interface{}{
		"researched": researched.OK,
		"messaged":   messaged.OK,
		"failed":     messaged.Failed,
	})

	return &models.WorkflowRun{
		Event:      input.Event,
		Researched: researched,
		Messaged:   messaged,
		Timestamp:  time.Now().Format(models.TimestampLayout),
	}, nil
}

func (r *Runner) recordRun(ctx context.Context, start time.Time, status string) {
	if r.obs == nil {
		return
	}
	r.obs.RecordRunProcessed(ctx, status)
	r.obs.RecordRunDuration(ctx, time.Since(start), status)
}
