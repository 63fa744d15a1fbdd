// internal/server/server.go
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/models"
	"conference-outreach/internal/notify"
	"conference-outreach/internal/stages/intake"
	"conference-outreach/internal/workflow"
)

// Intake registers and lists participants.
type Intake interface {
	Execute(ctx context.Context, input *intake.Input) (*intake.Output, error)
	List(ctx context.Context, event string) ([]models.Participant, error)
}

// Jobs starts and inspects asynchronous workflow runs.
type Jobs interface {
	Start(ctx context.Context, input *workflow.Input) (*models.JobStatus, error)
	Get(jobID string) (*models.JobStatus, bool)
}

// Approvals reads and mutates the per-event approval table.
type Approvals interface {
	GetAll(ctx context.Context, event string) ([]models.ApprovalEntry, error)
	GetApproved(ctx context.Context, event string) ([]models.ApprovalEntry, error)
	GetNeedsEdits(ctx context.Context, event string) ([]models.ApprovalEntry, error)
	GetStatus(ctx context.Context, event, name string) (*models.ApprovalEntry, bool, error)
	UpdateStatus(ctx context.Context, event, name string, status models.ApprovalStatus, feedback string) (bool, error)
}

// Sender simulates sending to all approved participants.
type Sender interface {
	SendAllApproved(ctx context.Context, event, platformURL string) (*models.BatchResult, error)
}

// Reporter compiles the campaign summary report.
type Reporter interface {
	CompileReport(ctx context.Context, event string, user models.UserProfile, samples []models.MessageSample) (*models.ReportResult, error)
}

// Server is the HTTP surface over the outreach pipeline.
type Server struct {
	intake    Intake
	jobs      Jobs
	approvals Approvals
	sender    Sender
	reporter  Reporter
	notifier  notify.Notifier
	logger    logger.Logger
}

func New(in Intake, jobs Jobs, approvals Approvals, sender Sender, reporter Reporter, notifier notify.Notifier, log logger.Logger) *Server {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Server{
		intake:    in,
		jobs:      jobs,
		approvals: approvals,
		sender:    sender,
		reporter:  reporter,
		notifier:  notifier,
		logger: log.WithFields(map[string]interface{}{
			"component": "server",
		}),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.POST("/participants", s.submitParticipants)
		v1.GET("/participants", s.listParticipants)

		v1.POST("/workflow", s.startWorkflow)
		v1.GET("/workflow/:job_id", s.getJob)

		v1.GET("/approvals", s.getApprovals)
		v1.POST("/approvals", s.updateApproval)

		v1.POST("/send", s.sendMessages)
		v1.POST("/report", s.generateReport)
	}

	return r
}
