// internal/stages/report/handler.go
package report

import (
	"context"
	"time"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/common/metrics"
	"conference-outreach/internal/models"
	"conference-outreach/internal/stages/send"
	"conference-outreach/internal/store"
)

const StageName = "report"

// Approvals exposes the approval table slices the metrics are counted
// from.
type Approvals interface {
	GetAll(ctx context.Context, event string) ([]models.ApprovalEntry, error)
	GetApproved(ctx context.Context, event string) ([]models.ApprovalEntry, error)
}

// Narrator generates the prose sections of a report.
type Narrator interface {
	ReportNarrative(ctx context.Context, reportMetrics models.ReportMetrics, samples []models.MessageSample) (*models.ReportNarrative, error)
}

type Handler struct {
	config    *Config
	store     store.Store
	approvals Approvals
	narrator  Narrator
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(config *Config, st store.Store, approvals Approvals, narrator Narrator, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		store:     st,
		approvals: approvals,
		narrator:  narrator,
		logger: log.WithFields(map[string]interface{}{
			"stage": StageName,
		}),
		now: time.Now,
	}
}

// CompileReport counts campaign metrics, generates the narrative, and
// persists the rendered report. Sent messages are counted from the
// send ledger, not assumed equal to approvals. A failed narrative
// generation degrades to canned prose; the report is always produced.
func (h *Handler) CompileReport(ctx context.Context, event string, user models.UserProfile, samples []models.MessageSample) (*models.ReportResult, error) {
	start := time.Now()
	log := h.logger.WithFields(map[string]interface{}{"event": event})

	all, err := h.approvals.GetAll(ctx, event)
	if err != nil {
		return nil, err
	}
	approved, err := h.approvals.GetApproved(ctx, event)
	if err != nil {
		return nil, err
	}
	sentRows, err := h.store.ReadAll(ctx, send.LedgerName(event))
	if err != nil {
		return nil, err
	}

	reportMetrics := models.ReportMetrics{
		TotalParticipants: len(all),
		ApprovedMessages:  len(approved),
		SentMessages:      len(sentRows),
	}

	if len(samples) == 0 {
		samples = defaultSamples()
	}

	narrative, err := h.narrator.ReportNarrative(ctx, reportMetrics, samples)
	if err != nil {
		log.Warn("narrative generation failed, using canned prose", map[string]interface{}{
			"error": err.Error(),
		})
		narrative = fallbackNarrative(event, reportMetrics)
	}

	generatedAt := h.now()
	content := renderReport(event, user, reportMetrics, narrative, generatedAt)

	folderID, err := h.store.CreateFolder(ctx, h.config.FolderName)
	if err != nil {
		return nil, errors.NewDocumentUploadError(ReportName(event), err)
	}
	docID, err := h.store.Upload(ctx, folderID, ReportName(event), content)
	if err != nil {
		return nil, errors.NewDocumentUploadError(ReportName(event), err)
	}

	metrics.StageDuration.WithLabelValues(StageName).Observe(time.Since(start).Seconds())
	log.Info("report compiled", map[string]interface{}{
		"document_id": docID,
		"total":       reportMetrics.TotalParticipants,
		"approved":    reportMetrics.ApprovedMessages,
		"sent":        reportMetrics.SentMessages,
	})

	return &models.ReportResult{
		Event:      event,
		DocumentID: docID,
		Metrics:    reportMetrics,
		Timestamp:  generatedAt.Format(models.TimestampLayout),
	}, nil
}
