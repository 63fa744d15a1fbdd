// internal/stages/compose/handler.go
package compose

import (
	"context"
	"time"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/common/metrics"
	"conference-outreach/internal/models"
	"conference-outreach/internal/store"
)

const StageName = "compose"

// Researcher produces a research record with its summary populated.
type Researcher interface {
	Research(ctx context.Context, event string, participant models.Participant, userCompany string) *models.ResearchRecord
}

// Drafter generates synergy refinements and message drafts.
type Drafter interface {
	ExtractSynergies(ctx context.Context, userCompany, targetCompany string, results []models.SearchResult) ([]string, error)
	DraftMessage(ctx context.Context, user models.UserProfile, summary models.ResearchSummary) (string, error)
}

// Approvals records drafted messages for review.
type Approvals interface {
	Register(ctx context.Context, event string) error
	UpsertPending(ctx context.Context, event, name, company string) error
}

type Handler struct {
	researcher Researcher
	drafter    Drafter
	store      store.Store
	approvals  Approvals
	logger     logger.Logger
}

func NewHandler(researcher Researcher, drafter Drafter, st store.Store, approvals Approvals, log logger.Logger) *Handler {
	return &Handler{
		researcher: researcher,
		drafter:    drafter,
		store:      st,
		approvals:  approvals,
		logger: log.WithFields(map[string]interface{}{
			"stage": StageName,
		}),
	}
}

// Compose researches one participant, drafts an outreach message,
// persists the rendered document, and queues the draft for approval.
// A failed synergy refinement degrades to an empty synergy list; a
// failed draft is fatal for the participant.
func (h *Handler) Compose(ctx context.Context, event string, participant models.Participant, user models.UserProfile) (*models.MessageDocument, error) {
	log := h.logger.WithFields(map[string]interface{}{
		"event":       event,
		"participant": participant.Name,
	})

	record := h.researcher.Research(ctx, event, participant, user.CompanyName)
	summary := *record.Summary

	var synergyResults []models.SearchResult
	if record.SynergyInfo != nil {
		synergyResults = record.SynergyInfo.Results
	}
	points, err := h.drafter.ExtractSynergies(ctx, user.CompanyName, participant.Company, synergyResults)
	if err != nil {
		log.Warn("synergy refinement failed", map[string]interface{}{"error": err.Error()})
		points = nil
	}

	draft, err := h.drafter.DraftMessage(ctx, user, summary)
	if err != nil {
		return nil, errors.NewMessageDraftFailedError(participant.Name, err)
	}

	doc := &models.MessageDocument{
		ParticipantName: participant.Name,
		ResearchSummary: summary,
		SynergyPoints:   points,
		DraftText:       draft,
	}

	folderID, err := h.store.CreateFolder(ctx, FolderName(event))
	if err != nil {
		return nil, errors.NewDocumentUploadError(DocumentName(participant.Name), err)
	}
	storageID, err := h.store.Upload(ctx, folderID, DocumentName(participant.Name), renderDocument(doc))
	if err != nil {
		return nil, errors.NewDocumentUploadError(DocumentName(participant.Name), err)
	}
	doc.StorageID = storageID

	if err := h.approvals.Register(ctx, event); err != nil {
		return nil, err
	}
	if err := h.approvals.UpsertPending(ctx, event, participant.Name, participant.Company); err != nil {
		return nil, err
	}

	log.Info("message composed", map[string]interface{}{"storage_id": storageID})
	return doc, nil
}

// ComposeBatch drafts messages for every participant in order. One
// participant's failure never aborts the batch.
func (h *Handler) ComposeBatch(ctx context.Context, event string, participants []models.Participant, user models.UserProfile) *models.BatchResult {
	start := time.Now()
	result := &models.BatchResult{}

	for _, p := range participants {
		doc, err := h.Compose(ctx, event, p, user)
		if err != nil {
			code := errors.CodeOf(err)
			metrics.StageParticipantsFailed.WithLabelValues(StageName, string(code)).Inc()
			h.logger.Error("compose failed", map[string]interface{}{
				"participant": p.Name,
				"error":       err.Error(),
			})
			result.Add(models.ParticipantOutcome{
				Name:      p.Name,
				Status:    models.OutcomeFailed,
				ErrorCode: string(code),
				Error:     err.Error(),
			})
			continue
		}

		metrics.StageParticipantsProcessed.WithLabelValues(StageName).Inc()
		result.Add(models.ParticipantOutcome{
			Name:      p.Name,
			Status:    models.OutcomeSuccess,
			StorageID: doc.StorageID,
		})
	}

	metrics.StageDuration.WithLabelValues(StageName).Observe(time.Since(start).Seconds())
	h.logger.Info("compose batch finished", map[string]interface{}{
		"event":      event,
		"total":      result.Total,
		"successful": result.Successful,
		"failed":     result.Failed,
	})
	return result
}
