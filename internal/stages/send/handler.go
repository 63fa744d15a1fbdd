// internal/stages/send/handler.go
package send

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/common/metrics"
	"conference-outreach/internal/models"
	"conference-outreach/internal/store"
)

const StageName = "send"

// Approvals lists the participants cleared for sending.
type Approvals interface {
	GetApproved(ctx context.Context, event string) ([]models.ApprovalEntry, error)
}

// Indexer indexes send logs for search. It is optional; a nil Indexer
// disables indexing.
type Indexer interface {
	IndexDocument(ctx context.Context, index, docID string, body []byte) error
}

type Handler struct {
	config    *Config
	store     store.Store
	approvals Approvals
	indexer   Indexer
	render    Renderer
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(config *Config, st store.Store, approvals Approvals, indexer Indexer, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		store:     st,
		approvals: approvals,
		indexer:   indexer,
		render:    MockScreenshots,
		logger: log.WithFields(map[string]interface{}{
			"stage": StageName,
		}),
		now: time.Now,
	}
}

// SendAllApproved simulates sending to every approved participant in
// order. One participant's failure never aborts the batch. An empty
// platformURL falls back to the configured one.
func (h *Handler) SendAllApproved(ctx context.Context, event, platformURL string) (*models.BatchResult, error) {
	start := time.Now()
	if platformURL == "" {
		platformURL = h.config.PlatformURL
	}

	approved, err := h.approvals.GetApproved(ctx, event)
	if err != nil {
		return nil, err
	}

	result := &models.BatchResult{}
	for _, entry := range approved {
		record, err := h.sendOne(ctx, event, entry.ParticipantName, platformURL)
		if err != nil {
			code := errors.CodeOf(err)
			metrics.StageParticipantsFailed.WithLabelValues(StageName, string(code)).Inc()
			h.logger.Error("send simulation failed", map[string]interface{}{
				"participant": entry.ParticipantName,
				"error":       err.Error(),
			})
			result.Add(models.ParticipantOutcome{
				Name:      entry.ParticipantName,
				Status:    models.OutcomeFailed,
				ErrorCode: string(code),
				Error:     err.Error(),
			})
			continue
		}

		metrics.StageParticipantsProcessed.WithLabelValues(StageName).Inc()
		result.Add(models.ParticipantOutcome{
			Name:      entry.ParticipantName,
			Status:    models.OutcomeSuccess,
			StorageID: record.LogFileID,
		})
	}

	metrics.StageDuration.WithLabelValues(StageName).Observe(time.Since(start).Seconds())
	h.logger.Info("send batch finished", map[string]interface{}{
		"event":      event,
		"total":      result.Total,
		"successful": result.Successful,
		"failed":     result.Failed,
	})
	return result, nil
}

// sendOne simulates one send. The message body is synthesized, not
// re-fetched from the drafted document. Screenshots are best effort;
// the JSON log and the ledger row are not.
func (h *Handler) sendOne(ctx context.Context, event, participant, platformURL string) (*models.SendRecord, error) {
	folderID, err := h.store.CreateFolder(ctx, LogFolderName(event))
	if err != nil {
		return nil, errors.NewSendLogFailedError(participant, err)
	}

	record := &models.SendRecord{
		Event:           event,
		ParticipantName: participant,
		Status:          StatusSimulated,
		MessageText:     PlaceholderMessage(participant, event),
		PlatformURL:     platformURL,
		Timestamp:       h.now().Format(models.TimestampLayout),
	}
	if record.PlatformURL == "" {
		record.PlatformURL = "Not specified"
	}

	if platformURL != "" && h.config.CaptureScreenshots {
		record.ScreenshotIDs = h.captureScreenshots(ctx, folderID, participant, record.MessageText)
	}

	body, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, errors.NewSendLogFailedError(participant, err)
	}
	logFileID, err := h.store.Upload(ctx, folderID, LogFileName(participant), string(body))
	if err != nil {
		return nil, errors.NewSendLogFailedError(participant, err)
	}
	record.LogFileID = logFileID

	ledger := LedgerName(event)
	if err := h.store.CreateTable(ctx, ledger, []string{ColParticipant, ColStatus, ColLogFile, ColTimestamp}); err != nil {
		return nil, errors.NewSendLogFailedError(participant, err)
	}
	if err := h.store.AppendRow(ctx, ledger, store.Row{
		ColParticipant: participant,
		ColStatus:      record.Status,
		ColLogFile:     logFileID,
		ColTimestamp:   record.Timestamp,
	}); err != nil {
		return nil, errors.NewSendLogFailedError(participant, err)
	}

	h.indexRecord(ctx, record)
	return record, nil
}

// captureScreenshots renders and uploads mock frames. A render failure
// degrades to a single diagnostic frame; upload failures only skip the
// affected frame.
func (h *Handler) captureScreenshots(ctx context.Context, folderID, participant, message string) []string {
	frames, err := h.render(participant, message)
	if err != nil {
		h.logger.Warn("screenshot rendering failed", map[string]interface{}{
			"participant": participant,
			"error":       err.Error(),
		})
		if frame := DiagnosticImage(); frame != nil {
			frames = [][]byte{frame}
		}
	}

	var ids []string
	for i, frame := range frames {
		id, err := h.store.Upload(ctx, folderID, ScreenshotName(participant, i+1),
			base64.StdEncoding.EncodeToString(frame))
		if err != nil {
			h.logger.Warn("screenshot upload failed", map[string]interface{}{
				"participant": participant,
				"error":       err.Error(),
			})
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// indexRecord is best effort, failures are logged and dropped.
func (h *Handler) indexRecord(ctx context.Context, record *models.SendRecord) {
	if h.indexer == nil {
		return
	}
	body, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := h.indexer.IndexDocument(ctx, h.config.LogIndex, uuid.NewString(), body); err != nil {
		h.logger.Warn("send log indexing failed", map[string]interface{}{
			"participant": record.ParticipantName,
			"error":       err.Error(),
		})
	}
}
