// Package tracker maintains the per-event approval sheet that drives
// which messages may be sent. Status moves between Pending, Approved
// and Needs Edits; every mutation stamps the Last Updated column.
package tracker

import (
	"context"
	"fmt"
	"time"

	"conference-outreach/internal/common/errors"
	"conference-outreach/internal/common/logger"
	"conference-outreach/internal/models"
	"conference-outreach/internal/store"
)

// Approval sheet column headers.
const (
	ColParticipant  = "Participant Name"
	ColCompany      = "Company"
	ColStatus       = "Status"
	ColSubmitted    = "Date Submitted"
	ColApprovedDate = "Date Approved"
	ColFeedback     = "Feedback Notes"
	ColUpdated      = "Last Updated"
)

var headers = []string{
	ColParticipant, ColCompany, ColStatus, ColSubmitted, ColApprovedDate, ColFeedback, ColUpdated,
}

// TableName returns the approval sheet table for an event.
func TableName(event string) string {
	return fmt.Sprintf("%s - Message Approvals", event)
}

// Tracker reads and mutates approval sheets in the durable store.
type Tracker struct {
	store  store.Store
	logger logger.Logger
	now    func() time.Time
}

// New creates a Tracker backed by the given store.
func New(st store.Store, log logger.Logger) *Tracker {
	return &Tracker{
		store:  st,
		logger: log.WithFields(map[string]interface{}{"component": "tracker"}),
		now:    time.Now,
	}
}

// Register ensures the event's approval sheet exists. Safe to call
// repeatedly.
func (t *Tracker) Register(ctx context.Context, event string) error {
	return t.store.CreateTable(ctx, TableName(event), headers)
}

// UpsertPending adds a participant with Pending status, or resets an
// existing row to Pending for re-approval after a message is recomposed.
func (t *Tracker) UpsertPending(ctx context.Context, event, name, company string) error {
	if name == "" {
		return errors.NewValidationError("participant name is required")
	}

	now := t.now()
	row := store.Row{
		ColParticipant:  name,
		ColCompany:      company,
		ColStatus:       string(models.StatusPending),
		ColSubmitted:    now.Format(models.DateLayout),
		ColApprovedDate: "",
		ColFeedback:     "",
		ColUpdated:      now.Format(models.TimestampLayout),
	}

	table := TableName(event)
	_, found, err := t.store.FindRow(ctx, table, ColParticipant, name)
	if err != nil {
		return err
	}
	if found {
		return t.store.UpdateRow(ctx, table, ColParticipant, name, row)
	}
	return t.store.AppendRow(ctx, table, row)
}

// GetStatus returns a participant's approval entry.
func (t *Tracker) GetStatus(ctx context.Context, event, name string) (*models.ApprovalEntry, bool, error) {
	row, found, err := t.store.FindRow(ctx, TableName(event), ColParticipant, name)
	if err != nil || !found {
		return nil, false, err
	}
	entry := rowToEntry(row)
	return &entry, true, nil
}

// UpdateStatus changes a participant's status and feedback. Updating an
// unknown participant reports false without creating a row. Moving to
// Approved stamps the approval date.
func (t *Tracker) UpdateStatus(ctx context.Context, event, name string, status models.ApprovalStatus, feedback string) (bool, error) {
	if !status.Valid() {
		return false, errors.NewValidationError(fmt.Sprintf("invalid status: %q", status))
	}

	table := TableName(event)
	_, found, err := t.store.FindRow(ctx, table, ColParticipant, name)
	if err != nil {
		return false, err
	}
	if !found {
		t.logger.Warn("status update for unknown participant", map[string]interface{}{
			"event":       event,
			"participant": name,
			"status":      string(status),
		})
		return false, nil
	}

	now := t.now()
	updates := store.Row{
		ColStatus:  string(status),
		ColUpdated: now.Format(models.TimestampLayout),
	}
	// Feedback notes update only if provided; a status-only change
	// keeps whatever was recorded before.
	if feedback != "" {
		updates[ColFeedback] = feedback
	}
	if status == models.StatusApproved {
		updates[ColApprovedDate] = now.Format(models.DateLayout)
	}

	if err := t.store.UpdateRow(ctx, table, ColParticipant, name, updates); err != nil {
		return false, err
	}

	t.logger.Info("approval status updated", map[string]interface{}{
		"event":       event,
		"participant": name,
		"status":      string(status),
	})
	return true, nil
}

// GetAll returns every approval entry in sheet order. A missing sheet
// reads as empty.
func (t *Tracker) GetAll(ctx context.Context, event string) ([]models.ApprovalEntry, error) {
	return t.listByStatus(ctx, event, "")
}

// GetApproved returns the entries currently Approved.
func (t *Tracker) GetApproved(ctx context.Context, event string) ([]models.ApprovalEntry, error) {
	return t.listByStatus(ctx, event, models.StatusApproved)
}

// GetNeedsEdits returns the entries currently marked Needs Edits.
func (t *Tracker) GetNeedsEdits(ctx context.Context, event string) ([]models.ApprovalEntry, error) {
	return t.listByStatus(ctx, event, models.StatusNeedsEdits)
}

func (t *Tracker) listByStatus(ctx context.Context, event string, status models.ApprovalStatus) ([]models.ApprovalEntry, error) {
	rows, err := t.store.ReadAll(ctx, TableName(event))
	if err != nil {
		return nil, err
	}

	out := []models.ApprovalEntry{}
	for _, row := range rows {
		if status != "" && row[ColStatus] != string(status) {
			continue
		}
		out = append(out, rowToEntry(row))
	}
	return out, nil
}

func rowToEntry(row store.Row) models.ApprovalEntry {
	return models.ApprovalEntry{
		ParticipantName: row[ColParticipant],
		Company:         row[ColCompany],
		Status:          models.ApprovalStatus(row[ColStatus]),
		DateSubmitted:   row[ColSubmitted],
		DateApproved:    row[ColApprovedDate],
		Feedback:        row[ColFeedback],
		LastUpdated:     row[ColUpdated],
	}
}
