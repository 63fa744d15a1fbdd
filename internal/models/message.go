// internal/models/message.go
package models

// MessageDocument is one drafted outreach message plus the research it
// was built from, immutable once persisted. StorageID references the
// rendered document in the store; the approval table links back to it
// only through ParticipantName.
type MessageDocument struct {
	ParticipantName string          `json:"participant_name"`
	ResearchSummary ResearchSummary `json:"research_summary"`
	SynergyPoints   []string        `json:"synergy_points"`
	DraftText       string          `json:"message_draft"`
	StorageID       string          `json:"storage_id"`
}

// OutcomeStatus tags a per-participant batch outcome.
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeFailed  OutcomeStatus = "failed"
)

// ParticipantOutcome is one participant's result within a batch. Error
// and ErrorCode are set only for failed outcomes.
type ParticipantOutcome struct {
	Name      string        `json:"name"`
	Status    OutcomeStatus `json:"status"`
	StorageID string        `json:"storage_id,omitempty"`
	ErrorCode string        `json:"error_code,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// BatchResult aggregates per-participant outcomes of one batch
// operation. One participant's failure never aborts the batch, so
// Total == Successful + Failed always holds.
type BatchResult struct {
	Total      int                  `json:"total"`
	Successful int                  `json:"successful"`
	Failed     int                  `json:"failed"`
	Outcomes   []ParticipantOutcome `json:"outcomes"`
}

// Add records one outcome and updates the counters.
func (b *BatchResult) Add(o ParticipantOutcome) {
	b.Total++
	if o.Status == OutcomeSuccess {
		b.Successful++
	} else {
		b.Failed++
	}
	b.Outcomes = append(b.Outcomes, o)
}
