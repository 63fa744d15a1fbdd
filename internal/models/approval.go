// internal/models/approval.go
package models

// ApprovalStatus is the closed three-value status enum. Values outside
// the enum are rejected at the API boundary before they reach the
// tracker.
type ApprovalStatus string

const (
	StatusPending    ApprovalStatus = "Pending"
	StatusApproved   ApprovalStatus = "Approved"
	StatusNeedsEdits ApprovalStatus = "Needs Edits"
)

// Valid reports whether s is one of the three allowed statuses.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusNeedsEdits:
		return true
	}
	return false
}

// ApprovalEntry is the authoritative approval row for one participant,
// keyed by ParticipantName within an event. Status is the only field a
// human mutates; LastUpdated is refreshed on every mutation.
type ApprovalEntry struct {
	ParticipantName string         `json:"participant_name"`
	Company         string         `json:"company"`
	Status          ApprovalStatus `json:"status"`
	DateSubmitted   string         `json:"date_submitted"`
	DateApproved    string         `json:"date_approved,omitempty"`
	Feedback        string         `json:"feedback,omitempty"`
	LastUpdated     string         `json:"last_updated"`
}
