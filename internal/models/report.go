// internal/models/report.go
package models

// ReportMetrics are the headline numbers of a summary report. Sent
// messages are counted from the send ledger, not assumed equal to
// approvals.
type ReportMetrics struct {
	TotalParticipants int `json:"total_participants"`
	ApprovedMessages  int `json:"approved_messages"`
	SentMessages      int `json:"sent_messages"`
}

// ReportNarrative is the generated prose portion of a report. When the
// generation provider is unavailable a canned narrative is substituted
// so the report always renders.
type ReportNarrative struct {
	KeyLearnings          []string `json:"key_learnings"`
	SuggestedImprovements []string `json:"suggested_improvements"`
	SuccessPatterns       []string `json:"success_patterns"`
	ExecutiveSummary      string   `json:"executive_summary"`
}

// ReportResult is returned by the report compiler.
type ReportResult struct {
	Event      string        `json:"event"`
	DocumentID string        `json:"document_id"`
	Metrics    ReportMetrics `json:"metrics"`
	Timestamp  string        `json:"timestamp"`
}

// MessageSample feeds the narrative generator with representative
// drafted messages.
type MessageSample struct {
	Participant   string   `json:"participant"`
	Company       string   `json:"company"`
	SynergyPoints []string `json:"synergy_points"`
}
