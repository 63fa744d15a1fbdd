// internal/models/workflow.go
package models

// StageCounts summarizes a pipeline stage across a batch of
// participants.
type StageCounts struct {
	OK     int `json:"successful"`
	Failed int `json:"failed"`
	Total  int `json:"total"`
}

// WorkflowRun is the outcome of a full orchestrated run for one event.
type WorkflowRun struct {
	Event      string      `json:"event_name"`
	Researched StageCounts `json:"research_stats"`
	Messaged   StageCounts `json:"message_stats"`
	Timestamp  string      `json:"timestamp"`
}

// JobState tracks an asynchronous workflow run submitted over the API.
type JobState string

const (
	JobQueued    JobState = "queued"
	JobRunning   JobState = "running"
	JobCompleted JobState = "completed"
	JobFailed    JobState = "failed"
)

// JobStatus is the pollable view of an asynchronous run. Progress moves
// from 0 to 1 as stages complete.
type JobStatus struct {
	JobID    string       `json:"job_id"`
	Event    string       `json:"event_name"`
	State    JobState     `json:"state"`
	Progress float64      `json:"progress"`
	Message  string       `json:"message,omitempty"`
	Result   *WorkflowRun `json:"result,omitempty"`
}
