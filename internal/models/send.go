// internal/models/send.go
package models

// SendRecord is the JSON log entry written for every simulated send,
// successful or not. It is always persisted to the document store and,
// best effort, indexed for search.
type SendRecord struct {
	Event           string   `json:"event"`
	ParticipantName string   `json:"participant_name"`
	Status          string   `json:"status"`
	MessageText     string   `json:"message_text"`
	PlatformURL     string   `json:"platform_url,omitempty"`
	ScreenshotIDs   []string `json:"screenshot_ids,omitempty"`
	LogFileID       string   `json:"log_file_id,omitempty"`
	Timestamp       string   `json:"timestamp"`
}
