// internal/stages/send/models.go
package send

import "fmt"

// Table and column names for the per-event sent-message ledger.
const (
	ColParticipant = "Participant Name"
	ColStatus      = "Status"
	ColLogFile     = "Log File ID"
	ColTimestamp   = "Timestamp"
)

// StatusSimulated marks a send that went through the simulator. No
// real message leaves the system.
const StatusSimulated = "Simulated sending"

// LogFolderName returns the per-event folder holding send logs and
// screenshots.
func LogFolderName(event string) string {
	return fmt.Sprintf("Sent_Messages_Log_%s", event)
}

// LedgerName returns the per-event sent-message table name.
func LedgerName(event string) string {
	return fmt.Sprintf("%s - Sent Messages", event)
}

// LogFileName returns the per-participant send-log document name.
func LogFileName(participant string) string {
	return fmt.Sprintf("%s - Send Log.json", participant)
}

// ScreenshotName returns the nth per-participant screenshot name,
// 1-based.
func ScreenshotName(participant string, n int) string {
	return fmt.Sprintf("%s - Screenshot_%d.png", participant, n)
}

// PlaceholderMessage synthesizes the simulated message body. The
// simulator never re-fetches the drafted document.
func PlaceholderMessage(participant, event string) string {
	return fmt.Sprintf("Dear %s, This is a simulated message for the %s conference...", participant, event)
}
