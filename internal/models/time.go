// internal/models/time.go
package models

// Layouts used for every stored date and timestamp. The approval sheet
// and send logs depend on these exact formats.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)
