// Package errors provides standardized error handling for the outreach
// pipeline. Stage handlers wrap failures in StandardError so batch
// callers can record the code per participant and keep going.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Provider errors
	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	ErrCodeProviderError       ErrorCode = "PROVIDER_ERROR"

	// Stage errors
	ErrCodeScrapeFailed          ErrorCode = "SCRAPE_FAILED"
	ErrCodeResearchLookupFailed  ErrorCode = "RESEARCH_LOOKUP_FAILED"
	ErrCodeMessageDraftFailed    ErrorCode = "MESSAGE_DRAFT_FAILED"
	ErrCodeReportNarrativeFailed ErrorCode = "REPORT_NARRATIVE_FAILED"
	ErrCodeSendLogFailed         ErrorCode = "SEND_LOG_FAILED"

	// Store errors
	ErrCodeStoreUnreachable ErrorCode = "STORE_UNREACHABLE"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeDocumentUpload   ErrorCode = "DOCUMENT_UPLOAD_FAILED"

	// Request / orchestration errors
	ErrCodeValidation             ErrorCode = "VALIDATION_ERROR"
	ErrCodeRunConflict            ErrorCode = "RUN_CONFLICT"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf returns the error code carried by err, or empty when err is
// not a StandardError.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// ==========================
// 2. Error Constructors
// ==========================

// NewProviderUnavailableError creates a retryable external provider error.
func NewProviderUnavailableError(provider string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderUnavailable,
		Message:   fmt.Sprintf("Provider '%s' is unavailable", provider),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewProviderError creates a non-retryable external provider error.
func NewProviderError(provider, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProviderError,
		Message:   fmt.Sprintf("Provider '%s' returned an error", provider),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScrapeFailedError creates a non-retryable scrape error. Intake
// falls back to placeholders or manual entry instead of retrying.
func NewScrapeFailedError(url string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScrapeFailed,
		Message:   "Participant scrape failed",
		Details:   fmt.Sprintf("url: %s, error: %s", url, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewResearchLookupFailedError creates a non-fatal lookup error. The
// research reducer substitutes fallback text for the failed lookup.
func NewResearchLookupFailedError(lookup string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeResearchLookupFailed,
		Message:   "Research lookup failed",
		Details:   fmt.Sprintf("lookup: %s, error: %s", lookup, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMessageDraftFailedError creates a per-participant fatal draft error.
func NewMessageDraftFailedError(participant string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMessageDraftFailed,
		Message:   "Message draft generation failed",
		Details:   fmt.Sprintf("participant: %s, error: %s", participant, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewReportNarrativeFailedError creates a non-fatal narrative error. The
// report compiler substitutes the canned narrative.
func NewReportNarrativeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReportNarrativeFailed,
		Message:   "Report narrative generation failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreUnreachableError creates a retryable store connectivity error.
func NewStoreUnreachableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreUnreachable,
		Message:   "Durable store is unreachable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a non-retryable missing resource error.
func NewNotFoundError(resource, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentUploadError creates a retryable document upload error.
func NewDocumentUploadError(name string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentUpload,
		Message:   "Document upload failed",
		Details:   fmt.Sprintf("document: %s, error: %s", name, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSendLogFailedError creates a retryable send log persistence error.
func NewSendLogFailedError(participant string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSendLogFailed,
		Message:   "Send log persistence failed",
		Details:   fmt.Sprintf("participant: %s, error: %s", participant, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidation,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRunConflictError creates a non-retryable concurrent run error.
func NewRunConflictError(event string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRunConflict,
		Message:   "A workflow run is already in progress for this event",
		Details:   fmt.Sprintf("event: %s", event),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
