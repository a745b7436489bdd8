// Package errors provides the standardized error taxonomy of the matching
// engine. Only surfaced codes ever reach a caller as a failure; the rerank
// codes exist for logging and metrics, the ranking itself degrades to the
// lexical-only path instead.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeProjectNotFound   ErrorCode = "PROJECT_NOT_FOUND"
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_ERROR"
	ErrCodeRerankUnavailable ErrorCode = "RERANK_UNAVAILABLE"
	ErrCodeRerankFailed      ErrorCode = "RERANK_FAILED"
	ErrCodeStoreFailed       ErrorCode = "STORE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Surfaced  bool      `json:"surfaced"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// Error Constructors
// ==========================

// NewProjectNotFoundError reports a project that is absent or not owned by
// the requesting actor. The two cases are deliberately indistinguishable to
// the caller.
func NewProjectNotFoundError(projectID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProjectNotFound,
		Message:   "Project not found",
		Details:   fmt.Sprintf("projectId: %s", projectID),
		Surfaced:  true,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError reports malformed caller input.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Surfaced:  true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRerankUnavailableError reports that no external re-ranking capability
// is configured. Recovered locally, never surfaced.
func NewRerankUnavailableError() *StandardError {
	return &StandardError{
		Code:      ErrCodeRerankUnavailable,
		Message:   "External re-ranking capability not configured",
		Surfaced:  false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRerankFailedError reports an external call that returned unusable data.
// Recovered locally, never surfaced.
func NewRerankFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRerankFailed,
		Message:   "External re-ranking call failed",
		Details:   err.Error(),
		Surfaced:  false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreFailedError reports a persistence failure during a ranking run.
func NewStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreFailed,
		Message:   "Recommendation store operation failed",
		Details:   err.Error(),
		Surfaced:  true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Utility Functions
// ==========================

// CodeOf extracts the ErrorCode from an error chain, if any.
func CodeOf(err error) (ErrorCode, bool) {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code, true
	}
	return "", false
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	got, ok := CodeOf(err)
	return ok && got == code
}

// IsSurfaced reports whether an error may reach the caller as a failure.
// Unknown errors are surfaced so they are never silently swallowed.
func IsSurfaced(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Surfaced
	}
	return true
}
