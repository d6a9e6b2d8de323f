// Package errors provides typed error definitions for arbor.
// This package consolidates error handling and provides structured error types
// that can be used for better error classification and handling.
package errors

import (
	"fmt"
)

// ErrorCode represents a unique identifier for different error types
type ErrorCode string

const (
	// Configuration errors
	ErrConfigParse      ErrorCode = "CONFIG_PARSE"
	ErrConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Repository discovery errors
	ErrRepoNotFound ErrorCode = "REPO_NOT_FOUND"

	// Template errors
	ErrTemplateUnknownVar ErrorCode = "TEMPLATE_UNKNOWN_VAR"

	// Lock errors
	ErrLockHeld ErrorCode = "LOCK_HELD"
	ErrLockIO   ErrorCode = "LOCK_IO"

	// Git errors
	ErrGitCommand                ErrorCode = "GIT_COMMAND"
	ErrGitBranchNotFound         ErrorCode = "GIT_BRANCH_NOT_FOUND"
	ErrBranchAlreadyCheckedOut   ErrorCode = "BRANCH_ALREADY_CHECKED_OUT"
	ErrUnpushedCommits           ErrorCode = "UNPUSHED_COMMITS"
	ErrWorktreeExists            ErrorCode = "WORKTREE_EXISTS"
	ErrWorktreeNotFound          ErrorCode = "WORKTREE_NOT_FOUND"
	ErrWorktreePathOccupied      ErrorCode = "WORKTREE_PATH_OCCUPIED"
	ErrSourceBranchNotFound      ErrorCode = "SOURCE_BRANCH_NOT_FOUND"

	// Hook errors
	ErrHookFailed  ErrorCode = "HOOK_FAILED"
	ErrHookTimeout ErrorCode = "HOOK_TIMEOUT"

	// Synchronization errors
	ErrSkippedDirty         ErrorCode = "SKIPPED_DIRTY"
	ErrUpdateConflict       ErrorCode = "UPDATE_CONFLICT"
	ErrStashRestoreConflict ErrorCode = "STASH_RESTORE_CONFLICT"

	// Input errors
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrAborted      ErrorCode = "ABORTED"

	// Internal errors
	ErrInternal ErrorCode = "INTERNAL_ERROR"
)

// ArborError represents a structured error with additional context
type ArborError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *ArborError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *ArborError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ArborError) WithContext(key string, value interface{}) *ArborError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new ArborError
func New(code ErrorCode, message string) *ArborError {
	return &ArborError{
		Code:    code,
		Message: message,
	}
}

// NewWithDetails creates a new ArborError with details
func NewWithDetails(code ErrorCode, message, details string) *ArborError {
	return &ArborError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Wrap creates a new ArborError that wraps an existing error
func Wrap(code ErrorCode, message string, cause error) *ArborError {
	return &ArborError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetails creates a new ArborError with details that wraps an existing error
func WrapWithDetails(code ErrorCode, message, details string, cause error) *ArborError {
	return &ArborError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// GetCode extracts the error code from an error, if it's an ArborError
func GetCode(err error) ErrorCode {
	if ae, ok := err.(*ArborError); ok {
		return ae.Code
	}
	return ""
}

// HasCode checks if an error has a specific error code
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
