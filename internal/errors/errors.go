// Package errors provides the error taxonomy used by the wallet sync pipeline.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the pipeline stage an error came from
type ErrorType string

const (
	// ErrorTypeConfiguration covers an unusable server URI or an unwritable state directory
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeWalletConstruction covers malformed viewing keys, chain mismatches and rejected birthdays
	ErrorTypeWalletConstruction ErrorType = "wallet_construction"
	// ErrorTypeSync covers network, protocol or server failures during the rescan
	ErrorTypeSync ErrorType = "sync"
	// ErrorTypeExtraction covers failures while reading balance, history, info or addresses
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeValidation covers malformed command input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeBusy covers requests refused because a sync for the same profile is running
	ErrorTypeBusy ErrorType = "busy"
	// ErrorTypeInternal represents internal/unknown errors
	ErrorTypeInternal ErrorType = "internal"
)

// SyncError is a step failure with the stage and operation that produced it
type SyncError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error in %s: %s: %v", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error in %s: %s", e.Type, e.Operation, e.Message)
}

// Unwrap returns the underlying cause for error unwrapping
func (e *SyncError) Unwrap() error {
	return e.Cause
}

// New creates a new SyncError without a cause
func New(errorType ErrorType, operation, message string) *SyncError {
	return &SyncError{
		Type:      errorType,
		Operation: operation,
		Message:   message,
	}
}

// Wrap wraps an existing error with stage and operation. A nil error stays nil.
func Wrap(err error, errorType ErrorType, operation, message string) error {
	if err == nil {
		return nil
	}
	return &SyncError{
		Type:      errorType,
		Operation: operation,
		Message:   message,
		Cause:     err,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Type == errorType
	}
	return false
}

// TypeOf returns the stage of err, or ErrorTypeInternal when err carries none
func TypeOf(err error) ErrorType {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Type
	}
	return ErrorTypeInternal
}
