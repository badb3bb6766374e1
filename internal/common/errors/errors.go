// Package errors provides standardized error handling for the signup service.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrCodeValidationFailed ErrorCode = "APPLICATION_VALIDATION_FAILED"

	ErrCodeStoreConnectionFailed ErrorCode = "STORE_CONNECTION_FAILED"
	ErrCodeDocumentWriteFailed   ErrorCode = "DOCUMENT_WRITE_FAILED"
	ErrCodeDocumentExists        ErrorCode = "DOCUMENT_ALREADY_EXISTS"
	ErrCodeStoreTimeout          ErrorCode = "STORE_TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying driver error, if any.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidRequestError creates a non-retryable error for malformed payloads.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request body is malformed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable error naming the fields
// that failed their rules.
func NewValidationFailedError(fields []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Application failed validation",
		Details:   fmt.Sprintf("fields: %s", strings.Join(fields, ", ")),
		Retryable: false,
		Metadata:  map[string]interface{}{"fields": fields},
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreConnectionFailedError creates a retryable connection error.
func NewStoreConnectionFailedError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreConnectionFailed,
		Message:   "Document store connection error",
		Details:   fmt.Sprintf("backend: %s, error: %s", backend, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewDocumentWriteFailedError creates a retryable write error.
func NewDocumentWriteFailedError(collection, id string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentWriteFailed,
		Message:   "Document write failed",
		Details:   fmt.Sprintf("collection: %s, id: %s, error: %s", collection, id, err.Error()),
		Retryable: true,
		Metadata:  map[string]interface{}{"collection": collection, "documentId": id},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewDocumentExistsError creates a non-retryable conflict error.
func NewDocumentExistsError(collection, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentExists,
		Message:   "Document already exists",
		Details:   fmt.Sprintf("collection: %s, id: %s", collection, id),
		Retryable: false,
		Metadata:  map[string]interface{}{"collection": collection, "documentId": id},
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreTimeoutError creates a retryable timeout error.
func NewStoreTimeoutError(collection, id string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreTimeout,
		Message:   "Document store timeout",
		Details:   fmt.Sprintf("collection: %s, id: %s", collection, id),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// HasCode reports whether err is a StandardError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeStoreConnectionFailed, ErrCodeDocumentWriteFailed, ErrCodeStoreTimeout:
		return true
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeValidationFailed:
		return "validation"
	case ErrCodeStoreConnectionFailed, ErrCodeDocumentWriteFailed, ErrCodeDocumentExists, ErrCodeStoreTimeout:
		return "storage"
	default:
		return "system"
	}
}

// HTTPStatus maps an error code to the response status the web layer uses.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeDocumentExists:
		return http.StatusConflict
	case ErrCodeStoreTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeStoreConnectionFailed, ErrCodeDocumentWriteFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
