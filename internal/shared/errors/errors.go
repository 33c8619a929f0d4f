// Package errors provides application-level error types and utilities.
// It defines the error taxonomy surfaced by the ledger, the status resolver
// and the dossier closure gate.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation_error"
	ErrorTypeNotFound      ErrorType = "not_found"
	ErrorTypeConflict      ErrorType = "conflict"
	ErrorTypeForbidden     ErrorType = "forbidden"
	ErrorTypeInternal      ErrorType = "internal_error"
	ErrorTypeDossierClosed ErrorType = "dossier_closed"
	ErrorTypeRankConflict  ErrorType = "rank_conflict"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Retryable reports whether the caller may retry the same operation unchanged.
func (e *AppError) Retryable() bool {
	return e.Type == ErrorTypeRankConflict
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// NewDossierClosedError is returned when a mutation targets a closed dossier.
func NewDossierClosedError(dossierID uint) *AppError {
	return newAppError(ErrorTypeDossierClosed, http.StatusLocked,
		fmt.Sprintf("dossier %d is closed", dossierID), nil)
}

// NewRankConflictError is returned when two writers raced for the same rank
// of the same property. It is retryable.
func NewRankConflictError(propertyID uint, details ...string) *AppError {
	return newAppError(ErrorTypeRankConflict, http.StatusConflict,
		fmt.Sprintf("rank conflict on property %d", propertyID), details)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsForbiddenError checks if the error is a forbidden error
func IsForbiddenError(err error) bool {
	return isType(err, ErrorTypeForbidden)
}

// IsDossierClosedError checks if the error was raised by the closure gate
func IsDossierClosedError(err error) bool {
	return isType(err, ErrorTypeDossierClosed)
}

// IsRankConflictError checks if the error is a retryable rank conflict
func IsRankConflictError(err error) bool {
	return isType(err, ErrorTypeRankConflict)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "violates unique constraint") {
		return true
	}
	// SQLite
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	return false
}
