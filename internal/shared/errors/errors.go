// Package errors provides application-level error types and utilities.
// It defines common error types like validation, not found, business rule,
// conflict, and authorization errors.
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
	ErrorTypeValidation   ErrorType = "validation_error"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeBusinessRule ErrorType = "business_rule"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeInternal     ErrorType = "internal_error"
	ErrorTypeBadRequest   ErrorType = "bad_request"
)

// ReasonValidation is the reason code attached to field validation failures.
const ReasonValidation = "VALIDATION_ERROR"

// AppError represents an application error with additional context.
// Reason is a stable machine-readable code (e.g. SPRINT_CAPACITY_EXCEEDED)
// and Params carries structured context for client display.
type AppError struct {
	Type    ErrorType      `json:"type"`
	Message string         `json:"message"`
	Code    int            `json:"code"`
	Details string         `json:"details,omitempty"`
	Reason  string         `json:"reason,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	prefix := string(e.Type)
	if e.Reason != "" {
		prefix = e.Reason
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", prefix, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// IsCritical reports whether the error represents an unexpected failure.
func (e *AppError) IsCritical() bool {
	return e.Type == ErrorTypeInternal
}

// WithReason sets the machine-readable reason code.
func (e *AppError) WithReason(reason string) *AppError {
	e.Reason = reason
	return e
}

// WithParam adds a single structured context value.
func (e *AppError) WithParam(key string, value any) *AppError {
	if e.Params == nil {
		e.Params = make(map[string]any)
	}
	e.Params[key] = value
	return e
}

func firstDetail(details []string) string {
	if len(details) > 0 {
		return details[0]
	}
	return ""
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    http.StatusBadRequest,
		Details: firstDetail(details),
		Reason:  ReasonValidation,
	}
}

// NewFieldValidationError creates a validation error bound to a single input field
func NewFieldValidationError(field, message string) *AppError {
	return NewValidationError(message).WithParam("field", field)
}

// NewNotFoundError creates a new not found error for literal missing resources (404)
func NewNotFoundError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Code:    http.StatusNotFound,
		Details: firstDetail(details),
	}
}

// NewEntityNotFoundError creates a domain not-found error. Missing entities
// referenced by a command are reported as 400 with the missing ids in params.
func NewEntityNotFoundError(reason, message string, params map[string]any) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Code:    http.StatusBadRequest,
		Reason:  reason,
		Params:  params,
	}
}

// NewBusinessRuleError creates a business rule violation error
func NewBusinessRuleError(reason, message string, params map[string]any) *AppError {
	return &AppError{
		Type:    ErrorTypeBusinessRule,
		Message: message,
		Code:    http.StatusBadRequest,
		Reason:  reason,
		Params:  params,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
		Code:    http.StatusConflict,
		Details: firstDetail(details),
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
		Code:    http.StatusUnauthorized,
		Details: firstDetail(details),
	}
}

// NewForbiddenError creates a new forbidden error
func NewForbiddenError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeForbidden,
		Message: message,
		Code:    http.StatusForbidden,
		Details: firstDetail(details),
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Code:    http.StatusInternalServerError,
		Details: firstDetail(details),
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeBadRequest,
		Message: message,
		Code:    http.StatusBadRequest,
		Details: firstDetail(details),
	}
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

// HasReason reports whether err (or any error it wraps) carries the given reason code.
func HasReason(err error, reason string) bool {
	if err == nil {
		return false
	}
	var list *ErrorList
	if errors.As(err, &list) {
		for _, e := range list.Errors() {
			if HasReason(e, reason) {
				return true
			}
		}
		return false
	}
	appErr := GetAppError(err)
	return appErr != nil && appErr.Reason == reason
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeConflict
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeNotFound
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeValidation
}

// IsBusinessRuleError checks if the error is a business rule violation
func IsBusinessRuleError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeBusinessRule
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
	// SQLite unique index violation
	if strings.Contains(errStr, "UNIQUE constraint failed") {
		return true
	}
	return false
}
