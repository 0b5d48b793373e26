package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/exam-portal-service/internal/validator"
)

// Sentinel errors mapped to HTTP codes by the handlers.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")

	// Auth
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already registered")

	// Delivery and scoring
	ErrExamNotAvailable     = errors.New("exam is not available")
	ErrExamAlreadyAttempted = errors.New("exam already attempted")
	ErrDuplicateSubmission  = errors.New("result already submitted for this exam")
)

// NewValidationError wraps field-level validation failures so handlers
// can match on ErrValidationFailed while keeping the details.
func NewValidationError(errs validator.ValidationErrors) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, errs.Error())
}

// NewPermissionError wraps ErrForbidden with context.
func NewPermissionError(msg string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, msg)
}
