package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the resource was modified concurrently (version mismatch).
var ErrConflict = errors.New("resource was modified by another request")

// Billing errors.
var (
	// ErrUnresolvableBillingStart means no first billable month could be determined.
	// It is never returned to callers as a failure; it is carried as an issue reason.
	ErrUnresolvableBillingStart = errors.New("billing start cannot be determined")

	// ErrInvalidChargeAmount means the monthly amount is zero or negative.
	ErrInvalidChargeAmount = errors.New("monthly charge amount must be positive")

	// ErrNoPendingCharge is returned when an owner has nothing to pay.
	ErrNoPendingCharge = errors.New("no pending charge for owner")

	// ErrOwnerNotFound is returned when the owner cannot be resolved.
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrOccupantCreationFailed is returned when the billing occupant could not be found or created.
	ErrOccupantCreationFailed = errors.New("failed to create billing occupant")

	// ErrPaymentWriteFailed is returned when the payment could not be persisted.
	ErrPaymentWriteFailed = errors.New("failed to persist payment")

	// ErrStaleBalance is returned when the caller's expected total due no longer matches.
	ErrStaleBalance = errors.New("outstanding balance changed since it was read")
)

// AppError carries an HTTP-ish status code alongside a wrapped error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap allows errors.Is / errors.As to see the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}
