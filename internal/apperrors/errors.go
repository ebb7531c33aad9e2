package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks the capability for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("operation conflicts with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrCrossAccountMismatch indicates a payment references a receipt belonging to a different account.
var ErrCrossAccountMismatch = errors.New("payment account does not match receipt account")

// ErrHasSettledPayments indicates a receipt cannot be deleted while payments reference it.
var ErrHasSettledPayments = errors.New("receipt has settled payments")

// ErrStorageTimeout indicates the storage transaction timed out before commit.
// The whole transaction is safe to retry; no partial state was written.
var ErrStorageTimeout = errors.New("storage transaction timed out")

// ErrStorageConflict indicates the storage transaction was aborted due to a
// serialization failure or deadlock. Safe to retry from scratch.
var ErrStorageConflict = errors.New("storage transaction conflict")

// InvalidLineItemError reports a line item with a non-positive quantity or
// negative unit price. Unwraps to ErrValidation.
type InvalidLineItemError struct {
	ItemName string
	Reason   string
}

func (e *InvalidLineItemError) Error() string {
	return fmt.Sprintf("invalid line item %q: %s", e.ItemName, e.Reason)
}

func (e *InvalidLineItemError) Unwrap() error { return ErrValidation }

// AmountExceedsRemainingError reports a payment that would overshoot the
// remaining balance of its receipt. Remaining carries the authoritative value
// read under lock at commit time, so the caller can re-render without a
// second round trip. Unwraps to ErrConflict.
type AmountExceedsRemainingError struct {
	ReceiptID string
	Remaining decimal.Decimal
}

func (e *AmountExceedsRemainingError) Error() string {
	return fmt.Sprintf("payment amount exceeds remaining balance %s on receipt %s", e.Remaining.StringFixed(2), e.ReceiptID)
}

func (e *AmountExceedsRemainingError) Unwrap() error { return ErrConflict }

// InsufficientStockError reports an outbound quantity that would deplete an
// inventory line below zero. Available carries the authoritative value read
// under lock at commit time. Unwraps to ErrConflict.
type InsufficientStockError struct {
	ItemName  string
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: %s available", e.ItemName, e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrConflict }

// AppError wraps infrastructure failures with an HTTP-ish status code so
// repositories can classify failures without importing net/http.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
