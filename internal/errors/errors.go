// Package errors provides the error type shared by the ledger services and
// the HTTP layer. Services return *AppError so handlers can map failures to
// status codes without inspecting driver errors.
package errors

import (
	"fmt"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
// Count is set on integrity errors that report how many ledger rows block
// the operation.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Count      int64  `json:"count,omitempty"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so callers
// can compare wrapped copies against the sentinels.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Count:      sentinel.Count,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Count:      sentinel.Count,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Invalid returns an INVALID_INPUT error naming the offending field.
func Invalid(field, reason string) *AppError {
	return WithMessage(ErrInvalidInput, fmt.Sprintf("%s: %s", field, reason))
}

// InUse returns a copy of an *_IN_USE sentinel carrying the number of
// ledger rows that still reference the resource.
func InUse(sentinel *AppError, count int64) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    fmt.Sprintf("%s (%d linked transactions)", sentinel.Message, count),
		Count:      count,
		StatusCode: sentinel.StatusCode,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrDuplicateName  = &AppError{Code: "DUPLICATE_NAME", Message: "A record with this name already exists", StatusCode: http.StatusConflict}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Account errors.
var (
	ErrAccountNotFound = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrAccountInUse    = &AppError{Code: "ACCOUNT_IN_USE", Message: "Account is used by existing transactions", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound     = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryInUse        = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing transactions", StatusCode: http.StatusConflict}
	ErrCategoryTypeMismatch = &AppError{Code: "CATEGORY_TYPE_MISMATCH", Message: "Category type does not match transaction type", StatusCode: http.StatusBadRequest}
)

// Transaction errors.
var (
	ErrTransactionNotFound      = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInstallmentGroupNotFound = &AppError{Code: "INSTALLMENT_GROUP_NOT_FOUND", Message: "Installment group not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType   = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
	ErrInstallmentNotAllowed    = &AppError{Code: "INSTALLMENT_NOT_ALLOWED", Message: "Only expenses can be paid in installments", StatusCode: http.StatusBadRequest}
)

// Checklist errors.
var (
	ErrChecklistEntryNotFound = &AppError{Code: "CHECKLIST_ENTRY_NOT_FOUND", Message: "Checklist entry not found", StatusCode: http.StatusNotFound}
)
