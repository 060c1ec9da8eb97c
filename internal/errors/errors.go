// Package errors provides custom error types for the brokerage ledger API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Entity lookup errors.
var (
	ErrInvestorNotFound    = &AppError{Code: "INVESTOR_NOT_FOUND", Message: "Investor not found", StatusCode: http.StatusNotFound}
	ErrBrokerNotFound      = &AppError{Code: "BROKER_NOT_FOUND", Message: "Broker not found", StatusCode: http.StatusNotFound}
	ErrAccountNotFound     = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrAssetNotFound       = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrHoldingNotFound     = &AppError{Code: "HOLDING_NOT_FOUND", Message: "Holding not found", StatusCode: http.StatusNotFound}
)

// MissingRequiredField reports an empty field that the record requires.
func MissingRequiredField(field string) *AppError {
	return &AppError{
		Code:       "MISSING_REQUIRED_FIELD",
		Message:    field + " is required",
		StatusCode: http.StatusBadRequest,
	}
}

// DuplicateValue reports a unique-constraint violation on the named field.
func DuplicateValue(field string) *AppError {
	return &AppError{
		Code:       "DUPLICATE_VALUE",
		Message:    "A record with this " + field + " already exists",
		StatusCode: http.StatusConflict,
	}
}

// InvalidFormat reports a field whose value does not match its required shape.
func InvalidFormat(field string) *AppError {
	return &AppError{
		Code:       "INVALID_FORMAT",
		Message:    "Invalid " + field + " format",
		StatusCode: http.StatusBadRequest,
	}
}

// InvalidValue reports a field whose value violates a range or domain rule.
func InvalidValue(detail string) *AppError {
	return &AppError{
		Code:       "INVALID_VALUE",
		Message:    "Invalid value: " + detail,
		StatusCode: http.StatusBadRequest,
	}
}

// MissingReference reports a required relation that is not set or does not exist.
func MissingReference(field string) *AppError {
	return &AppError{
		Code:       "MISSING_REFERENCE",
		Message:    "Required reference " + field + " is missing",
		StatusCode: http.StatusBadRequest,
	}
}
