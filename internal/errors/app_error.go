// Package errors defines the error taxonomy shared by services and handlers.
// Services return *AppError; response.Error turns it into the JSON envelope.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeDuplicateEntry  = "DUPLICATE_ENTRY"
	ErrCodeThirdPartyError = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeInvalidToken    = "INVALID_TOKEN"
	ErrCodeOutOfStock      = "OUT_OF_STOCK"
	ErrCodeConflict        = "CONFLICT"
)

var statusByCode = map[string]int{
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeDatabaseError:   http.StatusInternalServerError,
	ErrCodeDuplicateEntry:  http.StatusConflict,
	ErrCodeThirdPartyError: http.StatusInternalServerError,
	ErrCodeTooManyRequests: http.StatusTooManyRequests,
	ErrCodeInvalidToken:    http.StatusBadRequest,
	ErrCodeOutOfStock:      http.StatusConflict,
	ErrCodeConflict:        http.StatusConflict,
}

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

// Error returns the client-facing message only; the wrapped cause stays in Err.
func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// NewAppError builds an error with an explicit status. Unknown codes with a
// zero status default to 500.
func NewAppError(code, message string, statusCode int) *AppError {
	if statusCode == 0 {
		statusCode = StatusFor(code)
	}

	return &AppError{Code: code, Message: message, StatusCode: statusCode}
}

func newCoded(code, message string) *AppError {
	return NewAppError(code, message, statusByCode[code])
}

func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func ValidationError(message string) *AppError   { return newCoded(ErrCodeValidation, message) }
func BadRequestError(message string) *AppError   { return newCoded(ErrCodeBadRequest, message) }
func NotFoundError(message string) *AppError     { return newCoded(ErrCodeNotFound, message) }
func UnauthorizedError(message string) *AppError { return newCoded(ErrCodeUnauthorized, message) }
func ForbiddenError(message string) *AppError    { return newCoded(ErrCodeForbidden, message) }
func InternalError(message string) *AppError     { return newCoded(ErrCodeInternal, message) }
func DatabaseError(message string) *AppError     { return newCoded(ErrCodeDatabaseError, message) }
func ThirdPartyError(message string) *AppError   { return newCoded(ErrCodeThirdPartyError, message) }
func InvalidTokenError(message string) *AppError { return newCoded(ErrCodeInvalidToken, message) }
func OutOfStockError(message string) *AppError   { return newCoded(ErrCodeOutOfStock, message) }
func ConflictError(message string) *AppError     { return newCoded(ErrCodeConflict, message) }

func DuplicateEntryError(message string) *AppError {
	return newCoded(ErrCodeDuplicateEntry, message)
}

func TooManyRequestsError(message string) *AppError {
	return newCoded(ErrCodeTooManyRequests, message)
}

// FieldError reports a single invalid request field.
func FieldError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}
