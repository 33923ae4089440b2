package errors_test

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aaravmahajanofficial/bookstore-api/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *errors.AppError
		code   string
		status int
	}{
		{"Validation", errors.ValidationError("bad"), errors.ErrCodeValidation, http.StatusBadRequest},
		{"Not Found", errors.NotFoundError("gone"), errors.ErrCodeNotFound, http.StatusNotFound},
		{"Unauthorized", errors.UnauthorizedError("who"), errors.ErrCodeUnauthorized, http.StatusUnauthorized},
		{"Forbidden", errors.ForbiddenError("no"), errors.ErrCodeForbidden, http.StatusForbidden},
		{"Invalid Token", errors.InvalidTokenError("Invalid token"), errors.ErrCodeInvalidToken, http.StatusBadRequest},
		{"Duplicate", errors.DuplicateEntryError("dup"), errors.ErrCodeDuplicateEntry, http.StatusConflict},
		{"Out Of Stock", errors.OutOfStockError("empty shelf"), errors.ErrCodeOutOfStock, http.StatusConflict},
		{"Conflict", errors.ConflictError("retry"), errors.ErrCodeConflict, http.StatusConflict},
		{"Too Many Requests", errors.TooManyRequestsError("slow down"), errors.ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{"Database", errors.DatabaseError("db"), errors.ErrCodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.status, tc.err.StatusCode)
		})
	}
}

func TestFieldError(t *testing.T) {
	err := errors.FieldError("rating", "must be between 1 and 5")

	assert.Equal(t, errors.ErrCodeValidation, err.Code)
	assert.Equal(t, "Invalid field 'rating': must be between 1 and 5", err.Error())
}

func TestIsAppError(t *testing.T) {
	cause := stdErrors.New("connection refused")
	wrapped := fmt.Errorf("checkout: %w", errors.DatabaseError("Failed to place order").WithError(cause))

	appErr, ok := errors.IsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeDatabaseError, appErr.Code)
	assert.ErrorIs(t, wrapped, cause)

	_, ok = errors.IsAppError(cause)
	assert.False(t, ok)
}

func TestNewAppErrorStatusFallback(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errors.NewAppError(errors.ErrCodeNotFound, "x", 0).StatusCode)
	assert.Equal(t, http.StatusInternalServerError, errors.NewAppError("SOMETHING_ELSE", "x", 0).StatusCode)
	assert.Equal(t, http.StatusTeapot, errors.NewAppError("SOMETHING_ELSE", "x", http.StatusTeapot).StatusCode)
}
