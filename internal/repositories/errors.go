package repository

import (
	"errors"

	"github.com/lib/pq"
)

// postgres SQLSTATE codes the services branch on
const (
	pqUniqueViolation      = "23505"
	pqForeignKeyViolation  = "23503"
	pqCheckViolation       = "23514"
	pqNumericOutOfRange    = "22003"
	pqSerializationFailure = "40001"
)

func hasPQCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}
	return false
}

func IsUniqueViolation(err error) bool {
	return hasPQCode(err, pqUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasPQCode(err, pqForeignKeyViolation)
}

func IsCheckViolation(err error) bool {
	return hasPQCode(err, pqCheckViolation)
}

// IsNumericOutOfRange reports a value too large for its column, such as a
// quantity past int4 or a total past the order's decimal precision.
func IsNumericOutOfRange(err error) bool {
	return hasPQCode(err, pqNumericOutOfRange)
}

// IsSerializationFailure reports whether a serializable transaction lost a
// conflict and may be retried by the caller.
func IsSerializationFailure(err error) bool {
	return hasPQCode(err, pqSerializationFailure)
}

// ErrInsufficientStock is returned when a guarded stock decrement matches no row.
var ErrInsufficientStock = errors.New("insufficient stock")
