package repository_test

import (
	"errors"
	"fmt"
	"testing"

	repository "github.com/aaravmahajanofficial/bookstore-api/internal/repositories"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPostgresErrorClassification(t *testing.T) {
	unique := &pq.Error{Code: "23505"}
	foreignKey := &pq.Error{Code: "23503"}
	check := &pq.Error{Code: "23514"}
	serialization := &pq.Error{Code: "40001"}
	outOfRange := &pq.Error{Code: "22003"}

	assert.True(t, repository.IsUniqueViolation(unique))
	assert.True(t, repository.IsUniqueViolation(fmt.Errorf("wrapped: %w", unique)))
	assert.False(t, repository.IsUniqueViolation(foreignKey))

	assert.True(t, repository.IsForeignKeyViolation(foreignKey))
	assert.True(t, repository.IsCheckViolation(check))
	assert.True(t, repository.IsSerializationFailure(serialization))
	assert.True(t, repository.IsNumericOutOfRange(fmt.Errorf("wrapped: %w", outOfRange)))
	assert.False(t, repository.IsNumericOutOfRange(check))

	assert.False(t, repository.IsSerializationFailure(errors.New("plain error")))
	assert.False(t, repository.IsUniqueViolation(nil))
}
