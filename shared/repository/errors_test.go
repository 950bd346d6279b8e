package repository

import (
	"errors"
	"fmt"
	"testing"

	"tourism/shared/constant"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPqErrorCodes(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation})
	foreign := fmt.Errorf("delete: %w", &pq.Error{Code: constant.PqErrorCodeFkViolation})

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.True(t, IsForeignKeyViolation(foreign))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsForeignKeyViolation(nil))
}
