package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "orders_secret_key_key"})

	constraint, ok := UniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "orders_secret_key_key", constraint)

	_, ok = ForeignKeyViolation(err)
	assert.False(t, ok)
}

func TestForeignKeyViolation(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "orders_category_id_fkey"}

	constraint, ok := ForeignKeyViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "orders_category_id_fkey", constraint)
}

func TestViolationPlainError(t *testing.T) {
	_, ok := UniqueViolation(errors.New("boom"))
	assert.False(t, ok)
}
