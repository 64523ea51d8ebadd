package db

import (
	"errors"

	"github.com/jackc/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// UniqueViolation reports whether err is a unique constraint violation and
// returns the violated constraint name.
func UniqueViolation(err error) (string, bool) {
	return pgErrorWithCode(err, uniqueViolation)
}

// ForeignKeyViolation reports whether err is a foreign key violation and
// returns the violated constraint name.
func ForeignKeyViolation(err error) (string, bool) {
	return pgErrorWithCode(err, foreignKeyViolation)
}

func pgErrorWithCode(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}
