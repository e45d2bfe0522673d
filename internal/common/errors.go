package common

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
)

func pqErrorIs(err error, code pq.ErrorCode, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code && (constraint == "" || pqErr.Constraint == constraint)
	}

	return false
}

// ForeignKeyError reports whether err is a foreign key violation on the named constraint.
// An empty name matches any constraint.
func ForeignKeyError(err error, name string) bool {
	return pqErrorIs(err, pqForeignKeyViolation, name)
}

// UniqueError reports whether err is a unique violation on the named constraint.
func UniqueError(err error, name string) bool {
	return pqErrorIs(err, pqUniqueViolation, name)
}

// CheckError reports whether err is a check constraint violation on the named constraint.
func CheckError(err error, name string) bool {
	return pqErrorIs(err, pqCheckViolation, name)
}
