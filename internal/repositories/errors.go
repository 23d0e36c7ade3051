package repositories

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when the target row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned by idempotent inserts that hit an
	// existing row. Callers treat it as a no-op, not a failure.
	ErrAlreadyExists = errors.New("already exists")

	// ErrAlreadyRecorded is returned when a referral edge for the referred
	// user already exists. The balance is left untouched.
	ErrAlreadyRecorded = errors.New("referral already recorded")
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
