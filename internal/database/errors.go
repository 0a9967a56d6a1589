package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE codes the services translate into the public error taxonomy.
const (
	codeUniqueViolation        = "23505"
	codeInsufficientPrivilege  = "42501"
	codeSerializationFailure   = "40001"
	codeDeadlockDetected       = "40P01"
	codeCheckConstraintFailure = "23514"
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

// IsInsufficientPrivilege reports whether err is a GRANT failure, which is how
// an admin-only operation fails through the base handle.
func IsInsufficientPrivilege(err error) bool {
	return pqCode(err) == codeInsufficientPrivilege
}

// IsSerializationFailure reports whether err is a retryable transaction
// conflict.
func IsSerializationFailure(err error) bool {
	code := pqCode(err)
	return code == codeSerializationFailure || code == codeDeadlockDetected
}

// IsCheckViolation reports whether err is a CHECK-constraint failure.
func IsCheckViolation(err error) bool {
	return pqCode(err) == codeCheckConstraintFailure
}

// IsNoRows reports whether err is an empty-result error.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
